package spending

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "RFC3339 string",
			input:    `"2024-01-05T10:30:00Z"`,
			expected: time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "RFC3339 with offset",
			input:    `"2024-01-05T10:30:00+05:30"`,
			expected: time.Date(2024, 1, 5, 10, 30, 0, 0, time.FixedZone("", 5*3600+30*60)),
		},
		{
			name:     "date only",
			input:    `"2024-01-05"`,
			expected: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "native seconds and nanos",
			input:    `{"seconds": 1704450600, "nanos": 500000000}`,
			expected: time.Unix(1704450600, 500000000).UTC(),
		},
		{
			name:     "garbage string is invalid, not an error",
			input:    `"not-a-date"`,
			expected: time.Time{},
		},
		{
			name:     "empty string is invalid",
			input:    `""`,
			expected: time.Time{},
		},
		{
			name:     "null is invalid",
			input:    `null`,
			expected: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)
			require.NoError(t, err)
			assert.True(t, ts.Time.Equal(tt.expected), "expected %v, got %v", tt.expected, ts.Time)
		})
	}
}

func TestTimestampMarshal(t *testing.T) {
	t.Run("valid timestamp", func(t *testing.T) {
		ts := Timestamp{Time: time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC)}
		data, err := json.Marshal(ts)
		require.NoError(t, err)
		assert.Equal(t, `"2024-01-05T10:30:00Z"`, string(data))
	})

	t.Run("invalid timestamp marshals as null", func(t *testing.T) {
		data, err := json.Marshal(Timestamp{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))
	})
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryFood, ParseCategory("Food"))
	assert.Equal(t, CategoryEntertainment, ParseCategory("Entertainment"))
	assert.Equal(t, CategoryOther, ParseCategory("Groceries"))
	assert.Equal(t, CategoryOther, ParseCategory(""))
	assert.Equal(t, CategoryOther, ParseCategory("food"), "matching is case sensitive")
}

func TestStyleOf(t *testing.T) {
	for _, category := range Categories() {
		style := StyleOf(category)
		assert.NotEmpty(t, style.Color, "category %s has no color", category)
		assert.NotEmpty(t, style.Icon, "category %s has no icon", category)
	}
	assert.Equal(t, StyleOf(CategoryOther), StyleOf(Category("Unknown")))
}
