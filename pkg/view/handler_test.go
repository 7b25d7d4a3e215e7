package view

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterSpec(t *testing.T) {
	t.Run("no parameters yields an empty spec", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/spending", nil)
		spec, err := ParseFilterSpec(r)
		require.NoError(t, err)
		assert.True(t, spec.IsZero())
	})

	t.Run("RFC3339 bounds", func(t *testing.T) {
		r := httptest.NewRequest("GET",
			"/api/spending?fromDate=2024-01-01T00:00:00Z&toDate=2024-01-31T23:59:59Z&category=Food", nil)
		spec, err := ParseFilterSpec(r)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), spec.From)
		assert.Equal(t, "Food", spec.Category)
	})

	t.Run("date-only toDate covers the whole day", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/spending?toDate=2024-01-31", nil)
		spec, err := ParseFilterSpec(r)
		require.NoError(t, err)
		endOfDay := time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC)
		assert.True(t, spec.To.Equal(endOfDay), "got %v", spec.To)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/spending?fromDate=yesterday", nil)
		_, err := ParseFilterSpec(r)
		assert.Error(t, err)
	})
}

func TestParsePaging(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/spending", nil)
		page, pageSize, err := parsePaging(r)
		require.NoError(t, err)
		assert.Equal(t, 1, page)
		assert.Equal(t, DefaultPageSize, pageSize)
	})

	t.Run("explicit values", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/spending?page=3&pageSize=25", nil)
		page, pageSize, err := parsePaging(r)
		require.NoError(t, err)
		assert.Equal(t, 3, page)
		assert.Equal(t, 25, pageSize)
	})

	t.Run("rejects non-positive values", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/spending?page=0", nil)
		_, _, err := parsePaging(r)
		assert.Error(t, err)

		r = httptest.NewRequest("GET", "/api/spending?pageSize=-1", nil)
		_, _, err = parsePaging(r)
		assert.Error(t, err)
	})
}
