package view

import (
	"fmt"
	"testing"
	"time"

	"github.com/69GliTcH/SimpliFin/pkg/spending"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordsOverDays(count, spanDays int) []spending.Record {
	records := make([]spending.Record, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, record(
			fmt.Sprintf("R%d", i),
			"Food",
			1,
			day(2024, 1, 1+i*spanDays/count),
		))
	}
	return records
}

func TestTimelineIndividualPoints(t *testing.T) {
	t.Run("at most fifteen records stay individual", func(t *testing.T) {
		points := Timeline(recordsOverDays(15, 10), time.UTC)
		require.Len(t, points, 15)
		for _, point := range points {
			assert.Equal(t, 1, point.Count)
			assert.Equal(t, "Food", point.Category)
		}
	})

	t.Run("points are sorted ascending with day labels", func(t *testing.T) {
		records := []spending.Record{
			record("Later", "Food", 2, day(2024, 1, 10)),
			record("Earlier", "Travel", 1, day(2024, 1, 5)),
		}
		points := Timeline(records, time.UTC)
		require.Len(t, points, 2)
		assert.Equal(t, "Jan 5", points[0].Label)
		assert.Equal(t, 1.0, points[0].Amount)
		assert.Equal(t, "Jan 10", points[1].Label)
	})

	t.Run("equal timestamps keep input order", func(t *testing.T) {
		ts := day(2024, 1, 5)
		records := []spending.Record{
			record("First", "Food", 1, ts),
			record("Second", "Travel", 2, ts),
		}
		points := Timeline(records, time.UTC)
		require.Len(t, points, 2)
		assert.Equal(t, 1.0, points[0].Amount)
		assert.Equal(t, 2.0, points[1].Amount)
	})

	t.Run("records without timestamps are left out", func(t *testing.T) {
		records := []spending.Record{
			record("Dated", "Food", 1, day(2024, 1, 5)),
			record("Undated", "Food", 2, time.Time{}),
		}
		points := Timeline(records, time.UTC)
		require.Len(t, points, 1)
		assert.Equal(t, 1.0, points[0].Amount)
	})

	t.Run("empty input yields no points", func(t *testing.T) {
		assert.Empty(t, Timeline(nil, time.UTC))
	})
}

func TestTimelineBuckets(t *testing.T) {
	t.Run("sixteen records over ten days bucket by day", func(t *testing.T) {
		records := make([]spending.Record, 0, 16)
		for i := 0; i < 16; i++ {
			records = append(records, record(fmt.Sprintf("R%d", i), "Food", 1, day(2024, 1, 1+i%10)))
		}
		points := Timeline(records, time.UTC)
		require.Len(t, points, 10)
		assert.Equal(t, "Jan 1", points[0].Label)
		total := 0
		for _, point := range points {
			total += point.Count
		}
		assert.Equal(t, 16, total, "every record lands in exactly one bucket")
	})

	t.Run("a span of exactly thirty-one days still buckets by day", func(t *testing.T) {
		records := make([]spending.Record, 0, 16)
		for i := 0; i < 16; i++ {
			// Jan 1 through Jan 31: 31 calendar days covered
			records = append(records, record(fmt.Sprintf("R%d", i), "Food", 1, day(2024, 1, 1+(i%2)*30)))
		}
		points := Timeline(records, time.UTC)
		require.Len(t, points, 2)
		assert.Equal(t, "Jan 1", points[0].Label)
		assert.Equal(t, "Jan 31", points[1].Label)
	})

	t.Run("a span of thirty-two days buckets by month", func(t *testing.T) {
		records := make([]spending.Record, 0, 16)
		for i := 0; i < 16; i++ {
			// Jan 1 through Feb 1: one day past the day-granularity limit
			if i%2 == 0 {
				records = append(records, record(fmt.Sprintf("R%d", i), "Food", 1, day(2024, 1, 1)))
			} else {
				records = append(records, record(fmt.Sprintf("R%d", i), "Food", 1, day(2024, 2, 1)))
			}
		}
		points := Timeline(records, time.UTC)
		require.Len(t, points, 2)
		assert.Equal(t, "Jan 2024", points[0].Label)
		assert.Equal(t, "Feb 2024", points[1].Label)
	})

	t.Run("span over a month buckets by month", func(t *testing.T) {
		records := make([]spending.Record, 0, 20)
		for i := 0; i < 20; i++ {
			records = append(records, record(fmt.Sprintf("R%d", i), "Food", 2, day(2024, time.Month(1+i%3), 10)))
		}
		points := Timeline(records, time.UTC)
		require.Len(t, points, 3)
		assert.Equal(t, "Jan 2024", points[0].Label)
		assert.Equal(t, "Feb 2024", points[1].Label)
		assert.Equal(t, "Mar 2024", points[2].Label)
	})

	t.Run("span over a year buckets by year", func(t *testing.T) {
		records := make([]spending.Record, 0, 20)
		for i := 0; i < 20; i++ {
			records = append(records, record(fmt.Sprintf("R%d", i), "Food", 1, day(2022+i%3, 6, 15)))
		}
		points := Timeline(records, time.UTC)
		require.Len(t, points, 3)
		assert.Equal(t, "2022", points[0].Label)
		assert.Equal(t, "2024", points[2].Label)
	})

	t.Run("single-category buckets keep the category name", func(t *testing.T) {
		records := make([]spending.Record, 0, 16)
		for i := 0; i < 16; i++ {
			records = append(records, record(fmt.Sprintf("R%d", i), "Food", 1, day(2024, 1, 1+i%5)))
		}
		points := Timeline(records, time.UTC)
		for _, point := range points {
			assert.Equal(t, "Food", point.Category)
		}
	})

	t.Run("mixed-category buckets are labeled Multiple", func(t *testing.T) {
		records := make([]spending.Record, 0, 16)
		categories := []string{"Food", "Travel"}
		for i := 0; i < 16; i++ {
			records = append(records, record(fmt.Sprintf("R%d", i), categories[i%2], 1, day(2024, 1, 1)))
		}
		points := Timeline(records, time.UTC)
		require.Len(t, points, 1)
		assert.Equal(t, MultipleCategories, points[0].Category)
		assert.Equal(t, 16.0, points[0].Amount)
	})

	t.Run("bucket sums equal the sum of member amounts", func(t *testing.T) {
		records := make([]spending.Record, 0, 16)
		var expected float64
		for i := 0; i < 16; i++ {
			amount := float64(i + 1)
			expected += amount
			records = append(records, record(fmt.Sprintf("R%d", i), "Food", amount, day(2024, 1, 1+i%4)))
		}
		points := Timeline(records, time.UTC)
		var total float64
		for _, point := range points {
			total += point.Amount
		}
		assert.Equal(t, expected, total)
	})
}
