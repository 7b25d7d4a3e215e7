package view

import (
	"fmt"
	"testing"
	"time"

	"github.com/69GliTcH/SimpliFin/pkg/spending"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortNewestFirst(t *testing.T) {
	ts := day(2024, 1, 5)
	records := []spending.Record{
		record("Old", "Food", 1, day(2024, 1, 1)),
		record("TieA", "Food", 2, ts),
		record("New", "Food", 3, day(2024, 1, 10)),
		record("TieB", "Food", 4, ts),
		record("Undated", "Food", 5, time.Time{}),
	}

	sorted := SortNewestFirst(records)
	names := make([]string, 0, len(sorted))
	for _, r := range sorted {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"New", "TieA", "TieB", "Old", "Undated"}, names,
		"ties and undated records keep their snapshot order")

	assert.Equal(t, "Old", records[0].Name, "input is not mutated")
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10), "an empty list still has one page")
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(23, 10))
	assert.Equal(t, 23, TotalPages(23, 1))
}

func TestPaginate(t *testing.T) {
	records := make([]spending.Record, 0, 23)
	for i := 0; i < 23; i++ {
		records = append(records, record(fmt.Sprintf("R%d", i), "Food", 1, day(2024, 1, 1)))
	}

	t.Run("first page", func(t *testing.T) {
		page := Paginate(records, 1, 10)
		assert.Len(t, page.Items, 10)
		assert.Equal(t, "R0", page.Items[0].Name)
		assert.Equal(t, 1, page.Number)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, 23, page.TotalCount)
	})

	t.Run("last page is partial", func(t *testing.T) {
		page := Paginate(records, 3, 10)
		require.Len(t, page.Items, 3)
		assert.Equal(t, "R20", page.Items[0].Name)
	})

	t.Run("out-of-range page clamps to the last page", func(t *testing.T) {
		page := Paginate(records, 9, 10)
		assert.Equal(t, 3, page.Number)
		assert.Len(t, page.Items, 3)
	})

	t.Run("page below one clamps to the first page", func(t *testing.T) {
		page := Paginate(records, 0, 10)
		assert.Equal(t, 1, page.Number)
	})

	t.Run("empty list yields one empty page", func(t *testing.T) {
		page := Paginate(nil, 1, 10)
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.Number)
		assert.Equal(t, 1, page.TotalPages)
		assert.Equal(t, 0, page.TotalCount)
	})

	t.Run("invalid page size falls back to the default", func(t *testing.T) {
		page := Paginate(records, 1, 0)
		assert.Len(t, page.Items, DefaultPageSize)
	})
}
