package view

import (
	"sort"

	"github.com/69GliTcH/SimpliFin/pkg/spending"
)

// DefaultPageSize matches the table page size of the web client.
const DefaultPageSize = 10

// SortNewestFirst returns a copy of the records ordered by descending
// creation time. The sort is stable, so equal timestamps and the zero-time
// records at the tail keep their snapshot order.
func SortNewestFirst(records []spending.Record) []spending.Record {
	sorted := make([]spending.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}

// TotalPages returns the page count for the given record count: the ceiling
// of count divided by pageSize, never less than one.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Paginate slices an ordered record list into one page. Page numbers start at
// one; out-of-range numbers clamp to the nearest valid page, so the last page
// stays reachable after deletions shrink the list.
func Paginate(records []spending.Record, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := TotalPages(len(records), pageSize)
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(records) {
		start = len(records)
	}
	if end > len(records) {
		end = len(records)
	}

	items := make([]spending.Record, end-start)
	copy(items, records[start:end])
	return Page{
		Items:      items,
		Number:     page,
		Size:       pageSize,
		TotalPages: totalPages,
		TotalCount: len(records),
	}
}
