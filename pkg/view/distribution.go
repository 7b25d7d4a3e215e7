package view

import (
	"github.com/69GliTcH/SimpliFin/pkg/spending"
)

// Distribution aggregates record amounts per effective category, in the fixed
// category order. Categories with a zero total are omitted, so an empty input
// yields an empty slice list.
func Distribution(records []spending.Record) []Slice {
	totals := make(map[spending.Category]float64)
	for _, record := range records {
		totals[record.DisplayCategory()] += record.Amount
	}

	slices := make([]Slice, 0, len(totals))
	for _, category := range spending.Categories() {
		total, ok := totals[category]
		if !ok || total == 0 {
			continue
		}
		slices = append(slices, Slice{
			Category: category,
			Total:    total,
			Color:    spending.StyleOf(category).Color,
		})
	}
	return slices
}

// Legend returns the full closed category set with its display styles,
// independent of any record data.
func Legend() []LegendEntry {
	categories := spending.Categories()
	entries := make([]LegendEntry, 0, len(categories))
	for _, category := range categories {
		style := spending.StyleOf(category)
		entries = append(entries, LegendEntry{
			Category: category,
			Color:    style.Color,
			Icon:     style.Icon,
		})
	}
	return entries
}
