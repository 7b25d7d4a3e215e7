package view

import (
	"github.com/69GliTcH/SimpliFin/pkg/spending"
)

// Matches reports whether a record satisfies the filter. Date bounds are
// inclusive and compare against the record's normalized timestamp; a record
// with an invalid timestamp fails any date bound but passes a purely
// categorical (or empty) filter. The category bound compares against the
// record's effective category, so records with out-of-set stored categories
// match a filter on Other.
func Matches(record spending.Record, spec FilterSpec) bool {
	if !spec.From.IsZero() {
		if !record.HasValidTimestamp() || record.CreatedAt.Before(spec.From) {
			return false
		}
	}
	if !spec.To.IsZero() {
		if !record.HasValidTimestamp() || record.CreatedAt.After(spec.To) {
			return false
		}
	}
	if spec.Category != "" && record.DisplayCategory() != spending.Category(spec.Category) {
		return false
	}
	return true
}

// Filter returns the records satisfying the spec, preserving input order.
func Filter(records []spending.Record, spec FilterSpec) []spending.Record {
	filtered := make([]spending.Record, 0, len(records))
	for _, record := range records {
		if Matches(record, spec) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}
