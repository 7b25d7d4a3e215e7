package view

import (
	"time"

	"github.com/69GliTcH/SimpliFin/pkg/spending"
)

// FilterSpec narrows a record list by creation date and category. Zero times
// mean unbounded; an empty category means all categories. Both bounds are
// inclusive.
type FilterSpec struct {
	From     time.Time
	To       time.Time
	Category string
}

// IsZero reports whether the spec applies no filtering at all.
func (s FilterSpec) IsZero() bool {
	return s.From.IsZero() && s.To.IsZero() && s.Category == ""
}

// Slice is one category's share of a spending distribution.
type Slice struct {
	Category spending.Category
	Total    float64
	Color    string
}

// LegendEntry describes one category of the closed set for display, present
// whether or not the category currently has any spending.
type LegendEntry struct {
	Category spending.Category
	Color    string
	Icon     string
}

// MultipleCategories is the category label of a timeline point that
// aggregates records from more than one category.
const MultipleCategories = "Multiple"

// Point is one entry of a spending timeline: a single record or one time
// bucket, depending on how many records survived filtering.
type Point struct {
	Label    string
	Date     time.Time
	Amount   float64
	Count    int
	Category string
}

// PartitionStats are the aggregates of one summary partition.
type PartitionStats struct {
	Total   float64
	Count   int
	Average float64
}

// Summary holds the dashboard aggregates: three calendar partitions relative
// to the current moment plus the aggregate over the filtered set.
type Summary struct {
	Today     PartitionStats
	ThisWeek  PartitionStats
	ThisMonth PartitionStats
	Filtered  PartitionStats
}

// Page is one page of the record table, newest first.
type Page struct {
	Items      []spending.Record
	Number     int
	Size       int
	TotalPages int
	TotalCount int
}
