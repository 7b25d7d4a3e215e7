package view

import (
	"sort"
	"time"

	"github.com/69GliTcH/SimpliFin/pkg/spending"
)

// aggregationThreshold is the largest record count rendered as individual
// timeline points. Above it, records collapse into time buckets.
const aggregationThreshold = 15

// span limits (in calendar days) selecting the bucket granularity
const (
	daySpanLimit   = 31
	monthSpanLimit = 365
)

// Timeline turns an already filtered record list into chart points. With at
// most aggregationThreshold records each record becomes its own point; above
// that, records collapse into day, month, or year buckets depending on the
// calendar span they cover. Points come back in ascending date order, ties
// keeping their input order. Records without a valid timestamp cannot be
// placed on a time axis and are left out. Day boundaries follow loc.
func Timeline(records []spending.Record, loc *time.Location) []Point {
	if loc == nil {
		loc = time.UTC
	}

	dated := make([]spending.Record, 0, len(records))
	for _, record := range records {
		if record.HasValidTimestamp() {
			dated = append(dated, record)
		}
	}
	if len(dated) == 0 {
		return []Point{}
	}

	if len(dated) <= aggregationThreshold {
		return individualPoints(dated, loc)
	}
	return bucketedPoints(dated, loc)
}

func individualPoints(records []spending.Record, loc *time.Location) []Point {
	points := make([]Point, 0, len(records))
	for _, record := range records {
		date := record.CreatedAt.In(loc)
		points = append(points, Point{
			Label:    date.Format("Jan 2"),
			Date:     date,
			Amount:   record.Amount,
			Count:    1,
			Category: string(record.DisplayCategory()),
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

func bucketedPoints(records []spending.Record, loc *time.Location) []Point {
	minDate, maxDate := dateBounds(records, loc)
	spanDays := int(maxDate.Sub(minDate).Hours()/24) + 1

	var anchor func(t time.Time) time.Time
	var label string
	switch {
	case spanDays <= daySpanLimit:
		anchor = func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		}
		label = "Jan 2"
	case spanDays <= monthSpanLimit:
		anchor = func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
		}
		label = "Jan 2006"
	default:
		anchor = func(t time.Time) time.Time {
			return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, loc)
		}
		label = "2006"
	}

	type bucket struct {
		amount     float64
		count      int
		categories map[spending.Category]struct{}
	}
	buckets := make(map[time.Time]*bucket)
	for _, record := range records {
		key := anchor(record.CreatedAt.In(loc))
		b, ok := buckets[key]
		if !ok {
			b = &bucket{categories: make(map[spending.Category]struct{})}
			buckets[key] = b
		}
		b.amount += record.Amount
		b.count++
		b.categories[record.DisplayCategory()] = struct{}{}
	}

	points := make([]Point, 0, len(buckets))
	for date, b := range buckets {
		category := MultipleCategories
		if len(b.categories) == 1 {
			for c := range b.categories {
				category = string(c)
			}
		}
		points = append(points, Point{
			Label:    date.Format(label),
			Date:     date,
			Amount:   b.amount,
			Count:    b.count,
			Category: category,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// dateBounds returns the earliest and latest record dates truncated to
// midnight in loc.
func dateBounds(records []spending.Record, loc *time.Location) (time.Time, time.Time) {
	var min, max time.Time
	for i, record := range records {
		t := record.CreatedAt.In(loc)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		if i == 0 || day.Before(min) {
			min = day
		}
		if i == 0 || day.After(max) {
			max = day
		}
	}
	return min, max
}
