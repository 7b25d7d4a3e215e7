package view

import (
	"time"

	"github.com/69GliTcH/SimpliFin/pkg/spending"
)

// Summarize computes the dashboard aggregates. The today, week, and month
// partitions are taken over the full record list relative to now (week
// starting on weekStartDay at midnight); the filtered partition aggregates
// the already filtered list as-is. Records without a valid timestamp cannot
// fall into a calendar partition but still count toward the filtered
// aggregate when the filter let them through.
func Summarize(records, filtered []spending.Record, now time.Time, weekStartDay time.Weekday) Summary {
	loc := now.Location()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	weekStart := dayStart.AddDate(0, 0, -daysSinceWeekStart(now.Weekday(), weekStartDay))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	summary := Summary{Filtered: partitionStats(filtered)}

	var todayRecords, weekRecords, monthRecords []spending.Record
	for _, record := range records {
		if !record.HasValidTimestamp() {
			continue
		}
		t := record.CreatedAt.In(loc)
		if t.After(now) {
			continue
		}
		if !t.Before(dayStart) {
			todayRecords = append(todayRecords, record)
		}
		if !t.Before(weekStart) {
			weekRecords = append(weekRecords, record)
		}
		if !t.Before(monthStart) {
			monthRecords = append(monthRecords, record)
		}
	}
	summary.Today = partitionStats(todayRecords)
	summary.ThisWeek = partitionStats(weekRecords)
	summary.ThisMonth = partitionStats(monthRecords)
	return summary
}

// daysSinceWeekStart returns how many days ago the current week started.
func daysSinceWeekStart(today, weekStart time.Weekday) int {
	return (int(today) - int(weekStart) + 7) % 7
}

func partitionStats(records []spending.Record) PartitionStats {
	stats := PartitionStats{Count: len(records)}
	for _, record := range records {
		stats.Total += record.Amount
	}
	if stats.Count > 0 {
		stats.Average = stats.Total / float64(stats.Count)
	}
	return stats
}
