// Package analytics computes the dashboard report: overview counts, grouped
// breakdowns, time-bucketed series and engagement totals. The store only
// returns plain grouped counts and sums; percentages, averages and bucket
// keys are derived here.
package analytics

import (
	"time"
)

// TimeRange is the trailing window the series are computed over.
type TimeRange string

const (
	Range7Days  TimeRange = "7d"
	Range30Days TimeRange = "30d"
	Range90Days TimeRange = "90d"
	Range1Year  TimeRange = "1y"
	RangeAll    TimeRange = "all"
)

var TimeRanges = []string{string(Range7Days), string(Range30Days), string(Range90Days), string(Range1Year), string(RangeAll)}

// epoch is the start of the "all" window.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Window is a closed [Start, End] interval.
type Window struct {
	Start time.Time
	End   time.Time
}

// Window resolves the range against now. Unknown values resolve like "all".
func (r TimeRange) Window(now time.Time) Window {
	now = now.UTC()
	w := Window{End: now}
	switch r {
	case Range7Days:
		w.Start = now.AddDate(0, 0, -7)
	case Range30Days:
		w.Start = now.AddDate(0, 0, -30)
	case Range90Days:
		w.Start = now.AddDate(0, 0, -90)
	case Range1Year:
		w.Start = now.AddDate(-1, 0, 0)
	default:
		w.Start = epoch
	}
	return w
}

// Granularity is the width of one series bucket.
type Granularity string

const (
	ByDay   Granularity = "day"
	ByWeek  Granularity = "week"
	ByMonth Granularity = "month"
	ByYear  Granularity = "year"
)

var Granularities = []string{string(ByDay), string(ByWeek), string(ByMonth), string(ByYear)}

// Truncate returns the UTC start of the bucket containing t. Weeks start on Sunday.
func (g Granularity) Truncate(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch g {
	case ByWeek:
		return day.AddDate(0, 0, -int(day.Weekday()))
	case ByMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case ByYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

// Key formats the bucket containing t: YYYY-MM-DD for days and weeks,
// YYYY-MM for months, YYYY for years.
func (g Granularity) Key(t time.Time) string {
	start := g.Truncate(t)
	switch g {
	case ByMonth:
		return start.Format("2006-01")
	case ByYear:
		return start.Format("2006")
	default:
		return start.Format("2006-01-02")
	}
}
