package vfs

import (
	"fmt"
	"time"
)

// Period names a browsable time interval relative to "now".
type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodThisWeek  Period = "this-week"
	PeriodLastWeek  Period = "last-week"
	PeriodThisMonth Period = "this-month"
	PeriodLastMonth Period = "last-month"
)

// Periods lists every valid period in display order.
func Periods() []Period {
	return []Period{
		PeriodToday, PeriodYesterday,
		PeriodThisWeek, PeriodLastWeek,
		PeriodThisMonth, PeriodLastMonth,
	}
}

// ParsePeriod validates a path segment as a period name.
func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

// TimeRange is a half-open interval [Start, End) in UTC, tagged with the
// period it represents.
type TimeRange struct {
	Period Period
	Start  time.Time
	End    time.Time
}

// Contains reports whether t falls inside the interval. Comparison happens
// in UTC; timestamps that were stored without a zone are treated as UTC.
func (r TimeRange) Contains(t time.Time) bool {
	u := t.UTC()
	return !u.Before(r.Start) && u.Before(r.End)
}

// RangeFor computes the interval for a period relative to now. Weeks start
// on Monday. Month boundaries use calendar arithmetic, never fixed day
// offsets, so February and 31-day months both land on the correct first.
func RangeFor(now time.Time, period Period) (TimeRange, error) {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// Days since Monday: Monday=0 ... Sunday=6.
	weekday := (int(now.Weekday()) + 6) % 7
	weekStart := midnight.AddDate(0, 0, -weekday)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	switch period {
	case PeriodToday:
		return TimeRange{Period: period, Start: midnight, End: now}, nil
	case PeriodYesterday:
		return TimeRange{Period: period, Start: midnight.AddDate(0, 0, -1), End: midnight}, nil
	case PeriodThisWeek:
		return TimeRange{Period: period, Start: weekStart, End: now}, nil
	case PeriodLastWeek:
		return TimeRange{Period: period, Start: weekStart.AddDate(0, 0, -7), End: weekStart}, nil
	case PeriodThisMonth:
		return TimeRange{Period: period, Start: monthStart, End: now}, nil
	case PeriodLastMonth:
		return TimeRange{Period: period, Start: monthStart.AddDate(0, -1, 0), End: monthStart}, nil
	default:
		return TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, string(period))
	}
}
