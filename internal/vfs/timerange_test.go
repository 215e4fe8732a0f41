package vfs

import (
	"errors"
	"testing"
	"time"
)

func mustRange(t *testing.T, now time.Time, p Period) TimeRange {
	t.Helper()
	r, err := RangeFor(now, p)
	if err != nil {
		t.Fatalf("RangeFor(%s): %v", p, err)
	}
	return r
}

func TestRangeForMondayMorning(t *testing.T) {
	// 2025-03-03 is a Monday.
	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		period Period
		start  time.Time
		end    time.Time
	}{
		{
			period: PeriodToday,
			start:  time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			end:    now,
		},
		{
			period: PeriodYesterday,
			start:  time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
			end:    time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			// Monday morning: this-week started at midnight today.
			period: PeriodThisWeek,
			start:  time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			end:    now,
		},
		{
			period: PeriodLastWeek,
			start:  time.Date(2025, 2, 24, 0, 0, 0, 0, time.UTC),
			end:    time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			period: PeriodThisMonth,
			start:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			end:    now,
		},
		{
			// Last month is February: calendar arithmetic, not 30 days back.
			period: PeriodLastMonth,
			start:  time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			end:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			r := mustRange(t, now, tt.period)
			if !r.Start.Equal(tt.start) {
				t.Errorf("Start = %v, want %v", r.Start, tt.start)
			}
			if !r.End.Equal(tt.end) {
				t.Errorf("End = %v, want %v", r.End, tt.end)
			}
		})
	}
}

func TestRangeDisjointness(t *testing.T) {
	nows := []time.Time{
		time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC),   // Monday
		time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC),  // Sunday
		time.Date(2025, 1, 1, 0, 30, 0, 0, time.UTC),   // first of year
		time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC),  // leap day
		time.Date(2025, 7, 31, 23, 0, 0, 0, time.UTC),  // 31st
	}

	for _, now := range nows {
		thisWeek := mustRange(t, now, PeriodThisWeek)
		lastWeek := mustRange(t, now, PeriodLastWeek)
		if lastWeek.End.After(thisWeek.Start) {
			t.Errorf("now=%v: last-week %v overlaps this-week %v", now, lastWeek, thisWeek)
		}
		if !lastWeek.End.Equal(thisWeek.Start) {
			t.Errorf("now=%v: last-week should abut this-week", now)
		}

		thisMonth := mustRange(t, now, PeriodThisMonth)
		lastMonth := mustRange(t, now, PeriodLastMonth)
		if lastMonth.End.After(thisMonth.Start) {
			t.Errorf("now=%v: last-month overlaps this-month", now)
		}
		if !lastMonth.End.Equal(thisMonth.Start) {
			t.Errorf("now=%v: last-month should abut this-month", now)
		}
	}
}

func TestRangeForNonUTCNow(t *testing.T) {
	// A now in another zone must produce the same UTC boundaries.
	loc := time.FixedZone("plus5", 5*3600)
	nowLocal := time.Date(2025, 3, 3, 15, 0, 0, 0, loc) // 10:00 UTC
	nowUTC := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

	for _, p := range Periods() {
		a := mustRange(t, nowLocal, p)
		b := mustRange(t, nowUTC, p)
		if !a.Start.Equal(b.Start) || !a.End.Equal(b.End) {
			t.Errorf("%s: local-now range %v..%v != utc-now range %v..%v",
				p, a.Start, a.End, b.Start, b.End)
		}
	}
}

func TestContainsTreatsNaiveAsUTC(t *testing.T) {
	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	today := mustRange(t, now, PeriodToday)

	inRange := time.Date(2025, 3, 3, 5, 0, 0, 0, time.UTC)
	if !today.Contains(inRange) {
		t.Error("expected 05:00 UTC to be in today's range")
	}
	// End is exclusive.
	if today.Contains(now) {
		t.Error("half-open interval must exclude its end instant")
	}
	if !today.Contains(today.Start) {
		t.Error("half-open interval must include its start instant")
	}
}

func TestParsePeriod(t *testing.T) {
	if _, err := ParsePeriod("this-week"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	_, err := ParsePeriod("fortnight")
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}
