package vfs

import (
	"fmt"
	"sort"
	"time"

	"github.com/mkrull/vmark/internal/domain"
)

// Activity is the timestamp axis used for time-based filtering.
type Activity string

const (
	ActivityVisited Activity = "visited"
	ActivityAdded   Activity = "added"
	ActivityStarred Activity = "starred"
)

// Activities lists every valid activity in display order.
func Activities() []Activity {
	return []Activity{ActivityVisited, ActivityAdded, ActivityStarred}
}

// ParseActivity validates a path segment as an activity name.
func ParseActivity(s string) (Activity, error) {
	for _, a := range Activities() {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidActivity, s)
}

// activityTime selects the timestamp field for an activity. There is no
// dedicated starred-at timestamp, so "starred" falls back to the added
// time: a starred bookmark counts only if it was also added in range.
func activityTime(b *domain.Bookmark, activity Activity) *time.Time {
	switch activity {
	case ActivityVisited:
		return b.LastVisited
	case ActivityAdded:
		return &b.Added
	case ActivityStarred:
		if !b.Starred {
			return nil
		}
		return &b.Added
	default:
		return nil
	}
}

// FilterByActivity keeps bookmarks whose activity timestamp falls inside
// the range, sorted descending by that timestamp. Bookmarks with a nil
// timestamp for the selected field are excluded.
func FilterByActivity(bms []*domain.Bookmark, activity Activity, r TimeRange) []*domain.Bookmark {
	out := make([]*domain.Bookmark, 0, len(bms))
	for _, b := range bms {
		ts := activityTime(b, activity)
		if ts == nil || !r.Contains(*ts) {
			continue
		}
		out = append(out, b)
	}
	SortByActivity(out, activity)
	return out
}

// SortByActivity orders bookmarks descending by their activity timestamp.
// Bookmarks without the timestamp sort last.
func SortByActivity(bms []*domain.Bookmark, activity Activity) {
	sort.SliceStable(bms, func(i, j int) bool {
		ti := activityTime(bms[i], activity)
		tj := activityTime(bms[j], activity)
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.After(*tj)
		}
	})
}
