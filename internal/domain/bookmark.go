package domain

import (
	"net/url"
	"strings"
	"time"
)

// Bookmark is a single saved URL with its navigation metadata.
type Bookmark struct {
	// ID is assigned by the repository and never changes.
	ID int64 `json:"id"`

	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Added is the creation timestamp (UTC).
	Added time.Time `json:"added"`

	// LastVisited is nil until the bookmark has been visited at least once.
	LastVisited *time.Time `json:"last_visited,omitempty"`

	VisitCount int  `json:"visit_count"`
	Starred    bool `json:"starred"`

	// Reachable is nil while unknown; the reachability checker fills it in.
	Reachable *bool `json:"reachable,omitempty"`

	// Tags are slash-delimited hierarchical names, e.g. "programming/python".
	Tags []string `json:"tags,omitempty"`
}

// Domain returns the hostname of the bookmark URL, lowercased and without
// port. It is derived from the URL, never stored. Returns "" for URLs that
// cannot be parsed.
func (b *Bookmark) Domain() string {
	u, err := url.Parse(b.URL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// HasTag reports whether the bookmark holds the exact tag.
func (b *Bookmark) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MatchesTagPrefix reports whether any of the bookmark's tags equals the
// prefix or is hierarchically nested under it. A bookmark tagged
// "programming/python/web" matches "programming" and "programming/python"
// but not "programming/py". The empty prefix matches any tagged bookmark.
func (b *Bookmark) MatchesTagPrefix(prefix string) bool {
	if prefix == "" {
		return len(b.Tags) > 0
	}
	want := strings.Split(prefix, "/")
	for _, t := range b.Tags {
		have := strings.Split(t, "/")
		if len(have) < len(want) {
			continue
		}
		match := true
		for i := range want {
			if have[i] != want[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can rewrite tag sets without
// aliasing repository-owned slices.
func (b *Bookmark) Clone() *Bookmark {
	cp := *b
	if b.LastVisited != nil {
		lv := *b.LastVisited
		cp.LastVisited = &lv
	}
	if b.Reachable != nil {
		r := *b.Reachable
		cp.Reachable = &r
	}
	if b.Tags != nil {
		cp.Tags = append([]string(nil), b.Tags...)
	}
	return &cp
}
