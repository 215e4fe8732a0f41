package vfs

import (
	"sort"
	"strings"

	"github.com/mkrull/vmark/internal/domain"
)

// PopularLimit caps the "popular" collection.
const PopularLimit = 100

// Collection is a named, parameterless predicate over the bookmark set,
// exposed as a virtual top-level directory. Match may be nil (match all);
// Post may be nil (no sort/limit pass).
type Collection struct {
	Name  string
	Match func(*domain.Bookmark) bool
	Post  func([]*domain.Bookmark) []*domain.Bookmark
}

// Evaluate applies the predicate and post-filter to the full bookmark set.
func (c Collection) Evaluate(all []*domain.Bookmark) []*domain.Bookmark {
	out := make([]*domain.Bookmark, 0, len(all))
	for _, b := range all {
		if c.Match == nil || c.Match(b) {
			out = append(out, b)
		}
	}
	if c.Post != nil {
		out = c.Post(out)
	}
	return out
}

var collections = []Collection{
	{
		Name:  "unread",
		Match: func(b *domain.Bookmark) bool { return b.VisitCount == 0 },
	},
	{
		Name: "popular",
		Post: func(bms []*domain.Bookmark) []*domain.Bookmark {
			sort.SliceStable(bms, func(i, j int) bool {
				return bms[i].VisitCount > bms[j].VisitCount
			})
			if len(bms) > PopularLimit {
				bms = bms[:PopularLimit]
			}
			return bms
		},
	},
	{
		Name: "broken",
		Match: func(b *domain.Bookmark) bool {
			return b.Reachable != nil && !*b.Reachable
		},
	},
	{
		Name:  "untagged",
		Match: func(b *domain.Bookmark) bool { return len(b.Tags) == 0 },
	},
	{
		Name: "pdfs",
		Match: func(b *domain.Bookmark) bool {
			return strings.HasSuffix(strings.ToLower(b.URL), ".pdf")
		},
	},
}

// LookupCollection finds a registered collection by name.
func LookupCollection(name string) (Collection, bool) {
	for _, c := range collections {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}

// CollectionNames lists registered collection names in registration order.
func CollectionNames() []string {
	names := make([]string, 0, len(collections))
	for _, c := range collections {
		names = append(names, c.Name)
	}
	return names
}

// RegisterCollection adds a collection without touching the classifier.
// Names colliding with reserved top-level segments or existing collections
// are rejected.
func RegisterCollection(c Collection) bool {
	if c.Name == "" || IsReservedSegment(c.Name) {
		return false
	}
	collections = append(collections, c)
	return true
}

// IsReservedSegment reports whether name is taken as a top-level virtual
// directory: the built-in hierarchies plus every registered collection.
func IsReservedSegment(name string) bool {
	switch name {
	case "bookmarks", "tags", "domains", "recent":
		return true
	}
	_, ok := LookupCollection(name)
	return ok
}
