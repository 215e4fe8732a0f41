package vfs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mkrull/vmark/internal/domain"
)

// Kind discriminates the Context tagged union.
type Kind int

const (
	KindNotFound Kind = iota
	KindRoot
	KindCollection
	KindTagSubtree
	KindDomain
	KindTimePeriod
	KindTimeActivity
	KindBookmark
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindCollection:
		return "collection"
	case KindTagSubtree:
		return "tag-subtree"
	case KindDomain:
		return "domain"
	case KindTimePeriod:
		return "time-period"
	case KindTimeActivity:
		return "time-activity"
	case KindBookmark:
		return "bookmark"
	default:
		return "not-found"
	}
}

// Context describes what a virtual path currently denotes. It is a pure
// projection of (path, repository snapshot, now) and is recomputed on
// every navigation, never cached across mutations.
type Context struct {
	Kind Kind
	Path string

	// Set per Kind; unused fields stay zero.
	Collection string
	TagPrefix  string
	Domain     string
	Period     Period   // empty on the default /recent view
	Activity   Activity // set for KindTimeActivity

	// Bookmark is the single resolved bookmark for KindBookmark.
	Bookmark *domain.Bookmark

	// Bookmarks is the set in view. For KindRoot and KindTimePeriod it
	// holds the full set so child counts can be rendered.
	Bookmarks []*domain.Bookmark
}

// Classifier turns normalized paths into Contexts against a repository.
type Classifier struct {
	Repo Repository

	// Now supplies the wall clock; defaults to time.Now.
	Now func() time.Time

	// DefaultActivity orders the bare /recent view. This is configuration,
	// not a constant: the product default has flip-flopped between visited
	// and added, so call sites must never hard-code it.
	DefaultActivity Activity
}

func (c *Classifier) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Classifier) defaultActivity() Activity {
	if c.DefaultActivity != "" {
		return c.DefaultActivity
	}
	return ActivityVisited
}

// Classify resolves a normalized path into a Context. Unknown paths yield
// KindNotFound without error; a bad period or activity under /recent and
// repository failures return errors.
func (c *Classifier) Classify(ctx context.Context, path string) (Context, error) {
	segs := Segments(path)
	if len(segs) == 0 {
		all, err := c.Repo.ListAll(ctx)
		if err != nil {
			return Context{}, err
		}
		return Context{Kind: KindRoot, Path: path, Bookmarks: all}, nil
	}

	switch head := segs[0]; {
	case head == "tags":
		return c.classifyTags(ctx, path, segs[1:])
	case head == "domains":
		return c.classifyDomains(ctx, path, segs[1:])
	case head == "recent":
		return c.classifyRecent(ctx, path, segs[1:])
	case head == "bookmarks":
		return c.classifyBookmarkID(ctx, path, segs[1:])
	default:
		if col, ok := LookupCollection(head); ok {
			return c.classifyCollection(ctx, path, col, segs[1:])
		}
		return Context{Kind: KindNotFound, Path: path}, nil
	}
}

func (c *Classifier) classifyCollection(ctx context.Context, path string, col Collection, rest []string) (Context, error) {
	all, err := c.Repo.ListAll(ctx)
	if err != nil {
		return Context{}, err
	}
	set := col.Evaluate(all)

	if len(rest) > 0 {
		if id, ok := parseID(rest[0]); ok {
			if b := findByID(set, id); b != nil {
				return Context{Kind: KindBookmark, Path: path, Bookmark: b}, nil
			}
		}
	}
	return Context{Kind: KindCollection, Path: path, Collection: col.Name, Bookmarks: set}, nil
}

func (c *Classifier) classifyTags(ctx context.Context, path string, rest []string) (Context, error) {
	all, err := c.Repo.ListAll(ctx)
	if err != nil {
		return Context{}, err
	}

	// A numeric trailing segment resolves to a bookmark when the subtree
	// named by the preceding segments actually contains that id. This is
	// what makes /tags/video/3298 mean bookmark 3298 rather than a
	// non-existent "video/3298" subtag.
	if n := len(rest); n > 0 {
		if id, ok := parseID(rest[n-1]); ok {
			prefix := strings.Join(rest[:n-1], "/")
			if b := findByID(filterTagPrefix(all, prefix), id); b != nil {
				return Context{Kind: KindBookmark, Path: path, Bookmark: b}, nil
			}
		}
	}

	prefix := strings.Join(rest, "/")
	return Context{
		Kind:      KindTagSubtree,
		Path:      path,
		TagPrefix: prefix,
		Bookmarks: filterTagPrefix(all, prefix),
	}, nil
}

func (c *Classifier) classifyDomains(ctx context.Context, path string, rest []string) (Context, error) {
	all, err := c.Repo.ListAll(ctx)
	if err != nil {
		return Context{}, err
	}

	if len(rest) == 0 {
		return Context{Kind: KindDomain, Path: path, Bookmarks: all}, nil
	}

	dom := rest[0]
	set := make([]*domain.Bookmark, 0, len(all))
	for _, b := range all {
		if b.Domain() == dom {
			set = append(set, b)
		}
	}

	if len(rest) >= 2 {
		if id, ok := parseID(rest[1]); ok {
			if b := findByID(set, id); b != nil {
				return Context{Kind: KindBookmark, Path: path, Bookmark: b}, nil
			}
		}
		return Context{Kind: KindNotFound, Path: path}, nil
	}

	return Context{Kind: KindDomain, Path: path, Domain: dom, Bookmarks: set}, nil
}

func (c *Classifier) classifyRecent(ctx context.Context, path string, rest []string) (Context, error) {
	all, err := c.Repo.ListAll(ctx)
	if err != nil {
		return Context{}, err
	}

	// Bare /recent keeps the pre-hierarchy behavior: every bookmark,
	// ordered by the configured default activity timestamp.
	if len(rest) == 0 {
		act := c.defaultActivity()
		view := append([]*domain.Bookmark(nil), all...)
		SortByActivity(view, act)
		return Context{Kind: KindTimeActivity, Path: path, Activity: act, Bookmarks: view}, nil
	}

	period, err := ParsePeriod(rest[0])
	if err != nil {
		return Context{Kind: KindNotFound, Path: path}, err
	}

	if len(rest) == 1 {
		return Context{Kind: KindTimePeriod, Path: path, Period: period, Bookmarks: all}, nil
	}

	// Numeric third segment with no activity chosen: a direct bookmark id,
	// kept for compatibility with flat /recent/<period>/<id> paths.
	if id, ok := parseID(rest[1]); ok {
		return c.lookupBookmark(ctx, path, id)
	}

	activity, err := ParseActivity(rest[1])
	if err != nil {
		return Context{Kind: KindNotFound, Path: path}, err
	}

	r, err := RangeFor(c.now(), period)
	if err != nil {
		return Context{Kind: KindNotFound, Path: path}, err
	}
	set := FilterByActivity(all, activity, r)

	if len(rest) >= 3 {
		if id, ok := parseID(rest[2]); ok {
			if b := findByID(set, id); b != nil {
				return Context{Kind: KindBookmark, Path: path, Bookmark: b}, nil
			}
		}
		return Context{Kind: KindNotFound, Path: path}, nil
	}

	return Context{
		Kind:      KindTimeActivity,
		Path:      path,
		Period:    period,
		Activity:  activity,
		Bookmarks: set,
	}, nil
}

func (c *Classifier) classifyBookmarkID(ctx context.Context, path string, rest []string) (Context, error) {
	if len(rest) == 0 {
		return Context{Kind: KindNotFound, Path: path}, nil
	}
	id, ok := parseID(rest[0])
	if !ok {
		return Context{Kind: KindNotFound, Path: path}, nil
	}
	return c.lookupBookmark(ctx, path, id)
}

func (c *Classifier) lookupBookmark(ctx context.Context, path string, id int64) (Context, error) {
	b, err := c.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTargetNotFound) {
			return Context{Kind: KindNotFound, Path: path}, nil
		}
		return Context{}, fmt.Errorf("lookup bookmark %d: %w", id, err)
	}
	return Context{Kind: KindBookmark, Path: path, Bookmark: b}, nil
}

func filterTagPrefix(all []*domain.Bookmark, prefix string) []*domain.Bookmark {
	out := make([]*domain.Bookmark, 0, len(all))
	for _, b := range all {
		if b.MatchesTagPrefix(prefix) {
			out = append(out, b)
		}
	}
	return out
}

func findByID(set []*domain.Bookmark, id int64) *domain.Bookmark {
	for _, b := range set {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func parseID(seg string) (int64, bool) {
	id, err := strconv.ParseInt(seg, 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
