package shell

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mkrull/vmark/internal/domain"
	"github.com/mkrull/vmark/internal/vfs"
)

// renderList renders the current context: bookmark sets as bookmark lines,
// Root and TimePeriod (and the bare /tags and /domains directories) as
// child names with counts.
func (s *Session) renderList(ctx context.Context, c vfs.Context) (string, error) {
	switch c.Kind {
	case vfs.KindRoot:
		return s.renderRoot(ctx, c)
	case vfs.KindTimePeriod:
		return s.renderPeriod(c)
	case vfs.KindTagSubtree:
		return renderTagSubtree(c), nil
	case vfs.KindDomain:
		if c.Domain == "" {
			return renderDomainIndex(c), nil
		}
		return renderBookmarks(c.Bookmarks), nil
	case vfs.KindBookmark:
		return renderBookmarks([]*domain.Bookmark{c.Bookmark}), nil
	default:
		return renderBookmarks(c.Bookmarks), nil
	}
}

func (s *Session) renderRoot(ctx context.Context, c vfs.Context) (string, error) {
	var sb strings.Builder
	for _, name := range vfs.CollectionNames() {
		col, _ := vfs.LookupCollection(name)
		writeDir(&sb, name, len(col.Evaluate(c.Bookmarks)))
	}

	tags, err := s.store.AllTags(ctx)
	if err != nil {
		return "", err
	}
	writeDir(&sb, "tags", len(tags))

	domains, err := s.store.AllDomains(ctx)
	if err != nil {
		return "", err
	}
	writeDir(&sb, "domains", len(domains))

	writeDir(&sb, "recent", len(vfs.Periods()))
	writeDir(&sb, "bookmarks", len(c.Bookmarks))
	return sb.String(), nil
}

func (s *Session) renderPeriod(c vfs.Context) (string, error) {
	r, err := vfs.RangeFor(s.now(), c.Period)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, act := range vfs.Activities() {
		writeDir(&sb, string(act), len(vfs.FilterByActivity(c.Bookmarks, act, r)))
	}
	return sb.String(), nil
}

// renderTagSubtree shows the immediate child tags below the prefix, then
// the bookmarks in view.
func renderTagSubtree(c vfs.Context) string {
	var sb strings.Builder

	children := make(map[string]int)
	depth := 0
	if c.TagPrefix != "" {
		depth = len(strings.Split(c.TagPrefix, "/"))
	}
	for _, b := range c.Bookmarks {
		seen := make(map[string]bool)
		for _, t := range b.Tags {
			segs := strings.Split(t, "/")
			if len(segs) <= depth {
				continue
			}
			if c.TagPrefix != "" && !strings.HasPrefix(t+"/", c.TagPrefix+"/") {
				continue
			}
			child := segs[depth]
			if !seen[child] {
				seen[child] = true
				children[child]++
			}
		}
	}

	names := make([]string, 0, len(children))
	for name := range children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		writeDir(&sb, name, children[name])
	}

	sb.WriteString(renderBookmarks(c.Bookmarks))
	return sb.String()
}

func renderDomainIndex(c vfs.Context) string {
	counts := make(map[string]int)
	for _, b := range c.Bookmarks {
		if d := b.Domain(); d != "" {
			counts[d]++
		}
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		writeDir(&sb, name, counts[name])
	}
	return sb.String()
}

func renderBookmarks(bms []*domain.Bookmark) string {
	if len(bms) == 0 {
		return "(empty)\n"
	}
	var sb strings.Builder
	for _, b := range bms {
		title := b.Title
		if title == "" {
			title = b.URL
		}
		star := " "
		if b.Starred {
			star = "*"
		}
		fmt.Fprintf(&sb, "%6d %s %s", b.ID, star, title)
		if b.Title != "" {
			fmt.Fprintf(&sb, "  <%s>", b.URL)
		}
		if len(b.Tags) > 0 {
			fmt.Fprintf(&sb, "  [%s]", strings.Join(b.Tags, ","))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeDir(sb *strings.Builder, name string, count int) {
	fmt.Fprintf(sb, "%-24s %d\n", name+"/", count)
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
