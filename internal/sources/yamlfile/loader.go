// Package yamlfile imports and exports bookmarks as flat YAML files.
package yamlfile

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mkrull/vmark/internal/domain"
)

// timeLayouts are accepted on import, tried in order. Layouts without a
// zone are parsed as UTC.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Load reads a YAML bookmark file into domain bookmarks. IDs are not part
// of the file; the caller assigns them from the repository sequence.
// Entries without a URL are skipped.
func Load(path string) ([]*domain.Bookmark, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmarks file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks yaml: %w", err)
	}

	now := time.Now().UTC()
	bookmarks := make([]*domain.Bookmark, 0, len(f.Bookmarks))
	for i, e := range f.Bookmarks {
		if e.URL == "" {
			continue
		}

		added := now
		if e.Added != "" {
			t, err := parseTime(e.Added)
			if err != nil {
				return nil, fmt.Errorf("entry %d: bad added timestamp: %w", i, err)
			}
			added = t
		}

		b := &domain.Bookmark{
			URL:         e.URL,
			Title:       e.Title,
			Description: e.Description,
			Tags:        domain.NormalizeTags(e.Tags),
			Added:       added,
			VisitCount:  e.VisitCount,
			Starred:     e.Starred,
		}
		if e.LastVisited != "" {
			t, err := parseTime(e.LastVisited)
			if err != nil {
				return nil, fmt.Errorf("entry %d: bad last_visited timestamp: %w", i, err)
			}
			b.LastVisited = &t
		}
		bookmarks = append(bookmarks, b)
	}

	return bookmarks, nil
}

// Export writes bookmarks to a YAML file in the import format.
func Export(path string, bookmarks []*domain.Bookmark) error {
	f := File{Bookmarks: make([]Entry, 0, len(bookmarks))}
	for _, b := range bookmarks {
		e := Entry{
			URL:         b.URL,
			Title:       b.Title,
			Description: b.Description,
			Tags:        b.Tags,
			Added:       b.Added.UTC().Format(time.RFC3339),
			VisitCount:  b.VisitCount,
			Starred:     b.Starred,
		}
		if b.LastVisited != nil {
			e.LastVisited = b.LastVisited.UTC().Format(time.RFC3339)
		}
		f.Bookmarks = append(f.Bookmarks, e)
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmarks: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write bookmarks file: %w", err)
	}
	return nil
}

// parseTime parses a stored timestamp, treating zoneless values as UTC.
func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
