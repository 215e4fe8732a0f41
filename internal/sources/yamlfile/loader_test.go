package yamlfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkrull/vmark/internal/domain"
)

const sampleYAML = `bookmarks:
  - url: https://go.dev/doc
    title: Go docs
    tags: [go, docs]
    added: "2024-06-01T10:00:00Z"
    last_visited: "2024-06-02 08:30:00"
    visit_count: 4
    starred: true
  - url: https://example.com/paper.pdf
    added: "2024-01-15"
  - title: no url, skipped
`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	bms, err := Load(writeSample(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	if len(bms) != 2 {
		t.Fatalf("loaded %d bookmarks, want 2 (url-less entry skipped)", len(bms))
	}

	b := bms[0]
	if b.Title != "Go docs" || !b.Starred || b.VisitCount != 4 {
		t.Errorf("first bookmark = %+v", b)
	}
	if len(b.Tags) != 2 {
		t.Errorf("Tags = %v", b.Tags)
	}
	wantAdded := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	if !b.Added.Equal(wantAdded) {
		t.Errorf("Added = %v, want %v", b.Added, wantAdded)
	}
	// Zoneless timestamp parsed as UTC.
	wantVisited := time.Date(2024, 6, 2, 8, 30, 0, 0, time.UTC)
	if b.LastVisited == nil || !b.LastVisited.Equal(wantVisited) {
		t.Errorf("LastVisited = %v, want %v", b.LastVisited, wantVisited)
	}

	// Date-only form.
	wantDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !bms[1].Added.Equal(wantDate) {
		t.Errorf("second Added = %v, want %v", bms[1].Added, wantDate)
	}
}

func TestLoadRejectsBadTimestamp(t *testing.T) {
	path := writeSample(t, "bookmarks:\n  - url: https://x.example/\n    added: sometime\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unparseable timestamp")
	}
}

func TestExportRoundTrip(t *testing.T) {
	visited := time.Date(2024, 6, 2, 8, 30, 0, 0, time.UTC)
	in := []*domain.Bookmark{
		{
			ID:          1,
			URL:         "https://go.dev/doc",
			Title:       "Go docs",
			Tags:        []string{"docs", "go"},
			Added:       time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			LastVisited: &visited,
			VisitCount:  4,
			Starred:     true,
		},
	}

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := Export(path, in); err != nil {
		t.Fatal(err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("round trip lost bookmarks: %d", len(out))
	}
	got := out[0]
	if got.URL != in[0].URL || got.Title != in[0].Title || got.VisitCount != 4 || !got.Starred {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.Added.Equal(in[0].Added) {
		t.Errorf("Added = %v, want %v", got.Added, in[0].Added)
	}
	if got.LastVisited == nil || !got.LastVisited.Equal(visited) {
		t.Errorf("LastVisited = %v, want %v", got.LastVisited, visited)
	}
}
