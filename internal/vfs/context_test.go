package vfs

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mkrull/vmark/internal/domain"
)

// fakeRepo is a minimal in-memory Repository for classifier tests.
type fakeRepo struct {
	bookmarks []*domain.Bookmark
}

func (r *fakeRepo) ListAll(ctx context.Context) ([]*domain.Bookmark, error) {
	return r.bookmarks, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Bookmark, error) {
	for _, b := range r.bookmarks {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrTargetNotFound, id)
}

func (r *fakeRepo) AllTags(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var tags []string
	for _, b := range r.bookmarks {
		for _, t := range b.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags, nil
}

func (r *fakeRepo) AllDomains(ctx context.Context) ([]string, error) { return nil, nil }

func (r *fakeRepo) UpdateTags(ctx context.Context, id int64, tags []string) error {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	b.Tags = domain.NormalizeTags(tags)
	return nil
}

func (r *fakeRepo) SetStarred(ctx context.Context, id int64, starred bool) error {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	b.Starred = starred
	return nil
}

func testNow() time.Time {
	return time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
}

func testClassifier(bms ...*domain.Bookmark) *Classifier {
	return &Classifier{
		Repo:            &fakeRepo{bookmarks: bms},
		Now:             testNow,
		DefaultActivity: ActivityVisited,
	}
}

func TestClassifyKinds(t *testing.T) {
	visited := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	bms := []*domain.Bookmark{
		{ID: 1, URL: "https://go.dev/doc", Added: testNow().AddDate(0, 0, -3), Tags: []string{"a/b"}},
		{ID: 2, URL: "https://example.com/x", Added: testNow().AddDate(0, 0, -1), Tags: []string{"a/c"}, VisitCount: 3, LastVisited: &visited},
		{ID: 3298, URL: "https://example.com/clip", Added: testNow(), Tags: []string{"video"}},
	}
	c := testClassifier(bms...)

	tests := []struct {
		path string
		kind Kind
	}{
		{"/", KindRoot},
		{"/unread", KindCollection},
		{"/popular", KindCollection},
		{"/tags", KindTagSubtree},
		{"/tags/a", KindTagSubtree},
		{"/tags/a/b", KindTagSubtree},
		{"/domains", KindDomain},
		{"/domains/example.com", KindDomain},
		{"/domains/example.com/2", KindBookmark},
		{"/recent", KindTimeActivity},
		{"/recent/today", KindTimePeriod},
		{"/recent/today/visited", KindTimeActivity},
		{"/recent/today/2", KindBookmark},
		{"/bookmarks/1", KindBookmark},
		{"/bookmarks/999", KindNotFound},
		{"/bookmarks", KindNotFound},
		{"/nonsense", KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := c.Classify(context.Background(), tt.path)
			if err != nil {
				t.Fatalf("Classify(%s): %v", tt.path, err)
			}
			if got.Kind != tt.kind {
				t.Errorf("Classify(%s).Kind = %s, want %s", tt.path, got.Kind, tt.kind)
			}
		})
	}
}

func TestClassifyTagSubtree(t *testing.T) {
	bms := []*domain.Bookmark{
		{ID: 1, Tags: []string{"a/b"}},
		{ID: 2, Tags: []string{"a/c"}},
		{ID: 3, Tags: []string{"other"}},
	}
	c := testClassifier(bms...)

	got, err := c.Classify(context.Background(), "/tags/a")
	if err != nil {
		t.Fatal(err)
	}
	if got.TagPrefix != "a" {
		t.Errorf("TagPrefix = %q, want %q", got.TagPrefix, "a")
	}
	if want := []int64{1, 2}; !equalIDs(ids(got.Bookmarks), want) {
		t.Errorf("/tags/a lists %v, want %v", ids(got.Bookmarks), want)
	}

	got, err = c.Classify(context.Background(), "/tags/a/b")
	if err != nil {
		t.Fatal(err)
	}
	if want := []int64{1}; !equalIDs(ids(got.Bookmarks), want) {
		t.Errorf("/tags/a/b lists %v, want %v", ids(got.Bookmarks), want)
	}
}

func TestClassifyBookmarkIDPrecedence(t *testing.T) {
	bms := []*domain.Bookmark{
		{ID: 3298, Tags: []string{"video"}},
	}
	c := testClassifier(bms...)

	got, err := c.Classify(context.Background(), "/tags/video/3298")
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != KindBookmark {
		t.Fatalf("Kind = %s, want bookmark", got.Kind)
	}
	if got.Bookmark.ID != 3298 {
		t.Errorf("resolved id %d, want 3298", got.Bookmark.ID)
	}

	// A numeric segment naming an id outside the subtree stays a subtag.
	got, err = c.Classify(context.Background(), "/tags/video/42")
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != KindTagSubtree {
		t.Errorf("Kind = %s, want tag-subtree", got.Kind)
	}
	if got.TagPrefix != "video/42" {
		t.Errorf("TagPrefix = %q, want %q", got.TagPrefix, "video/42")
	}
	if len(got.Bookmarks) != 0 {
		t.Errorf("expected empty subtree, got %v", ids(got.Bookmarks))
	}
}

func TestClassifyCollectionMembership(t *testing.T) {
	bms := []*domain.Bookmark{
		{ID: 7, VisitCount: 0},
		{ID: 8, VisitCount: 5},
	}
	c := testClassifier(bms...)

	got, _ := c.Classify(context.Background(), "/unread")
	if want := []int64{7}; !equalIDs(ids(got.Bookmarks), want) {
		t.Fatalf("/unread lists %v, want %v", ids(got.Bookmarks), want)
	}

	// External visit mutation; reclassification sees the new state.
	bms[0].VisitCount = 1
	got, _ = c.Classify(context.Background(), "/unread")
	if len(got.Bookmarks) != 0 {
		t.Errorf("/unread still lists %v after visit", ids(got.Bookmarks))
	}

	// Id descent works only inside the filtered set.
	got, _ = c.Classify(context.Background(), "/unread/8")
	if got.Kind != KindCollection {
		t.Errorf("id outside collection should stay a Collection context, got %s", got.Kind)
	}
}

func TestClassifyRecent(t *testing.T) {
	v1 := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	v2 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	bms := []*domain.Bookmark{
		{ID: 1, Added: v2, LastVisited: &v1},
		{ID: 2, Added: v2, LastVisited: &v2},
		{ID: 3, Added: v1},
	}
	c := testClassifier(bms...)

	// Bare /recent: every bookmark, default activity ordering.
	got, err := c.Classify(context.Background(), "/recent")
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != KindTimeActivity || got.Activity != ActivityVisited {
		t.Fatalf("bare /recent = %s/%s", got.Kind, got.Activity)
	}
	if len(got.Bookmarks) != 3 {
		t.Errorf("bare /recent lists %d bookmarks, want 3", len(got.Bookmarks))
	}
	if got.Bookmarks[0].ID != 1 {
		t.Errorf("bare /recent should sort by last_visited desc, got %v", ids(got.Bookmarks))
	}

	// Time-filtered activity cell.
	got, err = c.Classify(context.Background(), "/recent/today/visited")
	if err != nil {
		t.Fatal(err)
	}
	if want := []int64{1}; !equalIDs(ids(got.Bookmarks), want) {
		t.Errorf("/recent/today/visited lists %v, want %v", ids(got.Bookmarks), want)
	}

	// Invalid enum values are errors, not silent NotFound.
	_, err = c.Classify(context.Background(), "/recent/fortnight")
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
	_, err = c.Classify(context.Background(), "/recent/today/opened")
	if !errors.Is(err, ErrInvalidActivity) {
		t.Errorf("expected ErrInvalidActivity, got %v", err)
	}
}

func TestClassifyDeterminism(t *testing.T) {
	visited := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	bms := []*domain.Bookmark{
		{ID: 1, URL: "https://example.com/", Added: visited, LastVisited: &visited, Tags: []string{"a"}},
	}
	c := testClassifier(bms...)

	paths := []string{"/", "/tags/a", "/unread", "/recent/this-week/added", "/bookmarks/1"}
	for _, p := range paths {
		first, err := c.Classify(context.Background(), p)
		if err != nil {
			t.Fatalf("Classify(%s): %v", p, err)
		}
		for i := 0; i < 3; i++ {
			again, err := c.Classify(context.Background(), p)
			if err != nil {
				t.Fatalf("Classify(%s): %v", p, err)
			}
			if again.Kind != first.Kind || len(again.Bookmarks) != len(first.Bookmarks) {
				t.Errorf("Classify(%s) not deterministic: %s/%d vs %s/%d",
					p, first.Kind, len(first.Bookmarks), again.Kind, len(again.Bookmarks))
			}
		}
	}
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
