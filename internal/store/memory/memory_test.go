package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mkrull/vmark/internal/domain"
	"github.com/mkrull/vmark/internal/vfs"
)

func TestSaveAndGet(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	id, err := s.NextID(ctx)
	if err != nil {
		t.Fatal(err)
	}
	b := &domain.Bookmark{
		ID:    id,
		URL:   "https://example.com/a",
		Title: "A",
		Added: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Tags:  []string{"b", "a", "a"},
	}
	if err := s.Save(ctx, b); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetByID(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.URL != b.URL {
		t.Errorf("URL = %q, want %q", got.URL, b.URL)
	}
	// Tags normalized: deduplicated and sorted.
	if len(got.Tags) != 2 || got.Tags[0] != "a" || got.Tags[1] != "b" {
		t.Errorf("Tags = %v, want [a b]", got.Tags)
	}

	// Reads return copies; mutating them must not touch the store.
	got.Title = "mutated"
	again, _ := s.GetByID(ctx, id)
	if again.Title != "A" {
		t.Error("GetByID must return a copy, not store-owned state")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	s := NewStore()
	_, err := s.GetByID(context.Background(), 99)
	if !errors.Is(err, vfs.ErrTargetNotFound) {
		t.Errorf("expected ErrTargetNotFound, got %v", err)
	}
}

func TestAllTagsAndDomains(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	seed := []*domain.Bookmark{
		{ID: 1, URL: "https://a.example.com/", Tags: []string{"z", "m"}},
		{ID: 2, URL: "https://b.example.com/", Tags: []string{"m"}},
		{ID: 3, URL: "https://a.example.com/other"},
	}
	for _, b := range seed {
		if err := s.Save(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	tags, err := s.AllTags(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tags) != 2 || tags[0] != "m" || tags[1] != "z" {
		t.Errorf("AllTags = %v, want [m z]", tags)
	}

	domains, err := s.AllDomains(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(domains) != 2 || domains[0] != "a.example.com" || domains[1] != "b.example.com" {
		t.Errorf("AllDomains = %v", domains)
	}
}

func TestTagDisappearsWhenUnheld(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_ = s.Save(ctx, &domain.Bookmark{ID: 1, URL: "https://x.example/", Tags: []string{"js"}})

	if err := s.UpdateTags(ctx, 1, []string{"javascript"}); err != nil {
		t.Fatal(err)
	}
	tags, _ := s.AllTags(ctx)
	for _, tag := range tags {
		if tag == "js" {
			t.Error("js should no longer appear in AllTags")
		}
	}
}

func TestRecordVisit(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_ = s.Save(ctx, &domain.Bookmark{ID: 1, URL: "https://x.example/"})

	at := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	if err := s.RecordVisit(ctx, 1, at); err != nil {
		t.Fatal(err)
	}
	b, _ := s.GetByID(ctx, 1)
	if b.VisitCount != 1 {
		t.Errorf("VisitCount = %d, want 1", b.VisitCount)
	}
	if b.LastVisited == nil || !b.LastVisited.Equal(at) {
		t.Errorf("LastVisited = %v, want %v", b.LastVisited, at)
	}
}

func TestNextIDAdvancesPastSavedIDs(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_ = s.Save(ctx, &domain.Bookmark{ID: 41, URL: "https://x.example/"})

	id, err := s.NextID(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if id != 42 {
		t.Errorf("NextID = %d, want 42", id)
	}
}
