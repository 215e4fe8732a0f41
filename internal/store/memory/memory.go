// Package memory provides an in-memory bookmark repository. It backs tests
// and the --memory mode where no Redis is available.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mkrull/vmark/internal/domain"
	"github.com/mkrull/vmark/internal/vfs"
)

// Store keeps bookmarks in a map guarded by a RWMutex.
type Store struct {
	mu     sync.RWMutex
	byID   map[int64]*domain.Bookmark
	nextID int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{byID: make(map[int64]*domain.Bookmark)}
}

// NextID reserves the next bookmark id.
func (s *Store) NextID(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID, nil
}

// Save inserts or replaces a bookmark. Tags are normalized on write.
func (s *Store) Save(ctx context.Context, b *domain.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := b.Clone()
	cp.Tags = domain.NormalizeTags(cp.Tags)
	s.byID[cp.ID] = cp
	if cp.ID > s.nextID {
		s.nextID = cp.ID
	}
	return nil
}

// Delete removes a bookmark; deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
	return nil
}

// ListAll returns every bookmark ordered by id.
func (s *Store) ListAll(ctx context.Context) ([]*domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Bookmark, 0, len(s.byID))
	for _, b := range s.byID {
		out = append(out, b.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID returns a bookmark or vfs.ErrTargetNotFound.
func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", vfs.ErrTargetNotFound, id)
	}
	return b.Clone(), nil
}

// AllTags returns the distinct tag names across all bookmarks, sorted.
func (s *Store) AllTags(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var tags []string
	for _, b := range s.byID {
		for _, t := range b.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// AllDomains returns the distinct derived domains, sorted.
func (s *Store) AllDomains(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var domains []string
	for _, b := range s.byID {
		d := b.Domain()
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		domains = append(domains, d)
	}
	sort.Strings(domains)
	return domains, nil
}

// UpdateTags replaces a bookmark's tag set (normalized).
func (s *Store) UpdateTags(ctx context.Context, id int64, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %d", vfs.ErrTargetNotFound, id)
	}
	b.Tags = domain.NormalizeTags(tags)
	return nil
}

// SetStarred sets the starred flag.
func (s *Store) SetStarred(ctx context.Context, id int64, starred bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %d", vfs.ErrTargetNotFound, id)
	}
	b.Starred = starred
	return nil
}

// SetReachable records the outcome of a reachability probe.
func (s *Store) SetReachable(ctx context.Context, id int64, reachable bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %d", vfs.ErrTargetNotFound, id)
	}
	b.Reachable = &reachable
	return nil
}

// RecordVisit bumps visit_count and stamps last_visited.
func (s *Store) RecordVisit(ctx context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %d", vfs.ErrTargetNotFound, id)
	}
	t := at.UTC()
	b.VisitCount++
	b.LastVisited = &t
	return nil
}
