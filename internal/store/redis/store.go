// Package redis implements the bookmark repository on Redis. Bookmarks are
// stored as JSON values with a companion set of all IDs and an INCR
// sequence for identity. Entries never expire: this is the primary store,
// not a cache.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mkrull/vmark/internal/domain"
	"github.com/mkrull/vmark/internal/vfs"
)

// Store handles Redis operations for bookmarks.
type Store struct {
	client *goredis.Client
}

// NewStore creates a new Redis store.
func NewStore(client *goredis.Client) *Store {
	return &Store{client: client}
}

// NextID reserves the next bookmark id via the sequence counter.
func (s *Store) NextID(ctx context.Context) (int64, error) {
	id, err := s.client.Incr(ctx, KeySequence).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to advance bookmark sequence: %w", err)
	}
	return id, nil
}

// Save stores a bookmark and registers its id in the all-bookmarks set.
func (s *Store) Save(ctx context.Context, b *domain.Bookmark) error {
	cp := b.Clone()
	cp.Tags = domain.NormalizeTags(cp.Tags)

	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark: %w", err)
	}

	if err := s.client.Set(ctx, BookmarkKey(cp.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save bookmark: %w", err)
	}
	if err := s.client.SAdd(ctx, AllBookmarksKey(), cp.ID).Err(); err != nil {
		return fmt.Errorf("failed to add bookmark to set: %w", err)
	}
	return nil
}

// GetByID retrieves a bookmark, returning vfs.ErrTargetNotFound when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Bookmark, error) {
	data, err := s.client.Get(ctx, BookmarkKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, fmt.Errorf("%w: %d", vfs.ErrTargetNotFound, id)
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	var b domain.Bookmark
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookmark: %w", err)
	}
	return &b, nil
}

// ListAll retrieves every bookmark, ordered by id. Entries whose value has
// gone missing (deleted between SMembers and Get) are skipped.
func (s *Store) ListAll(ctx context.Context) ([]*domain.Bookmark, error) {
	ids, err := s.client.SMembers(ctx, AllBookmarksKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark IDs: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.Bookmark{}, nil
	}

	bookmarks := make([]*domain.Bookmark, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		b, err := s.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, vfs.ErrTargetNotFound) {
				continue
			}
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	sort.Slice(bookmarks, func(i, j int) bool { return bookmarks[i].ID < bookmarks[j].ID })
	return bookmarks, nil
}

// Delete removes a bookmark and its set membership.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.client.Del(ctx, BookmarkKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	if err := s.client.SRem(ctx, AllBookmarksKey(), id).Err(); err != nil {
		return fmt.Errorf("failed to remove bookmark from set: %w", err)
	}
	return nil
}

// AllTags returns the distinct tag names across all bookmarks, sorted.
// Tags are derived from bookmark state, never stored as separate rows, so
// a tag vanishes here as soon as no bookmark holds it.
func (s *Store) AllTags(ctx context.Context) ([]string, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var tags []string
	for _, b := range all {
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
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var domains []string
	for _, b := range all {
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

// UpdateTags rewrites a bookmark's tag set. One logical read-then-write;
// the caller's per-bookmark loop provides rename semantics.
func (s *Store) UpdateTags(ctx context.Context, id int64, tags []string) error {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	b.Tags = domain.NormalizeTags(tags)
	return s.Save(ctx, b)
}

// SetStarred sets the starred flag.
func (s *Store) SetStarred(ctx context.Context, id int64, starred bool) error {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	b.Starred = starred
	return s.Save(ctx, b)
}

// SetReachable records the outcome of a reachability probe.
func (s *Store) SetReachable(ctx context.Context, id int64, reachable bool) error {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	b.Reachable = &reachable
	return s.Save(ctx, b)
}

// RecordVisit bumps visit_count and stamps last_visited.
func (s *Store) RecordVisit(ctx context.Context, id int64, at time.Time) error {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	t := at.UTC()
	b.VisitCount++
	b.LastVisited = &t
	return s.Save(ctx, b)
}

// SaveMany stores multiple bookmarks in one pipeline (bulk import).
func (s *Store) SaveMany(ctx context.Context, bookmarks []*domain.Bookmark) error {
	pipe := s.client.Pipeline()

	for _, b := range bookmarks {
		cp := b.Clone()
		cp.Tags = domain.NormalizeTags(cp.Tags)
		data, err := json.Marshal(cp)
		if err != nil {
			return fmt.Errorf("failed to marshal bookmark %d: %w", cp.ID, err)
		}
		pipe.Set(ctx, BookmarkKey(cp.ID), data, 0)
		pipe.SAdd(ctx, AllBookmarksKey(), cp.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}
	return nil
}
