// Package scheduler runs background maintenance around the bookmark
// store. The navigation engine never waits on it; results surface only
// through the nullable reachable field.
package scheduler

import (
	"context"
	"net/http"
	"time"

	"github.com/mkrull/vmark/internal/domain"
	"github.com/mkrull/vmark/internal/logger"
)

// ReachStore is the slice of the repository the checker needs.
type ReachStore interface {
	ListAll(ctx context.Context) ([]*domain.Bookmark, error)
	SetReachable(ctx context.Context, id int64, reachable bool) error
}

// ReachabilityChecker periodically probes every bookmark URL with a HEAD
// request and records the outcome.
type ReachabilityChecker struct {
	store    ReachStore
	logger   logger.Logger
	interval time.Duration
	client   *http.Client
	stopCh   chan struct{}
}

// NewReachabilityChecker creates a checker. timeout bounds each probe.
func NewReachabilityChecker(store ReachStore, log logger.Logger, interval, timeout time.Duration) *ReachabilityChecker {
	return &ReachabilityChecker{
		store:    store,
		logger:   log,
		interval: interval,
		client: &http.Client{
			Timeout: timeout,
		},
		stopCh: make(chan struct{}),
	}
}

// Start begins periodic checking. The first sweep runs immediately.
func (c *ReachabilityChecker) Start(ctx context.Context) error {
	if err := c.Sweep(ctx); err != nil {
		c.logger.Warn("initial reachability sweep failed", logger.Error(err))
	}

	ticker := time.NewTicker(c.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := c.Sweep(ctx); err != nil {
					c.logger.Error("reachability sweep failed", logger.Error(err))
				}
			case <-c.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the checker.
func (c *ReachabilityChecker) Stop() {
	close(c.stopCh)
}

// Sweep probes every bookmark once and records the results.
func (c *ReachabilityChecker) Sweep(ctx context.Context) error {
	bookmarks, err := c.store.ListAll(ctx)
	if err != nil {
		return err
	}

	checked, broken := 0, 0
	for _, b := range bookmarks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stopCh:
			return nil
		default:
		}

		ok := c.probe(ctx, b.URL)
		if !ok {
			broken++
		}
		checked++

		if err := c.store.SetReachable(ctx, b.ID, ok); err != nil {
			c.logger.Warn("failed to record reachability",
				logger.Int64("bookmark_id", b.ID),
				logger.Error(err))
		}
	}

	c.logger.Info("reachability sweep completed",
		logger.Int("checked", checked),
		logger.Int("broken", broken))
	return nil
}

// probe treats any HTTP response below 400 as reachable. Transport errors
// and server errors mark the bookmark broken.
func (c *ReachabilityChecker) probe(ctx context.Context, rawURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode < 400
}
