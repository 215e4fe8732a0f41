// Package shell implements the command surface over the navigation engine:
// an explicit session holding the current virtual path, the verb
// dispatcher, and the interactive REPL.
package shell

import (
	"context"
	"fmt"
	"time"

	"github.com/mkrull/vmark/internal/logger"
	"github.com/mkrull/vmark/internal/vfs"
)

// Session holds the current virtual path and the collaborators every verb
// needs. There is no ambient state: classification always receives the
// session's path explicitly, and contexts are re-derived from a fresh
// repository read on every command, so a mutation made by one command is
// visible to the next.
type Session struct {
	store      Store
	log        logger.Logger
	classifier *vfs.Classifier
	path       string
	now        func() time.Time
}

// Options tunes a session.
type Options struct {
	// DefaultActivity orders the bare /recent view and the recent verb.
	DefaultActivity vfs.Activity

	// Now supplies the wall clock; defaults to time.Now. Tests pin it.
	Now func() time.Time
}

// NewSession creates a session rooted at "/".
func NewSession(store Store, log logger.Logger, opts Options) *Session {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	act := opts.DefaultActivity
	if act == "" {
		act = vfs.ActivityVisited
	}
	return &Session{
		store: store,
		log:   log,
		classifier: &vfs.Classifier{
			Repo:            store,
			Now:             now,
			DefaultActivity: act,
		},
		path: "/",
		now:  now,
	}
}

// Path returns the current virtual path.
func (s *Session) Path() string { return s.path }

// Chdir navigates to a new virtual path. The destination must classify to
// something other than NotFound; on failure the current path is unchanged.
func (s *Session) Chdir(ctx context.Context, raw string) error {
	target := vfs.Normalize(raw, s.path)
	c, err := s.classifier.Classify(ctx, target)
	if err != nil {
		return fmt.Errorf("cd %s: %w", target, err)
	}
	if c.Kind == vfs.KindNotFound {
		return fmt.Errorf("cd %s: %w", target, vfs.ErrPathNotFound)
	}
	s.path = target
	return nil
}

// context classifies the session's current path.
func (s *Session) context(ctx context.Context) (vfs.Context, error) {
	return s.classifier.Classify(ctx, s.path)
}
