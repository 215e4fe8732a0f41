package vfs

import (
	"errors"
	"fmt"
)

// Local, recoverable navigation errors. The shell reports these and keeps
// running; only a dead repository connection is fatal to the session.
var (
	ErrPathNotFound    = errors.New("path not found")
	ErrNoActiveTarget  = errors.New("no active bookmark")
	ErrTargetNotFound  = errors.New("bookmark not found")
	ErrTagNotFound     = errors.New("tag not found")
	ErrFieldNotFound   = errors.New("field not found")
	ErrInvalidPeriod   = errors.New("invalid period")
	ErrInvalidActivity = errors.New("invalid activity")
)

// PartialRenameError reports a tag rename that failed partway through the
// per-bookmark loop. Updated counts the bookmarks already rewritten; since
// the rewrite is a set union, re-running the rename is a no-op for those
// and the operation is safe to retry.
type PartialRenameError struct {
	Old     string
	New     string
	Updated int
	Total   int
	Cause   error
}

func (e *PartialRenameError) Error() string {
	return fmt.Sprintf("rename %q -> %q failed after %d of %d bookmarks: %v",
		e.Old, e.New, e.Updated, e.Total, e.Cause)
}

func (e *PartialRenameError) Unwrap() error { return e.Cause }
