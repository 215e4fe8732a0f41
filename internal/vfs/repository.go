package vfs

import (
	"context"

	"github.com/mkrull/vmark/internal/domain"
)

// Repository is the narrow view of the bookmark store the navigation
// engine consumes. Implementations must return ErrTargetNotFound (wrapped
// or not) from GetByID when the id is absent.
//
// Tags and domains are derived from bookmark state, so a tag stops
// appearing in AllTags as soon as no bookmark holds it.
type Repository interface {
	ListAll(ctx context.Context) ([]*domain.Bookmark, error)
	GetByID(ctx context.Context, id int64) (*domain.Bookmark, error)
	AllTags(ctx context.Context) ([]string, error)
	AllDomains(ctx context.Context) ([]string, error)
	UpdateTags(ctx context.Context, id int64, tags []string) error
	SetStarred(ctx context.Context, id int64, starred bool) error
}
