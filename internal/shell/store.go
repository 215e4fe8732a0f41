package shell

import (
	"context"
	"time"

	"github.com/mkrull/vmark/internal/domain"
	"github.com/mkrull/vmark/internal/vfs"
)

// Store is the full repository surface the dispatcher needs: the engine's
// read/navigation contract plus the CRUD verbs. Both the Redis store and
// the in-memory store implement it.
type Store interface {
	vfs.Repository

	NextID(ctx context.Context) (int64, error)
	Save(ctx context.Context, b *domain.Bookmark) error
	Delete(ctx context.Context, id int64) error
	RecordVisit(ctx context.Context, id int64, at time.Time) error
}
