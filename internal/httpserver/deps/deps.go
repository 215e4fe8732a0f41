package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkrull/vmark/internal/logger"
	"github.com/mkrull/vmark/internal/vfs"
)

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time // for testing, defaults to time.Now
	Store           vfs.Repository   // bookmark repository backing the navigation API
	DefaultActivity vfs.Activity     // activity used for bare /recent listings
	RedisClient     *redis.Client    // nil when running on the in-memory store
}
