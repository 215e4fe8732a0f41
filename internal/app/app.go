package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mkrull/vmark/internal/config"
	"github.com/mkrull/vmark/internal/httpserver"
	"github.com/mkrull/vmark/internal/httpserver/deps"
	"github.com/mkrull/vmark/internal/logger"
	"github.com/mkrull/vmark/internal/redis"
	"github.com/mkrull/vmark/internal/scheduler"
	"github.com/mkrull/vmark/internal/shell"
	"github.com/mkrull/vmark/internal/sources/yamlfile"
	"github.com/mkrull/vmark/internal/store/memory"
	redisstore "github.com/mkrull/vmark/internal/store/redis"
	"github.com/mkrull/vmark/internal/version"
	"github.com/mkrull/vmark/internal/vfs"
)

// storeBackend is what every persistence backend must offer: the shell's
// full surface plus reachability writes for the background checker.
type storeBackend interface {
	shell.Store
	SetReachable(ctx context.Context, id int64, reachable bool) error
}

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	store       storeBackend
	redisClient *goredis.Client
}

// New loads configuration and connects the chosen store. useMemory forces
// the in-memory store regardless of VMARK_MEMORY.
func New(useMemory bool) (*App, error) {
	cfg := config.Load()
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	a := &App{cfg: cfg, logger: loggerClient}

	if useMemory || cfg.UseMemory {
		a.store = memory.NewStore()
		loggerClient.Info("using in-memory store (bookmarks are not persisted)")
		return a, nil
	}

	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	loggerClient.Info("Redis initialized successfully")

	a.redisClient = redisClient
	a.store = redisstore.NewStore(redisClient)
	return a, nil
}

// Close releases backend connections.
func (a *App) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		}
	}
	_ = a.logger.Sync()
}

func (a *App) defaultActivity() vfs.Activity {
	act, err := vfs.ParseActivity(a.cfg.RecentDefaultActivity)
	if err != nil {
		a.logger.Warnf("invalid VMARK_RECENT_DEFAULT_ACTIVITY %q, using visited", a.cfg.RecentDefaultActivity)
		return vfs.ActivityVisited
	}
	return act
}

func (a *App) newSession() *shell.Session {
	return shell.NewSession(a.store, a.logger, shell.Options{
		DefaultActivity: a.defaultActivity(),
	})
}

// RunREPL starts the interactive shell.
func (a *App) RunREPL(ctx context.Context) error {
	repl := shell.NewREPL(a.newSession(), a.logger, a.cfg.HistoryFile)
	return repl.Run(ctx)
}

// RunCommand evaluates a single command line and prints its output.
func (a *App) RunCommand(ctx context.Context, line string) error {
	out, err := a.newSession().Eval(ctx, line)
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Print(out)
	}
	return nil
}

// RunImport loads a YAML bookmark file into the store, assigning fresh ids.
func (a *App) RunImport(ctx context.Context, path string) error {
	bookmarks, err := yamlfile.Load(path)
	if err != nil {
		return err
	}
	for _, b := range bookmarks {
		id, err := a.store.NextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to allocate bookmark id: %w", err)
		}
		b.ID = id
		if err := a.store.Save(ctx, b); err != nil {
			return fmt.Errorf("failed to save bookmark %d: %w", id, err)
		}
	}
	a.logger.Infof("imported %d bookmarks from %s", len(bookmarks), path)
	fmt.Printf("imported %d bookmarks\n", len(bookmarks))
	return nil
}

// RunExport writes every stored bookmark to a YAML file.
func (a *App) RunExport(ctx context.Context, path string) error {
	bookmarks, err := a.store.ListAll(ctx)
	if err != nil {
		return err
	}
	if err := yamlfile.Export(path, bookmarks); err != nil {
		return err
	}
	fmt.Printf("exported %d bookmarks to %s\n", len(bookmarks), path)
	return nil
}

// RunServe starts the read-only HTTP API and the reachability checker, and
// blocks until a signal or a server error.
func (a *App) RunServe() error {
	a.logger.Infof("Starting vmark %s on %s (commit=%s, built=%s, go=%s)",
		version.Version, a.cfg.ListenPort, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := deps.Deps{
		Logger:          a.logger,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		Store:           a.store,
		DefaultActivity: a.defaultActivity(),
		RedisClient:     a.redisClient,
	}

	server := httpserver.New(a.cfg, a.logger, d)

	var checker *scheduler.ReachabilityChecker
	if a.cfg.ReachInterval > 0 {
		checker = scheduler.NewReachabilityChecker(a.store, a.logger, a.cfg.ReachInterval, a.cfg.ReachTimeout)
		if err := checker.Start(ctx); err != nil {
			return fmt.Errorf("failed to start reachability checker: %w", err)
		}
		a.logger.Info("reachability checker started",
			logger.Duration("interval", a.cfg.ReachInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if checker != nil {
		checker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("vmark stopped cleanly")
	return nil
}
