package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// RecentDefaultActivity orders the bare /recent view and the recent
	// verb. The default has changed across versions of the product, so it
	// is configuration, never a hard-coded literal at call sites.
	RecentDefaultActivity string // "visited" | "added" | "starred"

	HistoryFile string // REPL history path ("" = no history)
	UseMemory   bool   // true => in-memory store instead of Redis

	// HTTP API (vmark serve)
	ListenPort      string        // ex: ":7779"
	ShutdownTimeout time.Duration // ex: 5s

	// Reachability checker (vmark serve)
	ReachInterval time.Duration // interval between sweeps (0 = disabled)
	ReachTimeout  time.Duration // per-URL probe timeout

	// Redis
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries
	RedisWarnThreshold  int           // warn after this many attempts
}

func Load() *Config {
	return &Config{
		LogLevel:  getenv("VMARK_LOG_LEVEL", "warn"),
		PrettyLog: mustBool("VMARK_PRETTY_LOG", true),

		RecentDefaultActivity: getenv("VMARK_RECENT_DEFAULT_ACTIVITY", "visited"),

		HistoryFile: getenv("VMARK_HISTORY_FILE", defaultHistoryFile()),
		UseMemory:   mustBool("VMARK_MEMORY", false),

		ListenPort:      getenv("VMARK_LISTEN_PORT", "127.0.0.1:7779"),
		ShutdownTimeout: mustDuration("VMARK_SHUTDOWN_TIMEOUT", 5*time.Second),

		ReachInterval: mustDuration("VMARK_REACH_INTERVAL", 6*time.Hour),
		ReachTimeout:  mustDuration("VMARK_REACH_TIMEOUT", 5*time.Second),

		RedisAddr:           getenv("VMARK_REDIS_ADDR", "localhost:6379"),
		RedisUser:           getenv("VMARK_REDIS_USERNAME", ""),
		RedisPassword:       getenv("VMARK_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("VMARK_REDIS_DB", 0),
		RedisDT:             mustDuration("VMARK_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("VMARK_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("VMARK_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("VMARK_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("VMARK_REDIS_PING_TIMEOUT", 2*time.Second),
		RedisPoolSize:       getenvInt("VMARK_REDIS_POOL_SIZE", 5),
		RedisConnectTimeout: mustDuration("VMARK_REDIS_CONNECT_TIMEOUT", 15*time.Second),
		RedisRetryInterval:  mustDuration("VMARK_REDIS_RETRY_INTERVAL", 1*time.Second),
		RedisWarnThreshold:  getenvInt("VMARK_REDIS_WARN_THRESHOLD", 3),
	}
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vmark_history")
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
