// Package version carries vmark build metadata, overridden at release
// time via -ldflags and surfaced by /healthz.
package version

import (
	"runtime"
	"time"
)

var (
	Version   = "dev"                           // ex: v0.1.0
	Commit    = "none"                          // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339) // dev fallback; releases inject the real date
	GoVersion = runtime.Version()
)
