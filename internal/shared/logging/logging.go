// Package logging provides the ambient structured logger used across the
// application. No logging library appears anywhere in the retrieved
// example pack (a grep across every repo in _examples/ turns up only
// fmt.Printf and the bare standard-library log package), so this one
// ambient concern is built directly on log/slog rather than on a
// third-party dependency: slog is the standard library's own leveled,
// structured logger, the natural next step for a codebase that otherwise
// reaches for nothing at all here.
package logging

import (
	"log/slog"
	"os"
	"sync"

	"github.com/shopspring/decimal"
)

var (
	mu      sync.Mutex
	current = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

// SetDefault replaces the package-level logger, e.g. to raise verbosity
// from a CLI flag.
func SetDefault(logger *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	current = logger
}

func logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// Precision logs the achieved rate-solver precision for a scope (an
// instrument symbol or "portfolio") at debug level, per spec.md §7:
// "Successful runs log per-scope precision at debug level."
func Precision(scope string, ratio decimal.Decimal) {
	logger().Debug("emulation precision", "scope", scope, "precision", ratio.String())
}

// Warn and Error forward to the current logger for ambient use outside the
// core (CLI, HTTP surface).
func Warn(msg string, args ...any)  { logger().Warn(msg, args...) }
func Error(msg string, args ...any) { logger().Error(msg, args...) }
func Info(msg string, args ...any)  { logger().Info(msg, args...) }
