// Package gamelog provides the structured logging used across the
// simulation core. Every subsystem gets its own named logger so log lines
// can be filtered by component without parsing message text.
package gamelog

import (
	"log/slog"
	"os"
	"sync"
)

var (
	mu   sync.Mutex
	base = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
)

// SetHandler replaces the handler backing every logger returned by For.
// Tests and hosts that want JSON output or a different level call this
// once at startup.
func SetHandler(h slog.Handler) {
	mu.Lock()
	defer mu.Unlock()
	base = slog.New(h)
}

// For returns a logger scoped to the named subsystem, e.g. For("streaming").
func For(subsystem string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return base.With("subsystem", subsystem)
}
