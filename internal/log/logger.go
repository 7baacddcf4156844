// Package log provides structured logging for the funscript library.
package log

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config configures the package-global logger.
type Config struct {
	Level  string    // "debug", "info", "warn", "error"; defaults to "info"
	Output io.Writer // defaults to os.Stderr
}

var (
	mu          sync.RWMutex
	base        zerolog.Logger
	initialized bool
)

// Configure initializes the global logger. Safe to call more than once;
// the last call wins.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()

	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}

	base = zerolog.New(writer).With().
		Timestamp().
		Str("component", "funscript").
		Logger()

	initialized = true
}

func ensureInitialized() {
	mu.RLock()
	if initialized {
		mu.RUnlock()
		return
	}
	mu.RUnlock()
	Configure(Config{})
}

type opIDKey struct{}

// WithOperationID attaches a correlation id to ctx, generating one if op is
// empty. Every public entry point (parse, merge, unmerge, render) should
// derive its logger from the returned context.
func WithOperationID(ctx context.Context, op string) (context.Context, string) {
	if op == "" {
		op = uuid.NewString()
	}
	return context.WithValue(ctx, opIDKey{}, op), op
}

// From returns a logger scoped to ctx's operation id, or the base logger if
// none was attached.
func From(ctx context.Context) *zerolog.Logger {
	ensureInitialized()
	mu.RLock()
	l := base
	mu.RUnlock()

	if id, ok := ctx.Value(opIDKey{}).(string); ok && id != "" {
		l = l.With().Str("op_id", id).Logger()
	}
	return &l
}
