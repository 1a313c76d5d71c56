// Package logging provides the zerolog-based structured logging
// infrastructure shared by the CLI and the calculation engine.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Output format names.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Output destination names.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputFile   = "file"
)

// Config describes how the logger is built.
type Config struct {
	// Level is a zerolog level name (trace, debug, info, warn, error).
	Level string

	// Format selects console (human-readable) or json output.
	Format string

	// Output selects stderr, stdout, or file.
	Output string

	// File is the log file path when Output is "file".
	File string

	// Caller adds the caller file:line to every event.
	Caller bool
}

var (
	globalMu     sync.RWMutex
	globalLogger = zerolog.New(consoleWriter(os.Stderr)).Level(zerolog.InfoLevel).With().Timestamp().Logger()
)

// New builds a logger from the config. Unknown level names default to
// info rather than failing: logging must never block a calculation.
func New(cfg Config) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer
	switch cfg.Output {
	case OutputStdout:
		out = os.Stdout
	case OutputFile:
		f, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if openErr != nil {
			return zerolog.Nop(), fmt.Errorf("opening log file %s: %w", cfg.File, openErr)
		}
		out = f
	default:
		out = os.Stderr
	}

	if cfg.Format == FormatConsole {
		out = consoleWriter(out)
	}

	builder := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Caller {
		builder = builder.Caller()
	}

	return builder.Logger(), nil
}

// SetGlobal replaces the process-wide fallback logger returned by
// FromContext when the context carries none.
func SetGlobal(logger zerolog.Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// Global returns the process-wide fallback logger.
func Global() zerolog.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// WithContext attaches a logger to the context.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger attached to the context, falling back
// to the global logger when none is present.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
			return *l
		}
	}
	return Global()
}

// consoleWriter wraps a writer in zerolog's human-readable console form.
func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
}
