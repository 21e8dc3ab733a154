// Package cli implements the rnadraw command-line interface.
//
// The commands wrap the drawing pipeline in pkg/pipeline:
//   - draw: lay out, colour and render structures to SVG, PNG, PDF or JSON
//   - layout: print residue coordinates and pair edges as JSON
//   - colors: print the resolved colour of every residue
//   - tree: print or render the helix/loop segment tree
//   - preview: interactive terminal preview of a layout
//   - palettes: list colour schemes and palettes
//   - serve: run the HTTP API
//   - cache, config: inspect and manage local state
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// shared through the CLI struct and also attached to the command context so
// helpers without access to the CLI can reach it via loggerFromContext.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Drew 3 structures (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
