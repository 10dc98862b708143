// Package cli implements the stackchart command-line interface.
//
// The commands turn a dataset file into chart artifacts, either in one
// step or by stages, and run the HTTP rendering service. The CLI is built
// using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - render: Lay out a dataset and write SVG, PNG, PDF or JSON files
//   - layout: Write the JSON render model of a dataset
//   - inspect: Browse the points of a line chart in the terminal
//   - serve: Run the HTTP rendering service
//   - cache: Manage the local dataset and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Configuration
//
// Every command accepts --config with a TOML file (see package config).
// Flags given on the command line override the file.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. Timestamps read "15:04:05.00".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// startTimer returns a func that logs msg at info level with the time
// elapsed since startTimer, rounded to the millisecond, after keyvals.
func startTimer(l *log.Logger, msg string) func(keyvals ...any) {
	start := time.Now()
	return func(keyvals ...any) {
		l.Info(msg, append(keyvals, "elapsed", time.Since(start).Round(time.Millisecond))...)
	}
}

type loggerKey struct{}

// withLogger attaches l to ctx.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
