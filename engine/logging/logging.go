// Package logging holds the process-wide structured logger shared by the engine packages.
// Nothing is logged until SetLogger installs a real logger.
package logging

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
)

// nopHandler discards every record. Enabled returns false so callers skip formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger installs l as the engine logger. Passing nil restores the silent default.
//
// Levels used by the engine:
//   - slog.LevelDebug: per-interval frame statistics, pipeline and buffer details
//   - slog.LevelInfo: lifecycle events (adapter selected, surface reconfigured, recovery)
//   - slog.LevelWarn: skipped frames and other non-fatal surface errors
//   - slog.LevelError: fatal conditions right before the loop stops
//
// Parameters:
//   - l: the logger to install, or nil
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current engine logger. Safe for concurrent use.
//
// Returns:
//   - *slog.Logger: the installed logger, never nil
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// NewRunID returns a random identifier used to tag every record of one process run.
//
// Returns:
//   - string: a UUIDv4 string
func NewRunID() string {
	return uuid.NewString()
}

// NewTextLogger builds a text logger writing to w, tagged with the given run id.
//
// Parameters:
//   - w: destination of the log output (typically os.Stderr)
//   - debug: when true the Debug level is enabled, otherwise Info
//   - runID: value of the "session" attribute attached to every record
//
// Returns:
//   - *slog.Logger: the configured logger
func NewTextLogger(w io.Writer, debug bool, runID string) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).With("session", runID)
}
