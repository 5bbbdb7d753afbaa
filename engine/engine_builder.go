package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-life/engine/input"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables frame statistics at debug level.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithLogger sets the engine logger. The default is logging.Logger().
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}

// WithRouter replaces the default input router.
//
// Parameters:
//   - router: the router
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRouter(router *input.Router) EngineBuilderOption {
	return func(e *engine) {
		e.router = router
	}
}

// WithFrameLimit stops Run after n frames that were not fatal. Zero means no limit.
//
// Parameters:
//   - n: the number of frames
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(n uint64) EngineBuilderOption {
	return func(e *engine) {
		e.frameLimit = n
	}
}
