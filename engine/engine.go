package engine

import (
	"errors"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-life/engine/input"
	"github.com/Carmen-Shannon/oxy-life/engine/logging"
	"github.com/Carmen-Shannon/oxy-life/engine/profiler"
	"github.com/Carmen-Shannon/oxy-life/engine/renderer"
	"github.com/Carmen-Shannon/oxy-life/engine/window"
)

// engine implements the Engine interface.
// Owns the loop state: the window, the renderer and the router, all used from one goroutine.
type engine struct {
	window   window.Window
	renderer renderer.Renderer
	router   *input.Router
	logger   *slog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	// frameLimit stops Run after this many frames; 0 runs until terminated.
	frameLimit uint64
	frames     uint64
}

// Engine is the host loop: it polls window events, routes them and renders one frame per poll.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer drawing into the window.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// Run polls events and renders until a Terminate action, the frame limit or a fatal frame
	// error. Must be called on the goroutine that created the window.
	//
	// Returns:
	//   - error: nil on a normal exit, the fatal frame error otherwise
	Run() error

	// Close releases the renderer and closes the window.
	//
	// Returns:
	//   - error: the window close error, if any
	Close() error
}

var _ Engine = &engine{}

// NewEngine creates an Engine over an open window and a ready renderer.
//
// Parameters:
//   - w: the window to poll
//   - r: the renderer drawing into w
//   - options: functional options
//
// Returns:
//   - Engine: the engine, not yet running
func NewEngine(w window.Window, r renderer.Renderer, options ...EngineBuilderOption) Engine {
	e := &engine{
		window:   w,
		renderer: r,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.Logger()
	}
	if e.router == nil {
		e.router = input.NewRouter()
	}
	if e.profilingEnabled {
		e.profiler = profiler.NewProfiler(e.logger)
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Run() error {
	e.logger.Info("host loop started",
		"size", e.renderer.Size().String(),
		"draw", e.renderer.Plan().Kind.String(),
		"instances", e.renderer.Plan().InstanceCount,
	)
	e.logger.Info("cell simulation is not implemented; the grid is drawn static")

	for {
		for _, ev := range e.window.PollEvents() {
			action := e.router.Route(ev)
			switch action.Kind {
			case input.Terminate:
				e.logger.Info("host loop stopped", "event", ev.String(), "frames", e.frames)
				return nil
			case input.Reconfigure:
				if !e.renderer.Resize(action.Size) {
					e.logger.Debug("resize ignored", "size", action.Size.String())
				}
			}
		}

		outcome := e.renderer.Frame()
		if e.profiler != nil {
			e.profiler.Tick(outcome)
		}
		if outcome == renderer.FrameFatal {
			err := e.renderer.Err()
			if err == nil {
				err = errFatalFrame
			}
			e.logger.Error("host loop aborted", "error", err, "frames", e.frames)
			return err
		}

		e.frames++
		if e.frameLimit > 0 && e.frames >= e.frameLimit {
			e.logger.Info("host loop stopped", "reason", "frame limit", "frames", e.frames)
			return nil
		}
	}
}

var errFatalFrame = errors.New("engine: fatal frame outcome")

func (e *engine) Close() error {
	if e.renderer != nil {
		e.renderer.Release()
		e.renderer = nil
	}
	if e.window != nil {
		err := e.window.Close()
		e.window = nil
		return err
	}
	return nil
}
