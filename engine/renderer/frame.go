package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Carmen-Shannon/oxy-life/engine/logging"
)

var (
	// ErrSurfaceLost reports that the surface must be reconfigured before it can be used again.
	ErrSurfaceLost = errors.New("renderer: surface lost")

	// ErrSurfaceOutdated reports that the surface no longer matches the window.
	ErrSurfaceOutdated = errors.New("renderer: surface outdated")

	// ErrSurfaceTimeout reports that no surface image became available in time.
	ErrSurfaceTimeout = errors.New("renderer: surface acquire timed out")

	// ErrOutOfMemory is the fatal frame error. The host exits with status 1.
	ErrOutOfMemory = errors.New("renderer: out of memory")
)

// SurfaceErrorKind classifies errors returned while acquiring a surface texture.
type SurfaceErrorKind int

const (
	// SurfaceErrorNone means there was no error.
	SurfaceErrorNone SurfaceErrorKind = iota

	// SurfaceErrorLost means the surface must be reconfigured.
	SurfaceErrorLost

	// SurfaceErrorOutOfMemory means the device ran out of memory.
	SurfaceErrorOutOfMemory

	// SurfaceErrorOutdated means the surface changed under the swapchain.
	SurfaceErrorOutdated

	// SurfaceErrorTimeout means acquisition timed out.
	SurfaceErrorTimeout

	// SurfaceErrorOther is any error not recognised above.
	SurfaceErrorOther
)

func (k SurfaceErrorKind) String() string {
	switch k {
	case SurfaceErrorNone:
		return "none"
	case SurfaceErrorLost:
		return "lost"
	case SurfaceErrorOutOfMemory:
		return "out of memory"
	case SurfaceErrorOutdated:
		return "outdated"
	case SurfaceErrorTimeout:
		return "timeout"
	default:
		return "other"
	}
}

// ClassifySurfaceError maps an acquire error to its kind. The package sentinels are matched
// with errors.Is, and wgpu status errors by their status name.
//
// Parameters:
//   - err: the error from acquiring the surface texture
//
// Returns:
//   - SurfaceErrorKind: the classification
func ClassifySurfaceError(err error) SurfaceErrorKind {
	switch {
	case err == nil:
		return SurfaceErrorNone
	case errors.Is(err, ErrOutOfMemory):
		return SurfaceErrorOutOfMemory
	case errors.Is(err, ErrSurfaceLost):
		return SurfaceErrorLost
	case errors.Is(err, ErrSurfaceOutdated):
		return SurfaceErrorOutdated
	case errors.Is(err, ErrSurfaceTimeout):
		return SurfaceErrorTimeout
	}

	status := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(err.Error()))
	switch {
	case strings.Contains(status, "outofmemory"):
		return SurfaceErrorOutOfMemory
	case strings.Contains(status, "lost"):
		return SurfaceErrorLost
	case strings.Contains(status, "outdated"):
		return SurfaceErrorOutdated
	case strings.Contains(status, "timeout"), strings.Contains(status, "timedout"):
		return SurfaceErrorTimeout
	default:
		return SurfaceErrorOther
	}
}

// FrameOutcome is the result of one FrameLoop.Frame call.
type FrameOutcome int

const (
	// FramePresented means the frame was drawn and presented.
	FramePresented FrameOutcome = iota

	// FrameRecovered means the surface was lost and has been reconfigured; nothing was drawn.
	FrameRecovered

	// FrameSkipped means a transient error dropped the frame.
	FrameSkipped

	// FrameFatal means the loop hit an unrecoverable error. See FrameLoop.Err.
	FrameFatal
)

func (o FrameOutcome) String() string {
	switch o {
	case FramePresented:
		return "presented"
	case FrameRecovered:
		return "recovered"
	case FrameSkipped:
		return "skipped"
	case FrameFatal:
		return "fatal"
	default:
		return fmt.Sprintf("FrameOutcome(%d)", int(o))
	}
}

// FrameLoop runs the acquire, record, submit, present sequence through a FrameDriver and
// applies the surface error recovery rules. After a fatal outcome it records no further frames.
type FrameLoop struct {
	driver FrameDriver
	logger *slog.Logger

	fatal     error
	presented uint64
}

// NewFrameLoop creates a FrameLoop over driver.
//
// Parameters:
//   - driver: the GPU frame driver
//   - opts: frame loop options
//
// Returns:
//   - *FrameLoop: the loop
func NewFrameLoop(driver FrameDriver, opts ...FrameLoopOption) *FrameLoop {
	l := &FrameLoop{driver: driver}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logging.Logger()
	}
	return l
}

// Frame renders one frame.
//
// Returns:
//   - FrameOutcome: what happened to the frame
func (l *FrameLoop) Frame() FrameOutcome {
	if l.fatal != nil {
		return FrameFatal
	}

	if err := l.driver.AcquireTarget(); err != nil {
		l.driver.Discard()
		switch kind := ClassifySurfaceError(err); kind {
		case SurfaceErrorLost:
			l.driver.Recover()
			l.logger.Info("surface lost, reconfigured", "error", err)
			return FrameRecovered
		case SurfaceErrorOutOfMemory:
			l.fatal = fmt.Errorf("%w: %w", ErrOutOfMemory, err)
			l.logger.Error("out of memory, stopping", "error", err)
			return FrameFatal
		default:
			l.logger.Warn("frame skipped", "kind", kind.String(), "error", err)
			return FrameSkipped
		}
	}

	if err := l.driver.Record(); err != nil {
		l.driver.Discard()
		l.logger.Warn("frame skipped", "stage", "record", "error", err)
		return FrameSkipped
	}
	if err := l.driver.Submit(); err != nil {
		l.driver.Discard()
		l.logger.Warn("frame skipped", "stage", "submit", "error", err)
		return FrameSkipped
	}
	l.driver.Present()
	l.presented++
	return FramePresented
}

// Err returns the fatal error, or nil while the loop can still render.
func (l *FrameLoop) Err() error {
	return l.fatal
}

// Presented returns the number of frames presented so far.
func (l *FrameLoop) Presented() uint64 {
	return l.presented
}
