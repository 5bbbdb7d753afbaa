package renderer

import (
	"image/color"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// SessionOption is a functional option applied to a Session during construction via NewSession.
type SessionOption func(*Session)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
// Modes the surface does not support fall back to VSync.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - SessionOption: a function that applies the present mode option to a session
func WithPresentMode(mode PresentMode) SessionOption {
	return func(s *Session) {
		s.presentMode = mode
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - SessionOption: a function that applies the force software renderer option to a session
func WithForceSoftwareRenderer(force bool) SessionOption {
	return func(s *Session) {
		s.forceFallback = force
	}
}

// WithPowerPreference sets the adapter power preference. The default is high performance.
//
// Parameters:
//   - pref: the power preference
//
// Returns:
//   - SessionOption: a function that applies the power preference to a session
func WithPowerPreference(pref wgpu.PowerPreference) SessionOption {
	return func(s *Session) {
		s.powerPreference = pref
	}
}

// WithAspect sets the width/height ratio the surface is held to. The default is 1.
//
// Parameters:
//   - aspect: width divided by height; non-positive values mean 1
//
// Returns:
//   - SessionOption: a function that applies the aspect to a session
func WithAspect(aspect float64) SessionOption {
	return func(s *Session) {
		s.aspect = aspect
	}
}

// WithClearColor sets the colour every frame is cleared to. The default is opaque black.
//
// Parameters:
//   - c: the clear colour
//
// Returns:
//   - SessionOption: a function that applies the clear colour to a session
func WithClearColor(c color.Color) SessionOption {
	return func(s *Session) {
		s.clearColor = toWGPUColor(c)
	}
}

func toWGPUColor(c color.Color) wgpu.Color {
	r, g, b, a := c.RGBA()
	return wgpu.Color{
		R: float64(r) / 0xffff,
		G: float64(g) / 0xffff,
		B: float64(b) / 0xffff,
		A: float64(a) / 0xffff,
	}
}

// FrameLoopOption is a functional option applied to a FrameLoop during construction via NewFrameLoop.
type FrameLoopOption func(*FrameLoop)

// WithLogger sets the logger for frame errors. The default is logging.Logger().
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - FrameLoopOption: a function that applies the logger to a frame loop
func WithLogger(l *slog.Logger) FrameLoopOption {
	return func(fl *FrameLoop) {
		fl.logger = l
	}
}
