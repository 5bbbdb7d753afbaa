package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how presented frames are delivered to the display.
type PresentMode int

const (
	// PresentModeVSync waits for the vertical blank (Fifo). Supported everywhere.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents immediately and may tear.
	PresentModeUncapped
)

// String returns the config spelling of the mode.
func (m PresentMode) String() string {
	switch m {
	case PresentModeUncapped:
		return "uncapped"
	default:
		return "vsync"
	}
}

// wgpuPresentMode maps a PresentMode to the surface present mode, falling back to Fifo when
// the surface does not list the requested mode.
//
// Parameters:
//   - mode: the requested mode
//   - supported: the present modes reported by the surface capabilities
//
// Returns:
//   - wgpu.PresentMode: the mode to configure
func wgpuPresentMode(mode PresentMode, supported []wgpu.PresentMode) wgpu.PresentMode {
	want := wgpu.PresentModeFifo
	if mode == PresentModeUncapped {
		want = wgpu.PresentModeImmediate
	}
	for _, m := range supported {
		if m == want {
			return want
		}
	}
	return wgpu.PresentModeFifo
}

// surfaceConfigurer applies a SurfaceConfig to the presentation surface.
type surfaceConfigurer interface {
	configure(cfg SurfaceConfig)
}

// bufferUploader creates initialised GPU buffers.
type bufferUploader interface {
	createBuffer(label string, contents []byte, usage wgpu.BufferUsage) (*wgpu.Buffer, error)
}

// FrameDriver performs the GPU side of one frame. A FrameLoop calls AcquireTarget, Record,
// Submit and Present in that order and calls Discard whenever a step fails, so a driver never
// holds a surface texture across frames.
type FrameDriver interface {
	// AcquireTarget acquires the next surface texture and a view of it.
	//
	// Returns:
	//   - error: the surface error, classified with ClassifySurfaceError
	AcquireTarget() error

	// Record encodes the render pass: clear, bind pipeline and buffers, draw.
	//
	// Returns:
	//   - error: an error if the command encoder or command buffer could not be created
	Record() error

	// Submit hands the recorded command buffer to the queue.
	//
	// Returns:
	//   - error: an error if nothing was recorded
	Submit() error

	// Present shows the acquired texture and releases the frame's resources.
	Present()

	// Discard releases whatever the current frame holds without presenting.
	Discard()

	// Recover reapplies the surface configuration at the last known size after the surface was lost.
	Recover()
}
