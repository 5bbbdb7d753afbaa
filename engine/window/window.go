package window

import (
	"github.com/Carmen-Shannon/oxy-life/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides a platform window and the events it receives.
type Window interface {
	// PollEvents processes pending platform events without blocking and returns them in
	// arrival order.
	//
	// Returns:
	//   - []Event: the events received since the last poll
	PollEvents() []Event

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Size returns the current framebuffer size in pixels.
	//
	// Returns:
	//   - common.Size: the framebuffer size
	Size() common.Size

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window was never opened
	Close() error
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// size is the requested size, then the current framebuffer size.
	size common.Size

	// resizable allows resizing by dragging the window border.
	resizable bool

	queue eventQueue

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow *glfwWindow
}

var _ Window = &engineWindow{}

// Defaults of a window built without options.
const (
	DefaultTitle  = "WGPU Conway's Game of life"
	DefaultWidth  = 500
	DefaultHeight = 500
)

// newEngineWindow applies options over the defaults without opening a platform window.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title: DefaultTitle,
		size:  common.Size{Width: DefaultWidth, Height: DefaultHeight},
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// NewWindow opens a window with the specified options.
// Applies default values first, then each option in order. Must be called from the main goroutine.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
//   - error: an error if GLFW could not be initialised or the window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *engineWindow) PollEvents() []Event {
	platformProcessMessages(w)
	return w.queue.drain()
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) Size() common.Size {
	return w.size
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}
