package window

import "github.com/Carmen-Shannon/oxy-life/common"

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial client area size.
//
// Parameters:
//   - size: width and height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(size common.Size) WindowBuilderOption {
	return func(w *engineWindow) {
		w.size = size
	}
}

// WithResizable allows resizing the window by dragging its border. Off by default; the window
// is still resized by the system, for example when it moves to another display.
//
// Parameters:
//   - resizable: true to allow user resizing
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithResizable(resizable bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.resizable = resizable
	}
}
