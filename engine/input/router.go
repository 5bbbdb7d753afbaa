// Package input turns window events into host loop actions.
package input

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-life/common"
	"github.com/Carmen-Shannon/oxy-life/engine/logging"
	"github.com/Carmen-Shannon/oxy-life/engine/window"
)

// ActionKind is what the host loop does after an event.
type ActionKind int

const (
	// Continue keeps running.
	Continue ActionKind = iota

	// Reconfigure resizes the surface to Action.Size.
	Reconfigure

	// Terminate stops the host loop with exit status 0.
	Terminate
)

func (k ActionKind) String() string {
	switch k {
	case Continue:
		return "continue"
	case Reconfigure:
		return "reconfigure"
	case Terminate:
		return "terminate"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Action is the result of routing one event. Size is set only for Reconfigure.
type Action struct {
	Kind ActionKind
	Size common.Size
}

// Router maps window events to actions.
type Router struct {
	quitKeys map[int]struct{}
}

// RouterOption is a functional option for configuring a Router.
type RouterOption func(*Router)

// WithQuitKeys adds keys that terminate the loop in addition to Escape.
//
// Parameters:
//   - keys: key codes from common/key_codes.go
//
// Returns:
//   - RouterOption: option function to apply
func WithQuitKeys(keys ...int) RouterOption {
	return func(r *Router) {
		for _, k := range keys {
			r.quitKeys[k] = struct{}{}
		}
	}
}

// NewRouter creates a Router that terminates on close requests and Escape and reconfigures on
// resize and scale changes.
//
// Parameters:
//   - opts: router options
//
// Returns:
//   - *Router: the router
func NewRouter(opts ...RouterOption) *Router {
	r := &Router{quitKeys: map[int]struct{}{common.KeyEscape: {}}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route returns the action for ev.
//
// Parameters:
//   - ev: the window event
//
// Returns:
//   - Action: Terminate, Reconfigure with the new size, or Continue
func (r *Router) Route(ev window.Event) Action {
	switch e := ev.(type) {
	case window.CloseRequested:
		return Action{Kind: Terminate}
	case window.KeyPressed:
		if _, ok := r.quitKeys[e.Key]; ok {
			return Action{Kind: Terminate}
		}
	case window.Resized:
		return Action{Kind: Reconfigure, Size: e.Size}
	case window.ScaleFactorChanged:
		return Action{Kind: Reconfigure, Size: e.Size}
	}
	if ev != nil {
		logging.Logger().Debug("event ignored", "event", ev.String())
	}
	return Action{Kind: Continue}
}
