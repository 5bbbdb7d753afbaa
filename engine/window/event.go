package window

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-life/common"
)

// Event is a window event delivered by Window.PollEvents.
type Event interface {
	fmt.Stringer
	isEvent()
}

// CloseRequested is sent when the user asks the window to close.
type CloseRequested struct{}

// KeyPressed is sent for every key press. Key uses the values in common/key_codes.go.
type KeyPressed struct {
	Key int
}

// Resized is sent when the framebuffer size changes.
type Resized struct {
	Size common.Size
}

// ScaleFactorChanged is sent when the window moves to a display with a different content
// scale. Size is the framebuffer size after the change.
type ScaleFactorChanged struct {
	Scale float32
	Size  common.Size
}

// Other is any event the host does not act on.
type Other struct {
	Name string
}

func (CloseRequested) isEvent()     {}
func (KeyPressed) isEvent()         {}
func (Resized) isEvent()            {}
func (ScaleFactorChanged) isEvent() {}
func (Other) isEvent()              {}

func (CloseRequested) String() string { return "CloseRequested" }

func (e KeyPressed) String() string { return fmt.Sprintf("KeyPressed(%d)", e.Key) }

func (e Resized) String() string { return "Resized(" + e.Size.String() + ")" }

func (e ScaleFactorChanged) String() string {
	return fmt.Sprintf("ScaleFactorChanged(%g, %s)", e.Scale, e.Size)
}

func (e Other) String() string { return "Other(" + e.Name + ")" }

// eventQueue buffers events pushed by platform callbacks until the next poll.
type eventQueue struct {
	events []Event
}

func (q *eventQueue) push(e Event) {
	q.events = append(q.events, e)
}

// drain returns the buffered events in arrival order and empties the queue.
func (q *eventQueue) drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}
