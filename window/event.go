// SPDX-License-Identifier: Unlicense OR MIT

package window

import (
	"image"
	"sync"

	"github.com/menuet/VRSFML/f32"
)

// Event is the marker interface for window events.
type Event interface {
	ImplementsEvent()
}

// CloseEvent is sent when the user asks the window to close. The window
// stays open until Close is called.
type CloseEvent struct{}

// ResizeEvent is sent when the window size changed.
type ResizeEvent struct {
	Size image.Point
}

// FocusEvent is sent when the window gained or lost input focus.
type FocusEvent struct {
	Focus bool
}

// KeyEvent is sent when a key is pressed or released.
type KeyEvent struct {
	// Name of the key: "A".."Z", "0".."9", or a word like "Escape",
	// "Enter", "Space", "Left".
	Name      string
	Modifiers Modifiers
	State     State
}

// TextEvent carries a typed character, after keyboard layout and
// modifiers are applied.
type TextEvent struct {
	Rune rune
}

// MouseMoveEvent is sent when the cursor moved inside the window.
type MouseMoveEvent struct {
	Position f32.Point
}

// MouseButtonEvent is sent when a mouse button is pressed or released.
type MouseButtonEvent struct {
	Button   MouseButton
	State    State
	Position f32.Point
}

// WheelEvent is sent when the mouse wheel scrolled.
type WheelEvent struct {
	Scroll   f32.Point
	Position f32.Point
}

// Modifiers is a set of active modifier keys.
type Modifiers uint32

const (
	ModCtrl Modifiers = 1 << iota
	ModShift
	ModAlt
	ModSuper
)

// Contain reports whether m contains all of m2.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

// State is the state of a key or button during an event.
type State uint8

const (
	Press State = iota
	Release
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

func (CloseEvent) ImplementsEvent()       {}
func (ResizeEvent) ImplementsEvent()      {}
func (FocusEvent) ImplementsEvent()       {}
func (KeyEvent) ImplementsEvent()         {}
func (TextEvent) ImplementsEvent()        {}
func (MouseMoveEvent) ImplementsEvent()   {}
func (MouseButtonEvent) ImplementsEvent() {}
func (WheelEvent) ImplementsEvent()       {}

// eventQueue buffers translated native events per window. Backends push
// from their event pump; PollEvent and WaitEvent pop.
type eventQueue struct {
	mu     sync.Mutex
	events []Event
}

func (q *eventQueue) push(e Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, e)
}

func (q *eventQueue) pop() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil, false
	}
	e := q.events[0]
	copy(q.events, q.events[1:])
	q.events = q.events[:len(q.events)-1]
	return e, true
}
