// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	// Relative mouse motion in pixels
	DX, DY int
}

// Source yields raw SDL events. It is sdl.PollEvent in production.
type Source func() sdl.Event

// KeyState reports whether a scancode is held down.
type KeyState func(sdl.Scancode) bool

// Input drains the event queue once per frame.
type Input struct {
	poll   Source
	keys   KeyState
	events []Event
}

// New creates an input handler reading from SDL.
func New() *Input {
	return NewWithSource(sdl.PollEvent, sdlKeyState)
}

// NewWithSource creates an input handler with custom event and
// keyboard sources.
func NewWithSource(poll Source, keys KeyState) *Input {
	return &Input{
		poll:   poll,
		keys:   keys,
		events: make([]Event, 0, 16),
	}
}

func sdlKeyState(sc sdl.Scancode) bool {
	state := sdl.GetKeyboardState()
	return int(sc) < len(state) && state[sc] != 0
}

// Update drains all pending events. Returns true when the application
// should quit: a window close or the Escape key.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := i.poll(); event != nil; event = i.poll() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			switch {
			case e.Type == sdl.KEYDOWN && e.Repeat == 0:
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
				if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
					quit = true
				}
			case e.Type == sdl.KEYUP:
				i.events = append(i.events, Event{Type: EventKeyUp, Key: e.Keysym.Scancode})
			}

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type: EventMouseMove,
				DX:   int(e.XRel),
				DY:   int(e.YRel),
			})
		}
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a key went down this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsKeyDown checks if a key is currently held.
func (i *Input) IsKeyDown(scancode sdl.Scancode) bool {
	return i.keys(scancode)
}

// MouseDelta sums relative mouse motion over this frame.
func (i *Input) MouseDelta() (dx, dy int) {
	for _, e := range i.events {
		if e.Type == EventMouseMove {
			dx += e.DX
			dy += e.DY
		}
	}
	return dx, dy
}

// Resized returns the last resize this frame, if any.
func (i *Input) Resized() (width, height int, ok bool) {
	for _, e := range i.events {
		if e.Type == EventWindowResize {
			width, height, ok = e.Width, e.Height, true
		}
	}
	return width, height, ok
}
