// Package input translates SDL2 events into the modeller's events, carrying
// the button and modifier mask the trackball expects.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/sketch3d/internal/trackball"
)

// EventType identifies an input event.
type EventType int

// Event types.
const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Event is a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Keycode
	Width  int
	Height int
	X      int
	Y      int
	Button uint8

	// State is the trackball mask: the button bit (down or up) plus the
	// modifier keys held at the time of the event.
	State trackball.State
}

// Input polls SDL and buffers one frame's events.
type Input struct {
	events []Event
}

// New creates an input handler.
func New() *Input {
	return &Input{events: make([]Event, 0, 16)}
}

// Update polls all pending SDL events. It returns true when the window was
// asked to close.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
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
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{
					Type:  EventKeyDown,
					Key:   e.Keysym.Sym,
					State: ModifierState(sdl.Keymod(e.Keysym.Mod)),
				})
			}

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type:  EventMouseMove,
				X:     int(e.X),
				Y:     int(e.Y),
				State: MotionState(e.State) | ModifierState(sdl.GetModState()),
			})

		case *sdl.MouseButtonEvent:
			down := e.Type == sdl.MOUSEBUTTONDOWN
			typ := EventMouseUp
			if down {
				typ = EventMouseDown
			}
			i.events = append(i.events, Event{
				Type:   typ,
				X:      int(e.X),
				Y:      int(e.Y),
				Button: e.Button,
				State:  ButtonState(e.Button, down) | ModifierState(sdl.GetModState()),
			})
		}
	}
	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// ButtonState maps an SDL button to its trackball down or up bit. Buttons the
// trackball does not know map to Silent.
func ButtonState(button uint8, down bool) trackball.State {
	var s trackball.State
	switch button {
	case sdl.BUTTON_LEFT:
		s = trackball.LButtonDown
	case sdl.BUTTON_MIDDLE:
		s = trackball.MButtonDown
	case sdl.BUTTON_RIGHT:
		s = trackball.RButtonDown
	default:
		return trackball.Silent
	}
	if !down {
		s <<= 4
	}
	return s
}

// MotionState maps the SDL held-button mask of a motion event to down bits.
func MotionState(mask uint32) trackball.State {
	var s trackball.State
	if mask&sdl.ButtonLMask() != 0 {
		s |= trackball.LButtonDown
	}
	if mask&sdl.ButtonMMask() != 0 {
		s |= trackball.MButtonDown
	}
	if mask&sdl.ButtonRMask() != 0 {
		s |= trackball.RButtonDown
	}
	return s
}

// ModifierState maps held modifier keys to trackball bits.
func ModifierState(mod sdl.Keymod) trackball.State {
	var s trackball.State
	if mod&sdl.KMOD_ALT != 0 {
		s |= trackball.AltDown
	}
	if mod&sdl.KMOD_CTRL != 0 {
		s |= trackball.CtrlDown
	}
	if mod&sdl.KMOD_SHIFT != 0 {
		s |= trackball.ShiftDown
	}
	return s
}
