package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Theoffs06/godot-planets/internal/locomotion"
)

// Event types surfaced to the app loop.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventToggleMode      // switch Fly/Walk
	EventToggleCollision // show/hide collision wireframe
	EventToggleCamera    // first-person vs orbit inspection
	EventRegenerate      // rebuild the planet with a fresh seed
)

// Event is one processed input event.
type Event struct {
	Type   EventType
	Width  int
	Height int
}

// Input polls SDL events, accumulates relative mouse motion and wheel
// scroll, and samples the held movement keys. Jump is edge-triggered: a
// Space press is latched into a one-shot flag that the next Sample consumes,
// so holding the key on the ground fires exactly one jump.
type Input struct {
	events           []Event
	mouseDX, mouseDY float32
	wheelDY          float32
	jumpQueued       bool
	captured         bool
}

// NewInput creates the input handler with the mouse captured for look
// control.
func NewInput() *Input {
	sdl.SetRelativeMouseMode(true)
	return &Input{
		events:   make([]Event, 0, 16),
		captured: true,
	}
}

// Update polls pending SDL events. It returns true when the app should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.mouseDX, i.mouseDY = 0, 0
	i.wheelDY = 0

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.processEvent(event) {
			return true
		}
	}

	return false
}

// processEvent folds one SDL event into the handler state. It returns true
// on a quit request.
func (i *Input) processEvent(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			break
		}
		switch e.Keysym.Scancode {
		case sdl.SCANCODE_ESCAPE:
			i.events = append(i.events, Event{Type: EventQuit})
			return true
		case sdl.SCANCODE_SPACE:
			i.jumpQueued = true
		case sdl.SCANCODE_F:
			i.events = append(i.events, Event{Type: EventToggleMode})
		case sdl.SCANCODE_C:
			i.events = append(i.events, Event{Type: EventToggleCollision})
		case sdl.SCANCODE_TAB:
			i.events = append(i.events, Event{Type: EventToggleCamera})
		case sdl.SCANCODE_R:
			i.events = append(i.events, Event{Type: EventRegenerate})
		case sdl.SCANCODE_GRAVE:
			// Release or recapture the mouse.
			i.captured = !i.captured
			sdl.SetRelativeMouseMode(i.captured)
		}

	case *sdl.MouseMotionEvent:
		if i.captured {
			i.mouseDX += float32(e.XRel)
			i.mouseDY += float32(e.YRel)
		}

	case *sdl.MouseWheelEvent:
		i.wheelDY += float32(e.Y)
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// MouseDelta returns the relative mouse motion accumulated during the last
// Update.
func (i *Input) MouseDelta() (dx, dy float32) {
	return i.mouseDX, i.mouseDY
}

// WheelDelta returns the scroll accumulated during the last Update.
func (i *Input) WheelDelta() float32 {
	return i.wheelDY
}

// consumeJump returns whether a jump press is pending and clears it, so one
// press produces exactly one jumping step.
func (i *Input) consumeJump() bool {
	queued := i.jumpQueued
	i.jumpQueued = false
	return queued
}

// Sample reads the held movement keys plus the one-shot jump flag. It
// implements sim.InputSource.
func (i *Input) Sample() locomotion.InputState {
	keys := sdl.GetKeyboardState()
	held := func(sc sdl.Scancode) bool { return keys[sc] != 0 }

	return locomotion.InputState{
		Forward: held(sdl.SCANCODE_W) || held(sdl.SCANCODE_UP),
		Back:    held(sdl.SCANCODE_S) || held(sdl.SCANCODE_DOWN),
		Left:    held(sdl.SCANCODE_A) || held(sdl.SCANCODE_LEFT),
		Right:   held(sdl.SCANCODE_D) || held(sdl.SCANCODE_RIGHT),
		Up:      held(sdl.SCANCODE_SPACE),
		Down:    held(sdl.SCANCODE_LSHIFT),
		Jump:    i.consumeJump(),
	}
}
