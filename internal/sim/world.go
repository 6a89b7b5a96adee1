package sim

import (
	"github.com/Theoffs06/godot-planets/internal/locomotion"
	"github.com/Theoffs06/godot-planets/internal/planet"
)

// InputSource supplies the current held-input sample. It is polled once
// before every physics step so a step never integrates stale input.
type InputSource interface {
	Sample() locomotion.InputState
}

// World ties a planet, the body controller, and an input source to the fixed
// loop.
type World struct {
	Planet     *planet.Planet
	Controller *locomotion.Controller
	Input      InputSource

	loop *Loop
}

// NewWorld builds a world stepping at the given tick length (<= 0 selects
// DefaultStep).
func NewWorld(p *planet.Planet, c *locomotion.Controller, in InputSource, step float32) *World {
	return &World{
		Planet:     p,
		Controller: c,
		Input:      in,
		loop:       NewLoop(step),
	}
}

// Frame consumes one frame's elapsed time. Each step samples input first and
// then advances the controller.
func (w *World) Frame(elapsed float32) int {
	return w.loop.Advance(elapsed, func(dt float32) {
		var in locomotion.InputState
		if w.Input != nil {
			in = w.Input.Sample()
		}
		w.Controller.Update(dt, in)
	})
}
