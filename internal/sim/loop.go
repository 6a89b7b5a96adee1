// Package sim drives the fixed-timestep simulation: wall-clock frame time is
// accumulated and consumed in constant steps, so physics behavior does not
// depend on the render frame rate.
package sim

import (
	"go.uber.org/zap"

	"github.com/Theoffs06/godot-planets/internal/logger"
)

// DefaultStep is the physics tick length.
const DefaultStep = float32(1.0 / 60.0)

// maxStepsPerFrame bounds catch-up after a long stall (debugger, window
// drag). Excess accumulated time is dropped rather than replayed.
const maxStepsPerFrame = 8

// Loop is a fixed-timestep accumulator.
type Loop struct {
	step float32
	acc  float64
}

// NewLoop creates a loop ticking at the given step length; step <= 0 selects
// DefaultStep.
func NewLoop(step float32) *Loop {
	if step <= 0 {
		step = DefaultStep
	}
	return &Loop{step: step}
}

// Step returns the fixed tick length.
func (l *Loop) Step() float32 { return l.step }

// Advance feeds one frame's elapsed wall-clock time into the accumulator and
// runs fn once per whole step consumed. It returns the number of steps run.
func (l *Loop) Advance(elapsed float32, fn func(dt float32)) int {
	if elapsed < 0 {
		elapsed = 0
	}
	l.acc += float64(elapsed)

	steps := 0
	for l.acc >= float64(l.step) {
		if steps == maxStepsPerFrame {
			dropped := l.acc
			l.acc = 0
			logger.Debug("simulation falling behind, dropping time",
				zap.Float64("dropped_seconds", dropped))
			break
		}
		fn(l.step)
		l.acc -= float64(l.step)
		steps++
	}
	return steps
}
