// Package locomotion implements a first-person character controller that
// walks on or flies around planets, reorienting itself to a continuously
// changing gravity direction.
package locomotion

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Theoffs06/godot-planets/internal/config"
	"github.com/Theoffs06/godot-planets/internal/logger"
	"github.com/Theoffs06/godot-planets/internal/planet/gravity"
	"github.com/Theoffs06/godot-planets/pkg/math"
)

// Mode selects how the controller moves. The switch is a discrete event;
// the two modes are never blended.
type Mode int

const (
	// ModeFly moves freely: no gravity alignment, no gravity integration.
	ModeFly Mode = iota
	// ModeWalk keeps the body's feet toward the dominant gravity source.
	ModeWalk
)

func (m Mode) String() string {
	if m == ModeWalk {
		return "walk"
	}
	return "fly"
}

// maxPitch keeps the look pitch strictly inside (-90°, +90°) so the look
// basis can never degenerate at the poles of the look direction.
const maxPitch = 89.0 / 180.0 * math.Pi

// gravityEpsilonSq is the squared force magnitude below which gravity is
// treated as absent.
const gravityEpsilonSq = 1e-8

// InputState carries one step's worth of movement input. Held actions are
// level-triggered; Jump is edge-triggered (true only on the step the action
// was pressed).
type InputState struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Up      bool // Fly mode: ascend along the basis Y
	Down    bool // Fly mode: descend along the basis Y
	Jump    bool
}

// BodySolver resolves a desired velocity against the world. The corrected
// velocity it returns is authoritative and becomes the controller's velocity
// for the next integration step.
type BodySolver interface {
	Solve(position, velocity, up math.Vec3, floorMaxAngle, dt float32) (newPosition, newVelocity math.Vec3, grounded bool)
}

// Controller integrates velocity under gravity and maintains the orientation
// bases described in the package comment. All state is explicit; one
// controller instance per body.
type Controller struct {
	cfg     config.LocomotionConfig
	gravity *gravity.Registry
	solver  BodySolver

	mode     Mode
	position math.Vec3
	velocity math.Vec3
	grounded bool

	// basis is the persistent reference frame: the free-flight basis in Fly
	// mode, the gravity-aligned basis in Walk mode. It is updated
	// incrementally, never rebuilt from angles, so orientation can never
	// jump between frames.
	basis math.Basis

	// yaw/pitch are Walk-mode look offsets composed on top of basis. In Fly
	// mode mouse input rotates basis directly and pitch only tracks the
	// clamp budget.
	yaw   float32
	pitch float32

	// final is the composed basis of the last update, used for movement
	// projection and the visible transform.
	final math.Basis

	up math.Vec3
}

// NewController creates a Fly-mode controller at the given position.
func NewController(cfg config.LocomotionConfig, reg *gravity.Registry, solver BodySolver, position math.Vec3) *Controller {
	return &Controller{
		cfg:      cfg,
		gravity:  reg,
		solver:   solver,
		mode:     ModeFly,
		position: position,
		basis:    math.BasisIdentity(),
		final:    math.BasisIdentity(),
		up:       math.Vec3{Y: 1},
	}
}

// Mode returns the current movement mode.
func (c *Controller) Mode() Mode { return c.mode }

// Position returns the body position.
func (c *Controller) Position() math.Vec3 { return c.position }

// SetPosition teleports the body without touching velocity or orientation.
func (c *Controller) SetPosition(p math.Vec3) { c.position = p }

// Velocity returns the body velocity.
func (c *Controller) Velocity() math.Vec3 { return c.velocity }

// Basis returns the composed orientation of the last update; this is what
// the visible transform should use.
func (c *Controller) Basis() math.Basis { return c.final }

// Grounded reports whether the solver found floor contact last update.
func (c *Controller) Grounded() bool { return c.grounded }

// UpDirection returns the up axis derived on the last update.
func (c *Controller) UpDirection() math.Vec3 { return c.up }

// SetMode switches between Fly and Walk. Both directions snapshot the
// current orientation so the camera keeps facing the same way across the
// switch: entering Walk captures the free basis as the new gravity-aligned
// reference with zeroed look offsets; entering Fly captures the composed
// basis as the new free basis.
func (c *Controller) SetMode(mode Mode) {
	if mode == c.mode {
		return
	}
	switch mode {
	case ModeWalk:
		c.basis = c.final
		c.yaw = 0
		c.pitch = 0
	case ModeFly:
		c.basis = c.final
		c.pitch = 0
	}
	c.mode = mode
	logger.Debug("locomotion mode switched", zap.Stringer("mode", mode))
}

// Look applies a mouse delta (in pixels) to the look direction. It is meant
// to be called when the input event arrives, not once per physics tick:
// in Fly mode it rotates the free basis immediately.
func (c *Controller) Look(dx, dy float32) {
	yawDelta := -dx * c.cfg.MouseSensitivity
	pitchDelta := -dy * c.cfg.MouseSensitivity

	// Clamp accumulated pitch to the open interval inside +/-90 degrees.
	clamped := math.Clamp(c.pitch+pitchDelta, -maxPitch, maxPitch)
	pitchDelta = clamped - c.pitch
	c.pitch = clamped

	switch c.mode {
	case ModeFly:
		c.basis = c.basis.Rotated(c.basis.Y, yawDelta).Orthonormalized()
		c.basis = c.basis.Rotated(c.basis.X, pitchDelta).Orthonormalized()
	case ModeWalk:
		c.yaw += yawDelta
	}
}

// Update advances the controller by one fixed step. The stages run in a
// strict order: gravity, up derivation, basis maintenance, movement input,
// jump, friction, solver, transform.
func (c *Controller) Update(dt float32, in InputState) {
	// 1. Sum gravity from all registered sources.
	totalGravity := c.gravity.TotalAt(c.position)
	hasGravity := totalGravity.LengthSq() > gravityEpsilonSq

	// 2. Up is opposite gravity, or world-up when gravity is negligible.
	if hasGravity {
		c.up = totalGravity.Neg().Normalize()
	} else {
		c.up = math.Vec3{Y: 1}
	}

	// 3. Maintain the reference basis and compose the frame's final basis.
	if c.mode == ModeWalk {
		if hasGravity {
			// Bounded rotation toward the new up; the footing lags gravity
			// changes smoothly instead of snapping.
			c.basis = c.basis.AlignedY(c.up, c.cfg.AlignSpeed*dt)
		}
		c.checkBasis()

		c.velocity = c.velocity.Add(totalGravity.Scale(dt))

		yawed := c.basis.Rotated(c.basis.Y, c.yaw)
		c.final = yawed.Rotated(yawed.X, c.pitch).Orthonormalized()
	} else {
		c.checkBasis()
		c.final = c.basis
	}

	// 4. Movement input projected onto the final basis.
	c.velocity = c.velocity.Add(c.moveAcceleration(in).Scale(dt))

	// 5. Jump while grounded; gravity integration brings the body back.
	if c.mode == ModeWalk && in.Jump && c.grounded {
		c.velocity = c.velocity.Add(c.up.Scale(c.cfg.JumpVelocity))
	}

	// 6. Exponential friction. Walking never damps the fall component, so a
	// body under constant gravity keeps its fall speed.
	decay := expDecay(c.cfg.Friction, dt)
	if c.mode == ModeWalk {
		vertical := c.up.Scale(c.velocity.Dot(c.up))
		lateral := c.velocity.Sub(vertical)
		c.velocity = lateral.Scale(decay).Add(vertical)
	} else {
		c.velocity = c.velocity.Scale(decay)
	}

	// 7. The solver's corrected velocity is authoritative.
	c.position, c.velocity, c.grounded = c.solver.Solve(
		c.position, c.velocity, c.up, c.cfg.FloorMaxAngle, dt)
}

// moveAcceleration builds the acceleration vector for held movement input.
// Terminal speed under the exponential friction works out to the configured
// walk/fly speed.
func (c *Controller) moveAcceleration(in InputState) math.Vec3 {
	var dir math.Vec3
	forward := c.final.Forward()

	if in.Forward {
		dir = dir.Add(forward)
	}
	if in.Back {
		dir = dir.Sub(forward)
	}
	if in.Right {
		dir = dir.Add(c.final.X)
	}
	if in.Left {
		dir = dir.Sub(c.final.X)
	}

	speed := c.cfg.FlySpeed
	if c.mode == ModeWalk {
		speed = c.cfg.WalkSpeed
		// Movement stays in the local tangent plane.
		dir = dir.Sub(c.up.Scale(dir.Dot(c.up)))
	} else {
		if in.Up {
			dir = dir.Add(c.final.Y)
		}
		if in.Down {
			dir = dir.Sub(c.final.Y)
		}
	}

	if dir.LengthSq() == 0 {
		return math.Vec3{}
	}
	return dir.Normalize().Scale(speed * c.cfg.Friction)
}

// checkBasis resets a degenerate reference basis to identity instead of
// letting NaNs reach the transform.
func (c *Controller) checkBasis() {
	if c.basis.IsDegenerate() {
		logger.Warn("reference basis degenerated, resetting to identity",
			zap.Stringer("mode", c.mode))
		c.basis = math.BasisIdentity()
	}
}

// expDecay returns the velocity retention factor for exponential friction.
func expDecay(rate, dt float32) float32 {
	return float32(gomath.Exp(-float64(rate * dt)))
}
