package locomotion

import (
	"os"
	"testing"

	"github.com/Theoffs06/godot-planets/internal/config"
	"github.com/Theoffs06/godot-planets/internal/logger"
	"github.com/Theoffs06/godot-planets/internal/planet/gravity"
	"github.com/Theoffs06/godot-planets/pkg/math"
)

func TestMain(m *testing.M) {
	logger.Init("error", "", false)
	os.Exit(m.Run())
}

// passthroughSolver integrates position and echoes the velocity back; its
// groundedness is scripted by the test.
type passthroughSolver struct {
	grounded bool
}

func (s *passthroughSolver) Solve(position, velocity, up math.Vec3, floorMaxAngle, dt float32) (math.Vec3, math.Vec3, bool) {
	return position.Add(velocity.Scale(dt)), velocity, s.grounded
}

func testLocomotion() config.LocomotionConfig {
	return config.Default().Locomotion
}

func newTestController(reg *gravity.Registry, solver BodySolver) *Controller {
	if reg == nil {
		reg = gravity.NewRegistry()
	}
	if solver == nil {
		solver = &passthroughSolver{}
	}
	return NewController(testLocomotion(), reg, solver, math.Vec3{X: 100})
}

func checkBasisOrthonormal(t *testing.T, b math.Basis) {
	t.Helper()
	if math.Abs(b.X.Length()-1) > 1e-3 || math.Abs(b.Y.Length()-1) > 1e-3 || math.Abs(b.Z.Length()-1) > 1e-3 {
		t.Errorf("basis axes not unit length: %v", b)
	}
	if math.Abs(b.X.Dot(b.Y)) > 1e-3 || math.Abs(b.Y.Dot(b.Z)) > 1e-3 || math.Abs(b.X.Dot(b.Z)) > 1e-3 {
		t.Errorf("basis axes not perpendicular: %v", b)
	}
}

func TestZeroGravityDefaultsToWorldUp(t *testing.T) {
	c := newTestController(nil, nil)
	c.SetMode(ModeWalk)
	before := c.basis

	c.Update(1.0/60, InputState{})

	if c.UpDirection() != (math.Vec3{Y: 1}) {
		t.Errorf("up = %v, want world up", c.UpDirection())
	}
	// Alignment must be a no-op that frame.
	if c.basis != before {
		t.Errorf("alignment moved the basis without gravity: %v -> %v", before, c.basis)
	}
	if c.Velocity() != (math.Vec3{}) {
		t.Errorf("velocity changed without gravity or input: %v", c.Velocity())
	}
}

func TestWalkAlignsUpToGravity(t *testing.T) {
	reg := gravity.NewRegistry()
	// Planet center at origin, body at +X: up should converge to +X.
	reg.Add("p", &gravity.Source{Center: math.Vec3{}, Strength: 9.8})
	solver := &passthroughSolver{grounded: true}
	c := newTestController(reg, solver)
	c.SetMode(ModeWalk)

	for i := 0; i < 300; i++ {
		c.Update(1.0/60, InputState{})
		c.velocity = math.Vec3{} // pin the body for this test
		c.position = math.Vec3{X: 100}
	}

	wantUp := math.Vec3{X: 1}
	if c.UpDirection().Distance(wantUp) > 1e-4 {
		t.Errorf("up = %v, want %v", c.UpDirection(), wantUp)
	}
	if d := c.basis.Y.Dot(wantUp); d < 0.9999 {
		t.Errorf("aligned basis Y dot up = %v, want ~1", d)
	}
	checkBasisOrthonormal(t, c.Basis())
}

func TestWalkAlignmentIsBounded(t *testing.T) {
	reg := gravity.NewRegistry()
	reg.Add("p", &gravity.Source{Center: math.Vec3{}, Strength: 9.8})
	c := newTestController(reg, nil)
	c.SetMode(ModeWalk)

	// One step from identity toward +X up: rotation is at most alignSpeed*dt,
	// far short of the 90 degrees separating the two.
	dt := float32(1.0 / 60)
	c.Update(dt, InputState{})

	angle := math.Acos(c.basis.Y.Dot(math.Vec3{Y: 1}))
	maxStep := testLocomotion().AlignSpeed*dt + 1e-4
	if angle > maxStep {
		t.Errorf("alignment step %v exceeds bound %v", angle, maxStep)
	}
	if angle == 0 {
		t.Error("alignment made no progress under gravity")
	}
}

func TestWalkIntegratesGravity(t *testing.T) {
	reg := gravity.NewRegistry()
	reg.Add("p", &gravity.Source{Center: math.Vec3{}, Strength: 9.8})
	c := newTestController(reg, nil)
	c.SetMode(ModeWalk)

	dt := float32(1.0 / 60)
	c.Update(dt, InputState{})

	// Gravity pulls toward the center (-X from the body).
	if c.Velocity().X >= 0 {
		t.Errorf("velocity after gravity step = %v, want -X component", c.Velocity())
	}
}

func TestFlyIgnoresGravity(t *testing.T) {
	reg := gravity.NewRegistry()
	reg.Add("p", &gravity.Source{Center: math.Vec3{}, Strength: 9.8})
	c := newTestController(reg, nil)

	c.Update(1.0/60, InputState{})
	if c.Velocity() != (math.Vec3{}) {
		t.Errorf("fly-mode velocity after gravity step = %v, want zero", c.Velocity())
	}
}

func TestFlyToWalkContinuity(t *testing.T) {
	c := newTestController(nil, nil)
	c.Look(200, -80)
	c.Update(1.0/60, InputState{})
	before := c.Basis()

	c.SetMode(ModeWalk)
	c.Update(1.0/60, InputState{})

	// No gravity: the composed basis must equal the pre-transition free
	// basis exactly (no visible snap).
	after := c.Basis()
	if before.X.Distance(after.X) > 1e-4 ||
		before.Y.Distance(after.Y) > 1e-4 ||
		before.Z.Distance(after.Z) > 1e-4 {
		t.Errorf("basis snapped on Fly->Walk: %v -> %v", before, after)
	}
}

func TestWalkToFlyContinuity(t *testing.T) {
	c := newTestController(nil, nil)
	c.SetMode(ModeWalk)
	c.Look(150, -40) // walk-mode look offsets
	c.Update(1.0/60, InputState{})
	before := c.Basis()

	c.SetMode(ModeFly)
	c.Update(1.0/60, InputState{})

	after := c.Basis()
	if before.X.Distance(after.X) > 1e-4 ||
		before.Y.Distance(after.Y) > 1e-4 ||
		before.Z.Distance(after.Z) > 1e-4 {
		t.Errorf("basis snapped on Walk->Fly: %v -> %v", before, after)
	}
}

func TestJumpWhileGrounded(t *testing.T) {
	solver := &passthroughSolver{grounded: true}
	c := newTestController(nil, solver)
	c.SetMode(ModeWalk)
	c.Update(1.0/60, InputState{}) // establish groundedness

	c.Update(1.0/60, InputState{Jump: true})

	up := c.UpDirection()
	if got := c.Velocity().Dot(up); got < testLocomotion().JumpVelocity*0.9 {
		t.Errorf("jump velocity along up = %v, want ~%v", got, testLocomotion().JumpVelocity)
	}
}

func TestJumpRequiresGround(t *testing.T) {
	solver := &passthroughSolver{grounded: false}
	c := newTestController(nil, solver)
	c.SetMode(ModeWalk)
	c.Update(1.0/60, InputState{})

	c.Update(1.0/60, InputState{Jump: true})
	if got := c.Velocity().Dot(c.UpDirection()); got > 1e-4 {
		t.Errorf("airborne jump added velocity %v", got)
	}
}

func TestWalkFrictionPreservesFallSpeed(t *testing.T) {
	reg := gravity.NewRegistry()
	reg.Add("p", &gravity.Source{Center: math.Vec3{X: 100, Y: -1000}, Strength: 9.8})
	c := newTestController(reg, nil)
	c.SetMode(ModeWalk)

	// Give the body lateral speed; under friction it decays while the fall
	// component keeps accumulating.
	c.velocity = math.Vec3{Z: 10}
	dt := float32(1.0 / 60)
	for i := 0; i < 120; i++ {
		c.Update(dt, InputState{})
	}

	up := c.UpDirection()
	lateral := c.Velocity().Sub(up.Scale(c.Velocity().Dot(up)))
	if lateral.Length() > 0.2 {
		t.Errorf("lateral speed %v not damped", lateral.Length())
	}
	if fall := c.Velocity().Dot(up); fall > -5 {
		t.Errorf("fall speed along up = %v, want strongly negative", fall)
	}
}

func TestFlyFrictionDampsEverything(t *testing.T) {
	c := newTestController(nil, nil)
	c.velocity = math.Vec3{X: 10, Y: 10, Z: 10}

	for i := 0; i < 120; i++ {
		c.Update(1.0/60, InputState{})
	}
	if got := c.Velocity().Length(); got > 0.5 {
		t.Errorf("fly velocity after coasting = %v, want near zero", got)
	}
}

func TestWalkMovementStaysInTangentPlane(t *testing.T) {
	c := newTestController(nil, nil)
	c.SetMode(ModeWalk)
	c.Look(0, -300) // pitch the look down hard
	dt := float32(1.0 / 60)
	for i := 0; i < 30; i++ {
		c.Update(dt, InputState{Forward: true})
	}

	// Despite the pitched look, movement is projected onto the tangent
	// plane of the up axis.
	if got := math.Abs(c.Velocity().Dot(c.UpDirection())); got > 1e-3 {
		t.Errorf("walk velocity has up component %v", got)
	}
	if c.Velocity().Length() < 1 {
		t.Error("forward input produced no movement")
	}
}

func TestFlyVerticalInput(t *testing.T) {
	c := newTestController(nil, nil)
	for i := 0; i < 30; i++ {
		c.Update(1.0/60, InputState{Up: true})
	}
	if c.Velocity().Y <= 0 {
		t.Errorf("fly ascend velocity = %v, want +Y", c.Velocity())
	}
}

func TestPitchClamp(t *testing.T) {
	c := newTestController(nil, nil)
	// Far more pitch input than the clamp allows.
	for i := 0; i < 100; i++ {
		c.Look(0, -500)
	}
	c.Update(1.0/60, InputState{})

	checkBasisOrthonormal(t, c.Basis())
	// Forward may approach but never reach straight up.
	if d := c.Basis().Forward().Dot(math.Vec3{Y: 1}); d >= 0.9999 {
		t.Errorf("forward reached the pole: dot = %v", d)
	}
}

func TestDegenerateBasisResets(t *testing.T) {
	c := newTestController(nil, nil)
	c.basis = math.Basis{} // force degeneracy

	c.Update(1.0/60, InputState{})

	if c.Basis().IsDegenerate() {
		t.Fatal("degenerate basis survived update")
	}
	if !c.Basis().X.IsFinite() || !c.Basis().Y.IsFinite() || !c.Basis().Z.IsFinite() {
		t.Fatal("NaN reached the transform basis")
	}
}

func TestSolverVelocityIsAuthoritative(t *testing.T) {
	solver := &haltingSolver{}
	c := newTestController(nil, solver)
	c.velocity = math.Vec3{X: 50}

	c.Update(1.0/60, InputState{})
	if c.Velocity() != (math.Vec3{}) {
		t.Errorf("controller kept velocity %v after solver zeroed it", c.Velocity())
	}
}

// haltingSolver zeroes all motion, standing in for a wall collision.
type haltingSolver struct{}

func (s *haltingSolver) Solve(position, velocity, up math.Vec3, floorMaxAngle, dt float32) (math.Vec3, math.Vec3, bool) {
	return position, math.Vec3{}, false
}
