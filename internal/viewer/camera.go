package viewer

import (
	gomath "math"

	"github.com/Theoffs06/godot-planets/internal/locomotion"
	"github.com/Theoffs06/godot-planets/pkg/math"
)

// FirstPersonView builds the view matrix for the controller's current eye
// transform: position plus its composed basis.
func FirstPersonView(c *locomotion.Controller) math.Mat4 {
	eye := c.Position()
	basis := c.Basis()
	return math.LookAt(eye, eye.Add(basis.Forward()), basis.Y)
}

// OrbitCamera orbits around a center point, for inspecting planets from the
// outside.
type OrbitCamera struct {
	Center math.Vec3

	Distance  float32 // distance from center
	RotationX float32 // pitch, radians
	RotationY float32 // yaw, radians

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera framing a planet of the given
// radius.
func NewOrbitCamera(center math.Vec3, radius float32) *OrbitCamera {
	return &OrbitCamera{
		Center:          center,
		Distance:        radius * 3,
		RotationX:       0.4,
		MinDistance:     radius * 1.2,
		MaxDistance:     radius * 20,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))
	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// HandleDrag updates rotation from a mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = math.Clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance from a scroll delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = math.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}
