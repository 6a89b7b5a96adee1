package locomotion

import (
	"github.com/Theoffs06/godot-planets/internal/planet"
	"github.com/Theoffs06/godot-planets/internal/planet/terrain"
	"github.com/Theoffs06/godot-planets/pkg/math"
)

// SurfaceSolver resolves a body against a planet's displaced surface using
// the precise bilinear height query. It integrates position, pushes the body
// out along the radial direction when it penetrates the surface, removes the
// inward velocity component, and reports floor contact.
type SurfaceSolver struct {
	Planet *planet.Planet

	// BodyHeight keeps the transform origin this far above the terrain
	// (eye height).
	BodyHeight float32

	// Skin is the contact tolerance: within this distance of the surface
	// the body still counts as grounded.
	Skin float32
}

// NewSurfaceSolver creates a solver with default body dimensions.
func NewSurfaceSolver(p *planet.Planet) *SurfaceSolver {
	return &SurfaceSolver{
		Planet:     p,
		BodyHeight: 1.8,
		Skin:       0.1,
	}
}

// Solve implements BodySolver against the planet surface.
func (s *SurfaceSolver) Solve(position, velocity, up math.Vec3, floorMaxAngle, dt float32) (math.Vec3, math.Vec3, bool) {
	newPos := position.Add(velocity.Scale(dt))

	local := newPos.Sub(s.Planet.Center())
	dist := local.Length()
	if dist < 1e-4 {
		// Degenerate: body at the planet's exact center. Eject along up.
		local = up
		dist = 1
	}
	radial := local.Scale(1 / dist)

	lat, long := terrain.PointToLatLong(radial)
	surface := s.Planet.Radius() + s.Planet.HeightAtLatLong(lat, long) + s.BodyHeight

	grounded := false
	if dist <= surface {
		newPos = s.Planet.Center().Add(radial.Scale(surface))
		if inward := velocity.Dot(radial); inward < 0 {
			velocity = velocity.Sub(radial.Scale(inward))
		}
		grounded = s.slopeWalkable(lat, long, up, floorMaxAngle)
	} else if dist <= surface+s.Skin {
		grounded = s.slopeWalkable(lat, long, up, floorMaxAngle)
	}

	return newPos, velocity, grounded
}

// slopeWalkable reports whether the local surface normal is within the floor
// slope tolerance of the body's up axis.
func (s *SurfaceSolver) slopeWalkable(lat, long float32, up math.Vec3, floorMaxAngle float32) bool {
	u, v := terrain.LatLongToUV(lat, long)
	normal := s.Planet.SurfaceAt(u, v).Normal
	return math.Acos(normal.Dot(up)) <= floorMaxAngle
}
