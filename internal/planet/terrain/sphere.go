// Package terrain builds spherical planet surfaces from equirectangular
// heightfields: coordinate mapping, height and normal queries, and
// displaced-sphere mesh construction.
package terrain

import (
	gomath "math"

	"github.com/Theoffs06/godot-planets/pkg/math"
)

// SpherePoint maps surface coordinates to a point on the unit sphere.
// v in [0,1] is the polar angle (v=0 and v=1 are the poles), u in [0,1]
// wraps around the equator. The mapping is continuous, so the u seam and the
// poles need no special cases. Every consumer (height query, normal query,
// mesh builder, prop placement) must go through this one function; a second
// formula anywhere would produce visible seams between the meshes.
func SpherePoint(u, v float32) math.Vec3 {
	theta := v * math.Pi
	phi := u * 2 * math.Pi
	sinTheta := math.Sin(theta)
	return math.Vec3{
		X: math.Sin(phi) * sinTheta,
		Y: -math.Cos(theta),
		Z: math.Cos(phi) * sinTheta,
	}
}

// LatLongToUV converts latitude in [-pi/2, pi/2] and longitude in [-pi, pi]
// to surface coordinates.
func LatLongToUV(lat, long float32) (u, v float32) {
	u = long/(2*math.Pi) + 0.5
	v = lat/math.Pi + 0.5
	return u, v
}

// UVToLatLong is the inverse of LatLongToUV.
func UVToLatLong(u, v float32) (lat, long float32) {
	lat = (v - 0.5) * math.Pi
	long = (u - 0.5) * 2 * math.Pi
	return lat, long
}

// PointToLatLong inverts SpherePoint for an arbitrary direction. p need not
// be unit length; only its direction matters. At the poles longitude is
// arbitrary and reported as 0.
func PointToLatLong(p math.Vec3) (lat, long float32) {
	p = p.Normalize()
	lat = math.Acos(-p.Y) - math.Pi/2
	if p.X == 0 && p.Z == 0 {
		return lat, 0
	}
	long = float32(gomath.Atan2(float64(-p.X), float64(-p.Z)))
	return lat, long
}
