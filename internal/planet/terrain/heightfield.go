package terrain

import (
	"github.com/Theoffs06/godot-planets/pkg/math"
)

// Heightfield is an immutable equirectangular grid of normalized height
// samples in [0,1]. It is created once per generation and read-only
// afterwards; regeneration replaces the whole grid.
type Heightfield struct {
	width   int
	height  int
	scale   float32
	samples []float32
}

// NewHeightfield wraps a sample grid. samples is row-major, len = w*h, values
// normalized to [0,1]; scale converts a raw sample to world height units.
func NewHeightfield(w, h int, scale float32, samples []float32) *Heightfield {
	return &Heightfield{width: w, height: h, scale: scale, samples: samples}
}

// Width returns the grid width in samples.
func (hf *Heightfield) Width() int { return hf.width }

// Height returns the grid height in samples.
func (hf *Heightfield) Height() int { return hf.height }

// Scale returns the world-height multiplier.
func (hf *Heightfield) Scale() float32 { return hf.scale }

// At returns the raw sample at grid coordinates, clamped into bounds.
func (hf *Heightfield) At(x, y int) float32 {
	if x < 0 {
		x = 0
	} else if x >= hf.width {
		x = hf.width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= hf.height {
		y = hf.height - 1
	}
	return hf.samples[y*hf.width+x]
}

// HeightAt returns the scaled height at surface coordinates using nearest
// sampling. u wraps cyclically; v clamps, with the sample row clamped to the
// last valid row. A nil heightfield (generation pending) reports zero height;
// that is a defined not-ready state, not an error.
func (hf *Heightfield) HeightAt(u, v float32) float32 {
	if hf == nil || len(hf.samples) == 0 {
		return 0
	}
	u = math.Wrap01(u)
	v = math.Clamp(v, 0, 1)

	x := int(u * float32(hf.width))
	if x >= hf.width {
		x = 0
	}
	y := int(v * float32(hf.height))
	if y >= hf.height {
		y = hf.height - 1
	}
	return hf.samples[y*hf.width+x] * hf.scale
}

// HeightAtLatLong returns the scaled height at a latitude/longitude using
// bilinear interpolation over the four neighboring samples. The x neighbor
// wraps (the last column interpolates toward the first), the y neighbor
// clamps (the pole rows do not wrap). At exact pixel centers the result
// equals the nearest sample.
func (hf *Heightfield) HeightAtLatLong(lat, long float32) float32 {
	if hf == nil || len(hf.samples) == 0 {
		return 0
	}
	u, v := LatLongToUV(lat, long)
	u = math.Wrap01(u)
	v = math.Clamp(v, 0, 1)

	gx := u*float32(hf.width) - 0.5
	gy := v*float32(hf.height) - 0.5

	var x0 int
	var fx float32
	if gx >= 0 {
		x0 = int(gx)
		fx = gx - float32(x0)
	} else {
		// Left of the first column center: wrap to the last column.
		x0 = hf.width - 1
		fx = gx + 1
	}
	x1 := x0 + 1
	if x1 >= hf.width {
		x1 = 0
	}

	gy = math.Clamp(gy, 0, float32(hf.height-1))
	y0 := int(gy)
	fy := gy - float32(y0)
	y1 := y0 + 1
	if y1 >= hf.height {
		y1 = hf.height - 1
	}

	h00 := hf.samples[y0*hf.width+x0]
	h10 := hf.samples[y0*hf.width+x1]
	h01 := hf.samples[y1*hf.width+x0]
	h11 := hf.samples[y1*hf.width+x1]

	top := h00*(1-fx) + h10*fx
	bottom := h01*(1-fx) + h11*fx
	return (top*(1-fy) + bottom*fy) * hf.scale
}

// NormalAt estimates the displaced surface normal at (u,v) by finite
// differences along the two tangent directions. radius is the undisplaced
// sphere radius. Near the poles the tangent steps collapse; degenerate
// tangents fall back to the undisplaced sphere normal instead of producing
// NaN.
func (hf *Heightfield) NormalAt(u, v, radius float32) math.Vec3 {
	sphereNormal := SpherePoint(u, v)
	if hf == nil || len(hf.samples) == 0 {
		return sphereNormal
	}

	eps := 1 / float32(hf.width)

	center := sphereNormal.Scale(radius + hf.HeightAt(u, v))
	right := SpherePoint(u+eps, v).Scale(radius + hf.HeightAt(u+eps, v))
	up := SpherePoint(u, v+eps).Scale(radius + hf.HeightAt(u, v+eps))

	tangentU := right.Sub(center)
	tangentV := up.Sub(center)

	const minTangentSq = 1e-12
	if tangentU.LengthSq() < minTangentSq || tangentV.LengthSq() < minTangentSq {
		return sphereNormal
	}

	normal := tangentU.Cross(tangentV)
	if normal.LengthSq() < minTangentSq {
		return sphereNormal
	}
	return normal.Normalize()
}
