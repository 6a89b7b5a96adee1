// Package props places decorative props on a planet surface.
package props

import (
	"math/rand"

	"github.com/Theoffs06/godot-planets/internal/planet/terrain"
	"github.com/Theoffs06/godot-planets/pkg/math"
)

// attemptsPerProp bounds the rejection-sampling loop: at most this many
// draws per requested prop, so a low acceptance rate cannot stall generation.
const attemptsPerProp = 10

// Placement is one accepted prop location: a world position on the displaced
// surface and an orthonormal orientation whose Y axis is the local surface
// normal.
type Placement struct {
	Position math.Vec3
	Basis    math.Basis
	U, V     float32
}

// Spawner instantiates scene objects for accepted placements. Scene
// management is outside this package; this is the full contract.
type Spawner interface {
	Spawn(archetype string, position math.Vec3, orientation math.Basis)
}

// Sampler rejection-samples prop placements on a planet surface.
type Sampler struct {
	rng       *rand.Rand
	hf        *terrain.Heightfield
	radius    float32
	threshold float32 // raw-sample acceptance cutoff in [0,1]
}

// NewSampler creates a sampler over the given heightfield. threshold is
// compared against raw (unscaled) samples: props only appear below it,
// keeping them off high terrain.
func NewSampler(hf *terrain.Heightfield, radius, threshold float32, seed int64) *Sampler {
	return &Sampler{
		rng:       rand.New(rand.NewSource(seed)),
		hf:        hf,
		radius:    radius,
		threshold: threshold,
	}
}

// Place draws uniform (u,v) locations and keeps those below the height
// threshold until count placements are accepted or the attempt budget runs
// out, whichever comes first.
func (s *Sampler) Place(count int) []Placement {
	placements := make([]Placement, 0, count)
	budget := count * attemptsPerProp

	for attempt := 0; attempt < budget && len(placements) < count; attempt++ {
		u := s.rng.Float32()
		v := s.rng.Float32()

		height := s.hf.HeightAt(u, v)
		if height >= s.threshold*s.hf.Scale() {
			continue
		}

		position := terrain.SpherePoint(u, v).Scale(s.radius + height)
		normal := s.hf.NormalAt(u, v, s.radius)

		placements = append(placements, Placement{
			Position: position,
			Basis:    math.BasisFromUp(normal),
			U:        u,
			V:        v,
		})
	}

	return placements
}
