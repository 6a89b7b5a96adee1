package terrain

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Generator produces a heightfield covering the whole sphere.
type Generator interface {
	Generate(width, height int, heightScale float32) *Heightfield
}

// NoiseParams holds fractional-Brownian-motion noise parameters.
type NoiseParams struct {
	Seed        int64
	Frequency   float32
	Octaves     int
	Lacunarity  float32
	Persistence float32
}

// NoiseGenerator synthesizes heightfields from layered simplex noise.
//
// Each texel is evaluated at its 3D position on the unit sphere rather than
// in (u,v) space. Sampling in 3D is what makes the field seam-free at the
// longitude wrap and pinch-free at the poles: texels that map to nearby
// sphere points get nearby noise values no matter where they sit in the grid.
type NoiseGenerator struct {
	params NoiseParams
	noise  opensimplex.Noise
}

// NewNoiseGenerator creates a generator for the given parameters.
// The seed must already be resolved (non-zero).
func NewNoiseGenerator(params NoiseParams) *NoiseGenerator {
	return &NoiseGenerator{
		params: params,
		noise:  opensimplex.NewNormalized(params.Seed),
	}
}

// Generate synthesizes a width x height heightfield. Samples are normalized
// to [0,1]; heightScale becomes the field's world-height multiplier.
// Generation is synchronous: the returned field is complete and immutable.
func (g *NoiseGenerator) Generate(width, height int, heightScale float32) *Heightfield {
	samples := make([]float32, width*height)

	for y := 0; y < height; y++ {
		v := (float32(y) + 0.5) / float32(height)
		for x := 0; x < width; x++ {
			u := (float32(x) + 0.5) / float32(width)
			p := SpherePoint(u, v).Scale(g.params.Frequency)

			var sum, amplitude, norm float32
			amplitude = 1
			freq := float32(1)
			for o := 0; o < g.params.Octaves; o++ {
				sum += amplitude * float32(g.noise.Eval3(
					float64(p.X*freq), float64(p.Y*freq), float64(p.Z*freq)))
				norm += amplitude
				amplitude *= g.params.Persistence
				freq *= g.params.Lacunarity
			}
			samples[y*width+x] = sum / norm
		}
	}

	return NewHeightfield(width, height, heightScale, samples)
}
