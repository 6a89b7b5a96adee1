// Package planet assembles a procedural planet: heightfield, visual and
// collision meshes, prop placements, and the queries built on them.
package planet

import (
	"time"

	"go.uber.org/zap"

	"github.com/Theoffs06/godot-planets/internal/config"
	"github.com/Theoffs06/godot-planets/internal/logger"
	"github.com/Theoffs06/godot-planets/internal/planet/gravity"
	"github.com/Theoffs06/godot-planets/internal/planet/props"
	"github.com/Theoffs06/godot-planets/internal/planet/terrain"
	"github.com/Theoffs06/godot-planets/pkg/math"
)

// PropArchetype is the archetype id handed to the spawner for every
// accepted placement.
const PropArchetype = "tree"

// SurfacePoint is a derived sample of the displaced surface at one (u,v).
// It is always recomputed from the current heightfield, never stored, so the
// meshes and prop placements cannot disagree with it.
type SurfacePoint struct {
	Unit     math.Vec3 // unit sphere position
	Height   float32   // scaled height above the sphere
	Position math.Vec3 // Unit * (radius + Height)
	Normal   math.Vec3 // displaced surface normal
}

// generated holds one complete generation of derived state. It is replaced
// wholesale: consumers never observe a partially-built planet.
type generated struct {
	seed        int64
	heightfield *terrain.Heightfield
	visual      *terrain.Mesh
	collision   *terrain.Mesh
	placements  []props.Placement
}

// Planet owns the configuration and the derived state of one planet.
type Planet struct {
	cfg     config.PlanetConfig
	noise   config.NoiseConfig
	center  math.Vec3
	source  *gravity.Source
	spawner props.Spawner

	gen *generated
}

// New creates an ungenerated planet at the given world center. Call
// Generate before querying; queries on an ungenerated planet return defined
// defaults (zero height, sphere normals).
func New(cfg config.PlanetConfig, noise config.NoiseConfig, center math.Vec3) *Planet {
	return &Planet{
		cfg:    cfg,
		noise:  noise,
		center: center,
		source: &gravity.Source{Center: center, Strength: cfg.GravityStrength},
	}
}

// SetSpawner installs the prop instantiation callback invoked during
// generation. May be nil to skip instantiation.
func (p *Planet) SetSpawner(s props.Spawner) {
	p.spawner = s
}

// Center returns the planet's world-space center.
func (p *Planet) Center() math.Vec3 { return p.center }

// Radius returns the undisplaced sphere radius.
func (p *Planet) Radius() float32 { return p.cfg.Radius }

// GravitySource returns the planet's gravity source for registry use.
func (p *Planet) GravitySource() *gravity.Source { return p.source }

// Ready reports whether a generation has completed.
func (p *Planet) Ready() bool { return p.gen != nil }

// Seed returns the seed used by the last generation, or 0 before Generate.
func (p *Planet) Seed() int64 {
	if p.gen == nil {
		return 0
	}
	return p.gen.seed
}

// Generate builds the heightfield, both meshes, and the prop placements,
// then publishes them in one swap. Generation is synchronous and
// deterministic for a fixed seed; a configured seed of 0 draws one from the
// wall clock.
func (p *Planet) Generate() error {
	start := time.Now()

	seed := p.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gen := &generated{seed: seed}

	producer := terrain.NewNoiseGenerator(terrain.NoiseParams{
		Seed:        seed,
		Frequency:   p.noise.Frequency,
		Octaves:     p.noise.Octaves,
		Lacunarity:  p.noise.Lacunarity,
		Persistence: p.noise.Persistence,
	})
	gen.heightfield = producer.Generate(p.cfg.TextureWidth, p.cfg.TextureHeight, p.cfg.HeightScale)

	gen.visual = terrain.BuildMesh(gen.heightfield, p.cfg.Radius,
		p.cfg.RadialSegments, p.cfg.HeightSegments)
	gen.collision = terrain.BuildMesh(gen.heightfield, p.cfg.Radius,
		halfSegments(p.cfg.RadialSegments), halfSegments(p.cfg.HeightSegments))

	sampler := props.NewSampler(gen.heightfield, p.cfg.Radius, p.cfg.PropThreshold, seed)
	gen.placements = sampler.Place(p.cfg.PropCount)

	// Publish the finished state; queries issued from here on see the new
	// generation, never a mix.
	p.gen = gen

	if p.spawner != nil {
		for _, placement := range gen.placements {
			p.spawner.Spawn(PropArchetype, placement.Position.Add(p.center), placement.Basis)
		}
	}

	logger.Info("planet generated",
		zap.Int64("seed", seed),
		zap.Int("heightfield_w", p.cfg.TextureWidth),
		zap.Int("heightfield_h", p.cfg.TextureHeight),
		zap.Int("visual_vertices", gen.visual.VertexCount()),
		zap.Int("collision_vertices", gen.collision.VertexCount()),
		zap.Int("props", len(gen.placements)),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// Regenerate discards all derived state and rebuilds it. With a configured
// seed of 0 each call produces a fresh planet; an explicit seed reproduces
// the same one.
func (p *Planet) Regenerate() error {
	p.gen = nil
	return p.Generate()
}

// halfSegments reduces a visual segment count for the collision build,
// never below 1.
func halfSegments(n int) int {
	if n <= 1 {
		return 1
	}
	return n / 2
}

// Heightfield returns the current heightfield, or nil before generation.
func (p *Planet) Heightfield() *terrain.Heightfield {
	if p.gen == nil {
		return nil
	}
	return p.gen.heightfield
}

// VisualMesh returns the high-resolution mesh, or nil before generation.
func (p *Planet) VisualMesh() *terrain.Mesh {
	if p.gen == nil {
		return nil
	}
	return p.gen.visual
}

// CollisionMesh returns the reduced-resolution mesh, or nil before
// generation.
func (p *Planet) CollisionMesh() *terrain.Mesh {
	if p.gen == nil {
		return nil
	}
	return p.gen.collision
}

// Placements returns the accepted prop placements of the last generation.
func (p *Planet) Placements() []props.Placement {
	if p.gen == nil {
		return nil
	}
	return p.gen.placements
}

// HeightAt returns the scaled surface height at (u,v); zero before
// generation.
func (p *Planet) HeightAt(u, v float32) float32 {
	return p.Heightfield().HeightAt(u, v)
}

// HeightAtLatLong returns the bilinearly interpolated surface height at a
// latitude/longitude; zero before generation.
func (p *Planet) HeightAtLatLong(lat, long float32) float32 {
	return p.Heightfield().HeightAtLatLong(lat, long)
}

// SurfaceAt returns the full derived surface sample at (u,v), in
// planet-local coordinates.
func (p *Planet) SurfaceAt(u, v float32) SurfacePoint {
	hf := p.Heightfield()
	unit := terrain.SpherePoint(u, v)
	height := hf.HeightAt(u, v)
	return SurfacePoint{
		Unit:     unit,
		Height:   height,
		Position: unit.Scale(p.cfg.Radius + height),
		Normal:   hf.NormalAt(u, v, p.cfg.Radius),
	}
}
