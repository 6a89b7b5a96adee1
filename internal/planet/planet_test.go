package planet

import (
	"os"
	"testing"

	"github.com/Theoffs06/godot-planets/internal/config"
	"github.com/Theoffs06/godot-planets/internal/logger"
	"github.com/Theoffs06/godot-planets/internal/planet/terrain"
	"github.com/Theoffs06/godot-planets/pkg/math"
)

func TestMain(m *testing.M) {
	logger.Init("error", "", false)
	os.Exit(m.Run())
}

func testConfig() (config.PlanetConfig, config.NoiseConfig) {
	cfg := config.Default()
	pc := cfg.Planet
	pc.TextureWidth = 64
	pc.TextureHeight = 32
	pc.RadialSegments = 16
	pc.HeightSegments = 8
	pc.PropCount = 10
	pc.PropThreshold = 1 // accept everything
	pc.Seed = 42
	return pc, cfg.Noise
}

func TestGeneratePopulatesState(t *testing.T) {
	pc, nc := testConfig()
	p := New(pc, nc, math.Vec3{})

	if p.Ready() {
		t.Fatal("planet ready before Generate")
	}
	if err := p.Generate(); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !p.Ready() {
		t.Fatal("planet not ready after Generate")
	}
	if p.Heightfield() == nil || p.VisualMesh() == nil || p.CollisionMesh() == nil {
		t.Fatal("generation left derived state nil")
	}
	if got := len(p.Placements()); got != 10 {
		t.Errorf("placements = %d, want 10", got)
	}
	if p.Seed() != 42 {
		t.Errorf("seed = %d, want 42", p.Seed())
	}
}

func TestQueriesBeforeGenerationReturnDefaults(t *testing.T) {
	pc, nc := testConfig()
	p := New(pc, nc, math.Vec3{})

	if got := p.HeightAt(0.5, 0.5); got != 0 {
		t.Errorf("HeightAt before generation = %v, want 0", got)
	}
	if got := p.HeightAtLatLong(0.2, 1.0); got != 0 {
		t.Errorf("HeightAtLatLong before generation = %v, want 0", got)
	}
	sp := p.SurfaceAt(0.3, 0.4)
	if sp.Height != 0 {
		t.Errorf("SurfaceAt height before generation = %v, want 0", sp.Height)
	}
	if sp.Normal.Distance(terrain.SpherePoint(0.3, 0.4)) > 1e-6 {
		t.Errorf("SurfaceAt normal before generation = %v, want sphere normal", sp.Normal)
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	pc, nc := testConfig()
	a := New(pc, nc, math.Vec3{})
	b := New(pc, nc, math.Vec3{})
	if err := a.Generate(); err != nil {
		t.Fatal(err)
	}
	if err := b.Generate(); err != nil {
		t.Fatal(err)
	}

	for y := 0; y < pc.TextureHeight; y++ {
		for x := 0; x < pc.TextureWidth; x++ {
			if a.Heightfield().At(x, y) != b.Heightfield().At(x, y) {
				t.Fatalf("heightfields differ at (%d,%d) for identical seeds", x, y)
			}
		}
	}
	if len(a.Placements()) != len(b.Placements()) {
		t.Error("placement counts differ for identical seeds")
	}
}

func TestGenerateAutoSeed(t *testing.T) {
	pc, nc := testConfig()
	pc.Seed = 0
	p := New(pc, nc, math.Vec3{})
	if err := p.Generate(); err != nil {
		t.Fatal(err)
	}
	if p.Seed() == 0 {
		t.Error("auto-derived seed is 0")
	}
}

func TestRegenerateReplacesState(t *testing.T) {
	pc, nc := testConfig()
	p := New(pc, nc, math.Vec3{})
	if err := p.Generate(); err != nil {
		t.Fatal(err)
	}
	before := p.Heightfield()

	if err := p.Regenerate(); err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}
	if !p.Ready() {
		t.Fatal("planet not ready after Regenerate")
	}
	if p.Heightfield() == before {
		t.Error("Regenerate kept the old heightfield instance")
	}
}

func TestCollisionMeshHalfResolution(t *testing.T) {
	pc, nc := testConfig()
	p := New(pc, nc, math.Vec3{})
	if err := p.Generate(); err != nil {
		t.Fatal(err)
	}

	visual := p.VisualMesh()
	collision := p.CollisionMesh()
	if collision.RadialSegments != visual.RadialSegments/2 {
		t.Errorf("collision radial segments = %d, want %d",
			collision.RadialSegments, visual.RadialSegments/2)
	}
	if collision.HeightSegments != visual.HeightSegments/2 {
		t.Errorf("collision height segments = %d, want %d",
			collision.HeightSegments, visual.HeightSegments/2)
	}
	if collision.VertexCount() >= visual.VertexCount() {
		t.Error("collision mesh is not smaller than visual mesh")
	}
}

func TestVisualVerticesWithinHeightRange(t *testing.T) {
	pc, nc := testConfig()
	p := New(pc, nc, math.Vec3{})
	if err := p.Generate(); err != nil {
		t.Fatal(err)
	}

	min := pc.Radius
	max := pc.Radius + pc.HeightScale
	for i, pos := range p.VisualMesh().Positions {
		d := pos.Length()
		if d < min-1e-3 || d > max+1e-3 {
			t.Fatalf("vertex %d at distance %v, want within [%v,%v]", i, d, min, max)
		}
	}
}

type countingSpawner struct {
	archetypes []string
	positions  []math.Vec3
}

func (c *countingSpawner) Spawn(archetype string, position math.Vec3, orientation math.Basis) {
	c.archetypes = append(c.archetypes, archetype)
	c.positions = append(c.positions, position)
}

func TestGenerateInvokesSpawner(t *testing.T) {
	pc, nc := testConfig()
	center := math.Vec3{X: 1000}
	p := New(pc, nc, center)
	spawner := &countingSpawner{}
	p.SetSpawner(spawner)

	if err := p.Generate(); err != nil {
		t.Fatal(err)
	}
	if len(spawner.archetypes) != len(p.Placements()) {
		t.Fatalf("spawner called %d times, want %d", len(spawner.archetypes), len(p.Placements()))
	}
	for i, a := range spawner.archetypes {
		if a != PropArchetype {
			t.Errorf("spawn %d archetype = %q, want %q", i, a, PropArchetype)
		}
	}
	// Spawned positions are in world space, offset by the planet center.
	for i, pos := range spawner.positions {
		local := pos.Sub(center)
		d := local.Length()
		if d < pc.Radius-1e-3 || d > pc.Radius+pc.HeightScale+1e-3 {
			t.Errorf("spawn %d at local distance %v, outside surface range", i, d)
		}
	}
}

func TestGravitySourceAtCenter(t *testing.T) {
	pc, nc := testConfig()
	center := math.Vec3{X: 10, Y: 20, Z: 30}
	p := New(pc, nc, center)

	f := p.GravitySource().ForceAt(center.Add(math.Vec3{X: 100}))
	want := math.Vec3{X: -pc.GravityStrength}
	if f.Distance(want) > 1e-4 {
		t.Errorf("gravity force = %v, want %v", f, want)
	}
}
