// Package main is the headless planet generator: it builds a planet from the
// configuration, reports its properties, and can export the results for
// inspection in external tools.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Theoffs06/godot-planets/internal/config"
	"github.com/Theoffs06/godot-planets/internal/export"
	"github.com/Theoffs06/godot-planets/internal/locomotion"
	"github.com/Theoffs06/godot-planets/internal/logger"
	"github.com/Theoffs06/godot-planets/internal/planet"
	"github.com/Theoffs06/godot-planets/internal/planet/gravity"
	"github.com/Theoffs06/godot-planets/internal/sim"
	"github.com/Theoffs06/godot-planets/pkg/math"
)

var (
	flagObj          = flag.String("obj", "", "Write the visual mesh as Wavefront OBJ to this path")
	flagCollisionObj = flag.String("collision-obj", "", "Write the collision mesh as Wavefront OBJ to this path")
	flagPNG          = flag.String("png", "", "Write the heightfield as grayscale PNG to this path")
	flagSteps        = flag.Int("steps", 0, "Run the locomotion simulation for this many fixed steps")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, true); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	p := planet.New(cfg.Planet, cfg.Noise, math.Vec3{})
	if err := p.Generate(); err != nil {
		logger.Error("generation failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("planet generated",
		zap.Int64("seed", p.Seed()),
		zap.Int("visual_vertices", p.VisualMesh().VertexCount()),
		zap.Int("visual_triangles", p.VisualMesh().TriangleCount()),
		zap.Int("collision_triangles", p.CollisionMesh().TriangleCount()),
		zap.Int("props", len(p.Placements())))

	if *flagObj != "" {
		if err := export.SaveOBJ(*flagObj, p.VisualMesh(), "planet"); err != nil {
			logger.Error("obj export failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("visual mesh exported", zap.String("path", *flagObj))
	}
	if *flagCollisionObj != "" {
		if err := export.SaveOBJ(*flagCollisionObj, p.CollisionMesh(), "planet_collision"); err != nil {
			logger.Error("collision obj export failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("collision mesh exported", zap.String("path", *flagCollisionObj))
	}
	if *flagPNG != "" {
		if err := export.SaveHeightfieldPNG(*flagPNG, p.Heightfield()); err != nil {
			logger.Error("png export failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("heightfield exported", zap.String("path", *flagPNG))
	}

	if *flagSteps > 0 {
		simulate(p, cfg, *flagSteps)
	}
}

// simulate drops a body above the planet and advances the locomotion
// controller in Walk mode for the given number of fixed steps, then reports
// where it came to rest. Useful for checking gravity and surface resolution
// without a window.
func simulate(p *planet.Planet, cfg *config.Config, steps int) *locomotion.Controller {
	reg := gravity.NewRegistry()
	reg.Add("planet", p.GravitySource())

	spawn := p.Center().Add(math.Vec3{Y: cfg.Planet.Radius + cfg.Planet.HeightScale + 10})
	ctrl := locomotion.NewController(cfg.Locomotion, reg, locomotion.NewSurfaceSolver(p), spawn)
	ctrl.SetMode(locomotion.ModeWalk)

	world := sim.NewWorld(p, ctrl, nil, sim.DefaultStep)
	for i := 0; i < steps; i++ {
		world.Frame(sim.DefaultStep)
	}

	pos := ctrl.Position()
	logger.Info("simulation finished",
		zap.Int("steps", steps),
		zap.Float32("altitude", pos.Sub(p.Center()).Length()-cfg.Planet.Radius),
		zap.Float32("speed", ctrl.Velocity().Length()),
		zap.Bool("grounded", ctrl.Grounded()))
	return ctrl
}
