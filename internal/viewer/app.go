package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Theoffs06/godot-planets/internal/config"
	"github.com/Theoffs06/godot-planets/internal/locomotion"
	"github.com/Theoffs06/godot-planets/internal/logger"
	"github.com/Theoffs06/godot-planets/internal/planet"
	"github.com/Theoffs06/godot-planets/internal/planet/gravity"
	"github.com/Theoffs06/godot-planets/internal/sim"
	"github.com/Theoffs06/godot-planets/pkg/math"
)

// App owns the window, renderer, simulation, and the main loop.
type App struct {
	cfg *config.Config

	window   *Window
	renderer *PlanetRenderer
	input    *Input

	planet     *planet.Planet
	gravityReg *gravity.Registry
	controller *locomotion.Controller
	world      *sim.World

	orbit     *OrbitCamera
	orbitView bool
	proj      math.Mat4

	running bool
}

// NewApp generates the planet and brings up the window and GL state.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	a.gravityReg = gravity.NewRegistry()
	a.planet = planet.New(cfg.Planet, cfg.Noise, math.Vec3{})
	if err := a.planet.Generate(); err != nil {
		return nil, fmt.Errorf("generate planet: %w", err)
	}
	a.gravityReg.Add("planet", a.planet.GravitySource())

	// Spawn hovering above the north-facing side of the planet.
	spawn := math.Vec3{Y: cfg.Planet.Radius + cfg.Planet.HeightScale + 10}

	var err error
	a.window, err = NewWindow(WindowConfig{
		Title:      "planetsim",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, err
	}

	a.renderer, err = NewPlanetRenderer()
	if err != nil {
		a.window.Close()
		return nil, err
	}
	a.renderer.ShowCollision = cfg.Planet.ShowCollision
	a.renderer.SetPlanet(a.planet)
	a.renderer.Resize(a.window.Size())

	a.input = NewInput()
	solver := locomotion.NewSurfaceSolver(a.planet)
	a.controller = locomotion.NewController(cfg.Locomotion, a.gravityReg, solver, spawn)
	a.world = sim.NewWorld(a.planet, a.controller, a.input, sim.DefaultStep)

	a.orbit = NewOrbitCamera(a.planet.Center(), cfg.Planet.Radius)
	a.updateProjection(cfg.Graphics.Width, cfg.Graphics.Height)
	a.window.SetTitle(fmt.Sprintf("planetsim (seed %d)", a.planet.Seed()))

	logger.Info("viewer initialized", zap.Int64("seed", a.planet.Seed()))
	return a, nil
}

func (a *App) updateProjection(width, height int) {
	aspect := float32(width) / float32(height)
	far := a.cfg.Planet.Radius * 40
	a.proj = math.Perspective(60*math.Pi/180, aspect, 0.1, far)
}

// Run drives the main loop until quit.
func (a *App) Run() error {
	a.running = true
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Input and window events.
		if a.input.Update() {
			a.running = false
			break
		}
		for _, event := range a.input.Events() {
			a.handleEvent(event)
		}
		if !a.running {
			break
		}

		// 2. Mouse look goes to whichever camera is active.
		dx, dy := a.input.MouseDelta()
		if a.orbitView {
			a.orbit.HandleDrag(dx, dy)
			if wheel := a.input.WheelDelta(); wheel != 0 {
				a.orbit.HandleZoom(wheel)
			}
		} else if dx != 0 || dy != 0 {
			a.controller.Look(dx, dy)
		}

		// 3. Fixed-step simulation.
		a.world.Frame(dt)

		// 4. Render and present.
		view := FirstPersonView(a.controller)
		if a.orbitView {
			view = a.orbit.ViewMatrix()
		}
		a.renderer.Draw(view, a.proj)
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount),
				zap.String("mode", a.controller.Mode().String()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvent(event Event) {
	switch event.Type {
	case EventQuit:
		a.running = false

	case EventWindowResize:
		a.renderer.Resize(event.Width, event.Height)
		a.updateProjection(event.Width, event.Height)

	case EventToggleMode:
		next := locomotion.ModeWalk
		if a.controller.Mode() == locomotion.ModeWalk {
			next = locomotion.ModeFly
		}
		a.controller.SetMode(next)

	case EventToggleCollision:
		a.renderer.ShowCollision = !a.renderer.ShowCollision

	case EventToggleCamera:
		a.orbitView = !a.orbitView

	case EventRegenerate:
		if err := a.planet.Regenerate(); err != nil {
			logger.Error("regenerate failed", zap.Error(err))
			return
		}
		a.renderer.SetPlanet(a.planet)
		a.window.SetTitle(fmt.Sprintf("planetsim (seed %d)", a.planet.Seed()))
	}
}

// Close releases the renderer and window.
func (a *App) Close() {
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
