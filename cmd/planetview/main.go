// Package main is the interactive planet viewer: walk or fly over a
// generated planet in an SDL2/OpenGL window.
//
// Controls: WASD move, mouse look, Space jump/ascend, Shift descend,
// F toggles Fly/Walk, Tab toggles the orbit inspection camera, C toggles the
// collision wireframe, R regenerates the planet, Esc quits.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Theoffs06/godot-planets/internal/config"
	"github.com/Theoffs06/godot-planets/internal/logger"
	"github.com/Theoffs06/godot-planets/internal/viewer"
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

	app, err := viewer.NewApp(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
