// cmd/client/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-glide/pkg/config"
	"github.com/opd-ai/go-glide/pkg/engine"
	"github.com/opd-ai/go-glide/pkg/logging"
	"github.com/opd-ai/go-glide/pkg/physics"
	engorender "github.com/opd-ai/go-glide/pkg/render/engo"
	"github.com/opd-ai/go-glide/pkg/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	width := flag.Int("width", 1024, "Window width")
	height := flag.Int("height", 768, "Window height")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.NewLogger().Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}
	logger := logging.NewLoggerWithWriter(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	metrics, err := telemetry.NewMetrics(nil)
	if err != nil {
		logger.Error(ctx, "Failed to create metrics", err)
		os.Exit(1)
	}

	sim, err := engine.NewSimulation(cfg, engine.Options{
		Logger:    logger,
		Metrics:   metrics,
		Obstacles: courseObstacles(cfg),
	})
	if err != nil {
		logger.Error(ctx, "Failed to create simulation", err)
		os.Exit(1)
	}

	scene := engorender.NewGlideScene(sim, logger)

	opts := engo.RunOptions{
		Title:          "Go Glide",
		Width:          *width,
		Height:         *height,
		Fullscreen:     *fullscreen,
		VSync:          true,
		StandardInputs: false,
	}

	logger.Info(sim.Context(), "Starting client",
		"width", *width,
		"height", *height,
	)
	engo.Run(opts, scene)
}

// courseObstacles lays a row of spheres ahead of the spawn point, alternating
// above and below the glide path.
func courseObstacles(cfg *config.Config) []physics.Sphere {
	spawn := mgl64.Vec3(cfg.Simulation.SpawnPosition)
	obstacles := make([]physics.Sphere, 0, 12)
	for i := 1; i <= 12; i++ {
		offset := 6.0
		if i%2 == 0 {
			offset = -offset
		}
		obstacles = append(obstacles, physics.Sphere{
			Center: spawn.Add(mgl64.Vec3{0, offset - float64(i), float64(i) * 25}),
			Radius: 2,
		})
	}
	return obstacles
}
