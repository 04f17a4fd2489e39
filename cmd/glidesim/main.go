// cmd/glidesim/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/opd-ai/go-glide/pkg/config"
	"github.com/opd-ai/go-glide/pkg/engine"
	"github.com/opd-ai/go-glide/pkg/logging"
	"github.com/opd-ai/go-glide/pkg/recorder"
	"github.com/opd-ai/go-glide/pkg/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Write the default configuration to -config and exit")
	scriptName := flag.String("script", "mixed", "Input script: "+strings.Join(engine.ScriptNames(), "|"))
	duration := flag.Float64("duration", 0, "Simulated seconds to run, repeating the script (0 runs it once)")
	fps := flag.Float64("fps", 60, "Frame rate the simulation is advanced at")
	recordPath := flag.String("record", "", "SQLite file to record telemetry into")
	flag.Parse()

	ctx := context.Background()

	if *createDefault {
		logger := logging.NewLogger()
		if *configPath == "" {
			logger.Error(ctx, "No configuration path given", fmt.Errorf("-default requires -config"))
			os.Exit(1)
		}
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.NewLogger().Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}
	logger := logging.NewLoggerWithWriter(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	if err := run(ctx, logger, cfg, *scriptName, *duration, *fps, *recordPath); err != nil {
		logger.Error(ctx, "Simulation failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *logging.Logger, cfg *config.Config, scriptName string, duration, fps float64, recordPath string) error {
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %v", fps)
	}
	script, err := engine.NamedScript(scriptName)
	if err != nil {
		return err
	}

	metrics, err := telemetry.NewMetrics(nil)
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	sessionID := logging.NewSessionID()
	ctx = logging.WithSessionID(ctx, sessionID)

	sim, err := engine.NewSimulation(cfg, engine.Options{
		Logger:    logger,
		Metrics:   metrics,
		SessionID: sessionID,
	})
	if err != nil {
		return err
	}

	var samples []telemetry.Sample
	sim.AddSampleSink(func(s telemetry.Sample) {
		samples = append(samples, s)
	})

	logger.Info(ctx, "Running simulation",
		"script", scriptName,
		"duration", duration,
		"tick_rate", cfg.Simulation.TickRate,
	)

	sim.Start()
	frameDT := 1 / fps
	frames := script.Run(sim, frameDT)
	for duration > 0 && sim.ElapsedTime < duration {
		n := script.Run(sim, frameDT)
		if n == 0 {
			break
		}
		frames += n
	}
	sim.Stop()

	summary := telemetry.Summarize(samples, sim.FixedStep())
	logger.Info(ctx, "Simulation finished",
		"frames", frames,
		"ticks", len(samples),
		"transitions", summary.Transitions,
	)
	printSummary(scriptName, summary)

	if recordPath == "" {
		return nil
	}
	return record(ctx, logger, recordPath, scriptName, samples)
}

// record stores the run as a new recorder session
func record(ctx context.Context, logger *logging.Logger, path, name string, samples []telemetry.Sample) error {
	rec, err := recorder.Open(path)
	if err != nil {
		return err
	}
	defer rec.Close()

	session, err := rec.NewSession(name)
	if err != nil {
		return err
	}
	if err := rec.Append(session.ID, samples); err != nil {
		return err
	}

	logger.Info(ctx, "Recorded flight",
		"path", path,
		"recording_id", session.ID,
		"samples", len(samples),
	)
	return nil
}

func printSummary(name string, s telemetry.Summary) {
	fmt.Printf("script:      %s\n", name)
	fmt.Printf("ticks:       %d (%.2fs)\n", s.Samples, s.Duration)
	fmt.Printf("speed:       %.2f .. %.2f\n", s.MinSpeed, s.MaxSpeed)
	fmt.Printf("min boost:   %.2f\n", s.MinBoost)
	fmt.Printf("transitions: %d\n", s.Transitions)

	states := make([]string, 0, len(s.TimeInState))
	for state := range s.TimeInState {
		states = append(states, state)
	}
	sort.Strings(states)
	for _, state := range states {
		fmt.Printf("  %-9s %.2fs\n", state, s.TimeInState[state])
	}
}
