package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/versalarchitect/currents/config"
	"github.com/versalarchitect/currents/engine"
	"github.com/versalarchitect/currents/systems"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	mode := flag.String("mode", "currents", "Simulation mode: currents or gesture")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	reduced := flag.Bool("reduced", false, "Start in reduced-workload mode")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := engine.Options{
		Seed:           rngSeed,
		Mode:           systems.ParseMode(*mode),
		Headless:       *headless,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
		Reduced:        *reduced,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		e, err := engine.NewEngine(opts)
		if err != nil {
			slog.Error("failed to create engine", "error", err)
			os.Exit(1)
		}
		defer e.Close()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"mode", e.Mode().String(),
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
		)

		for {
			e.UpdateHeadless()

			if *maxTicks > 0 && int(e.Tick()) >= *maxTicks {
				slog.Info("max ticks reached",
					"tick", e.Tick(),
					"intent_hash", e.Recorder().Sum64(),
				)
				return
			}
		}
	} else {
		// Graphical mode
		rl.SetConfigFlags(rl.FlagWindowResizable)
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Currents")
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		e, err := engine.NewEngine(opts)
		if err != nil {
			slog.Error("failed to create engine", "error", err)
			os.Exit(1)
		}
		defer e.Close()

		for !rl.WindowShouldClose() {
			e.Update()
			e.Draw()

			if *maxTicks > 0 && int(e.Tick()) >= *maxTicks {
				break
			}
		}
	}
}
