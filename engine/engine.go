// Package engine owns the run loop: it wires the simulation clock to a
// drawing surface, feeds it per-frame input, and flushes telemetry.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/versalarchitect/currents/config"
	"github.com/versalarchitect/currents/renderer"
	"github.com/versalarchitect/currents/systems"
	"github.com/versalarchitect/currents/telemetry"
	"github.com/versalarchitect/currents/ui"
)

// Options configures an engine run.
type Options struct {
	Seed           int64
	Mode           systems.Mode
	Headless       bool
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	StepsPerUpdate int
	Reduced        bool
}

// Engine drives the simulation. In graphical mode it owns the raylib canvas
// and control panel; in headless mode draw intents go to a Recorder so runs
// stay comparable by hash.
type Engine struct {
	cfg  *config.Config
	opts Options

	clock    *systems.Clock
	canvas   *renderer.Canvas
	recorder *systems.Recorder
	panel    *ui.Panel

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager

	start   time.Time
	paused  bool
	reduced bool
}

// NewEngine builds an engine from global config and options. In graphical
// mode the raylib window must already exist.
func NewEngine(opts Options) (*Engine, error) {
	cfg := config.Cfg()

	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	e := &Engine{
		cfg:       cfg,
		opts:      opts,
		collector: telemetry.NewCollector(statsWindow, float64(cfg.Screen.TargetFPS)),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		start:     time.Now(),
		reduced:   opts.Reduced,
	}

	noise := systems.NewSimplexField(opts.Seed)
	rng := systems.NewRand(opts.Seed)

	var surface systems.Surface
	if opts.Headless {
		e.recorder = systems.NewRecorder()
		surface = e.recorder
	} else {
		e.canvas = renderer.NewCanvas(cfg.Screen.Width, cfg.Screen.Height)
		surface = e.canvas
		e.panel = ui.NewPanel(cfg.Screen.Width)
	}

	e.clock = systems.NewClock(cfg, opts.Mode, surface, noise, rng)
	e.clock.SetPhaseHook(e.perf.StartPhase)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("creating output manager: %w", err)
		}
		if err := om.WriteConfig(cfg); err != nil {
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
		e.output = om
	}

	return e, nil
}

// step runs one simulation tick with the given frame input.
func (e *Engine) step(f systems.Frame) {
	e.perf.StartTick()

	if e.canvas != nil {
		e.canvas.Begin()
	}
	stats := e.clock.Tick(f)
	if e.canvas != nil {
		e.canvas.End()
	}

	e.perf.StartPhase(telemetry.PhaseTelemetry)
	e.collector.Record(stats)
	if e.collector.WindowDone(e.clock.Ticks()) {
		e.flushStats()
	}
	e.perf.EndTick()
}

// flushStats closes the current stats window, logging and writing CSV
// according to options.
func (e *Engine) flushStats() {
	stats := e.collector.Flush(e.clock.Ticks(), e.clock.Mode())
	perfStats := e.perf.Stats()

	if e.opts.LogStats {
		slog.Info("stats", "window", stats)
		slog.Info("perf", "window", perfStats)
	}

	if e.output != nil {
		if err := e.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := e.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// UpdateHeadless advances the simulation without any raylib calls. Elapsed
// time is derived from the tick counter so repeated runs stay identical.
func (e *Engine) UpdateHeadless() {
	for i := 0; i < e.opts.StepsPerUpdate; i++ {
		f := systems.Frame{
			Width:   e.cfg.Derived.ScreenW32,
			Height:  e.cfg.Derived.ScreenH32,
			Reduced: e.reduced,
			Elapsed: float64(e.clock.Ticks()) / float64(e.cfg.Screen.TargetFPS),
		}
		e.step(f)
	}
}

// Tick returns the number of completed simulation ticks.
func (e *Engine) Tick() int32 {
	return e.clock.Ticks()
}

// Mode returns the active simulation mode.
func (e *Engine) Mode() systems.Mode {
	return e.clock.Mode()
}

// Recorder returns the headless intent recorder, nil in graphical mode.
func (e *Engine) Recorder() *systems.Recorder {
	return e.recorder
}

// Close flushes any open window and releases resources.
func (e *Engine) Close() {
	if e.collector.WindowDone(e.clock.Ticks()) {
		e.flushStats()
	}
	if e.canvas != nil {
		e.canvas.Unload()
	}
	if e.output != nil {
		if err := e.output.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}
