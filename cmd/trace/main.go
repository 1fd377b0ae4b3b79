// Trace tool - runs the simulation headless against the intent recorder and
// prints the draw-intent hash, for comparing runs across changes.
//
// Usage: go run ./cmd/trace -seed 42 -mode gesture -ticks 600
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/versalarchitect/currents/config"
	"github.com/versalarchitect/currents/systems"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	mode := flag.String("mode", "currents", "Simulation mode: currents or gesture")
	seed := flag.Int64("seed", 1, "RNG seed")
	ticks := flag.Int("ticks", 600, "Number of ticks to run")
	pointer := flag.Bool("pointer", false, "Inject a scripted pointer press every 97 ticks")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rec := systems.NewRecorder()
	clock := systems.NewClock(
		cfg,
		systems.ParseMode(*mode),
		rec,
		systems.NewSimplexField(*seed),
		systems.NewRand(*seed),
	)

	for i := 0; i < *ticks; i++ {
		f := systems.Frame{
			Width:   cfg.Derived.ScreenW32,
			Height:  cfg.Derived.ScreenH32,
			Elapsed: float64(i) / float64(cfg.Screen.TargetFPS),
		}
		if *pointer && i%97 == 0 {
			f.PointerX = 0.5
			f.PointerY = 0.5
			f.PointerDown = true
			f.PointerOver = true
		}
		clock.Tick(f)
	}

	fmt.Printf("mode=%s seed=%d ticks=%d\n", clock.Mode(), *seed, *ticks)
	fmt.Printf("hash=%016x\n", rec.Sum64())
	fmt.Printf("intents=%d lines=%d points=%d circles=%d fades=%d\n",
		rec.Total(), rec.Lines, rec.Points, rec.Circles, rec.Fades)
}
