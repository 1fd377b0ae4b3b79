// Package telemetry aggregates per-tick simulation events into window
// statistics and CSV output.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Mode            string  `csv:"mode"`

	// Population at window end
	VortexCount int `csv:"vortices"`
	StrokeCount int `csv:"strokes"`
	InkCount    int `csv:"ink"`

	// Events during window
	ParticleResets  int `csv:"particle_resets"`
	VortexSpawns    int `csv:"vortex_spawns"`
	VortexEvictions int `csv:"vortex_evictions"`
	VortexDecayed   int `csv:"vortex_decayed"`
	StrokeSpawns    int `csv:"stroke_spawns"`
	StrokeEvictions int `csv:"stroke_evictions"`
	InkSpawned      int `csv:"ink_spawned"`
	InkExpired      int `csv:"ink_expired"`

	// Per-tick mean particle speed over the window
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// LogValue implements slog.LogValuer for -log-stats output.
func (w WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", int(w.WindowEndTick)),
		slog.String("mode", w.Mode),
		slog.Int("vortices", w.VortexCount),
		slog.Int("strokes", w.StrokeCount),
		slog.Int("ink", w.InkCount),
		slog.Int("particle_resets", w.ParticleResets),
		slog.Int("vortex_spawns", w.VortexSpawns),
		slog.Int("stroke_spawns", w.StrokeSpawns),
		slog.Int("ink_spawned", w.InkSpawned),
		slog.Float64("speed_mean", w.SpeedMean),
		slog.Float64("speed_p90", w.SpeedP90),
	)
}

// SeriesStats computes mean, standard deviation, and the 10/50/90th
// percentiles of a sample series. Returns zeros for an empty series.
func SeriesStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}
