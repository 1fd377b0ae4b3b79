package telemetry

import (
	"math"
	"testing"

	"github.com/versalarchitect/currents/systems"
)

func TestSeriesStats(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mean, std, p10, p50, p90 := SeriesStats(values)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	// Sample standard deviation of 1..10
	if math.Abs(std-3.0277) > 0.001 {
		t.Errorf("std = %v, want ~3.0277", std)
	}
	if p10 < 1 || p10 > 2 {
		t.Errorf("p10 = %v, want in [1, 2]", p10)
	}
	if p50 < 5 || p50 > 6 {
		t.Errorf("p50 = %v, want in [5, 6]", p50)
	}
	if p90 < 9 || p90 > 10 {
		t.Errorf("p90 = %v, want in [9, 10]", p90)
	}
}

func TestSeriesStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := SeriesStats(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty series should return all zeros")
	}
}

func TestSeriesStatsSingle(t *testing.T) {
	mean, std, p10, p50, p90 := SeriesStats([]float64{3.5})
	if mean != 3.5 || p10 != 3.5 || p50 != 3.5 || p90 != 3.5 {
		t.Errorf("single-element series: mean=%v p10=%v p50=%v p90=%v, want all 3.5", mean, p10, p50, p90)
	}
	if std != 0 {
		t.Errorf("std = %v, want 0", std)
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1.0, 60) // 60-tick windows

	for tick := int32(1); tick <= 60; tick++ {
		c.Record(systems.TickStats{
			ParticleResets: 2,
			VortexSpawns:   1,
			MeanSpeed:      1.5,
			VortexCount:    3,
		})
		done := c.WindowDone(tick)
		if wantDone := tick == 60; done != wantDone {
			t.Fatalf("tick %d: WindowDone = %v, want %v", tick, done, wantDone)
		}
	}

	w := c.Flush(60, systems.ModeCurrents)
	if w.ParticleResets != 120 {
		t.Errorf("particle resets = %d, want 120", w.ParticleResets)
	}
	if w.VortexSpawns != 60 {
		t.Errorf("vortex spawns = %d, want 60", w.VortexSpawns)
	}
	if w.VortexCount != 3 {
		t.Errorf("vortex count = %d, want 3", w.VortexCount)
	}
	if math.Abs(w.SpeedMean-1.5) > 1e-9 {
		t.Errorf("speed mean = %v, want 1.5", w.SpeedMean)
	}
	if w.Mode != "currents" {
		t.Errorf("mode = %q, want currents", w.Mode)
	}
	if math.Abs(w.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("sim time = %v, want 1.0", w.SimTimeSec)
	}

	// Counters reset after flush
	w2 := c.Flush(120, systems.ModeCurrents)
	if w2.ParticleResets != 0 || w2.VortexSpawns != 0 {
		t.Error("counters not reset after flush")
	}
	if w2.WindowStartTick != 60 {
		t.Errorf("window start = %d, want 60", w2.WindowStartTick)
	}
}

func TestPerfCollectorWindow(t *testing.T) {
	p := NewPerfCollector(4)

	for i := 0; i < 6; i++ {
		p.StartTick()
		p.StartPhase(systems.PhaseVortices)
		p.StartPhase(systems.PhaseParticles)
		p.EndTick()
	}

	stats := p.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("avg tick duration should be positive")
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v > max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
	if _, ok := stats.PhaseAvg[systems.PhaseVortices]; !ok {
		t.Error("missing vortices phase")
	}
	if _, ok := stats.PhaseAvg[systems.PhaseParticles]; !ok {
		t.Error("missing particles phase")
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	p := NewPerfCollector(10)
	stats := p.Stats()
	if stats.AvgTickDuration != 0 {
		t.Errorf("avg = %v, want 0 with no samples", stats.AvgTickDuration)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("phase maps should be non-nil")
	}
}
