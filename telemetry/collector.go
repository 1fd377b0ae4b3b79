package telemetry

import (
	"github.com/versalarchitect/currents/systems"
)

// Collector accumulates per-tick simulation events and produces WindowStats
// at window boundaries.
type Collector struct {
	windowTicks int32
	ticksPerSec float64

	windowStartTick int32

	// Event counters for the current window
	particleResets  int
	vortexSpawns    int
	vortexEvictions int
	vortexDecayed   int
	strokeSpawns    int
	strokeEvictions int
	inkSpawned      int
	inkExpired      int

	// Per-tick mean speed samples
	speeds []float64

	// Last-seen population counts
	vortexCount int
	strokeCount int
	inkCount    int
}

// NewCollector creates a collector with the given window length.
// windowSec is the window duration in simulation seconds, ticksPerSec the
// nominal tick rate used for the tick-to-time conversion.
func NewCollector(windowSec float64, ticksPerSec float64) *Collector {
	windowTicks := int32(windowSec * ticksPerSec)
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: windowTicks,
		ticksPerSec: ticksPerSec,
		speeds:      make([]float64, 0, windowTicks),
	}
}

// Record folds one tick's stats into the current window.
func (c *Collector) Record(s systems.TickStats) {
	c.particleResets += s.ParticleResets
	c.vortexSpawns += s.VortexSpawns
	c.vortexEvictions += s.VortexEvictions
	c.vortexDecayed += s.VortexDecayed
	c.strokeSpawns += s.StrokeSpawns
	c.strokeEvictions += s.StrokeEvictions
	c.inkSpawned += s.InkSpawned
	c.inkExpired += s.InkExpired

	if s.MeanSpeed > 0 {
		c.speeds = append(c.speeds, s.MeanSpeed)
	}

	c.vortexCount = s.VortexCount
	c.strokeCount = s.StrokeCount
	c.inkCount = s.InkCount
}

// WindowDone reports whether the window ending at tick is complete.
func (c *Collector) WindowDone(tick int32) bool {
	return tick-c.windowStartTick >= c.windowTicks
}

// Flush builds the WindowStats for the window ending at tick and resets the
// counters for the next one.
func (c *Collector) Flush(tick int32, mode systems.Mode) WindowStats {
	mean, std, p10, p50, p90 := SeriesStats(c.speeds)

	w := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		SimTimeSec:      float64(tick) / c.ticksPerSec,
		Mode:            mode.String(),
		VortexCount:     c.vortexCount,
		StrokeCount:     c.strokeCount,
		InkCount:        c.inkCount,
		ParticleResets:  c.particleResets,
		VortexSpawns:    c.vortexSpawns,
		VortexEvictions: c.vortexEvictions,
		VortexDecayed:   c.vortexDecayed,
		StrokeSpawns:    c.strokeSpawns,
		StrokeEvictions: c.strokeEvictions,
		InkSpawned:      c.inkSpawned,
		InkExpired:      c.inkExpired,
		SpeedMean:       mean,
		SpeedStd:        std,
		SpeedP10:        p10,
		SpeedP50:        p50,
		SpeedP90:        p90,
	}

	c.windowStartTick = tick
	c.particleResets = 0
	c.vortexSpawns = 0
	c.vortexEvictions = 0
	c.vortexDecayed = 0
	c.strokeSpawns = 0
	c.strokeEvictions = 0
	c.inkSpawned = 0
	c.inkExpired = 0
	c.speeds = c.speeds[:0]

	return w
}
