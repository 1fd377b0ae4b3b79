package systems

import (
	"github.com/versalarchitect/currents/config"
)

// Mode selects which simulation family a Clock drives.
type Mode uint8

const (
	// ModeCurrents runs the vortex flow field: decaying vortices steering a
	// fixed particle pool over the ambient noise field.
	ModeCurrents Mode = iota
	// ModeGesture runs calligraphic brushwork: periodic strokes shedding
	// ink diffusion particles.
	ModeGesture
)

func (m Mode) String() string {
	if m == ModeGesture {
		return "gesture"
	}
	return "currents"
}

// ParseMode maps a mode flag value to a Mode, defaulting to currents.
func ParseMode(s string) Mode {
	if s == "gesture" {
		return ModeGesture
	}
	return ModeCurrents
}

// Frame is the external per-tick input record: viewport, normalized
// pointer, workload hint, and the driver's counters.
type Frame struct {
	Width, Height      float32
	PointerX, PointerY float32 // normalized [0,1]x[0,1]
	PointerDown        bool    // true on the tick the pointer was pressed
	PointerOver        bool    // pointer inside the viewport
	Reduced            bool    // reduced-workload mode
	Elapsed            float64 // seconds since the driver started
}

// TickStats summarizes one tick for telemetry.
type TickStats struct {
	ParticleResets  int
	MeanSpeed       float64
	VortexSpawns    int
	VortexEvictions int
	VortexDecayed   int
	StrokeSpawns    int
	StrokeEvictions int
	InkSpawned      int
	InkExpired      int
	VortexCount     int
	StrokeCount     int
	InkCount        int
}

// Clock advances one logical tick per animation frame, orchestrating the
// simulation systems in fixed order and pushing all draw intents to the
// injected Surface. It owns every piece of mutable simulation state; the
// noise field and random source are shared read-only services.
type Clock struct {
	cfg  *config.Config
	mode Mode
	tick int32

	width, height float32

	surface Surface
	rng     Source

	particles *ParticleSystem
	vortices  *VortexManager
	strokes   *StrokeGenerator
	ink       *InkSystem

	fadeColor Color

	nextVortexTick int32
	nextStrokeTick int32

	reduced bool

	phase PhaseHook
}

// PhaseHook marks the start of a named tick phase, for perf collection.
type PhaseHook func(name string)

// Phase names reported through the PhaseHook.
const (
	PhaseVortices  = "vortices"
	PhaseParticles = "particles"
	PhaseStrokes   = "strokes"
	PhaseInk       = "ink"
)

// Background is the canvas clear color shared with the renderer.
var Background = Color{R: 12, G: 12, B: 16, A: 255}

// NewClock builds a clock with all systems sized from the config.
func NewClock(cfg *config.Config, mode Mode, surface Surface, noise Field, rng Source) *Clock {
	w := cfg.Derived.ScreenW32
	h := cfg.Derived.ScreenH32

	fade := Background
	fade.A = uint8(cfg.Fade.Alpha * 255)

	c := &Clock{
		cfg:       cfg,
		mode:      mode,
		width:     w,
		height:    h,
		surface:   surface,
		rng:       rng,
		particles: NewParticleSystem(w, h, cfg, noise, rng),
		vortices:  NewVortexManager(&cfg.Vortex, rng),
		strokes:   NewStrokeGenerator(w, h, cfg, noise, rng),
		ink:       NewInkSystem(cfg, rng),
		fadeColor: fade,
	}
	c.scheduleVortex()
	c.scheduleStroke()
	return c
}

// SetPhaseHook installs a callback invoked at the start of each tick phase.
func (c *Clock) SetPhaseHook(h PhaseHook) {
	c.phase = h
}

func (c *Clock) markPhase(name string) {
	if c.phase != nil {
		c.phase(name)
	}
}

// Tick runs one simulation step. Ordering is fixed: force-source decay,
// then particle integration, then stroke cadence, then ink spawn/update.
func (c *Clock) Tick(f Frame) TickStats {
	var stats TickStats

	if f.Reduced != c.reduced {
		c.setReduced(f.Reduced)
	}

	pointer := Pointer{
		X:      f.PointerX * c.width,
		Y:      f.PointerY * c.height,
		Active: f.PointerOver,
	}

	switch c.mode {
	case ModeCurrents:
		c.tickCurrents(f, pointer, &stats)
	case ModeGesture:
		c.tickGesture(f, pointer, &stats)
	}

	stats.VortexCount = c.vortices.Count()
	stats.StrokeCount = c.strokes.Count()
	stats.InkCount = c.ink.Count()

	c.tick++
	return stats
}

func (c *Clock) tickCurrents(f Frame, pointer Pointer, stats *TickStats) {
	// Fractional fade keeps trails while old pixels sink into the background
	c.surface.Fade(c.fadeColor)

	c.markPhase(PhaseVortices)
	stats.VortexDecayed = c.vortices.Tick()

	if c.tick >= c.nextVortexTick {
		if c.vortices.SpawnRandom(c.width, c.height) {
			stats.VortexEvictions++
		}
		stats.VortexSpawns++
		c.scheduleVortex()
	}
	if f.PointerDown {
		if c.vortices.SpawnAt(pointer.X, pointer.Y) {
			stats.VortexEvictions++
		}
		stats.VortexSpawns++
	}

	c.markPhase(PhaseParticles)
	stats.ParticleResets, stats.MeanSpeed = c.particles.Tick(c.tick, c.vortices, pointer, c.surface)
}

func (c *Clock) tickGesture(f Frame, pointer Pointer, stats *TickStats) {
	c.markPhase(PhaseStrokes)
	c.strokes.Tick()

	if c.tick >= c.nextStrokeTick {
		stroke, evicted := c.strokes.Generate(c.tick, c.surface)
		if evicted {
			stats.StrokeEvictions++
		}
		stats.StrokeSpawns++
		stats.InkSpawned += c.ink.Spawn(stroke, c.spawnAmount())
		c.scheduleStroke()
	}
	if f.PointerDown {
		stroke, evicted := c.strokes.GenerateAt(pointer.X, pointer.Y, c.tick, c.surface)
		if evicted {
			stats.StrokeEvictions++
		}
		stats.StrokeSpawns++
		stats.InkSpawned += c.ink.Spawn(stroke, c.spawnAmount())
	}

	// Trickle bleed off existing strokes while under target
	c.markPhase(PhaseInk)
	if c.ink.Count() < c.cfg.Ink.TargetCount {
		if s := c.strokes.Pick(); s != nil {
			n := c.rng.Int(1, 4)
			if c.reduced {
				n = 1
			}
			stats.InkSpawned += c.ink.Spawn(s, n)
		}
	}

	stats.InkExpired = c.ink.Tick(c.surface)
}

// spawnAmount is the per-stroke ink burst, halved under reduced workload.
func (c *Clock) spawnAmount() int {
	n := c.ink.SpawnAmount()
	if c.reduced {
		n = (n + 1) / 2
	}
	return n
}

func (c *Clock) setReduced(on bool) {
	c.reduced = on
	if on {
		c.particles.SetActive(c.cfg.Particles.ReducedCount)
	} else {
		c.particles.SetActive(c.cfg.Particles.Count)
	}
}

func (c *Clock) scheduleVortex() {
	vc := &c.cfg.Vortex
	interval := c.rng.Int(vc.MinSpawnInterval, vc.MaxSpawnInterval+1)
	c.nextVortexTick = c.tick + int32(interval)
}

func (c *Clock) scheduleStroke() {
	sc := &c.cfg.Stroke
	interval := c.rng.Int(sc.MinInterval, sc.MaxInterval+1)
	if c.reduced {
		interval *= 2
	}
	c.nextStrokeTick = c.tick + int32(interval)
}

// Resize is the one designed discontinuity: all transient state is
// reinitialized and the persistent surface recreated at the new size.
func (c *Clock) Resize(width, height int) {
	c.width = float32(width)
	c.height = float32(height)
	c.surface.Recreate(width, height)
	c.particles.Resize(c.width, c.height)
	c.strokes.Resize(c.width, c.height)
	c.ink.Reset()
	c.vortices.Reset()
	c.scheduleVortex()
	c.scheduleStroke()
}

// SetMode switches the active simulation family. The surface keeps its
// accumulated pixels; only the tick chains change.
func (c *Clock) SetMode(m Mode) {
	c.mode = m
}

// Mode returns the active mode.
func (c *Clock) Mode() Mode {
	return c.mode
}

// Ticks returns the number of completed ticks.
func (c *Clock) Ticks() int32 {
	return c.tick
}

// Vortices exposes the vortex manager, for pointer tooling and tests.
func (c *Clock) Vortices() *VortexManager {
	return c.vortices
}

// Particles exposes the particle system for tests.
func (c *Clock) Particles() *ParticleSystem {
	return c.particles
}

// Strokes exposes the stroke generator for tests.
func (c *Clock) Strokes() *StrokeGenerator {
	return c.strokes
}

// Ink exposes the ink system for tests.
func (c *Clock) Ink() *InkSystem {
	return c.ink
}
