package systems

import (
	"math"

	"github.com/versalarchitect/currents/config"
)

// InkParticle is a short-lived particle drifting off a stroke to emulate
// ink bleed. Size and life only ever shrink.
type InkParticle struct {
	X, Y       float32
	VelX, VelY float32
	Size       float32
	Alpha      float32
	Life       int32
	MaxLife    int32
}

// InkSystem spawns and evolves ink diffusion particles. The population is
// soft-capped at twice the target count: spawns are skipped above the cap
// rather than evicting live particles.
type InkSystem struct {
	particles []InkParticle

	rng Source

	softCap       int
	minSpawn      int
	maxSpawn      int
	diffusionRate float32
	drift         float32
	damping       float32
	shrink        float32
	sizeFloor     float32
	minLife       int32
	maxLife       int32
	haloScale     float32
}

// Ink bleed colors: a soft blue-grey halo around a denser near-black core.
var (
	inkHaloColor = Color{R: 96, G: 110, B: 134}
	inkCoreColor = Color{R: 30, G: 34, B: 44}
)

// NewInkSystem creates an empty ink system.
func NewInkSystem(cfg *config.Config, rng Source) *InkSystem {
	ic := cfg.Ink
	return &InkSystem{
		particles:     make([]InkParticle, 0, cfg.Derived.SoftCap),
		rng:           rng,
		softCap:       cfg.Derived.SoftCap,
		minSpawn:      ic.MinSpawn,
		maxSpawn:      ic.MaxSpawn,
		diffusionRate: float32(ic.DiffusionRate),
		drift:         float32(ic.Drift),
		damping:       float32(ic.Damping),
		shrink:        float32(ic.Shrink),
		sizeFloor:     float32(ic.SizeFloor),
		minLife:       int32(ic.MinLife),
		maxLife:       int32(ic.MaxLife),
		haloScale:     float32(ic.HaloScale),
	}
}

// Spawn samples count random points of the stroke and launches an ink
// particle perpendicular to the local heading from each. Skipped entirely
// while the population sits above the soft cap. Returns the number spawned.
func (s *InkSystem) Spawn(stroke *Stroke, count int) int {
	if stroke == nil || len(stroke.Points) == 0 {
		return 0
	}
	if len(s.particles) >= s.softCap {
		return 0
	}

	spawned := 0
	for i := 0; i < count && len(s.particles) < s.softCap; i++ {
		pt := &stroke.Points[s.rng.Int(0, len(stroke.Points))]

		// Perpendicular to the stroke, jittered, random side
		angle := pt.Heading + float32(math.Pi/2)*s.rng.Sign() + s.rng.Float(-0.35, 0.35)
		speed := s.diffusionRate * s.rng.Float(0.3, 1)
		life := int32(s.rng.Int(int(s.minLife), int(s.maxLife)))

		s.particles = append(s.particles, InkParticle{
			X:       pt.X,
			Y:       pt.Y,
			VelX:    float32(math.Cos(float64(angle))) * speed,
			VelY:    float32(math.Sin(float64(angle)))*speed + s.drift,
			Size:    0.6 + 2.4*pt.Pressure,
			Alpha:   stroke.Alpha * s.rng.Float(0.5, 1),
			Life:    life,
			MaxLife: life,
		})
		spawned++
	}
	return spawned
}

// SpawnAmount returns a randomized spawn count from the configured range.
func (s *InkSystem) SpawnAmount() int {
	return s.rng.Int(s.minSpawn, s.maxSpawn+1)
}

// Tick integrates, damps, and shrinks every particle, removing the dead,
// and emits two concentric circles per survivor: a soft halo plus a denser
// core. Returns the number of particles removed.
func (s *InkSystem) Tick(out Surface) int {
	alive := 0
	removed := 0
	for i := range s.particles {
		p := &s.particles[i]

		p.X += p.VelX
		p.Y += p.VelY
		p.VelX *= s.damping
		p.VelY *= s.damping
		p.Life--
		p.Size *= s.shrink

		if p.Life <= 0 || p.Size < s.sizeFloor {
			removed++
			continue
		}

		lifeRatio := float32(p.Life) / float32(p.MaxLife)

		halo := inkHaloColor
		halo.A = uint8(p.Alpha * lifeRatio * 70)
		out.Circle(p.X, p.Y, p.Size*s.haloScale, halo)

		core := inkCoreColor
		core.A = uint8(clamp32(p.Alpha*lifeRatio*1.8, 0, 1) * 160)
		out.Circle(p.X, p.Y, p.Size, core)

		s.particles[alive] = s.particles[i]
		alive++
	}
	s.particles = s.particles[:alive]
	return removed
}

// Count returns the number of live ink particles.
func (s *InkSystem) Count() int {
	return len(s.particles)
}

// Particles exposes the live particles for tests.
func (s *InkSystem) Particles() []InkParticle {
	return s.particles
}

// Reset drops all particles.
func (s *InkSystem) Reset() {
	s.particles = s.particles[:0]
}
