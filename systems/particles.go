package systems

import (
	"math"

	"github.com/versalarchitect/currents/config"
)

// Particle is a single flow particle. Particles are allocated once at pool
// init and reset in place when they expire or leave the bounds.
type Particle struct {
	X, Y         float32
	PrevX, PrevY float32
	VelX, VelY   float32
	Age          int32
	MaxAge       int32
}

// Pointer is the per-tick pointer state in surface pixel coordinates.
type Pointer struct {
	X, Y   float32
	Active bool
}

// ParticleSystem owns the fixed-size particle pool. Each tick it computes a
// force field (ambient noise + vortices + pointer repulsion), integrates
// motion with momentum smoothing, and emits one line segment per particle.
type ParticleSystem struct {
	pool   []Particle
	active int // particles simulated per tick; lowered in reduced mode

	width, height float32

	noise Field
	rng   Source

	// Ambient field
	flowScale float64
	timeScale float64
	turns     float64
	baseForce float32

	// Integration
	momentum   float32
	speedScale float32
	margin     float32
	minAge     int32
	maxAge     int32

	// Draw-intent shaping
	fadeIn    float32
	fadeOut   float32
	glowSpeed float32

	// Vortex inward pull relative to tangential force
	pullScale float32

	// Pointer repulsion
	repulseRadius float32
	repulseForce  float32
}

// Particle draw colors. The pale blue reads as water-borne ink on the dark
// surface; the glow point is near-white.
var (
	trailColor = Color{R: 168, G: 201, B: 255}
	glowColor  = Color{R: 235, G: 244, B: 255}
)

// NewParticleSystem allocates the full pool and randomizes every particle.
func NewParticleSystem(width, height float32, cfg *config.Config, noise Field, rng Source) *ParticleSystem {
	p := cfg.Particles
	s := &ParticleSystem{
		pool:          make([]Particle, p.Count),
		active:        p.Count,
		width:         width,
		height:        height,
		noise:         noise,
		rng:           rng,
		flowScale:     cfg.Noise.FlowScale,
		timeScale:     cfg.Noise.TimeScale,
		turns:         cfg.Noise.Turns,
		baseForce:     float32(p.BaseForce),
		momentum:      float32(p.Momentum),
		speedScale:    float32(p.SpeedScale),
		margin:        float32(p.BoundsMargin),
		minAge:        int32(p.MinAge),
		maxAge:        int32(p.MaxAge),
		fadeIn:        float32(p.FadeInTicks),
		fadeOut:       float32(p.FadeOutTicks),
		glowSpeed:     float32(p.GlowSpeed),
		pullScale:     float32(cfg.Vortex.PullScale),
		repulseRadius: float32(cfg.Pointer.RepulseRadius),
		repulseForce:  float32(cfg.Pointer.Strength),
	}
	for i := range s.pool {
		s.reset(&s.pool[i])
	}
	return s
}

// SetActive bounds the number of simulated particles, for reduced-workload
// mode. Clamped to the pool size.
func (s *ParticleSystem) SetActive(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(s.pool) {
		n = len(s.pool)
	}
	s.active = n
}

// Active returns the number of particles simulated per tick.
func (s *ParticleSystem) Active() int {
	return s.active
}

// Resize repositions the whole pool for a new viewport. Ages restart so the
// fresh canvas fades in rather than inheriting mid-life trails.
func (s *ParticleSystem) Resize(width, height float32) {
	s.width = width
	s.height = height
	for i := range s.pool {
		s.reset(&s.pool[i])
	}
}

// Tick advances every active particle one step and emits its draw intents.
// Returns the number of in-place resets and the mean speed over the pool,
// which telemetry aggregates per window.
func (s *ParticleSystem) Tick(tick int32, vortices *VortexManager, pointer Pointer, out Surface) (resets int, meanSpeed float64) {
	t := float64(tick) * s.timeScale
	var speedSum float64

	for i := 0; i < s.active; i++ {
		p := &s.pool[i]
		p.PrevX, p.PrevY = p.X, p.Y

		// Ambient field: noise sample mapped to an angle over several full
		// turns, applied as a unit force of fixed small magnitude.
		n := s.noise.Sample(float64(p.X)*s.flowScale, float64(p.Y)*s.flowScale, t)
		angle := n * s.turns * 2 * math.Pi
		fx := float32(math.Cos(angle)) * s.baseForce
		fy := float32(math.Sin(angle)) * s.baseForce

		// Vortex forces: tangential rotation plus a smaller inward pull.
		vortices.ForEach(func(v *Vortex) {
			dx := p.X - v.X
			dy := p.Y - v.Y
			dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
			if dist <= 1 || dist > v.Radius*3 {
				return
			}
			tangential := v.Strength * v.Sense * expDecay(dist, v.Radius)
			fx += (-dy / dist) * tangential
			fy += (dx / dist) * tangential

			pull := v.Strength * s.pullScale * expDecay(dist, v.Radius*0.5)
			fx += (-dx / dist) * pull
			fy += (-dy / dist) * pull
		})

		// Pointer repulsion
		if pointer.Active && s.repulseRadius > 0 {
			dx := p.X - pointer.X
			dy := p.Y - pointer.Y
			dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
			if dist > 1 && dist < s.repulseRadius {
				push := (1 - dist/s.repulseRadius) * s.repulseForce
				fx += (dx / dist) * push
				fy += (dy / dist) * push
			}
		}

		// Momentum integration: the field steers velocity, it never sets it
		p.VelX = p.VelX*s.momentum + fx*s.speedScale
		p.VelY = p.VelY*s.momentum + fy*s.speedScale
		p.X += p.VelX
		p.Y += p.VelY
		p.Age++

		speed := float32(math.Sqrt(float64(p.VelX*p.VelX + p.VelY*p.VelY)))
		speedSum += float64(speed)

		s.emit(p, speed, out)

		if p.Age >= p.MaxAge || s.outOfBounds(p) {
			s.reset(p)
			resets++
		}
	}

	if s.active > 0 {
		meanSpeed = speedSum / float64(s.active)
	}
	return resets, meanSpeed
}

// emit pushes the particle's segment, and a highlight point when it is
// moving fast enough to glow.
func (s *ParticleSystem) emit(p *Particle, speed float32, out Surface) {
	// Life fade: ramp in over the first fadeIn ticks, out over the last
	// fadeOut ticks. Draw shaping only; physics ignores it.
	fade := float32(1)
	if age := float32(p.Age); age < s.fadeIn {
		fade = age / s.fadeIn
	}
	if left := float32(p.MaxAge - p.Age); left < s.fadeOut {
		fade *= left / s.fadeOut
	}
	if fade <= 0 {
		return
	}

	glow := speed / s.glowSpeed
	if glow > 1 {
		glow = 1
	}
	alpha := fade * (0.25 + 0.55*glow)

	c := trailColor
	c.A = uint8(alpha * 255)
	weight := 0.8 + glow
	out.Line(p.PrevX, p.PrevY, p.X, p.Y, weight, c)

	if speed > s.glowSpeed {
		g := glowColor
		g.A = uint8(fade * 200)
		out.Point(p.X, p.Y, g)
	}
}

func (s *ParticleSystem) outOfBounds(p *Particle) bool {
	return p.X < -s.margin || p.X > s.width+s.margin ||
		p.Y < -s.margin || p.Y > s.height+s.margin
}

// reset re-randomizes a particle in place: new position, small random
// velocity, age zero, new lifetime.
func (s *ParticleSystem) reset(p *Particle) {
	p.X = s.rng.Float(0, s.width)
	p.Y = s.rng.Float(0, s.height)
	p.PrevX, p.PrevY = p.X, p.Y
	p.VelX = s.rng.Float(-0.5, 0.5)
	p.VelY = s.rng.Float(-0.5, 0.5)
	p.Age = 0
	p.MaxAge = int32(s.rng.Int(int(s.minAge), int(s.maxAge)))
}

// Pool exposes the backing pool for tests and telemetry sampling.
func (s *ParticleSystem) Pool() []Particle {
	return s.pool
}

func expDecay(dist, radius float32) float32 {
	return float32(math.Exp(float64(-dist / radius)))
}
