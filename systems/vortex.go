package systems

import (
	"github.com/versalarchitect/currents/config"
)

// Vortex is a transient, decaying point source of rotational and radial
// force in the particle field.
type Vortex struct {
	X, Y     float32
	Strength float32 // signed; magnitude decays every tick
	Radius   float32
	Sense    float32 // rotation direction, -1 or +1
	Decay    float32 // strength multiplier per tick
}

// VortexManager owns the bounded set of active vortices in a fixed-capacity
// ring buffer. Insertion past capacity evicts the oldest vortex, so force
// computation cost per particle is bounded by the capacity constant no
// matter how long the simulation runs.
type VortexManager struct {
	ring    []Vortex
	scratch []Vortex // reused by Tick compaction
	head    int      // index of oldest vortex
	num     int

	decay        float32
	epsilon      float32
	minRadius    float32
	maxRadius    float32
	minMagnitude float32
	maxMagnitude float32

	rng Source
}

// NewVortexManager creates an empty manager with the configured capacity.
func NewVortexManager(cfg *config.VortexConfig, rng Source) *VortexManager {
	capacity := cfg.MaxCount
	if capacity < 1 {
		capacity = 1
	}
	return &VortexManager{
		ring:         make([]Vortex, capacity),
		scratch:      make([]Vortex, capacity),
		decay:        float32(cfg.Decay),
		epsilon:      float32(cfg.Epsilon),
		minRadius:    float32(cfg.MinRadius),
		maxRadius:    float32(cfg.MaxRadius),
		minMagnitude: float32(cfg.MinMagnitude),
		maxMagnitude: float32(cfg.MaxMagnitude),
		rng:          rng,
	}
}

// Spawn inserts a vortex at (x, y). Rotation direction and radius are
// randomized; magnitude keeps its sign randomized independently of the
// rotation sense so attraction and rotation vary freely.
// Returns true if the insertion evicted the oldest vortex.
func (m *VortexManager) Spawn(x, y, magnitude float32) bool {
	v := Vortex{
		X:        x,
		Y:        y,
		Strength: magnitude * m.rng.Sign(),
		Radius:   m.rng.Float(m.minRadius, m.maxRadius),
		Sense:    m.rng.Sign(),
		Decay:    m.decay,
	}

	evicted := false
	if m.num == len(m.ring) {
		// Overwrite the oldest slot
		m.head = (m.head + 1) % len(m.ring)
		m.num--
		evicted = true
	}
	m.ring[(m.head+m.num)%len(m.ring)] = v
	m.num++
	return evicted
}

// SpawnAt inserts a vortex at (x, y) with a magnitude drawn from the
// configured range.
func (m *VortexManager) SpawnAt(x, y float32) bool {
	return m.Spawn(x, y, m.rng.Float(m.minMagnitude, m.maxMagnitude))
}

// SpawnRandom inserts a vortex at a random position within the bounds with
// a magnitude drawn from the configured range.
func (m *VortexManager) SpawnRandom(width, height float32) bool {
	x := m.rng.Float(0, width)
	y := m.rng.Float(0, height)
	return m.SpawnAt(x, y)
}

// Tick decays every vortex and removes those whose strength has dropped
// below epsilon. Returns the number removed.
func (m *VortexManager) Tick() int {
	removed := 0
	kept := 0
	for i := 0; i < m.num; i++ {
		v := m.ring[(m.head+i)%len(m.ring)]
		v.Strength *= v.Decay
		if abs32(v.Strength) < m.epsilon {
			removed++
			continue
		}
		m.scratch[kept] = v
		kept++
	}
	// Rewrite survivors in FIFO order from slot 0
	copy(m.ring, m.scratch[:kept])
	for i := kept; i < len(m.ring); i++ {
		m.ring[i] = Vortex{}
	}
	m.head = 0
	m.num = kept
	return removed
}

// ForEach iterates active vortices oldest-first for force computation.
// The callback must treat the vortex as read-only.
func (m *VortexManager) ForEach(fn func(v *Vortex)) {
	for i := 0; i < m.num; i++ {
		fn(&m.ring[(m.head+i)%len(m.ring)])
	}
}

// Count returns the number of active vortices.
func (m *VortexManager) Count() int {
	return m.num
}

// Reset removes all vortices.
func (m *VortexManager) Reset() {
	for i := range m.ring {
		m.ring[i] = Vortex{}
	}
	m.head = 0
	m.num = 0
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
