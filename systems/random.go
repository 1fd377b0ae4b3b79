package systems

import "math/rand"

// Source is the uniform random capability injected into every simulation
// component. Swapping the seed makes whole runs reproducible.
type Source interface {
	// Float returns a uniform value in [min, max).
	Float(min, max float32) float32
	// Int returns a uniform value in [min, max).
	Int(min, max int) int
	// Chance reports true with probability p.
	Chance(p float32) bool
	// Sign returns -1 or +1 with equal probability.
	Sign() float32
}

// Rand is the production Source backed by a seeded math/rand generator.
type Rand struct {
	rng *rand.Rand
}

// NewRand creates a seeded random source.
func NewRand(seed int64) *Rand {
	return &Rand{rng: rand.New(rand.NewSource(seed))}
}

func (r *Rand) Float(min, max float32) float32 {
	return min + r.rng.Float32()*(max-min)
}

func (r *Rand) Int(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rng.Intn(max-min)
}

func (r *Rand) Chance(p float32) bool {
	return r.rng.Float32() < p
}

func (r *Rand) Sign() float32 {
	if r.rng.Float32() < 0.5 {
		return -1
	}
	return 1
}
