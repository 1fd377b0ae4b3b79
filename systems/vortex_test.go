package systems

import (
	"math"
	"testing"

	"github.com/versalarchitect/currents/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func TestVortexDecayLaw(t *testing.T) {
	cfg := testConfig(t)
	m := NewVortexManager(&cfg.Vortex, NewRand(1))

	m.Spawn(100, 100, 3.0)

	decay := cfg.Vortex.Decay
	for k := 1; k <= 100; k++ {
		m.Tick()
		if m.Count() != 1 {
			t.Fatalf("vortex removed early at tick %d", k)
		}
		want := 3.0 * math.Pow(decay, float64(k))
		var got float64
		m.ForEach(func(v *Vortex) { got = math.Abs(float64(v.Strength)) })
		if math.Abs(got-want) > 1e-3 {
			t.Fatalf("tick %d: |strength| = %v, want %v", k, got, want)
		}
	}

	// After 100 ticks of 0.995 decay, 3.0 has dropped to about 1.82
	var mag float64
	m.ForEach(func(v *Vortex) { mag = math.Abs(float64(v.Strength)) })
	if math.Abs(mag-1.82) > 0.01 {
		t.Errorf("|strength| after 100 ticks = %v, want ~1.82", mag)
	}
}

func TestVortexEpsilonRemoval(t *testing.T) {
	cfg := testConfig(t)
	m := NewVortexManager(&cfg.Vortex, NewRand(1))
	m.Spawn(0, 0, 3.0)

	k := 0
	for m.Count() > 0 {
		m.Tick()
		k++
		if k > 5000 {
			t.Fatal("vortex never removed")
		}
	}

	// Removal happens on the first tick where 3*0.995^k < epsilon
	decay := cfg.Vortex.Decay
	eps := cfg.Vortex.Epsilon
	if 3.0*math.Pow(decay, float64(k)) >= eps {
		t.Errorf("removed at tick %d but magnitude still >= epsilon", k)
	}
	if 3.0*math.Pow(decay, float64(k-1)) < eps {
		t.Errorf("removed at tick %d but should have been removed earlier", k)
	}
	minTick := math.Log(eps/3.0) / math.Log(decay)
	if float64(k) < minTick {
		t.Errorf("removed at tick %d, before the %v lower bound", k, minTick)
	}
}

func TestVortexCapacityFIFO(t *testing.T) {
	cfg := testConfig(t)
	cfg.Vortex.MaxCount = 3
	m := NewVortexManager(&cfg.Vortex, NewRand(1))

	for i := 0; i < 5; i++ {
		evicted := m.Spawn(float32(i), 0, 2.0)
		if wantEvict := i >= 3; evicted != wantEvict {
			t.Errorf("spawn %d: evicted = %v, want %v", i, evicted, wantEvict)
		}
		if m.Count() > 3 {
			t.Fatalf("count %d exceeds capacity", m.Count())
		}
	}

	// Oldest two were evicted; survivors are spawns 2, 3, 4 in order
	var xs []float32
	m.ForEach(func(v *Vortex) { xs = append(xs, v.X) })
	want := []float32{2, 3, 4}
	for i, x := range xs {
		if x != want[i] {
			t.Errorf("survivor %d at x=%v, want %v", i, x, want[i])
		}
	}
}

func TestVortexTickCompactsAfterWrap(t *testing.T) {
	cfg := testConfig(t)
	cfg.Vortex.MaxCount = 3
	m := NewVortexManager(&cfg.Vortex, NewRand(1))

	// Wrap the ring so head is nonzero, with one vortex about to expire
	for i := 0; i < 4; i++ {
		m.Spawn(float32(i), 0, 2.0)
	}
	m.ForEach(func(v *Vortex) {
		if v.X == 2 {
			v.Strength = 0.1 // dies on the next decay tick
		}
	})

	removed := m.Tick()
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	var xs []float32
	m.ForEach(func(v *Vortex) { xs = append(xs, v.X) })
	want := []float32{1, 3}
	if len(xs) != len(want) {
		t.Fatalf("survivors = %v, want %v", xs, want)
	}
	for i := range want {
		if xs[i] != want[i] {
			t.Errorf("survivor %d at x=%v, want %v", i, xs[i], want[i])
		}
	}
}

func TestVortexReset(t *testing.T) {
	cfg := testConfig(t)
	m := NewVortexManager(&cfg.Vortex, NewRand(1))
	m.Spawn(0, 0, 2.0)
	m.Spawn(1, 0, 2.0)
	m.Reset()
	if m.Count() != 0 {
		t.Errorf("count after reset = %d, want 0", m.Count())
	}
}
