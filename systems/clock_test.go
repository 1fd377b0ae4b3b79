package systems

import (
	"testing"
)

func runClock(t *testing.T, mode Mode, seed int64, ticks int) (*Clock, *Recorder) {
	t.Helper()
	cfg := testConfig(t)
	cfg.Particles.Count = 120 // keep the pool small for test speed
	out := NewRecorder()
	c := NewClock(cfg, mode, out, NewSimplexField(seed), NewRand(seed))

	for i := 0; i < ticks; i++ {
		f := Frame{
			Width:    cfg.Derived.ScreenW32,
			Height:   cfg.Derived.ScreenH32,
			PointerX: 0.5, PointerY: 0.5,
			PointerOver: i%3 == 0,
			PointerDown: i%97 == 0,
			Elapsed:     float64(i) / 60,
		}
		c.Tick(f)
	}
	return c, out
}

func TestClockDeterminism(t *testing.T) {
	for _, mode := range []Mode{ModeCurrents, ModeGesture} {
		t.Run(mode.String(), func(t *testing.T) {
			_, a := runClock(t, mode, 42, 400)
			_, b := runClock(t, mode, 42, 400)

			if a.Sum64() != b.Sum64() {
				t.Errorf("same seed produced different intent streams: %x vs %x", a.Sum64(), b.Sum64())
			}
			if a.Total() != b.Total() {
				t.Errorf("intent counts differ: %d vs %d", a.Total(), b.Total())
			}

			_, other := runClock(t, mode, 43, 400)
			if a.Sum64() == other.Sum64() {
				t.Error("different seeds produced identical intent streams")
			}
		})
	}
}

func TestClockCurrentsEmitsFadeEachTick(t *testing.T) {
	_, out := runClock(t, ModeCurrents, 7, 50)
	if out.Fades != 50 {
		t.Errorf("fades = %d, want one per tick", out.Fades)
	}
	if out.Lines == 0 {
		t.Error("no particle segments emitted")
	}
}

func TestClockGestureProducesStrokesAndInk(t *testing.T) {
	c, out := runClock(t, ModeGesture, 7, 400)
	if c.Strokes().Count() == 0 {
		t.Error("no strokes after 400 ticks")
	}
	if out.Circles == 0 {
		t.Error("no ink circles emitted")
	}
	if out.Fades != 0 {
		t.Errorf("gesture mode faded the surface %d times, want 0", out.Fades)
	}
}

func TestClockCapsHold(t *testing.T) {
	cfg := testConfig(t)
	c, _ := runClock(t, ModeGesture, 9, 1500)
	if c.Strokes().Count() > cfg.Stroke.MaxCount {
		t.Errorf("stroke count %d exceeds cap %d", c.Strokes().Count(), cfg.Stroke.MaxCount)
	}
	if c.Ink().Count() > cfg.Derived.SoftCap {
		t.Errorf("ink count %d exceeds soft cap %d", c.Ink().Count(), cfg.Derived.SoftCap)
	}

	c2, _ := runClock(t, ModeCurrents, 9, 1500)
	if c2.Vortices().Count() > cfg.Vortex.MaxCount {
		t.Errorf("vortex count %d exceeds cap %d", c2.Vortices().Count(), cfg.Vortex.MaxCount)
	}
}

func TestClockResizeClearsTransientState(t *testing.T) {
	c, out := runClock(t, ModeGesture, 11, 300)

	c.Resize(800, 600)
	if out.Recreates != 1 {
		t.Errorf("recreates = %d, want 1", out.Recreates)
	}
	if c.Strokes().Count() != 0 {
		t.Errorf("strokes after resize = %d, want 0", c.Strokes().Count())
	}
	if c.Ink().Count() != 0 {
		t.Errorf("ink after resize = %d, want 0", c.Ink().Count())
	}

	c2, out2 := runClock(t, ModeCurrents, 11, 300)
	c2.Resize(800, 600)
	if out2.Recreates != 1 {
		t.Errorf("recreates = %d, want 1", out2.Recreates)
	}
	if c2.Vortices().Count() != 0 {
		t.Errorf("vortices after resize = %d, want 0", c2.Vortices().Count())
	}
	for _, p := range c2.Particles().Pool() {
		if p.Age != 0 {
			t.Fatalf("particle age %d after resize, want 0", p.Age)
		}
		if p.X < 0 || p.X > 800 || p.Y < 0 || p.Y > 600 {
			t.Fatalf("particle at (%v,%v) outside new bounds", p.X, p.Y)
		}
	}
}

func TestClockReducedWorkload(t *testing.T) {
	cfg := testConfig(t)
	out := NewRecorder()
	c := NewClock(cfg, ModeCurrents, out, NewSimplexField(5), NewRand(5))

	f := Frame{Width: cfg.Derived.ScreenW32, Height: cfg.Derived.ScreenH32, Reduced: true}
	c.Tick(f)
	if c.Particles().Active() != cfg.Particles.ReducedCount {
		t.Errorf("active = %d, want reduced count %d", c.Particles().Active(), cfg.Particles.ReducedCount)
	}

	f.Reduced = false
	c.Tick(f)
	if c.Particles().Active() != cfg.Particles.Count {
		t.Errorf("active = %d, want full count %d", c.Particles().Active(), cfg.Particles.Count)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"currents", ModeCurrents},
		{"gesture", ModeGesture},
		{"", ModeCurrents},
		{"bogus", ModeCurrents},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
