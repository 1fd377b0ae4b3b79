package systems

import (
	"testing"
)

func newTestGenerator(t *testing.T, seed int64) *StrokeGenerator {
	t.Helper()
	cfg := testConfig(t)
	return NewStrokeGenerator(640, 480, cfg, NewSimplexField(seed), NewRand(seed))
}

func TestStrokePointCount(t *testing.T) {
	cfg := testConfig(t)
	g := newTestGenerator(t, 11)

	for i := 0; i < 50; i++ {
		s, _ := g.Generate(int32(i), NewRecorder())
		n := len(s.Points)
		if n < cfg.Stroke.MinPoints || n > cfg.Stroke.MaxPoints {
			t.Fatalf("stroke %d has %d points, outside [%d, %d]",
				i, n, cfg.Stroke.MinPoints, cfg.Stroke.MaxPoints)
		}
	}
}

func TestStrokePressureFloor(t *testing.T) {
	g := newTestGenerator(t, 12)

	for i := 0; i < 100; i++ {
		s, _ := g.Generate(int32(i), NewRecorder())
		for j, pt := range s.Points {
			if pt.Pressure < 0.1 {
				t.Fatalf("stroke %d point %d pressure %v below floor", i, j, pt.Pressure)
			}
			if pt.Pressure > 1 {
				t.Fatalf("stroke %d point %d pressure %v above 1", i, j, pt.Pressure)
			}
		}
	}
}

func TestStrokePressureEnvelope(t *testing.T) {
	g := newTestGenerator(t, 13)

	for i := 0; i < 100; i++ {
		s, _ := g.Generate(int32(i), NewRecorder())
		n := len(s.Points)

		// First point is in the attack phase: light touch, never full press
		first := s.Points[0].Pressure
		if first > 0.35 {
			t.Fatalf("stroke %d starts at pressure %v, want attack-phase value", i, first)
		}

		// Last point is in the release phase; a flick can spike it but
		// never past the sustain ceiling of 1
		last := s.Points[n-1].Pressure
		if last > 1 {
			t.Fatalf("stroke %d ends at pressure %v, want <= 1", i, last)
		}
	}
}

func TestStrokeCapAndEviction(t *testing.T) {
	cfg := testConfig(t)
	cfg.Stroke.MaxCount = 4
	g := NewStrokeGenerator(640, 480, cfg, NewSimplexField(14), NewRand(14))

	evictions := 0
	for i := 0; i < 10; i++ {
		_, evicted := g.Generate(int32(i), NewRecorder())
		if evicted {
			evictions++
		}
		if g.Count() > 4 {
			t.Fatalf("stroke count %d exceeds cap", g.Count())
		}
	}
	if evictions != 6 {
		t.Errorf("evictions = %d, want 6", evictions)
	}
}

func TestStrokeDensityAttenuation(t *testing.T) {
	cfg := testConfig(t)
	g := newTestGenerator(t, 15)

	first, _ := g.Generate(0, NewRecorder())
	initial := first.Density

	g.Generate(1, NewRecorder())

	want := initial * float32(cfg.Stroke.DensityFade)
	if diff := first.Density - want; diff > 1e-5 || diff < -1e-5 {
		t.Errorf("density after new stroke = %v, want %v", first.Density, want)
	}

	// Densities only fade: generating more strokes keeps them non-increasing
	prev := first.Density
	for i := int32(2); i < 6; i++ {
		g.Generate(i, NewRecorder())
		if first.Density > prev {
			t.Fatalf("density increased from %v to %v", prev, first.Density)
		}
		prev = first.Density
	}
}

func TestStrokeEmitsSegments(t *testing.T) {
	g := newTestGenerator(t, 16)
	out := NewRecorder()

	s, _ := g.Generate(0, out)
	if out.Lines != len(s.Points)-1 {
		t.Errorf("emitted %d segments for %d points, want %d",
			out.Lines, len(s.Points), len(s.Points)-1)
	}
}

func TestStrokeResizeClears(t *testing.T) {
	g := newTestGenerator(t, 17)
	g.Generate(0, NewRecorder())
	g.Generate(1, NewRecorder())

	g.Resize(800, 600)
	if g.Count() != 0 {
		t.Errorf("count after resize = %d, want 0", g.Count())
	}
	if g.Pick() != nil {
		t.Error("Pick returned a stroke after resize")
	}
}
