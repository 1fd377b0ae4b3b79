package systems

import (
	"math"

	"github.com/versalarchitect/currents/config"
)

// StrokePoint is one sample along a generated stroke. Immutable after
// generation.
type StrokePoint struct {
	X, Y     float32
	Pressure float32 // [0.1, 1]
	Heading  float32 // local walk direction in radians
}

// Stroke is an ordered brush stroke with its visual parameters. Ink density
// only fades after creation; the pixels already drawn stay on the surface
// even after the stroke itself is evicted from the list.
type Stroke struct {
	Points  []StrokePoint
	Alpha   float32
	Weight  float32
	Density float32
	Age     int32
}

// Pressure envelope phase boundaries along the normalized stroke position.
const (
	attackEnd    = 0.15
	sustainEnd   = 0.7
	pressureMin  = 0.1
	inkEdgeColor = 24 // stroke grey level; strokes read as diluted black ink
)

// StrokeGenerator produces calligraphic strokes via a noise-perturbed
// random walk and keeps the bounded list of live strokes the ink system
// samples from. Oldest strokes are evicted once the cap is exceeded.
type StrokeGenerator struct {
	ring []Stroke
	head int
	num  int

	width, height float32

	noise Field
	rng   Source

	flowScale float64
	timeScale float64

	minPoints, maxPoints int
	minSpeed, maxSpeed   float32
	turnRate             float32
	stepScale            float32
	edgeBias             float32
	edgeMargin           float32
	minAlpha, maxAlpha   float32
	minWeight, maxWeight float32
	minDense, maxDense   float32
	densityFade          float32
	flickChance          float32
}

// NewStrokeGenerator creates an empty generator.
func NewStrokeGenerator(width, height float32, cfg *config.Config, noise Field, rng Source) *StrokeGenerator {
	sc := cfg.Stroke
	capacity := sc.MaxCount
	if capacity < 1 {
		capacity = 1
	}
	return &StrokeGenerator{
		ring:        make([]Stroke, capacity),
		width:       width,
		height:      height,
		noise:       noise,
		rng:         rng,
		flowScale:   cfg.Noise.FlowScale,
		timeScale:   cfg.Noise.TimeScale,
		minPoints:   sc.MinPoints,
		maxPoints:   sc.MaxPoints,
		minSpeed:    float32(sc.MinSpeed),
		maxSpeed:    float32(sc.MaxSpeed),
		turnRate:    float32(sc.TurnRate),
		stepScale:   float32(sc.StepScale),
		edgeBias:    float32(sc.EdgeBias),
		edgeMargin:  float32(sc.EdgeMargin),
		minAlpha:    float32(sc.MinAlpha),
		maxAlpha:    float32(sc.MaxAlpha),
		minWeight:   float32(sc.MinWeight),
		maxWeight:   float32(sc.MaxWeight),
		minDense:    float32(sc.MinDensity),
		maxDense:    float32(sc.MaxDensity),
		densityFade: float32(sc.DensityFade),
		flickChance: float32(sc.FlickChance),
	}
}

// Generate walks a new stroke from a random origin, appends it to the live
// list (evicting the oldest past capacity), attenuates the ink density of
// every older stroke, and emits the stroke's segments. Returns the new
// stroke and whether an eviction happened.
func (g *StrokeGenerator) Generate(tick int32, out Surface) (*Stroke, bool) {
	x, y := g.origin()
	return g.GenerateAt(x, y, tick, out)
}

// GenerateAt is Generate with an explicit origin, used for pointer-driven
// strokes.
func (g *StrokeGenerator) GenerateAt(x, y float32, tick int32, out Surface) (*Stroke, bool) {
	n := g.rng.Int(g.minPoints, g.maxPoints+1)
	heading := g.rng.Float(0, 2*math.Pi)
	speed := g.rng.Float(g.minSpeed, g.maxSpeed)
	t := float64(tick) * g.timeScale

	s := Stroke{
		Points:  make([]StrokePoint, n),
		Alpha:   g.rng.Float(g.minAlpha, g.maxAlpha),
		Weight:  g.rng.Float(g.minWeight, g.maxWeight),
		Density: g.rng.Float(g.minDense, g.maxDense),
	}

	for i := 0; i < n; i++ {
		pos := float32(0)
		if n > 1 {
			pos = float32(i) / float32(n-1)
		}
		s.Points[i] = StrokePoint{
			X:        x,
			Y:        y,
			Pressure: g.pressure(pos),
			Heading:  heading,
		}

		// Perturb heading by a centered noise sample and jitter speed ±5%
		sample := g.noise.Sample(float64(x)*g.flowScale, float64(y)*g.flowScale, t)
		heading += float32(sample-0.5) * 2 * g.turnRate
		speed *= 1 + g.rng.Float(-0.05, 0.05)
		speed = clamp32(speed, g.minSpeed, g.maxSpeed)

		x += float32(math.Cos(float64(heading))) * speed * g.stepScale
		y += float32(math.Sin(float64(heading))) * speed * g.stepScale
	}

	// Older work yields to the newest stroke
	for i := 0; i < g.num; i++ {
		g.ring[(g.head+i)%len(g.ring)].Density *= g.densityFade
	}

	evicted := false
	if g.num == len(g.ring) {
		g.ring[g.head] = Stroke{}
		g.head = (g.head + 1) % len(g.ring)
		g.num--
		evicted = true
	}
	idx := (g.head + g.num) % len(g.ring)
	g.ring[idx] = s
	g.num++

	stroke := &g.ring[idx]
	g.emit(stroke, out)
	return stroke, evicted
}

// pressure evaluates the attack/sustain/release envelope at normalized
// stroke position pos, floored at pressureMin.
func (g *StrokeGenerator) pressure(pos float32) float32 {
	var p float32
	switch {
	case pos < attackEnd:
		// Ramp from a light touch to full pressure with a little jitter
		p = 0.2 + (pos/attackEnd)*0.8 + g.rng.Float(-0.1, 0.1)
	case pos < sustainEnd:
		// Oscillate in the 0.7..1.0 band
		p = 0.85 + 0.15*float32(math.Sin(float64(pos)*11))
	default:
		// Decay toward lift-off, with a rare flick spike
		rel := (pos - sustainEnd) / (1 - sustainEnd)
		p = 0.85 * (1 - rel)
		if g.rng.Chance(g.flickChance) {
			p += g.rng.Float(0.3, 0.6)
		}
	}
	return clamp32(p, pressureMin, 1)
}

// origin picks an edge start with the configured bias, else an interior
// point. Edge origins sit just outside the canvas so strokes sweep in.
func (g *StrokeGenerator) origin() (float32, float32) {
	if !g.rng.Chance(g.edgeBias) {
		return g.rng.Float(0, g.width), g.rng.Float(0, g.height)
	}
	switch g.rng.Int(0, 4) {
	case 0: // left
		return -g.edgeMargin, g.rng.Float(0, g.height)
	case 1: // right
		return g.width + g.edgeMargin, g.rng.Float(0, g.height)
	case 2: // top
		return g.rng.Float(0, g.width), -g.edgeMargin
	default: // bottom
		return g.rng.Float(0, g.width), g.height + g.edgeMargin
	}
}

// emit draws the stroke as pressure-weighted segments. This happens exactly
// once per stroke; the persistent surface keeps the pixels afterwards.
func (g *StrokeGenerator) emit(s *Stroke, out Surface) {
	for i := 1; i < len(s.Points); i++ {
		a := &s.Points[i-1]
		b := &s.Points[i]
		pressure := (a.Pressure + b.Pressure) * 0.5
		c := Color{R: inkEdgeColor, G: inkEdgeColor, B: inkEdgeColor + 8}
		c.A = uint8(s.Alpha * s.Density * pressure * 255)
		out.Line(a.X, a.Y, b.X, b.Y, s.Weight*pressure, c)
	}
}

// Tick ages every live stroke.
func (g *StrokeGenerator) Tick() {
	for i := 0; i < g.num; i++ {
		g.ring[(g.head+i)%len(g.ring)].Age++
	}
}

// ForEach iterates live strokes oldest-first.
func (g *StrokeGenerator) ForEach(fn func(s *Stroke)) {
	for i := 0; i < g.num; i++ {
		fn(&g.ring[(g.head+i)%len(g.ring)])
	}
}

// Pick returns a uniformly random live stroke, or nil if there are none.
func (g *StrokeGenerator) Pick() *Stroke {
	if g.num == 0 {
		return nil
	}
	return &g.ring[(g.head+g.rng.Int(0, g.num))%len(g.ring)]
}

// Count returns the number of live strokes.
func (g *StrokeGenerator) Count() int {
	return g.num
}

// Resize clears all strokes for a new viewport.
func (g *StrokeGenerator) Resize(width, height float32) {
	g.width = width
	g.height = height
	for i := range g.ring {
		g.ring[i] = Stroke{}
	}
	g.head = 0
	g.num = 0
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
