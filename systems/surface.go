package systems

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"
)

// Color is an 8-bit RGBA draw color.
type Color struct {
	R, G, B, A uint8
}

// Surface is the externally owned persistent drawing target. The simulation
// only pushes draw intents into it and never reads pixels back; intents
// accumulate across ticks and are only fractionally faded via Fade.
// Implemented by renderer.Canvas for the GPU-backed buffer.
type Surface interface {
	// Line draws a segment with the given stroke weight.
	Line(x1, y1, x2, y2, weight float32, c Color)
	// Point draws a single highlighted point.
	Point(x, y float32, c Color)
	// Circle draws a filled circle.
	Circle(x, y, radius float32, c Color)
	// Fade blends a full-surface rectangle over everything drawn so far.
	Fade(c Color)
	// Recreate replaces the surface with a fresh one at the new size.
	Recreate(width, height int)
}

// Recorder is a Surface that folds every intent into an FNV-1a hash and
// counts intents by kind. Two runs with the same seed and frame sequence
// produce the same hash, which is what the determinism tests and the trace
// tool compare.
type Recorder struct {
	h   hash.Hash64
	buf [8]byte

	Lines     int
	Points    int
	Circles   int
	Fades     int
	Recreates int
}

// NewRecorder creates an empty intent recorder.
func NewRecorder() *Recorder {
	return &Recorder{h: fnv.New64a()}
}

func (r *Recorder) Line(x1, y1, x2, y2, weight float32, c Color) {
	r.Lines++
	r.tag(1)
	r.f32(x1)
	r.f32(y1)
	r.f32(x2)
	r.f32(y2)
	r.f32(weight)
	r.color(c)
}

func (r *Recorder) Point(x, y float32, c Color) {
	r.Points++
	r.tag(2)
	r.f32(x)
	r.f32(y)
	r.color(c)
}

func (r *Recorder) Circle(x, y, radius float32, c Color) {
	r.Circles++
	r.tag(3)
	r.f32(x)
	r.f32(y)
	r.f32(radius)
	r.color(c)
}

func (r *Recorder) Fade(c Color) {
	r.Fades++
	r.tag(4)
	r.color(c)
}

func (r *Recorder) Recreate(width, height int) {
	r.Recreates++
	r.tag(5)
	r.f32(float32(width))
	r.f32(float32(height))
}

// Sum64 returns the running hash over all intents recorded so far.
func (r *Recorder) Sum64() uint64 {
	return r.h.Sum64()
}

// Total returns the total number of draw intents recorded.
func (r *Recorder) Total() int {
	return r.Lines + r.Points + r.Circles + r.Fades
}

func (r *Recorder) tag(t byte) {
	r.buf[0] = t
	r.h.Write(r.buf[:1])
}

func (r *Recorder) f32(v float32) {
	binary.LittleEndian.PutUint32(r.buf[:4], math.Float32bits(v))
	r.h.Write(r.buf[:4])
}

func (r *Recorder) color(c Color) {
	r.buf[0], r.buf[1], r.buf[2], r.buf[3] = c.R, c.G, c.B, c.A
	r.h.Write(r.buf[:4])
}
