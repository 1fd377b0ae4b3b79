package systems

import opensimplex "github.com/ojrac/opensimplex-go"

// Field provides coherent noise values at world positions.
// Sample is continuous and smooth in all three arguments; consumers map the
// result to a flow angle, so any discontinuity shows up as a visible kink
// in particle paths.
type Field interface {
	// Sample returns a value in [0, 1) for the given position and time.
	Sample(x, y, t float64) float64
}

// SimplexField is the production Field backed by seeded OpenSimplex noise.
type SimplexField struct {
	noise opensimplex.Noise
}

// NewSimplexField creates a noise field for the given seed.
func NewSimplexField(seed int64) *SimplexField {
	return &SimplexField{noise: opensimplex.NewNormalized(seed)}
}

// Sample returns normalized 3D noise, with time as the third axis.
func (f *SimplexField) Sample(x, y, t float64) float64 {
	return f.noise.Eval3(x, y, t)
}
