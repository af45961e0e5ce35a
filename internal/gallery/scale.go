package gallery

import "math"

// Scaler maps a (possibly fractional) distance from the selected index to a
// scale factor. Scale is ScaleRatio^min(|d|, steps) where steps is
// (ScaleCount-1)/2; past that distance it stays at the floor.
type Scaler struct {
	ratio   float64
	steps   int
	spacing int
}

func NewScaler(cfg Config) Scaler {
	return Scaler{
		ratio:   cfg.ScaleRatio,
		steps:   (cfg.ScaleCount - 1) / 2,
		spacing: cfg.ItemSpacing,
	}
}

// Steps is the distance at which the floor scale is reached.
func (s Scaler) Steps() int { return s.steps }

func (s Scaler) Scale(distance float64) float64 {
	d := math.Abs(distance)
	if d > float64(s.steps) {
		d = float64(s.steps)
	}
	return math.Pow(s.ratio, d)
}

// Floor is the smallest scale any item can have.
func (s Scaler) Floor() float64 {
	return math.Pow(s.ratio, float64(s.steps))
}

// Interpolate blends linearly from the resting scale at distance from to the
// resting scale at distance to, t in [0,1].
func (s Scaler) Interpolate(from, to, t float64) float64 {
	a := s.Scale(from)
	return a + (s.Scale(to)-a)*t
}

// Contraction is how far each edge of an item moves inward when it is drawn
// at the given scale: half of the width it loses.
func Contraction(extent int, scale float64) float64 {
	return float64(extent) * (1 - scale) / 2
}

// SpacingBetween returns the distance between the unscaled frame edges of two
// adjacent items so that their scaled edges are exactly ItemSpacing apart.
// It shrinks as either item shrinks.
func (s Scaler) SpacingBetween(extentA int, scaleA float64, extentB int, scaleB float64) float64 {
	return float64(s.spacing) - Contraction(extentA, scaleA) - Contraction(extentB, scaleB)
}
