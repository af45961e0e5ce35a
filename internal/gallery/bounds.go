package gallery

import "math"

// Span is the geometry the offset bounds are computed against.
type Span struct {
	Count        int // number of items
	Initial      int // selected index at offset zero
	CenterExtent int // primary-axis size of the centered reference item
	Before       int // pixels from the viewport center to the leading edge
	After        int // pixels from the viewport center to the trailing edge
}

// stride is the offset that advances the selection by one index at rest.
func (s Span) stride(cfg Config) int {
	return cfg.ItemSpacing + s.CenterExtent
}

// screenItems counts how many items fit between the viewport center and an
// edge area pixels away: the shrinking items first, then as many
// floor-scale items as the rest of the area holds.
func screenItems(cfg Config, centerExtent, area int) int {
	sc := NewScaler(cfg)
	distance := centerExtent / 2
	for i := 0; i < sc.Steps(); i++ {
		distance = int(float64(distance) + float64(cfg.ItemSpacing) + float64(centerExtent)*math.Pow(cfg.ScaleRatio, float64(i+1)))
	}
	minItem := int(float64(centerExtent)*sc.Floor()) + cfg.ItemSpacing
	multiple := 0
	if area-distance > 0 && minItem > 0 {
		multiple = (area - distance) / minItem
	}
	return sc.Steps() + multiple
}

// MaxOffset is the largest offset that still leaves the trailing edge filled.
//
// When fewer than one screen of items remains after the initial index, the
// bound index is derived from Initial modulo the screen item count instead
// of being pinned to the last item, so the result can be a partial offset.
func MaxOffset(cfg Config, s Span) int {
	n := screenItems(cfg, s.CenterExtent, s.After)
	var bound int
	switch {
	case s.Count-1-s.Initial >= n:
		bound = s.Count - 1 - n
	case n == 0 || s.Initial%n == 0:
		bound = s.Count - 1 - n
	default:
		bound = s.Count - 1 - s.Initial%n - 1
	}
	return (bound - s.Initial) * s.stride(cfg)
}

// MinOffset is the smallest offset that still leaves the leading edge filled.
// The same modulo rule as MaxOffset applies near the start of the list.
func MinOffset(cfg Config, s Span) int {
	n := screenItems(cfg, s.CenterExtent, s.Before)
	var bound int
	switch {
	case s.Initial > n:
		bound = n
	case n == 0 || s.Initial%n == 0:
		bound = n
	default:
		bound = s.Initial%n + 1
	}
	return (bound - s.Initial) * s.stride(cfg)
}

// clampRange turns the raw bounds into the range the scroll controller
// enforces. Short lists can produce raw bounds that are inverted or exclude
// the starting offset; the range is ordered, always contains zero, and never
// lets the selection leave [0, Count-1].
func clampRange(cfg Config, s Span, rawMin, rawMax int) (int, int) {
	lo := min(rawMin, rawMax, 0)
	hi := max(rawMin, rawMax, 0)
	stride := s.stride(cfg)
	lo = max(lo, -s.Initial*stride)
	hi = min(hi, (s.Count-1-s.Initial)*stride)
	return lo, hi
}
