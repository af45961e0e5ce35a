package gallery

import "math"

// Handle is an opaque item handle owned by the host.
type Handle any

// ItemProvider supplies item data to the engine. Calls are synchronous and
// must not re-enter the engine.
type ItemProvider interface {
	ItemCount() int
	// Measure returns the natural size of the item at full scale.
	Measure(index int) (Size, error)
	Materialize(index int) (Handle, error)
	Release(h Handle)
}

// Viewport describes the area the gallery lays out into.
type Viewport interface {
	Size() Size
	Padding() Insets
}

// Snapper picks the item that should be considered selected when the
// gallery comes to rest.
type Snapper interface {
	SnapIndex(items []Item, center float64, o Orientation) (int, bool)
}

// CenterSnapper selects the item whose frame center is closest to the
// viewport center. Ties go to the lower index.
type CenterSnapper struct{}

func (CenterSnapper) SnapIndex(items []Item, center float64, o Orientation) (int, bool) {
	best := -1
	bestDist := math.Inf(1)
	for _, it := range items {
		d := math.Abs(it.Frame.Center(o) - center)
		if d < bestDist {
			best, bestDist = it.Index, d
		}
	}
	return best, best >= 0
}

// area is the padded layout region split into the primary and cross axis.
type area struct {
	start, end           int
	crossStart, crossEnd int
}

func (a area) space() int      { return a.end - a.start }
func (a area) crossSpace() int { return a.crossEnd - a.crossStart }

// center is the midpoint of the primary axis, truncated to a pixel.
func (a area) center() int { return a.space()/2 + a.start }

func layoutArea(vp Viewport, o Orientation) area {
	sz := vp.Size()
	pad := vp.Padding()
	if o == Vertical {
		return area{
			start: pad.Top, end: sz.H - pad.Bottom,
			crossStart: pad.Left, crossEnd: sz.W - pad.Right,
		}
	}
	return area{
		start: pad.Left, end: sz.W - pad.Right,
		crossStart: pad.Top, crossEnd: sz.H - pad.Bottom,
	}
}
