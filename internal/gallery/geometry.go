package gallery

import (
	"fmt"
	"strings"
)

// Orientation selects the primary scroll axis.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// ParseOrientation converts a config value ("horizontal", "vertical") to an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return Horizontal, &ConfigError{Field: "Orientation", Reason: fmt.Sprintf("unknown value %q", s)}
}

// Size is the natural measured size of an item in pixels.
type Size struct {
	W, H int
}

// Insets is viewport padding in pixels.
type Insets struct {
	Left, Top, Right, Bottom int
}

// Frame is an axis-aligned rectangle in viewport pixel space. It is the
// unscaled layout rectangle; the renderer applies Item.Scale around its center.
type Frame struct {
	Left, Top, Right, Bottom int
}

func (f Frame) Width() int  { return f.Right - f.Left }
func (f Frame) Height() int { return f.Bottom - f.Top }

// Start returns the leading edge along the given axis.
func (f Frame) Start(o Orientation) int {
	if o == Vertical {
		return f.Top
	}
	return f.Left
}

// End returns the trailing edge along the given axis.
func (f Frame) End(o Orientation) int {
	if o == Vertical {
		return f.Bottom
	}
	return f.Right
}

// Center returns the midpoint along the given axis.
func (f Frame) Center(o Orientation) float64 {
	return float64(f.Start(o)+f.End(o)) / 2
}

// Translate moves the frame along the given axis.
func (f Frame) Translate(o Orientation, d int) Frame {
	if o == Vertical {
		f.Top += d
		f.Bottom += d
	} else {
		f.Left += d
		f.Right += d
	}
	return f
}

func (f Frame) String() string {
	return fmt.Sprintf("[%d,%d %d,%d]", f.Left, f.Top, f.Right, f.Bottom)
}

// Rect is a rectangle with fractional coordinates, used for scaled output.
type Rect struct {
	X, Y, W, H float64
}

// Item is one materialized entry of the visible window.
type Item struct {
	Index  int
	Frame  Frame
	Scale  float64
	Handle Handle
}

// VisualFrame returns the rectangle the item occupies once its scale is
// applied around the frame center.
func (it Item) VisualFrame() Rect {
	w := float64(it.Frame.Width()) * it.Scale
	h := float64(it.Frame.Height()) * it.Scale
	cx := float64(it.Frame.Left+it.Frame.Right) / 2
	cy := float64(it.Frame.Top+it.Frame.Bottom) / 2
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// frameCache records the last computed frame per index. Entries for indices
// that left the window are kept and overwritten on the next layout.
type frameCache map[int]Frame

func (c frameCache) get(index int) (Frame, bool) {
	f, ok := c[index]
	return f, ok
}

func (c frameCache) clear() {
	for k := range c {
		delete(c, k)
	}
}
