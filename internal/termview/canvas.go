package termview

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/depeter/jellyflow/internal/catalog"
	"github.com/depeter/jellyflow/internal/gallery"
)

// Terminal cells are roughly twice as tall as wide. The engine lays out in
// virtual pixels of this size per cell.
const (
	CellWidth  = 8
	CellHeight = 16
)

const defaultAspect = 2.0 / 3.0

// cells adapts the catalog to the engine on a grid of terminal cells.
// Handles are poster copies; there is nothing to release.
type cells struct {
	catalog    *catalog.Catalog
	cols, rows int
	posterRows int
}

func (c *cells) ItemCount() int { return c.catalog.Len() }

func (c *cells) Measure(index int) (gallery.Size, error) {
	if index < 0 || index >= c.catalog.Len() {
		return gallery.Size{}, fmt.Errorf("poster %d out of range", index)
	}
	aspect := c.catalog.At(index).AspectRatio
	if aspect <= 0 {
		aspect = defaultAspect
	}
	h := c.posterRows * CellHeight
	return gallery.Size{W: int(math.Round(float64(h) * aspect)), H: h}, nil
}

func (c *cells) Materialize(index int) (gallery.Handle, error) {
	if index < 0 || index >= c.catalog.Len() {
		return nil, fmt.Errorf("poster %d out of range", index)
	}
	return c.catalog.At(index), nil
}

func (c *cells) Release(gallery.Handle) {}

func (c *cells) Size() gallery.Size {
	return gallery.Size{W: c.cols * CellWidth, H: c.rows * CellHeight}
}

func (c *cells) Padding() gallery.Insets { return gallery.Insets{} }

type border struct {
	h, v, tl, tr, bl, br rune
}

var (
	thinBorder  = border{'─', '│', '┌', '┐', '└', '┘'}
	thickBorder = border{'═', '║', '╔', '╗', '╚', '╝'}
)

type cell struct {
	r     rune
	style int // index into canvas.styles, -1 for none
}

// canvas is a fixed grid of styled runes. Later boxes overwrite earlier ones.
type canvas struct {
	w, h   int
	cells  []cell
	styles []lipgloss.Style
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0)}
	c.cells = make([]cell, c.w*c.h)
	for i := range c.cells {
		c.cells[i] = cell{r: ' ', style: -1}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, style int) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, style: style}
}

// box draws the rectangle [x0,x1) x [y0,y1), clears its inside and centers
// title on the middle row.
func (c *canvas) box(x0, y0, x1, y1 int, title string, b border, style lipgloss.Style) {
	if x1 <= x0 || y1 <= y0 {
		return
	}
	c.styles = append(c.styles, style)
	s := len(c.styles) - 1

	if x1-x0 < 2 || y1-y0 < 2 {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				c.set(x, y, '▒', s)
			}
		}
		return
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r := ' '
			switch {
			case y == y0 && x == x0:
				r = b.tl
			case y == y0 && x == x1-1:
				r = b.tr
			case y == y1-1 && x == x0:
				r = b.bl
			case y == y1-1 && x == x1-1:
				r = b.br
			case y == y0 || y == y1-1:
				r = b.h
			case x == x0 || x == x1-1:
				r = b.v
			}
			c.set(x, y, r, s)
		}
	}

	inner := x1 - x0 - 2
	if inner <= 0 || y1-y0 < 3 {
		return
	}
	label := []rune(title)
	if len(label) > inner {
		label = label[:inner]
	}
	y := y0 + (y1-y0)/2
	x := x0 + 1 + (inner-len(label))/2
	for i, r := range label {
		c.set(x+i, y, r, s)
	}
}

// label centers s on row y.
func (c *canvas) label(y int, s string, style lipgloss.Style) {
	c.styles = append(c.styles, style)
	st := len(c.styles) - 1
	r := []rune(s)
	if len(r) > c.w {
		r = r[:c.w]
	}
	x := (c.w - len(r)) / 2
	for i, ch := range r {
		c.set(x+i, y, ch, st)
	}
}

// Plain returns the grid without styling.
func (c *canvas) Plain() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.w; x++ {
			b.WriteRune(c.cells[y*c.w+x].r)
		}
	}
	return b.String()
}

// String renders the grid with runs of equally styled cells grouped.
func (c *canvas) String() string {
	var b strings.Builder
	var run strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		cur := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur < 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(c.styles[cur].Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			if cl.style != cur {
				flush()
				cur = cl.style
			}
			run.WriteRune(cl.r)
		}
		flush()
	}
	return b.String()
}

// toCells converts a virtual pixel span to a half-open cell span.
func toCells(pos, extent float64, unit int) (int, int) {
	u := float64(unit)
	return int(math.Round(pos / u)), int(math.Round((pos + extent) / u))
}

// rasterize draws items smallest first so the selected poster ends on top.
func rasterize(cv *canvas, items []gallery.Item, selected int, st Styles) {
	order := append([]gallery.Item(nil), items...)
	sort.SliceStable(order, func(i, j int) bool {
		if (order[i].Index == selected) != (order[j].Index == selected) {
			return order[j].Index == selected
		}
		return order[i].Scale < order[j].Scale
	})
	for _, it := range order {
		r := it.VisualFrame()
		x0, x1 := toCells(r.X, r.W, CellWidth)
		y0, y1 := toCells(r.Y, r.H, CellHeight)
		p, _ := it.Handle.(catalog.Poster)
		if it.Index == selected {
			cv.box(x0, y0, x1, y1, p.Title, thickBorder, st.Selected)
			continue
		}
		cv.box(x0, y0, x1, y1, p.Title, thinBorder, posterStyle(p.Tint))
	}
}
