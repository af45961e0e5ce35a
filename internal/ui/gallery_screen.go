package ui

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/depeter/jellyflow/internal/catalog"
	"github.com/depeter/jellyflow/internal/gallery"
	"github.com/depeter/jellyflow/internal/motion"
)

// prefetchAhead is how many posters past each end of the window are warmed.
const prefetchAhead = 4

// GalleryScreen drives a gallery engine from keyboard, wheel and drag input.
type GalleryScreen struct {
	view     *GalleryView
	catalog  *catalog.Catalog
	engine   *gallery.Engine
	scroller *motion.Scroller
	drag     DragTracker
	initial  int

	// aim is the index the current keyboard motion heads for.
	aim int

	changed atomic.Bool
	lastErr string
}

// NewGalleryScreen builds the engine over view. trace may be nil.
func NewGalleryScreen(view *GalleryView, cat *catalog.Catalog, cfg gallery.Config, initial int, trace func(string, ...any)) (*GalleryScreen, error) {
	gs := &GalleryScreen{view: view, catalog: cat, initial: initial, aim: -1}
	opts := []gallery.Option{
		gallery.WithOnSelected(gs.onSelected),
	}
	if trace != nil {
		opts = append(opts, gallery.WithTrace(trace))
	}
	e, err := gallery.New(cfg, view, view, opts...)
	if err != nil {
		return nil, err
	}
	gs.engine = e
	gs.scroller = motion.NewScroller(e, ScrollAnimSpeed)

	a := view.Area()
	gs.drag.Restrict(a.Min.X, a.Min.Y, a.Max.X, a.Max.Y)
	// Catalog changes arrive on loader goroutines; the engine is only
	// touched from Update.
	cat.OnChange(func() { gs.changed.Store(true) })
	return gs, nil
}

// Engine exposes the layout engine for overlays and tests.
func (gs *GalleryScreen) Engine() *gallery.Engine { return gs.engine }

func (gs *GalleryScreen) Name() string { return "Gallery" }

func (gs *GalleryScreen) OnEnter() {
	if gs.engine.Empty() {
		gs.report(gs.engine.Attach(gs.initial))
	}
}

func (gs *GalleryScreen) OnExit() {
	gs.engine.Reset()
}

func (gs *GalleryScreen) onSelected(index int) {
	if index < 0 || index >= gs.catalog.Len() {
		return
	}
	p := gs.catalog.At(index)
	log.Printf("Selected %q (%d)", p.Title, index)
}

func (gs *GalleryScreen) report(err error) {
	if err != nil {
		log.Printf("Gallery layout failed: %v", err)
		gs.lastErr = err.Error()
	}
}

func (gs *GalleryScreen) Update() (Screen, error) {
	if gs.changed.Swap(false) {
		gs.scroller.Stop()
		gs.report(gs.engine.NotifyDataSetChanged())
		gs.aim = -1
	}

	dir, enter, back := InputState()
	if back {
		return nil, ebiten.Termination
	}

	horizontal := gs.engine.Config().Orientation == gallery.Horizontal
	step := 0
	switch dir {
	case DirLeft:
		if horizontal {
			step = -1
		}
	case DirRight:
		if horizontal {
			step = 1
		}
	case DirUp:
		if !horizontal {
			step = -1
		}
	case DirDown:
		if !horizontal {
			step = 1
		}
	}
	if KeyJustPressed(ebiten.KeyPageUp) {
		step = -PageStep
	}
	if KeyJustPressed(ebiten.KeyPageDown) {
		step = PageStep
	}
	if step != 0 {
		gs.seek(gs.currentAim() + step)
	}
	if KeyJustPressed(ebiten.KeyHome) {
		gs.jump(0)
	}
	if KeyJustPressed(ebiten.KeyEnd) {
		gs.jump(gs.catalog.Len() - 1)
	}

	if wx, wy := MouseWheelDelta(); wx != 0 || wy != 0 {
		gs.aim = -1
		gs.scroller.Nudge(int(-(wx + wy) * ScrollWheelSpeed))
	}

	dx, dy, dragging, released := gs.drag.Update()
	if dragging {
		gs.aim = -1
		d := -dx
		if !horizontal {
			d = -dy
		}
		if d != 0 {
			gs.report(gs.scroller.Drag(d))
		}
	}
	if released {
		gs.scroller.Release()
	}

	if err := gs.scroller.Step(); err != nil {
		gs.report(err)
	}
	if !gs.scroller.Active() {
		gs.aim = -1
	}

	if enter {
		if i := gs.engine.SelectedIndex(); i >= 0 {
			p := gs.catalog.At(i)
			log.Printf("Activated %q (%s)", p.Title, p.ID)
		}
	}

	if first, last, ok := gs.engine.VisibleRange(); ok {
		gs.view.Prefetch(first, last, prefetchAhead)
	}
	return nil, nil
}

func (gs *GalleryScreen) currentAim() int {
	if gs.aim >= 0 {
		return gs.aim
	}
	return gs.engine.SelectedIndex()
}

// seek animates toward index, clamped to the catalog.
func (gs *GalleryScreen) seek(index int) {
	n := gs.catalog.Len()
	if n == 0 {
		return
	}
	index = min(max(index, 0), n-1)
	gs.aim = index
	gs.scroller.ScrollTo(index)
}

// jump re-seeks without animation.
func (gs *GalleryScreen) jump(index int) {
	if index < 0 {
		return
	}
	gs.aim = -1
	gs.scroller.Stop()
	gs.report(gs.engine.ScrollToIndex(index))
	gs.engine.Settle()
}

func (gs *GalleryScreen) Draw(dst *ebiten.Image) {
	a := gs.view.Area()
	sel := gs.engine.SelectedIndex()
	gs.view.Draw(dst, gs.engine.Visible(), sel, debugOverlayVisible)

	DrawText(dst, "JellyFlow", SidePadding, 36, FontSizeTitle, ColorPrimary)
	if n := gs.catalog.Len(); sel >= 0 && sel < n {
		DrawText(dst, fmt.Sprintf("%d / %d", sel+1, n), SidePadding, 72, FontSizeBody, ColorTextSecondary)
		p := gs.catalog.At(sel)
		caption := p.Title
		if p.Year > 0 {
			caption = fmt.Sprintf("%s (%d)", p.Title, p.Year)
		}
		DrawTextCentered(dst, caption, float64(a.Min.X+a.Dx()/2), float64(a.Max.Y)+CaptionHeight/2, FontSizeHeading, ColorText)
	} else if gs.engine.Empty() {
		DrawTextCentered(dst, "No posters", float64(a.Min.X+a.Dx()/2), float64(a.Min.Y+a.Dy()/2), FontSizeHeading, ColorTextMuted)
	}
	if gs.lastErr != "" {
		DrawText(dst, truncateText(gs.lastErr, float64(a.Dx()-SidePadding*2), FontSizeSmall),
			SidePadding, float64(a.Max.Y)+CaptionHeight-24, FontSizeSmall, ColorError)
	}
}

// DebugLines reports the engine and scroller state for the debug overlay.
func (gs *GalleryScreen) DebugLines() []string {
	e := gs.engine
	cfg := e.Config()
	lo, hi := e.Bounds()
	window := "(empty)"
	if first, last, ok := e.VisibleRange(); ok {
		window = fmt.Sprintf("[%d, %d]", first, last)
	}
	return []string{
		fmtLine("orientation", fmt.Sprintf("%s  infinite=%v", cfg.Orientation, cfg.Infinite)),
		fmtLine("spacing", fmt.Sprintf("%d  scale %d x %.2f", cfg.ItemSpacing, cfg.ScaleCount, cfg.ScaleRatio)),
		fmtLine("selected", e.SelectedIndex()),
		fmtLine("offset", e.Offset()),
		fmtLine("bounds", fmt.Sprintf("[%s, %s]", bound(lo), bound(hi))),
		fmtLine("window", window),
		fmtLine("frames", fmt.Sprintf("%d cached, %d live", e.FrameCount(), gs.view.Live())),
		fmtLine("snap", e.SnapDistance()),
		fmtLine("pending", fmt.Sprintf("%d  active=%v", gs.scroller.Pending(), gs.scroller.Active())),
		fmtLine("fps", fmt.Sprintf("%.0f", ebiten.ActualFPS())),
	}
}

// bound prints an open side of a vertical range as infinity.
func bound(v int) string {
	switch v {
	case math.MinInt:
		return "-inf"
	case math.MaxInt:
		return "+inf"
	}
	return strconv.Itoa(v)
}
