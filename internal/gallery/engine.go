// Package gallery is an incremental layout engine for a scrolling gallery:
// a window of items is laid out around a selected index, items shrink with
// their distance from it, and every visible frame is recomputed as the
// gallery scrolls.
//
// The engine owns geometry only. Measurement, item handles and drawing
// belong to the host through ItemProvider and Viewport. All calls must come
// from one goroutine.
package gallery

import (
	"fmt"
	"math"
)

// Option configures an Engine.
type Option func(*Engine)

// WithSnapper replaces the CenterSnapper used to settle the selection.
func WithSnapper(s Snapper) Option {
	return func(e *Engine) {
		if s != nil {
			e.snapper = s
		}
	}
}

// WithTrace installs a printf-style hook that receives clamp, reset and
// fill events. log.Printf fits.
func WithTrace(fn func(format string, args ...any)) Option {
	return func(e *Engine) { e.trace = fn }
}

// WithOnSelected registers a callback fired by Settle when the settled
// index changes.
func WithOnSelected(fn func(index int)) Option {
	return func(e *Engine) { e.onSelected = fn }
}

// Engine lays out the visible window and tracks scroll state for one
// gallery. The zero value is not usable; construct with New.
type Engine struct {
	cfg      Config
	scaler   Scaler
	provider ItemProvider
	viewport Viewport
	snapper  Snapper

	trace      func(format string, args ...any)
	onSelected func(index int)

	frames frameCache
	window []Item // contiguous, ordered by index
	filled bool

	initial  int
	selected int // -1 when no session
	settled  int // last index reported to onSelected
	offset   int

	// centerExtent is the primary-axis size of the item centered by the
	// last first fill; it defines the stride for the session.
	centerExtent int
	bounds       *offsetRange
}

type offsetRange struct {
	min, max int
}

// New validates cfg and returns an empty engine. Call Attach to lay out.
func New(cfg Config, provider ItemProvider, viewport Viewport, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("gallery: nil item provider")
	}
	if viewport == nil {
		return nil, fmt.Errorf("gallery: nil viewport")
	}
	e := &Engine{
		cfg:      cfg,
		scaler:   NewScaler(cfg),
		provider: provider,
		viewport: viewport,
		snapper:  CenterSnapper{},
		frames:   make(frameCache),
		selected: -1,
		settled:  -1,
	}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

func (e *Engine) tracef(format string, args ...any) {
	if e.trace != nil {
		e.trace(format, args...)
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Empty reports whether no items are laid out.
func (e *Engine) Empty() bool { return !e.filled }

// Attach starts a session with selected centered. A negative index is
// treated as zero; an index past the end is clamped on layout.
func (e *Engine) Attach(selected int) error {
	if selected < 0 {
		e.tracef("gallery: attach index %d clamped to 0", selected)
		selected = 0
	}
	return e.reseed(selected)
}

// ScrollToIndex re-seeks the session to index without animation.
func (e *Engine) ScrollToIndex(index int) error {
	return e.reseed(index)
}

// NotifyDataSetChanged starts a new session after a structural change of the
// item list. The current selection is kept when there is one.
func (e *Engine) NotifyDataSetChanged() error {
	target := e.initial
	if e.filled && e.selected != -1 {
		target = e.selected
	}
	return e.reseed(target)
}

// Reset releases every handle and returns the engine to the empty state.
func (e *Engine) Reset() {
	for _, it := range e.window {
		e.provider.Release(it.Handle)
	}
	e.window = nil
	e.frames.clear()
	e.filled = false
	e.offset = 0
	e.bounds = nil
	e.selected = -1
	e.settled = -1
	e.tracef("gallery: reset")
}

func (e *Engine) clampIndex(index, count int) int {
	c := min(max(index, 0), count-1)
	if c != index {
		e.tracef("gallery: index %d out of range [0,%d], clamped to %d", index, count-1, c)
	}
	return c
}

// reseed starts a new session centered on target. The first fill runs
// against the current window; only a successful fill replaces the session,
// so a provider error leaves the previous window, frames and offset intact.
func (e *Engine) reseed(target int) error {
	count := e.provider.ItemCount()
	if count <= 0 {
		e.initial = max(target, 0)
		e.Reset()
		return nil
	}
	target = e.clampIndex(target, count)

	p := e.newPass(count)
	if err := p.firstFill(target); err != nil {
		p.abort()
		return err
	}
	e.initial = target
	e.frames.clear()
	e.offset = 0
	e.bounds = nil
	e.settled = -1
	e.commit(p)
	e.tracef("gallery: first fill at %d, window [%d,%d]", e.initial, e.window[0].Index, e.window[len(e.window)-1].Index)
	return nil
}

// ApplyScrollDelta scrolls by delta pixels along the primary axis and
// returns the delta actually applied. Unless the gallery is infinite the
// cumulative offset stops exactly at the bounds, so the result can be
// smaller than delta or zero. On a provider error nothing changes and the
// applied delta is zero.
func (e *Engine) ApplyScrollDelta(delta int) (int, error) {
	if !e.filled || delta == 0 {
		return 0, nil
	}
	count := e.provider.ItemCount()
	if count <= 0 {
		return 0, nil
	}

	applied := delta
	if !e.cfg.Infinite {
		if e.cfg.Orientation == Vertical {
			applied = e.clampToEdgeItems(applied, count)
		} else {
			lo, hi := e.Bounds()
			if target := e.offset + applied; target < lo {
				applied = lo - e.offset
			} else if target > hi {
				applied = hi - e.offset
			}
		}
		if applied != delta {
			e.tracef("gallery: scroll %d clamped to %d at offset %d", delta, applied, e.offset)
		}
	}
	if applied == 0 {
		return 0, nil
	}

	prev := e.offset
	e.offset += applied
	p := e.newPass(count)
	var err error
	if e.cfg.Orientation == Horizontal {
		err = p.fillScaled(e.offset)
	} else {
		err = p.fillTranslated(applied)
	}
	if err != nil {
		p.abort()
		e.offset = prev
		return 0, err
	}
	e.commit(p)
	return applied, nil
}

// clampToEdgeItems stops a translating scroll once the first or last item's
// center reaches the viewport center. Items keep their own measured extent,
// so the limit comes from the laid out frames rather than a fixed stride.
func (e *Engine) clampToEdgeItems(delta, count int) int {
	lo, hi := e.edgeLimits(count)
	if delta > 0 && hi != math.MaxInt {
		return max(0, min(delta, hi-e.offset))
	}
	if delta < 0 && lo != math.MinInt {
		return min(0, max(delta, lo-e.offset))
	}
	return delta
}

// edgeLimits is the offset at which the first or last item would sit at the
// viewport center. A side whose edge item is not laid out is unbounded.
func (e *Engine) edgeLimits(count int) (int, int) {
	o := e.cfg.Orientation
	center := layoutArea(e.viewport, o).center()
	mid := func(f Frame) int { return (f.End(o)-f.Start(o))/2 + f.Start(o) }
	lo, hi := math.MinInt, math.MaxInt
	if first := e.window[0]; first.Index == 0 {
		lo = e.offset + mid(first.Frame) - center
	}
	if last := e.window[len(e.window)-1]; last.Index == count-1 {
		hi = e.offset + mid(last.Frame) - center
	}
	return lo, hi
}

// Bounds returns the offset range enforced by ApplyScrollDelta. Horizontal
// bounds are computed on first use and cached until the next reset. Vertical
// bounds follow the edge items and are unbounded (math.MinInt, math.MaxInt)
// on a side whose edge item is not laid out.
func (e *Engine) Bounds() (int, int) {
	if !e.filled {
		return 0, 0
	}
	if e.cfg.Orientation == Vertical {
		return e.edgeLimits(e.provider.ItemCount())
	}
	if e.bounds == nil {
		e.bounds = e.computeBounds()
	}
	return e.bounds.min, e.bounds.max
}

func (e *Engine) span() Span {
	a := layoutArea(e.viewport, e.cfg.Orientation)
	c := a.center()
	return Span{
		Count:        e.provider.ItemCount(),
		Initial:      e.initial,
		CenterExtent: e.centerExtent,
		Before:       c - a.start,
		After:        a.end - c,
	}
}

func (e *Engine) computeBounds() *offsetRange {
	s := e.span()
	lo, hi := clampRange(e.cfg, s, MinOffset(e.cfg, s), MaxOffset(e.cfg, s))
	e.tracef("gallery: bounds [%d,%d] for %d items from %d", lo, hi, s.Count, s.Initial)
	return &offsetRange{min: lo, max: hi}
}

// Offset is the cumulative scroll offset since the session began.
func (e *Engine) Offset() int { return e.offset }

// SelectedIndex is the index anchored at the viewport center for the
// current offset, or -1 when the engine is empty.
func (e *Engine) SelectedIndex() int {
	if !e.filled {
		return -1
	}
	return e.selected
}

// OffsetToIndex returns the signed scroll distance that brings target to
// the center of the viewport. Hosts animate toward it for smooth scrolling.
func (e *Engine) OffsetToIndex(target int) int {
	if !e.filled {
		return 0
	}
	count := e.provider.ItemCount()
	if count <= 0 {
		return 0
	}
	target = e.clampIndex(target, count)
	stride := e.centerExtent + e.cfg.ItemSpacing
	if e.cfg.Orientation == Horizontal {
		return (target-e.initial)*stride - e.offset
	}

	o := e.cfg.Orientation
	center := layoutArea(e.viewport, o).center()
	for _, it := range e.window {
		if it.Index == target {
			return int(it.Frame.Center(o)) - center
		}
	}
	anchor := e.window[0]
	for _, it := range e.window {
		if it.Index == e.selected {
			anchor = it
		}
	}
	return int(anchor.Frame.Center(o)) - center + (target-anchor.Index)*stride
}

// snapIndex asks the snapper for the item nearest the viewport center.
func (e *Engine) snapIndex() (int, bool) {
	if !e.filled {
		return -1, false
	}
	o := e.cfg.Orientation
	return e.snapper.SnapIndex(e.window, float64(layoutArea(e.viewport, o).center()), o)
}

// Settle resolves the item nearest the center once scrolling stops and
// fires the selection callback when it differs from the last settled index.
func (e *Engine) Settle() int {
	idx, ok := e.snapIndex()
	if !ok {
		return -1
	}
	if idx != e.settled {
		e.settled = idx
		if e.onSelected != nil {
			e.onSelected(idx)
		}
	}
	return idx
}

// SnapDistance is the scroll distance that centers the item Settle would
// pick.
func (e *Engine) SnapDistance() int {
	idx, ok := e.snapIndex()
	if !ok {
		return 0
	}
	return e.OffsetToIndex(idx)
}

// ScrollDirection returns -1 when target lies before the visible window
// (or nothing is laid out) and 1 otherwise.
func (e *Engine) ScrollDirection(target int) int {
	if !e.filled || target < e.window[0].Index {
		return -1
	}
	return 1
}

// CanScroll reports whether the gallery scrolls along axis.
func (e *Engine) CanScroll(axis Orientation) bool {
	return axis == e.cfg.Orientation
}

// Visible returns a copy of the visible window in index order.
func (e *Engine) Visible() []Item {
	return append([]Item(nil), e.window...)
}

// VisibleRange returns the first and last visible index.
func (e *Engine) VisibleRange() (first, last int, ok bool) {
	if len(e.window) == 0 {
		return 0, 0, false
	}
	return e.window[0].Index, e.window[len(e.window)-1].Index, true
}

// Frame returns the cached frame for index, which may be stale if the
// index is no longer visible.
func (e *Engine) Frame(index int) (Frame, bool) {
	return e.frames.get(index)
}

// FrameCount is the number of cached frames.
func (e *Engine) FrameCount() int { return len(e.frames) }

// ItemCount is the provider's current item count.
func (e *Engine) ItemCount() int { return e.provider.ItemCount() }

// ViewportSize is the viewport size the next layout will use.
func (e *Engine) ViewportSize() Size { return e.viewport.Size() }
