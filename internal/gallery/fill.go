package gallery

import "sort"

// pass collects the result of one fill. Nothing touches engine state until
// commit, so a provider failure can be rolled back with abort.
type pass struct {
	e      *Engine
	count  int
	area   area
	scrap  map[int]Handle // handles of the current window, reusable by index
	items  []Item
	frames map[int]Frame
	fresh  map[int]Handle // materialized during this pass

	selected     int
	centerExtent int
}

func (e *Engine) newPass(count int) *pass {
	p := &pass{
		e:            e,
		count:        count,
		area:         layoutArea(e.viewport, e.cfg.Orientation),
		scrap:        make(map[int]Handle, len(e.window)),
		frames:       make(map[int]Frame),
		fresh:        make(map[int]Handle),
		selected:     e.selected,
		centerExtent: e.centerExtent,
	}
	for _, it := range e.window {
		p.scrap[it.Index] = it.Handle
	}
	return p
}

// acquire returns a handle and size for index. With cached set, a frame from
// the cache supplies the size and the provider is not asked to measure.
func (p *pass) acquire(index int, cached bool) (Handle, Size, error) {
	h, ok := p.scrap[index]
	if !ok {
		var err error
		h, err = p.e.provider.Materialize(index)
		if err != nil {
			return nil, Size{}, &ProviderError{Op: "materialize", Index: index, Err: err}
		}
		p.fresh[index] = h
	}
	if cached {
		if f, ok := p.e.frames.get(index); ok {
			return h, Size{W: f.Width(), H: f.Height()}, nil
		}
	}
	sz, err := p.e.provider.Measure(index)
	if err != nil {
		return nil, Size{}, &ProviderError{Op: "measure", Index: index, Err: err}
	}
	return h, sz, nil
}

func (p *pass) put(it Item) {
	p.items = append(p.items, it)
	p.frames[it.Index] = it.Frame
}

func (p *pass) abort() {
	for _, h := range p.fresh {
		p.e.provider.Release(h)
	}
}

// extent is the size of sz along the primary axis.
func (e *Engine) extent(sz Size) int {
	if e.cfg.Orientation == Vertical {
		return sz.H
	}
	return sz.W
}

// frameAt builds a frame starting at mainStart on the primary axis and
// centered on the cross axis.
func (e *Engine) frameAt(a area, mainStart int, sz Size) Frame {
	if e.cfg.Orientation == Vertical {
		left := int(float64(a.crossStart) + float64(a.crossSpace()-sz.W)/2)
		return Frame{Left: left, Top: mainStart, Right: left + sz.W, Bottom: mainStart + sz.H}
	}
	top := int(float64(a.crossStart) + float64(a.crossSpace()-sz.H)/2)
	return Frame{Left: mainStart, Top: top, Right: mainStart + sz.W, Bottom: top + sz.H}
}

// scaleFor returns the scale of the k-th neighbor of the anchor item.
type scaleFor func(k int) float64

func unscaled(int) float64 { return 1 }

// fillBefore lays out items from index downward while the scaled leading edge
// is still past limit. edge is the scaled leading edge of the item after index.
func (p *pass) fillBefore(index int, edge, limit float64, scale scaleFor) error {
	e := p.e
	spacing := float64(e.cfg.ItemSpacing)
	for i, k := index, 1; i >= 0 && edge > limit; i, k = i-1, k+1 {
		h, sz, err := p.acquire(i, false)
		if err != nil {
			return err
		}
		ext := e.extent(sz)
		s := scale(k)
		end := int(edge - (spacing - Contraction(ext, s)))
		p.put(Item{Index: i, Frame: e.frameAt(p.area, end-ext, sz), Scale: s, Handle: h})
		edge -= float64(ext)*s + spacing
	}
	return nil
}

// fillAfter is the mirror of fillBefore toward the trailing edge.
func (p *pass) fillAfter(index int, edge, limit float64, scale scaleFor) error {
	e := p.e
	spacing := float64(e.cfg.ItemSpacing)
	for i, k := index, 1; i < p.count && edge < limit; i, k = i+1, k+1 {
		h, sz, err := p.acquire(i, false)
		if err != nil {
			return err
		}
		ext := e.extent(sz)
		s := scale(k)
		start := int(edge + (spacing - Contraction(ext, s)))
		p.put(Item{Index: i, Frame: e.frameAt(p.area, start, sz), Scale: s, Handle: h})
		edge += float64(ext)*s + spacing
	}
	return nil
}

// firstFill centers the initial index and expands outward until both
// viewport edges are covered. The centered item's measured extent becomes
// the reference size for the session.
func (p *pass) firstFill(initial int) error {
	e := p.e
	h, sz, err := p.acquire(initial, false)
	if err != nil {
		return err
	}
	ext := e.extent(sz)
	p.centerExtent = ext
	start := int(float64(p.area.start) + float64(p.area.space()-ext)/2)
	p.put(Item{Index: initial, Frame: e.frameAt(p.area, start, sz), Scale: 1, Handle: h})
	p.selected = initial

	scale := unscaled
	if e.cfg.Orientation == Horizontal {
		scale = func(k int) float64 { return e.scaler.Scale(float64(k)) }
	}
	if err := p.fillBefore(initial-1, float64(start), float64(p.area.start), scale); err != nil {
		return err
	}
	return p.fillAfter(initial+1, float64(start+ext), float64(p.area.end), scale)
}

// fillScaled rebuilds the whole window from the cumulative offset. The anchor
// is the index floor(|offset|/stride) steps away from the initial index; the
// remainder drives every item's scale and position between two resting
// layouts. The sign of the offset picks which neighbor the anchor is moving
// toward.
func (p *pass) fillScaled(offset int) error {
	e := p.e
	spacing := e.cfg.ItemSpacing
	stride := p.centerExtent + spacing
	if stride <= 0 {
		stride = 1
	}
	abs := offset
	if abs < 0 {
		abs = -abs
	}
	steps, sub := abs/stride, abs%stride
	t := float64(sub) / float64(stride)

	var sel int
	if offset > 0 {
		sel = min(e.initial+steps, p.count-1)
	} else {
		sel = max(e.initial-steps, 0)
	}
	p.selected = sel

	h, sz, err := p.acquire(sel, false)
	if err != nil {
		return err
	}
	ext := e.extent(sz)
	s := e.scaler.Interpolate(0, 1, t)
	c := Contraction(ext, s)
	center := float64(p.area.center())
	half := float64(p.centerExtent / 2)

	var start int
	var before, after scaleFor
	if offset > 0 {
		end := int(center + half - float64(sub) + c)
		start = end - ext
		before = func(k int) float64 { return e.scaler.Interpolate(float64(k), float64(k+1), t) }
		after = func(k int) float64 { return e.scaler.Interpolate(float64(k), float64(k-1), t) }
	} else {
		start = int(center - half + float64(sub) - c)
		before = func(k int) float64 { return e.scaler.Interpolate(float64(k), float64(k-1), t) }
		after = func(k int) float64 { return e.scaler.Interpolate(float64(k), float64(k+1), t) }
	}
	p.put(Item{Index: sel, Frame: e.frameAt(p.area, start, sz), Scale: s, Handle: h})

	margin := float64(spacing)
	if err := p.fillBefore(sel-1, float64(start)+c, float64(p.area.start)+margin, before); err != nil {
		return err
	}
	return p.fillAfter(sel+1, float64(start+ext)-c, float64(p.area.end)-margin, after)
}

// fillTranslated moves the current window by delta without scaling: items
// that leave the trailing side are dropped, the exposed side is filled in
// index order, then every frame shifts by -delta. Vertical items are
// separated by ItemSpacing here and in the first fill; a list that stacks
// items edge to edge, as Android gallery layout managers do, needs an
// ItemSpacing of zero.
func (p *pass) fillTranslated(delta int) error {
	e := p.e
	o := e.cfg.Orientation
	spacing := e.cfg.ItemSpacing
	items := append([]Item(nil), e.window...)
	if len(items) == 0 {
		return nil
	}

	if delta >= 0 {
		last := items[len(items)-1]
		next, edge := last.Index+1, last.Frame.End(o)
		drop := 0
		for drop < len(items)-1 && items[drop].Frame.End(o)-delta < p.area.start {
			drop++
		}
		items = items[drop:]
		for i := next; i < p.count && edge < p.area.end+delta; i++ {
			h, sz, err := p.acquire(i, true)
			if err != nil {
				return err
			}
			f := e.frameAt(p.area, edge+spacing, sz)
			items = append(items, Item{Index: i, Frame: f, Scale: 1, Handle: h})
			edge = f.End(o)
		}
	} else {
		first := items[0]
		prev, edge := first.Index-1, first.Frame.Start(o)
		keep := len(items)
		for keep > 1 && items[keep-1].Frame.Start(o)-delta > p.area.end {
			keep--
		}
		items = items[:keep]
		var head []Item
		for i := prev; i >= 0 && edge > p.area.start+delta; i-- {
			h, sz, err := p.acquire(i, true)
			if err != nil {
				return err
			}
			f := e.frameAt(p.area, edge-spacing-e.extent(sz), sz)
			head = append(head, Item{Index: i, Frame: f, Scale: 1, Handle: h})
			edge = f.Start(o)
		}
		for l, r := 0, len(head)-1; l < r; l, r = l+1, r-1 {
			head[l], head[r] = head[r], head[l]
		}
		items = append(head, items...)
	}

	for i := range items {
		items[i].Frame = items[i].Frame.Translate(o, -delta)
	}
	// A delta larger than the viewport can leave freshly added items fully
	// outside after the shift; the window keeps at least one item.
	lo, hi := 0, len(items)
	for lo < hi-1 && items[lo].Frame.End(o) < p.area.start {
		lo++
	}
	for hi-1 > lo && items[hi-1].Frame.Start(o) > p.area.end {
		hi--
	}
	for _, it := range items[lo:hi] {
		p.put(it)
	}
	if idx, ok := e.snapper.SnapIndex(p.items, float64(p.area.center()), o); ok {
		p.selected = idx
	}
	return nil
}

// commit installs the pass as the new window, releasing handles of items
// that are no longer visible and writing the new frames into the cache.
func (e *Engine) commit(p *pass) {
	sort.Slice(p.items, func(i, j int) bool { return p.items[i].Index < p.items[j].Index })
	keep := make(map[int]bool, len(p.items))
	for _, it := range p.items {
		keep[it.Index] = true
	}
	for _, it := range e.window {
		if !keep[it.Index] {
			e.provider.Release(it.Handle)
		}
	}
	// Handles materialized in this pass but trimmed from the window.
	for idx, h := range p.fresh {
		if !keep[idx] {
			e.provider.Release(h)
		}
	}
	for idx, f := range p.frames {
		e.frames[idx] = f
	}
	e.window = p.items
	e.selected = p.selected
	e.centerExtent = p.centerExtent
	e.filled = len(e.window) > 0
}
