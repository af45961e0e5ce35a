package gallery

import (
	"fmt"
	"strings"
)

// fakeHandle is what fakeProvider hands out.
type fakeHandle struct {
	id    int
	index int
}

// fakeProvider serves count items of one size, counts calls and tracks live
// handles so tests can detect leaks and double releases.
type fakeProvider struct {
	count int
	size  Size
	sizes map[int]Size

	failMeasure     map[int]error
	failMaterialize map[int]error

	nextID       int
	live         map[int]*fakeHandle
	measures     int
	materializes int
	releases     int
	outOfRange   []int
	badReleases  int
}

func newFakeProvider(count int, size Size) *fakeProvider {
	return &fakeProvider{
		count:           count,
		size:            size,
		sizes:           make(map[int]Size),
		failMeasure:     make(map[int]error),
		failMaterialize: make(map[int]error),
		live:            make(map[int]*fakeHandle),
	}
}

func (p *fakeProvider) ItemCount() int { return p.count }

func (p *fakeProvider) Measure(index int) (Size, error) {
	p.measures++
	if index < 0 || index >= p.count {
		p.outOfRange = append(p.outOfRange, index)
	}
	if err := p.failMeasure[index]; err != nil {
		return Size{}, err
	}
	if sz, ok := p.sizes[index]; ok {
		return sz, nil
	}
	return p.size, nil
}

func (p *fakeProvider) Materialize(index int) (Handle, error) {
	p.materializes++
	if index < 0 || index >= p.count {
		p.outOfRange = append(p.outOfRange, index)
	}
	if err := p.failMaterialize[index]; err != nil {
		return nil, err
	}
	p.nextID++
	h := &fakeHandle{id: p.nextID, index: index}
	p.live[h.id] = h
	return h, nil
}

func (p *fakeProvider) Release(h Handle) {
	p.releases++
	fh, ok := h.(*fakeHandle)
	if !ok || p.live[fh.id] == nil {
		p.badReleases++
		return
	}
	delete(p.live, fh.id)
}

type fixedViewport struct {
	size Size
	pad  Insets
}

func (v fixedViewport) Size() Size      { return v.size }
func (v fixedViewport) Padding() Insets { return v.pad }

// traceLog collects trace output.
type traceLog struct {
	lines []string
}

func (l *traceLog) printf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *traceLog) contains(s string) bool {
	for _, line := range l.lines {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}
