// Package motion animates gallery scrolling one frame at a time.
package motion

import "math"

// Target is the part of the gallery engine a Scroller drives.
type Target interface {
	ApplyScrollDelta(delta int) (int, error)
	OffsetToIndex(target int) int
	SnapDistance() int
	Settle() int
}

// DefaultSpeed is the fraction of the remaining distance covered per frame.
const DefaultSpeed = 0.18

// Scroller eases pending scroll distance into the engine, snaps to the
// nearest item when motion ends and settles the selection.
type Scroller struct {
	target   Target
	speed    float64
	pending  int
	snapping bool
	dragging bool
	idle     bool
}

func NewScroller(t Target, speed float64) *Scroller {
	if speed <= 0 || speed > 1 {
		speed = DefaultSpeed
	}
	return &Scroller{target: t, speed: speed}
}

// ScrollTo animates toward index, replacing any motion in progress.
func (s *Scroller) ScrollTo(index int) {
	s.pending = s.target.OffsetToIndex(index)
	s.snapping = false
	s.idle = false
}

// Nudge adds px of motion, as from a wheel tick.
func (s *Scroller) Nudge(px int) {
	s.pending += px
	s.snapping = false
	s.idle = false
}

// Drag applies delta immediately and holds off snapping until Release.
func (s *Scroller) Drag(delta int) error {
	s.dragging = true
	s.pending = 0
	s.snapping = false
	s.idle = false
	_, err := s.target.ApplyScrollDelta(delta)
	return err
}

// Release ends a drag; the next steps snap to the nearest item.
func (s *Scroller) Release() {
	s.dragging = false
	s.idle = false
}

// Stop drops any motion in progress without settling.
func (s *Scroller) Stop() {
	s.pending = 0
	s.snapping = false
	s.dragging = false
	s.idle = true
}

// Active reports whether more frames of motion remain.
func (s *Scroller) Active() bool {
	return !s.idle && !s.dragging
}

// Pending is the distance still to be applied.
func (s *Scroller) Pending() int { return s.pending }

// Step advances one frame.
func (s *Scroller) Step() error {
	if s.idle || s.dragging {
		return nil
	}
	if s.pending == 0 {
		if !s.snapping {
			if d := s.target.SnapDistance(); d != 0 {
				s.pending = d
				s.snapping = true
				return nil
			}
		}
		s.snapping = false
		s.idle = true
		s.target.Settle()
		return nil
	}

	step := int(math.Round(float64(s.pending) * s.speed))
	if step == 0 {
		step = 1
		if s.pending < 0 {
			step = -1
		}
	}
	applied, err := s.target.ApplyScrollDelta(step)
	if err != nil {
		s.pending = 0
		return err
	}
	if applied != step {
		// Hit a bound.
		s.pending = 0
		return nil
	}
	s.pending -= step
	return nil
}
