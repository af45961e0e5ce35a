package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// LoadingScreen waits for a background load and then replaces itself with
// the screen built by next. A failed load stays on screen with its error.
type LoadingScreen struct {
	done  <-chan error
	next  func() (Screen, error)
	err   error
	phase float64
	fade  float64
}

func NewLoadingScreen(done <-chan error, next func() (Screen, error)) *LoadingScreen {
	return &LoadingScreen{done: done, next: next}
}

func (ls *LoadingScreen) Name() string { return "Loading" }
func (ls *LoadingScreen) OnEnter()     {}
func (ls *LoadingScreen) OnExit()      {}

func (ls *LoadingScreen) Update() (Screen, error) {
	if _, _, back := InputState(); back {
		return nil, ebiten.Termination
	}
	ls.phase += 0.08
	ls.fade = Lerp(ls.fade, 1, 0.05)
	if ls.err != nil {
		return nil, nil
	}
	select {
	case err := <-ls.done:
		if err != nil {
			ls.err = err
			return nil, nil
		}
		s, err := ls.next()
		if err != nil {
			ls.err = err
			return nil, nil
		}
		return s, nil
	default:
	}
	return nil, nil
}

func (ls *LoadingScreen) Draw(dst *ebiten.Image) {
	b := dst.Bounds()
	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2
	if ls.err != nil {
		DrawTextCentered(dst, "Could not load posters", cx, cy-20, FontSizeHeading, ColorError)
		DrawTextCentered(dst, truncateText(ls.err.Error(), float64(b.Dx())-SidePadding*2, FontSizeBody),
			cx, cy+16, FontSizeBody, ColorTextSecondary)
		return
	}
	for i := 0; i < 3; i++ {
		a := 0.4 + 0.6*math.Abs(math.Sin(ls.phase+float64(i)*0.6))
		clr := ColorPrimary
		clr.A = uint8(255 * a * ls.fade)
		vector.DrawFilledCircle(dst, float32(cx-30+float64(i)*30), float32(cy), 8, clr, true)
	}
	DrawTextCentered(dst, "Loading posters…", cx, cy+40, FontSizeBody, ColorTextSecondary)
}
