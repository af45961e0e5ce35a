package ui

import "github.com/hajimehoshi/ebiten/v2"

// Screen is one stage of the window: the loading screen, then the gallery.
type Screen interface {
	// Update handles input for one tick and returns the screen that takes
	// over, or nil to stay.
	Update() (Screen, error)
	Draw(dst *ebiten.Image)
	// OnEnter runs when the screen becomes current, OnExit when it leaves.
	OnEnter()
	OnExit()
	Name() string
}

// Inspector is a screen with layout state worth showing in the debug
// overlay.
type Inspector interface {
	DebugLines() []string
}

// ScreenManager runs the current screen and hands over to the next one.
// Screens never stack; the gallery replaces the loading screen for good.
type ScreenManager struct {
	current  Screen
	switches int
}

// NewScreenManager enters first.
func NewScreenManager(first Screen) *ScreenManager {
	sm := &ScreenManager{}
	sm.Switch(first)
	return sm
}

// Switch leaves the current screen and enters s.
func (sm *ScreenManager) Switch(s Screen) {
	if sm.current != nil {
		sm.current.OnExit()
	}
	sm.current = s
	if s != nil {
		s.OnEnter()
		sm.switches++
	}
}

// Close leaves the current screen.
func (sm *ScreenManager) Close() {
	sm.Switch(nil)
}

func (sm *ScreenManager) Current() Screen { return sm.current }

func (sm *ScreenManager) Update() error {
	if sm.current == nil {
		return nil
	}
	next, err := sm.current.Update()
	if err != nil {
		return err
	}
	if next != nil {
		sm.Switch(next)
	}
	return nil
}

// Draw draws the current screen and, when enabled, the debug overlay for
// screens that expose layout state.
func (sm *ScreenManager) Draw(dst *ebiten.Image) {
	if sm.current == nil {
		return
	}
	sm.current.Draw(dst)
	if in, ok := sm.current.(Inspector); ok && debugOverlayVisible {
		DrawDebugOverlay(dst, sm.current.Name(), sm.debugLines(in))
	}
}

func (sm *ScreenManager) debugLines(in Inspector) []string {
	return append(in.DebugLines(), fmtLine("screens", sm.switches))
}
