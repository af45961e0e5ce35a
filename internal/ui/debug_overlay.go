package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var debugOverlayVisible bool

// ToggleDebugOverlay toggles the debug overlay on F12.
func ToggleDebugOverlay() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		debugOverlayVisible = !debugOverlayVisible
	}
}

// SetDebugOverlay shows or hides the overlay, as from a --debug flag.
func SetDebugOverlay(visible bool) {
	debugOverlayVisible = visible
}

func fmtLine(label string, v any) string {
	return fmt.Sprintf("%-12s %v", label, v)
}

// DrawDebugOverlay draws a panel of state lines for the named screen.
func DrawDebugOverlay(screen *ebiten.Image, name string, lines []string) {
	const (
		padX    = 16.0
		padY    = 12.0
		lineH   = 18.0
		panelW  = 420.0
		marginR = 20.0
		marginT = 20.0
	)

	panelH := float64(len(lines)+1)*lineH + padY*2
	w := screen.Bounds().Dx()
	px := float64(w) - panelW - marginR
	py := marginT

	vector.DrawFilledRect(screen, float32(px), float32(py), float32(panelW), float32(panelH), ColorOverlay, false)

	x := px + padX
	y := py + padY
	DrawText(screen, "Debug: "+name+" (F12 to close)", x, y, FontSizeSmall, ColorPrimary)
	y += lineH
	for _, l := range lines {
		DrawText(screen, l, x, y, FontSizeSmall, ColorText)
		y += lineH
	}
}
