package termview

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

// Colors follow the window theme.
var (
	ColorPrimary = lipgloss.Color("#00A4DC")
	ColorAccent  = lipgloss.Color("#AA5CC3")
	ColorText    = lipgloss.Color("#E0E0E0")
	ColorMuted   = lipgloss.Color("#60606C")
	ColorError   = lipgloss.Color("#E04040")
)

// Styles contains the lipgloss styles for the terminal gallery.
type Styles struct {
	Title    lipgloss.Style
	Counter  lipgloss.Style
	Caption  lipgloss.Style
	Selected lipgloss.Style
	Empty    lipgloss.Style
	Error    lipgloss.Style

	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// DefaultStyles returns the stock dark styles.
func DefaultStyles() Styles {
	return Styles{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Counter:      lipgloss.NewStyle().Foreground(ColorMuted),
		Caption:      lipgloss.NewStyle().Bold(true).Foreground(ColorText),
		Selected:     lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Empty:        lipgloss.NewStyle().Italic(true).Foreground(ColorMuted),
		Error:        lipgloss.NewStyle().Foreground(ColorError),
		ShortcutKey:  lipgloss.NewStyle().Foreground(ColorAccent),
		ShortcutDesc: lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

// posterStyle colors an unselected poster with its tint.
func posterStyle(c color.RGBA) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)))
}
