package termview

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/depeter/jellyflow/internal/gallery"
)

// KeyMap defines the gallery keybindings.
type KeyMap struct {
	Prev     key.Binding
	Next     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	First    key.Binding
	Last     key.Binding
	Reload   key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns arrow and vim keys along the scroll axis.
func DefaultKeyMap(o gallery.Orientation) KeyMap {
	prev := key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous"))
	next := key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next"))
	if o == gallery.Vertical {
		prev = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous"))
		next = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next"))
	}
	return KeyMap{
		Prev: prev,
		Next: next,
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page back"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page on"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end", "last"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.PageUp, k.PageDown, k.First, k.Last, k.Reload, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
