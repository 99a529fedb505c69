package demo_tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/mattsolo1/grove-core/tui/keymap"
)

type KeyMap struct {
	keymap.Base
	Left   key.Binding
	Right  key.Binding
	Next   key.Binding
	Prev   key.Binding
	Select key.Binding
}

func NewKeyMap() KeyMap {
	base := keymap.NewBase()
	base.Quit = key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	)
	return KeyMap{
		Base: base,
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "decrease value"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "increase value"),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next scenario"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "previous scenario"),
		),
		Select: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump to scenario"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			key.NewBinding(key.WithKeys(""), key.WithHelp("", "Parameters")),
			k.Up,
			k.Down,
			k.Left,
			k.Right,
		},
		{
			key.NewBinding(key.WithKeys(""), key.WithHelp("", "Scenarios")),
			k.Next,
			k.Prev,
			k.Select,
			k.Help,
			k.Quit,
		},
	}
}
