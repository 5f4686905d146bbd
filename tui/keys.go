package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Reveal  key.Binding
	Flag    key.Binding
	Chord   key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Reveal:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "reveal")),
		Flag:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flag")),
		Chord:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chord")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (keys KeyMap) bindings() []key.Binding {
	return []key.Binding{
		keys.Up, keys.Down, keys.Left, keys.Right,
		keys.Reveal, keys.Flag, keys.Chord, keys.Restart, keys.Quit,
	}
}
