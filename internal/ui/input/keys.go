package input

import "github.com/charmbracelet/bubbles/key"

// KeyMap describes the normal-mode bindings for the short help line
type KeyMap struct {
	Focus  key.Binding
	Move   key.Binding
	Toggle key.Binding
	Clear  key.Binding
	Copy   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "section"),
		),
		Move: key.NewBinding(
			key.WithKeys("up", "down", "j", "k"),
			key.WithHelp("↑/↓", "move"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("space", "select"),
		),
		Clear: key.NewBinding(
			key.WithKeys("backspace", "x"),
			key.WithHelp("x", "clear"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c", "y"),
			key.WithHelp("c", "copy url"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Move, k.Toggle, k.Clear, k.Copy, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Move},
		{k.Toggle, k.Clear, k.Copy},
		{k.Help, k.Quit},
	}
}
