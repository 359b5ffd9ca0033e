package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	End    key.Binding
	Reset  key.Binding
	Copy   key.Binding
	Back   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev word")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next word")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "line up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "line down")),
		Select: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "mark word")),
		End:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end/edit")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Copy:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy results")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "texts")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.End, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Select, k.End, k.Reset},
		{k.Copy, k.Back, k.Help, k.Quit},
	}
}
