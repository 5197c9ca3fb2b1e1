package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Process    key.Binding
	Copy       key.Binding
	NextFocus  key.Binding
	PrevFocus  key.Binding
	Left       key.Binding
	Right      key.Binding
	Toggle     key.Binding
	Edit       key.Binding
	Blur       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Process:    key.NewBinding(key.WithKeys("ctrl+r", "p"), key.WithHelp("ctrl+r", "process")),
		Copy:       key.NewBinding(key.WithKeys("ctrl+y", "y"), key.WithHelp("ctrl+y", "copy result")),
		NextFocus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next area")),
		PrevFocus:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous area")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous mode")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next mode")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle mode")),
		Edit:       key.NewBinding(key.WithKeys("i", "e"), key.WithHelp("i", "edit text")),
		Blur:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave editor")),
		ScrollUp:   key.NewBinding(key.WithKeys("up", "k", "pgup"), key.WithHelp("↑/pgup", "scroll result")),
		ScrollDown: key.NewBinding(key.WithKeys("down", "j", "pgdown"), key.WithHelp("↓/pgdn", "scroll result")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Process, k.Copy, k.NextFocus, k.Edit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Process, k.Copy, k.Edit, k.Blur},
		{k.NextFocus, k.PrevFocus, k.Left, k.Right, k.Toggle},
		{k.ScrollUp, k.ScrollDown, k.Help, k.Quit},
	}
}
