package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Navigation
	Billing  key.Binding
	History  key.Binding
	Settings key.Binding

	// Actions
	Select key.Binding
	Add    key.Binding
	Delete key.Binding

	// Movement
	Up   key.Binding
	Down key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Billing:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "billing")),
	History:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
	Settings: key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
}
