package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Enter    key.Binding
	Refresh  key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
}

func binding(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

var keys = keyMap{
	Tab:      binding("tab", "next view", "tab"),
	ShiftTab: binding("shift+tab", "prev view", "shift+tab"),
	Enter:    binding("enter", "run", "enter"),
	Refresh:  binding("r", "refresh analytics", "r"),
	Quit:     binding("q", "quit", "q", "ctrl+c"),
	Up:       binding("↑/k", "up", "up", "k"),
	Down:     binding("↓/j", "down", "down", "j"),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Enter},
		{k.Up, k.Down, k.Refresh},
		{k.Quit},
	}
}
