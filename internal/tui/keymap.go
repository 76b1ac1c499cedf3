package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up, down, toggle, light, dark, system, copy, help, quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		toggle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle"),
		),
		light: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "light"),
		),
		dark: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dark"),
		),
		system: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "system"),
		),
		copy: key.NewBinding(
			key.WithKeys("c", "y"),
			key.WithHelp("c", "copy value"),
		),
		help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.copy, k.help, k.quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.copy},
		{k.toggle, k.light, k.dark, k.system},
		{k.help, k.quit},
	}
}
