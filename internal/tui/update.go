package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/sablier/internal/theme"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case ThemeChangedMsg:
		m.refresh()
		return m, nil
	case appliedMsg:
		m.refresh()
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.failed = true
			m.status = msg.err.Error()
		} else {
			m.failed = false
			m.status = fmt.Sprintf("copied %s", msg.name)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.toggle):
		return m, m.apply(m.ctrl.Toggle)
	case key.Matches(msg, m.keys.light):
		return m, m.setScheme(theme.SchemeLight)
	case key.Matches(msg, m.keys.dark):
		return m, m.setScheme(theme.SchemeDark)
	case key.Matches(msg, m.keys.system):
		return m, m.setScheme(theme.SchemeSystem)
	case key.Matches(msg, m.keys.copy):
		name, value, ok := m.Selected()
		if !ok {
			return m, nil
		}
		write := m.copy
		return m, func() tea.Msg {
			if err := write(value); err != nil {
				return copiedMsg{name: name, err: fmt.Errorf("copy %s: %w", name, err)}
			}
			return copiedMsg{name: name}
		}
	}
	return m, nil
}

// apply runs fn off the event loop; resolver listeners may call back into
// the program.
func (m Model) apply(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return appliedMsg{}
	}
}

func (m Model) setScheme(scheme theme.ColorScheme) tea.Cmd {
	ctrl := m.ctrl
	return m.apply(func() { ctrl.SetColorScheme(scheme) })
}
