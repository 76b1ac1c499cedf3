// Package tui renders themes in the terminal: a lipgloss projection target and
// an interactive preview of the current tokens.
package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/sablier/internal/resolver"
	"github.com/alexisbeaulieu97/sablier/internal/theme"
)

// ThemeChangedMsg carries a resolver event into the program.
type ThemeChangedMsg struct {
	Event resolver.Event
}

// copiedMsg reports the outcome of a clipboard write.
type copiedMsg struct {
	name string
	err  error
}

// appliedMsg follows a scheme change issued from the keyboard.
type appliedMsg struct{}

// Controller is the subset of the resolver the preview drives.
type Controller interface {
	Toggle()
	SetColorScheme(theme.ColorScheme)
	Snapshot() resolver.State
}

type tokenRow struct {
	name  string
	value string
}

// Model is the Bubbletea state of the theme preview.
type Model struct {
	ctrl   Controller
	styles *StyleManager
	keys   keyMap
	help   help.Model
	copy   func(string) error

	rows     []tokenRow
	state    resolver.State
	cursor   int
	status   string
	failed   bool
	width    int
	height   int
	quitting bool
}

// NewModel builds a preview over ctrl. styles must be registered as a
// projector of the same resolver so the preview shows what was projected.
func NewModel(ctrl Controller, styles *StyleManager) Model {
	m := Model{
		ctrl:   ctrl,
		styles: styles,
		keys:   newKeyMap(),
		help:   help.New(),
		copy:   clipboard.WriteAll,
		width:  80,
		height: 24,
	}
	m.refresh()
	return m
}

// WithClipboard replaces the clipboard writer.
func (m Model) WithClipboard(write func(string) error) Model {
	if write != nil {
		m.copy = write
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Bridge forwards resolver events to send, usually tea.Program.Send, and
// returns the unsubscribe function.
func Bridge(r *resolver.Resolver, send func(tea.Msg)) func() {
	return r.Subscribe(func(e resolver.Event) {
		send(ThemeChangedMsg{Event: e})
	})
}

func (m *Model) refresh() {
	m.state = m.ctrl.Snapshot()

	projected, _ := m.styles.Theme()
	rows := make([]tokenRow, 0, len(projected.Colors.Keys()))
	projected.Colors.Each(func(name, value string) {
		rows = append(rows, tokenRow{name: name, value: value})
	})
	m.rows = rows
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Selected returns the token under the cursor.
func (m Model) Selected() (name, value string, ok bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return "", "", false
	}
	row := m.rows[m.cursor]
	return row.name, row.value, true
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}
