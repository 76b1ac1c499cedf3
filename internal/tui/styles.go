package tui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/sablier/internal/cssvars"
	"github.com/alexisbeaulieu97/sablier/internal/theme"
)

// Styles are the lipgloss styles derived from one projected theme.
type Styles struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Badge    lipgloss.Style
	Error    lipgloss.Style
	Frame    lipgloss.Style
}

// NewStyles builds styles from the color tokens of c.
func NewStyles(c theme.Colors) Styles {
	fg := tokenColor(c, "foreground", "#0f172a")
	muted := tokenColor(c, "mutedForeground", "#64748b")
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(tokenColor(c, "primary", "#3b82f6")),
		Section:  lipgloss.NewStyle().Bold(true).Foreground(fg).MarginTop(1),
		Text:     lipgloss.NewStyle().Foreground(fg),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(tokenColor(c, "accentForeground", "#ffffff")).Background(tokenColor(c, "accent", "#8b5cf6")),
		Badge:    lipgloss.NewStyle().Foreground(tokenColor(c, "primaryForeground", "#ffffff")).Background(tokenColor(c, "primary", "#3b82f6")).Padding(0, 1),
		Error:    lipgloss.NewStyle().Foreground(tokenColor(c, "destructive", "#ef4444")),
		Frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(tokenColor(c, "border", "#e2e8f0")).Padding(0, 1),
	}
}

func tokenColor(c theme.Colors, name, fallback string) lipgloss.Color {
	if v, ok := c.Lookup(name); ok {
		return lipgloss.Color(v)
	}
	return lipgloss.Color(fallback)
}

// Swatch renders a two-cell block filled with value.
func Swatch(value string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(value)).Render("  ")
}

// StyleManager is the terminal projection target. It keeps the last projected
// theme and the styles built from it.
type StyleManager struct {
	mu        sync.RWMutex
	theme     theme.Theme
	resolved  theme.ResolvedScheme
	styles    Styles
	suspended bool
}

var _ cssvars.Projector = (*StyleManager)(nil)

// NewStyleManager starts with the canonical light theme.
func NewStyleManager() *StyleManager {
	m := &StyleManager{}
	_ = m.Apply(theme.Light(), theme.ResolvedLight)
	return m
}

// Apply implements cssvars.Projector.
func (m *StyleManager) Apply(t theme.Theme, resolved theme.ResolvedScheme) error {
	styles := NewStyles(t.Colors)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = t.Clone()
	m.resolved = resolved
	m.styles = styles
	return nil
}

// SuspendTransitions implements cssvars.Projector. Terminals have no
// transitions; the flag only records the request.
func (m *StyleManager) SuspendTransitions() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suspended = true
	return nil
}

// ResumeTransitions implements cssvars.Projector.
func (m *StyleManager) ResumeTransitions() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suspended = false
	return nil
}

// Styles returns the current styles.
func (m *StyleManager) Styles() Styles {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.styles
}

// Theme returns a copy of the last projected theme and its scheme.
func (m *StyleManager) Theme() (theme.Theme, theme.ResolvedScheme) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.theme.Clone(), m.resolved
}

// Suspended reports whether transitions are currently suspended.
func (m *StyleManager) Suspended() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.suspended
}
