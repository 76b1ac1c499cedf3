package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
)

// View renders the current state of the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	styles := m.styles.Styles()

	var sections []string
	sections = append(sections, m.header(styles))
	sections = append(sections, styles.Section.Render("Colors"))
	sections = append(sections, m.tokenList(styles))
	if m.status != "" {
		status := wrap.String(m.status, max(m.width-2, 20))
		if m.failed {
			status = styles.Error.Render(status)
		} else {
			status = styles.Muted.Render(status)
		}
		sections = append(sections, "", status)
	}
	sections = append(sections, "", m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) header(styles Styles) string {
	parts := []string{
		styles.Title.Render("sablier"),
		styles.Badge.Render(string(m.state.Resolved)),
		styles.Muted.Render("scheme: " + string(m.state.Theme.ColorScheme)),
	}
	if m.state.SystemKnown {
		parts = append(parts, styles.Muted.Render("system: "+string(m.state.System)))
	}
	if m.state.Forced != "" {
		parts = append(parts, styles.Error.Render("forced: "+string(m.state.Forced)))
	}
	return strings.Join(parts, "  ")
}

// visibleRows is how many token rows fit below the header and above help.
func (m Model) visibleRows() int {
	const chrome = 8
	if m.height-chrome < 3 {
		return 3
	}
	return m.height - chrome
}

func (m Model) tokenList(styles Styles) string {
	if len(m.rows) == 0 {
		return styles.Muted.Render("  no color tokens")
	}

	limit := m.visibleRows()
	start := 0
	if m.cursor >= limit {
		start = m.cursor - limit + 1
	}
	end := min(start+limit, len(m.rows))

	nameWidth := 0
	for _, row := range m.rows {
		nameWidth = max(nameWidth, len(row.name))
	}
	valueWidth := uint(max(m.width-nameWidth-10, 8))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row := m.rows[i]
		value := truncate.StringWithTail(row.value, valueWidth, "…")
		line := fmt.Sprintf("%-*s %s", nameWidth, row.name, value)
		if i == m.cursor {
			line = styles.Selected.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		lines = append(lines, Swatch(row.value)+" "+line)
	}
	return strings.Join(lines, "\n")
}
