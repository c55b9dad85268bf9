// Package panel renders the framed side panes of the planner UI.
package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/planner/pkg/tui/theme"
)

// Model renders a titled pane of pre-styled body lines.
type Model struct {
	title      string
	lines      []string
	width      int
	frameStyle lipgloss.Style
	titleStyle lipgloss.Style
	bodyStyle  lipgloss.Style
}

// New returns a panel styled by th.
func New(th theme.PanelTheme) Model {
	return Model{
		frameStyle: th.Frame,
		titleStyle: th.Title,
		bodyStyle:  th.Body,
	}
}

// SetContent updates the panel title and body lines.
func (m *Model) SetContent(title string, lines []string) {
	m.title = title
	m.lines = lines
}

// SetWidth bounds the inner width. Zero leaves lines untouched.
func (m *Model) SetWidth(width int) {
	m.width = max(width, 0)
}

// View returns the rendered panel and its total height in lines.
func (m Model) View() (string, int) {
	var content []string
	if m.title != "" {
		content = append(content, m.titleStyle.Render(m.clip(m.title)))
	}
	for _, line := range m.lines {
		content = append(content, m.bodyStyle.Render(m.clip(line)))
	}
	view := m.frameStyle.Render(strings.Join(content, "\n"))
	return view, strings.Count(view, "\n") + 1
}

func (m Model) clip(s string) string {
	if m.width == 0 || lipgloss.Width(s) <= m.width {
		return s
	}
	return truncate.StringWithTail(s, uint(m.width), "…")
}
