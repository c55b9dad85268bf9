// Package help renders the key reference overlay of the planner UI.
package help

import (
	_ "embed"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"
)

//go:embed help.md
var helpMarkdown string

// Model renders the Glamour-based help overlay inside a bordered viewport.
type Model struct {
	viewport viewport.Model
	width    int
	height   int
	style    string

	frame lipgloss.Style
	err   error
}

// New constructs a help overlay sized to the provided bounds. style is a
// glamour standard style name such as "dark" or "light".
func New(width, height int, style string) *Model {
	if style == "" {
		style = "dark"
	}
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	model := &Model{
		viewport: vp,
		style:    style,
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
	}
	model.SetSize(width, height)
	return model
}

// Update forwards scrolling keys to the viewport.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return cmd
}

// View renders the help content inside a rounded frame.
func (m *Model) View() string {
	body := m.viewport.View()
	if body == "" && m.err != nil {
		body = "help unavailable: " + m.err.Error()
	}
	return m.frame.Render(body)
}

// SetSize configures the overlay dimensions and re-renders the markdown to fit.
func (m *Model) SetSize(width, height int) {
	width = max(width, 32)
	height = max(height, 8)
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height

	innerWidth := max(width-m.frame.GetHorizontalFrameSize(), 1)
	innerHeight := max(height-m.frame.GetVerticalFrameSize(), 1)
	m.viewport.SetWidth(innerWidth)
	m.viewport.SetHeight(innerHeight)
	m.renderContent(innerWidth)
}

func (m *Model) renderContent(wrap int) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.style),
		glamour.WithWordWrap(max(wrap, 10)),
	)
	if err != nil {
		m.fail(err)
		return
	}
	content, err := renderer.Render(strings.TrimSpace(helpMarkdown))
	if err != nil {
		m.fail(err)
		return
	}

	m.err = nil
	m.viewport.SetContent(stripANSI(content))
	m.viewport.SetYOffset(0)
}

func (m *Model) fail(err error) {
	m.err = err
	m.viewport.SetContent("help unavailable: " + err.Error())
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
