package teaui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/stats"
	"tableflip.dev/planner/pkg/timeutil"
	"tableflip.dev/planner/pkg/tui/components/calendar"
	"tableflip.dev/planner/pkg/tui/components/panel"
)

const (
	defaultWidth  = 110
	defaultHeight = 34
)

// View renders the grid, the side panes and the footer.
func (m *Model) View() string {
	width, height := m.size()
	header := m.header()
	footer := m.footer()

	if m.mode == modeHelp {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.help.View(), footer)
	}

	side := sideWidth(width)
	gridWidth := width - side - 1
	bodyHeight := height - lipgloss.Height(header) - lipgloss.Height(footer)

	grid := m.renderGrid(gridWidth, bodyHeight)
	panes := lipgloss.JoinVertical(lipgloss.Left, m.dayPane(side), m.infoPane(side))
	body := lipgloss.JoinHorizontal(lipgloss.Top, grid, " ", panes)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) size() (int, int) {
	w, h := m.termWidth, m.termHeight
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func sideWidth(width int) int {
	if width >= 110 {
		return 38
	}
	return max(width/3, 24)
}

func (m *Model) header() string {
	title := fmt.Sprintf("Planner · %s · %s view", m.session.Title(), m.session.Mode)
	line := m.theme.Panel.Title.Render(title)
	if m.drag.Active() {
		_, it := m.drag.Item()
		line += "  " + m.theme.Items.Carried.Render("carrying: "+it.Title)
	}
	return line
}

func (m *Model) footer() string {
	th := m.theme.Footer
	switch m.mode {
	case modeInput:
		return m.input.View()
	case modeKind:
		return th.Prompt.Render("Add: ") + th.Help.Render("1 to-do  2 note  3 mood  4 event  esc cancel")
	case modeMood:
		var parts []string
		for i, mood := range entry.Moods {
			parts = append(parts, fmt.Sprintf("%d %s", (i+1)%10, mood))
		}
		return th.Prompt.Render("Mood: ") + th.Help.Render(strings.Join(parts, "  "))
	case modeHelp:
		return th.Help.Render("?/esc close help")
	}
	if m.err != nil {
		return th.Error.Render("ERR: " + m.err.Error())
	}
	return th.Status.Render(m.status) + "  " + th.Help.Render("a add · space done · g/p carry · v view · ? help · q quit")
}

func (m *Model) renderGrid(width, height int) string {
	snap := m.svc.Snapshot()
	now := m.svc.Clock.Now()
	dates := m.session.VisibleDates()
	focused, _ := m.focused()
	_, carried := m.drag.Item()

	var opts calendar.Options
	if m.session.Mode == app.ViewMonth {
		// 6 rows, +1 header line, 2 border lines per row
		opts = calendar.MonthOptions(m.theme, width/7-2, (height-1)/6-2)
	} else {
		opts = calendar.WeekOptions(m.theme, width/3-2, height/3-2)
	}
	month := firstOfMonth(m.session).Month()

	cells := make([]calendar.Cell, 0, len(dates))
	for _, d := range dates {
		key := timeutil.DateKey(d)
		cell := calendar.Cell{
			Date:     d,
			Items:    snap.Items(key),
			Today:    timeutil.IsToday(now, d),
			Selected: key == m.session.Selected,
			Focused:  focused.ID,
			Carried:  carried.ID,
		}
		if m.session.Mode == app.ViewMonth {
			cell.Outside = d.Month() != month
		}
		cell.Drop = m.drag.Active() && cell.Selected
		cells = append(cells, cell)
	}
	return calendar.Render(cells, opts)
}

func (m *Model) dayPane(width int) string {
	p := panel.New(m.theme.Panel)
	p.SetWidth(width - 4)
	th := m.theme.Items

	var lines []string
	items := m.items()
	if len(items) == 0 {
		lines = append(lines, th.Detail.Render("Nothing planned. Press a to add."))
	}
	for i, it := range items {
		marker := "  "
		if i == m.focus {
			marker = "› "
		}
		text := marker + strings.TrimSpace(printers.Bullet(it)) + " " + it.Title
		if tl := it.TimeLabel(); tl != "" {
			text += " (" + tl + ")"
		}
		style := th.Normal
		if it.Completed() {
			style = th.Done
		}
		if i == m.focus {
			style = style.Inherit(th.Focused)
		}
		lines = append(lines, style.Render(text))
		if it.Expanded {
			lines = append(lines, detailLines(it, th.Detail)...)
		}
	}
	p.SetContent(m.session.SelectedTime().Format("Monday, January 2, 2006"), lines)
	view, _ := p.View()
	return view
}

func detailLines(it entry.Item, style lipgloss.Style) []string {
	var out []string
	if c := it.Content(); c != "" {
		for _, l := range strings.Split(c, "\n") {
			out = append(out, style.Render("    "+l))
		}
	}
	if it.Todo != nil {
		for _, st := range it.Todo.Subtasks {
			box := "[ ]"
			if st.Completed {
				box = "[x]"
			}
			out = append(out, style.Render("    "+box+" "+st.Title))
		}
	}
	return out
}

func (m *Model) infoPane(width int) string {
	p := panel.New(m.theme.Panel)
	p.SetWidth(width - 4)
	snap := m.svc.Snapshot()
	day := stats.Day(snap, m.session.Selected)

	var lines []string
	lines = append(lines, fmt.Sprintf("Items: %d", day.Summary.Total))
	for _, k := range entry.Kinds() {
		lines = append(lines, fmt.Sprintf("  %-6s %d", k, day.Summary.Counts[k]))
	}
	lines = append(lines, m.completionLine("Day", day.Summary.Completion))

	label := "Week"
	if m.session.Mode == app.ViewMonth {
		label = "Month"
	}
	window := stats.TotalsFor(snap, m.session.VisibleDates())
	lines = append(lines, m.completionLine(label, window.Completion))

	for _, md := range day.Moods {
		lines = append(lines, "Mood: "+strings.TrimSpace(md.Mood+" "+md.Title))
	}
	for _, ev := range day.Events {
		line := "Event: " + ev.Title
		if ev.Time != "" {
			line += " " + ev.Time
		}
		lines = append(lines, line)
	}
	p.SetContent("Info", lines)
	view, _ := p.View()
	return view
}

func (m *Model) completionLine(label string, c stats.Completion) string {
	if c.TotalTodos == 0 {
		return fmt.Sprintf("%s: no to-dos", label)
	}
	pct := c.Percent()
	return fmt.Sprintf("%s: %d/%d ", label, c.CompletedTodos, c.TotalTodos) +
		m.theme.Completion(pct).Render(fmt.Sprintf("%d%%", pct))
}

func firstOfMonth(s *app.Session) time.Time {
	return timeutil.FirstOfMonth(s.Clock.Now(), s.MonthOffset)
}

func dateKey(t time.Time) string { return timeutil.DateKey(t) }
