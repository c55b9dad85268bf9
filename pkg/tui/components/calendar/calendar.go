// Package calendar renders the week and month grids of the planner UI.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/tui/theme"
)

// Cell describes a single date rendered in the grid.
type Cell struct {
	Date  time.Time
	Items []entry.Item

	// Outside marks month grid padding days from the neighbouring months.
	Outside  bool
	Today    bool
	Selected bool
	// Drop marks the cell a carried item would land on.
	Drop bool

	Focused string
	Carried string
}

// Options controls grid geometry and styling.
type Options struct {
	Columns int
	// Width and Height are the inner size of a cell, label line included.
	Width  int
	Height int
	Header []string
	Label  func(time.Time) string
	Theme  theme.Theme
}

// WeekOptions lays the nine-day window out three by three.
func WeekOptions(th theme.Theme, width, height int) Options {
	return Options{
		Columns: 3,
		Width:   width,
		Height:  height,
		Label:   func(t time.Time) string { return t.Format("Mon Jan 2") },
		Theme:   th,
	}
}

// MonthOptions lays a six week month grid out seven across, Sunday first.
func MonthOptions(th theme.Theme, width, height int) Options {
	return Options{
		Columns: 7,
		Width:   width,
		Height:  height,
		Header:  []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		Label:   func(t time.Time) string { return fmt.Sprintf("%d", t.Day()) },
		Theme:   th,
	}
}

// Render produces the multi-line grid for cells.
func Render(cells []Cell, opts Options) string {
	if len(cells) == 0 || opts.Columns <= 0 {
		return ""
	}
	opts.Width = max(opts.Width, 4)
	opts.Height = max(opts.Height, 1)

	var rows []string
	if len(opts.Header) > 0 {
		var heads []string
		for _, h := range opts.Header {
			// +2 for the cell border.
			heads = append(heads, opts.Theme.Grid.Header.Render(pad(center(h, opts.Width+2), opts.Width+2)))
		}
		rows = append(rows, strings.Join(heads, ""))
	}

	for start := 0; start < len(cells); start += opts.Columns {
		end := min(start+opts.Columns, len(cells))
		var rendered []string
		for _, c := range cells[start:end] {
			rendered = append(rendered, renderCell(c, opts))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCell(c Cell, opts Options) string {
	th := opts.Theme
	label := fit(opts.Label(c.Date), opts.Width)
	switch {
	case c.Today:
		label = th.Grid.Today.Render(label)
	case c.Outside:
		label = th.Grid.Outside.Render(label)
	default:
		label = th.Grid.Header.Render(label)
	}
	lines := []string{pad(label, opts.Width)}

	room := opts.Height - 1
	for i, it := range c.Items {
		if room <= 0 {
			break
		}
		if room == 1 && len(c.Items)-i > 1 {
			more := fmt.Sprintf("+%d more", len(c.Items)-i)
			lines = append(lines, pad(th.Items.Detail.Render(fit(more, opts.Width)), opts.Width))
			room--
			break
		}
		lines = append(lines, pad(itemLine(it, c, opts), opts.Width))
		room--
	}
	for ; room > 0; room-- {
		lines = append(lines, strings.Repeat(" ", opts.Width))
	}

	style := th.Grid.Cell
	switch {
	case c.Drop:
		style = th.Grid.Drop
	case c.Selected:
		style = th.Grid.Selected
	}
	return style.Render(strings.Join(lines, "\n"))
}

func itemLine(it entry.Item, c Cell, opts Options) string {
	th := opts.Theme.Items
	text := fit(strings.TrimSpace(printers.Bullet(it))+" "+it.Title, opts.Width)
	style := th.Normal
	if it.Completed() {
		style = th.Done
	}
	switch {
	case it.ID == c.Carried:
		style = th.Carried
	case c.Selected && it.ID == c.Focused:
		style = style.Inherit(th.Focused)
	}
	return style.Render(text)
}

// fit truncates s to width cells.
func fit(s string, width int) string {
	return truncate.StringWithTail(s, uint(width), "…")
}

// pad right-fills s with spaces up to width visible cells.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", (width-w)/2) + s
}
