package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/stats"
	"tableflip.dev/planner/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
	Now timeutil.Clock
}

var (
	// uuid v7 ids are 36 characters
	spacing = strings.Repeat(" ", len("01890a5d-ac96-774b-bcce-b302099a8057  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

// Writer is where the printer writes.
func (pp *PrettyPrint) Writer() io.Writer { return pp.out() }

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " item")
	default:
		_, _ = c.Fprintln(pp.out(), " items")
	}
}

// Day prints one day's heading and its items.
func (pp *PrettyPrint) Day(d entry.Day) {
	title := d.Date
	if t, err := timeutil.ParseDateKey(d.Date); err == nil {
		title = t.Format("Mon 2 January 2006")
		if timeutil.IsToday(pp.Now.Now(), t) {
			title += " (today)"
		}
	}
	pp.TitleWithCount(title, len(d.Items))
	pp.Items(d.Items...)
}

// Days prints each day in order.
func (pp *PrettyPrint) Days(days ...entry.Day) {
	for _, d := range days {
		pp.Day(d)
	}
}

func (pp *PrettyPrint) Items(items ...entry.Item) {
	if len(items) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	t := color.New()
	done := color.New(color.Faint, color.CrossedOut)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	body := color.New(color.Faint)

	for _, it := range items {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), it.ID)
			_, _ = y.Fprint(pp.out(), strings.Repeat(" ", max(len(spacing)-len(it.ID), 1)))
		}
		line := fmt.Sprintf("%s %s", Bullet(it), it.Title)
		if label := it.TimeLabel(); label != "" {
			line += " " + label
		}
		if it.Completed() {
			_, _ = done.Fprintln(pp.out(), line)
		} else {
			_, _ = t.Fprintln(pp.out(), line)
		}

		indent := "    "
		if pp.ShowID {
			indent = spacing + indent
		}
		if it.Todo != nil {
			for _, st := range it.Todo.Subtasks {
				mark := "[ ]"
				if st.Completed {
					mark = "[x]"
				}
				if pp.ShowID {
					_, _ = y.Fprintf(pp.out(), "%s%s ", indent, st.ID)
					_, _ = t.Fprintf(pp.out(), "%s %s\n", mark, st.Title)
				} else {
					_, _ = t.Fprintf(pp.out(), "%s%s %s\n", indent, mark, st.Title)
				}
			}
		}
		if c := it.Content(); c != "" && (it.Expanded || pp.ShowID) {
			for _, l := range strings.Split(c, "\n") {
				_, _ = body.Fprintf(pp.out(), "%s%s\n", indent, l)
			}
		}
	}
	_, _ = t.Fprintln(pp.out(), "")
}

// Bullet is the one-glyph marker shown before an item's title.
func Bullet(it entry.Item) string {
	switch it.Kind {
	case entry.KindTodo:
		if it.Completed() {
			return "[x]"
		}
		return "[ ]"
	case entry.KindNote:
		return " – "
	case entry.KindMood:
		if it.Mood != nil && it.Mood.Mood != "" {
			return " " + it.Mood.Mood
		}
		return " ☺ "
	case entry.KindEvent:
		return " ○ "
	}
	return " ? "
}

// Stats prints a summary table: per-kind counts and to-do completion.
func (pp *PrettyPrint) Stats(title string, sum stats.Summary) {
	bold := color.New(color.Bold)
	pp.Title(title)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Kind"), bold.Sprint("Count"))
	for _, k := range entry.Kinds() {
		tbl.AddRow(string(k), sum.Counts[k])
	}
	tbl.AddRow(bold.Sprint("total"), sum.Total)
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)

	c := sum.Completion
	_, _ = fmt.Fprintf(pp.out(), "\nCompleted %d of %d to-dos (%d%%)\n", c.CompletedTodos, c.TotalTodos, c.Percent())
	_, _ = fmt.Fprintln(pp.out(), "")
}

// DayStats prints the info panel for a single day.
func (pp *PrettyPrint) DayStats(d stats.DaySummary) {
	pp.Stats(d.Date, d.Summary)
	faint := color.New(color.Faint)
	if len(d.Moods) > 0 {
		pp.Title("Moods")
		for _, m := range d.Moods {
			_, _ = fmt.Fprintf(pp.out(), "%s %s", m.Mood, m.Title)
			if m.Content != "" {
				_, _ = faint.Fprintf(pp.out(), " %s", m.Content)
			}
			_, _ = fmt.Fprintln(pp.out(), "")
		}
		pp.NewLine()
	}
	if len(d.Events) > 0 {
		pp.Title("Events")
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, e := range d.Events {
			tbl.AddRow(e.Time, e.Title)
		}
		_, _ = fmt.Fprintln(pp.out(), tbl)
		pp.NewLine()
	}
}

// Report prints completed to-dos grouped by day.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	pp.TitleWithCount(fmt.Sprintf("Completed %s to %s", r.Since, r.Until), r.Total)
	if len(r.Sections) == 0 {
		pp.Items()
		return
	}
	i := color.New(color.Italic)
	for _, sec := range r.Sections {
		title := sec.Date
		if t, err := timeutil.ParseDateKey(sec.Date); err == nil {
			title = t.Format("Mon 2 Jan")
		}
		_, _ = i.Fprintln(pp.out(), title)
		pp.Items(sec.Items...)
	}
}

// WeekHeading prints "Week 10 2024-03-04" above a week listing.
func (pp *PrettyPrint) WeekHeading(dates []time.Time) {
	h := color.New(color.FgHiWhite, color.Bold)
	_, _ = h.Fprintln(pp.out(), timeutil.WeekRangeLabel(dates))
	pp.NewLine()
}
