package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/timeutil"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints a Sunday-first grid of dates. Days holding items are bold,
// days outside month are faint and today is underlined. The grid is printed
// in rows of seven.
func (pp *PrettyPrint) Month(month time.Time, grid []time.Time, s planner.Store) {
	tf := color.New(color.FgWhite, color.Italic)

	m := timeutil.MonthLabel(month)
	mid := max((width-len(m))/2, 0)
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), m)
	_, _ = color.New(color.Faint).Fprintln(pp.out(), "Su Mo Tu We Th Fr Sa")

	outside := color.New(color.Faint, color.Italic)
	empty := color.New(color.Faint, color.FgWhite)
	busy := color.New(color.Bold, color.FgHiWhite)
	now := pp.Now.Now()

	for i, d := range grid {
		printer := empty
		switch {
		case d.Month() != month.Month() || d.Year() != month.Year():
			printer = outside
		case len(s.Items(timeutil.DateKey(d))) > 0:
			printer = busy
		}
		if timeutil.IsToday(now, d) {
			printer = color.New(color.Underline, color.Bold)
		}
		_, _ = printer.Fprintf(pp.out(), "%2d", d.Day())
		if (i+1)%7 == 0 {
			_, _ = fmt.Fprint(pp.out(), "\n")
		} else {
			_, _ = fmt.Fprint(pp.out(), " ")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n")
}

// MonthCounts prints one line per in-month day that has items, with the count
// by kind.
func (pp *PrettyPrint) MonthCounts(month time.Time, grid []time.Time, s planner.Store) {
	faint := color.New(color.Faint)
	for _, d := range grid {
		if d.Month() != month.Month() {
			continue
		}
		items := s.Items(timeutil.DateKey(d))
		if len(items) == 0 {
			continue
		}
		parts := make([]string, 0, len(items))
		for _, it := range items {
			parts = append(parts, Bullet(it)+" "+it.Title)
		}
		_, _ = faint.Fprintf(pp.out(), "%2d %s  ", d.Day(), d.Weekday().String()[0:2])
		_, _ = fmt.Fprintln(pp.out(), strings.Join(parts, ", "))
	}
}
