// Package stats provides the runners behind `planner stats` and
// `planner report`.
package stats

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/stats"
)

// Stats prints aggregates. Date selects a single day, otherwise Dates selects
// a window labelled Label, otherwise the whole store is summarized.
type Stats struct {
	Date  string
	Dates []time.Time
	Label string

	Format  string
	Printer printers.PrettyPrint
	Service *app.Service
}

func (n *Stats) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not compute stats, no service")
	}
	snap := n.Service.Snapshot()

	switch {
	case n.Date != "":
		d := stats.Day(snap, n.Date)
		return n.emit(d, func() { n.Printer.DayStats(d) })
	case len(n.Dates) > 0:
		r := stats.ReportFor(snap, n.Label, n.Dates)
		return n.emit(r, func() {
			n.Printer.Stats(r.Window.Label+" ("+r.Window.From+" to "+r.Window.To+")", r.Summary)
		})
	default:
		s := stats.Totals(snap)
		return n.emit(s, func() { n.Printer.Stats("All time", s) })
	}
}

func (n *Stats) emit(v any, text func()) error {
	if n.Format != "" {
		return printers.Structured(n.Printer.Writer(), n.Format, v)
	}
	text()
	return nil
}

// Report prints the to-dos completed on Dates, grouped by day.
type Report struct {
	Dates []time.Time

	Format  string
	Printer printers.PrettyPrint
	Service *app.Service
}

func (n *Report) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no service")
	}
	r := n.Service.Report(n.Dates)
	if n.Format != "" {
		return printers.Structured(n.Printer.Writer(), n.Format, r)
	}
	n.Printer.Report(r)
	return nil
}
