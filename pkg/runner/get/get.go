// Package get provides the read-only runners: days, weeks, months and single
// items.
package get

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/timeutil"
)

// Get prints the days in Dates. With Week set the days are printed under a
// week heading.
type Get struct {
	Dates []time.Time
	Week  bool

	Format  string
	Printer printers.PrettyPrint
	Service *app.Service
}

func (n *Get) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}

	days := make([]entry.Day, 0, len(n.Dates))
	for _, key := range timeutil.Keys(n.Dates) {
		d, err := n.Service.Day(key)
		if err != nil {
			return err
		}
		days = append(days, d)
	}
	if n.Format != "" {
		return printers.Structured(n.Printer.Writer(), n.Format, days)
	}

	if n.Week {
		n.Printer.WeekHeading(n.Dates)
	}
	n.Printer.Days(days...)
	return nil
}

// Month prints the calendar grid for the month Offset months from now, then
// the days that hold items.
type Month struct {
	Offset int

	Format  string
	Printer printers.PrettyPrint
	Service *app.Service
}

func (n *Month) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}

	now := n.Printer.Now.Now()
	first := timeutil.FirstOfMonth(now, n.Offset)
	grid := timeutil.MonthGrid(now, n.Offset)
	snap := n.Service.Snapshot()

	if n.Format != "" {
		days := []entry.Day{}
		for _, d := range grid {
			if d.Month() != first.Month() {
				continue
			}
			if day := snap.Day(timeutil.DateKey(d)); len(day.Items) > 0 {
				days = append(days, day)
			}
		}
		return printers.Structured(n.Printer.Writer(), n.Format, days)
	}

	n.Printer.Month(first, grid, snap)
	n.Printer.MonthCounts(first, grid, snap)
	return nil
}

// Show prints a single item with all of its fields.
type Show struct {
	ID string

	Format  string
	Printer printers.PrettyPrint
	Service *app.Service
}

type shown struct {
	Date string     `json:"date" yaml:"date"`
	Item entry.Item `json:"item" yaml:"item"`
}

func (n *Show) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not show, no service")
	}

	date, it, err := n.Service.Find(n.ID)
	if err != nil {
		return err
	}
	if n.Format != "" {
		return printers.Structured(n.Printer.Writer(), n.Format, shown{Date: date, Item: it})
	}

	n.Printer.ShowID = true
	it.Expanded = true
	n.Printer.Day(entry.Day{Date: date, Items: []entry.Item{it}})
	return nil
}
