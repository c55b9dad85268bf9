// Package add provides the runner behind `planner add`.
package add

import (
	"context"
	"errors"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/printers"
)

type Add struct {
	Date  string
	Kind  entry.Kind
	Patch app.Patch

	// Format selects json or yaml output of the new item. Empty prints the day.
	Format  string
	Printer printers.PrettyPrint
	Service *app.Service
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}

	res, err := n.Service.Add(ctx, n.Date, n.Kind, n.Patch)
	if err != nil {
		return err
	}
	if n.Format != "" {
		return printers.Structured(n.Printer.Writer(), n.Format, res)
	}

	day, err := n.Service.Day(res.Date)
	if err != nil {
		return err
	}
	n.Printer.Day(day)
	return nil
}
