// Package edit provides the runners that change existing items.
package edit

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/printers"
)

// Op is one change applied to the item found on date.
type Op func(ctx context.Context, svc *app.Service, date, id string) (app.Result, error)

// Edit finds the item with ID, applies Op and prints the affected day.
type Edit struct {
	ID string
	Op Op

	Format  string
	Printer printers.PrettyPrint
	Service *app.Service
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no service")
	}
	if n.Op == nil {
		return errors.New("can not edit, no operation")
	}

	date, _, err := n.Service.Find(n.ID)
	if err != nil {
		return err
	}
	res, err := n.Op(ctx, n.Service, date, n.ID)
	if err != nil {
		return err
	}
	return n.print(res, date)
}

func (n *Edit) print(res app.Result, date string) error {
	if n.Format != "" {
		return printers.Structured(n.Printer.Writer(), n.Format, res)
	}
	if res.Changed && res.Date != "" {
		date = res.Date
	}
	day, err := n.Service.Day(date)
	if err != nil {
		return err
	}
	n.Printer.Day(day)
	return nil
}

// Patch applies the set fields of p.
func Patch(p app.Patch) Op {
	return func(ctx context.Context, svc *app.Service, date, id string) (app.Result, error) {
		return svc.Edit(ctx, date, id, p)
	}
}

// ToggleComplete flips a to-do's completion.
func ToggleComplete() Op {
	return func(ctx context.Context, svc *app.Service, date, id string) (app.Result, error) {
		return svc.ToggleComplete(ctx, date, id)
	}
}

// ToggleSubtask flips one subtask.
func ToggleSubtask(subtaskID string) Op {
	return func(ctx context.Context, svc *app.Service, date, id string) (app.Result, error) {
		return svc.ToggleSubtask(ctx, date, id, subtaskID)
	}
}

// AddSubtask appends a subtask titled title.
func AddSubtask(title string) Op {
	return func(ctx context.Context, svc *app.Service, date, id string) (app.Result, error) {
		return svc.AddSubtask(ctx, date, id, title)
	}
}

// Mood records a mood value.
func Mood(mood string) Op {
	return func(ctx context.Context, svc *app.Service, date, id string) (app.Result, error) {
		return svc.SetMood(ctx, date, id, mood)
	}
}

// Delete removes the item.
func Delete() Op {
	return func(ctx context.Context, svc *app.Service, date, id string) (app.Result, error) {
		return svc.Delete(ctx, date, id)
	}
}

// MoveTo relocates the item to the end of toDate.
func MoveTo(toDate string) Op {
	return func(ctx context.Context, svc *app.Service, date, id string) (app.Result, error) {
		return svc.Move(ctx, id, date, toDate)
	}
}

// Reorder moves the item at From to To within Date.
type Reorder struct {
	Date     string
	From, To int

	Format  string
	Printer printers.PrettyPrint
	Service *app.Service
}

func (n *Reorder) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not reorder, no service")
	}
	count := len(n.Service.Snapshot().Items(n.Date))
	if n.From < 0 || n.From >= count || n.To < 0 || n.To >= count {
		return fmt.Errorf("index out of range, %s has %d items", n.Date, count)
	}
	res, err := n.Service.Reorder(ctx, n.Date, n.From, n.To)
	if err != nil {
		return err
	}
	if n.Format != "" {
		return printers.Structured(n.Printer.Writer(), n.Format, res)
	}
	day, err := n.Service.Day(n.Date)
	if err != nil {
		return err
	}
	n.Printer.Day(day)
	return nil
}
