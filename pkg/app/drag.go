package app

import (
	"context"
	"strings"

	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/planner"
)

const (
	zoneDate = "date:"
	zoneItem = "item:"
)

// DateZone names a drop target that is a whole day.
func DateZone(date string) string { return zoneDate + date }

// ItemZone names a drop target that is another item.
func ItemZone(id string) string { return zoneItem + id }

// Drag carries one item from Begin to End. The zero value is idle.
type Drag struct {
	svc    *Service
	active bool
	source string
	item   entry.Item
}

// NewDrag returns an idle drag bound to svc.
func (s *Service) NewDrag() *Drag {
	return &Drag{svc: s}
}

// Begin picks up the item with id. It reports false for unknown ids.
func (d *Drag) Begin(id string) bool {
	date, it, ok := d.svc.Snapshot().Find(id)
	if !ok {
		d.Cancel()
		return false
	}
	d.active, d.source, d.item = true, date, it
	return true
}

// Active reports whether an item is being carried.
func (d *Drag) Active() bool { return d.active }

// Item returns the carried item and its source date.
func (d *Drag) Item() (string, entry.Item) { return d.source, d.item }

// Cancel drops the carried item without changing anything.
func (d *Drag) Cancel() {
	d.active, d.source, d.item = false, "", entry.Item{}
}

// End drops the carried item on zone and applies at most one store
// operation. Dropping on a day moves the item there. Dropping on an item of
// the same day reorders to that item's position; on an item of another day
// it moves to that day. Anything else is a no-op.
func (d *Drag) End(ctx context.Context, zone string) (Result, error) {
	if !d.active {
		return Result{}, nil
	}
	source, id := d.source, d.item.ID
	d.Cancel()

	switch {
	case strings.HasPrefix(zone, zoneDate):
		target := strings.TrimPrefix(zone, zoneDate)
		if err := checkDate(target); err != nil {
			return Result{}, err
		}
		return d.svc.apply(ctx, func(cur planner.Store) (planner.Store, Result, error) {
			return move(cur, id, source, target)
		})
	case strings.HasPrefix(zone, zoneItem):
		targetID := strings.TrimPrefix(zone, zoneItem)
		return d.svc.apply(ctx, func(cur planner.Store) (planner.Store, Result, error) {
			targetDate, _, ok := cur.Find(targetID)
			if !ok || targetID == id {
				return cur, Result{}, nil
			}
			if targetDate != source {
				return move(cur, id, source, targetDate)
			}
			return reorder(cur, source, cur.Index(source, id), cur.Index(source, targetID))
		})
	}
	return Result{}, nil
}
