// Package mcp provides the Model Context Protocol server integration for the planner.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/stats"
	"tableflip.dev/planner/pkg/timeutil"
)

// maxRangeDays bounds list_items so a careless range cannot dump years of days.
const maxRangeDays = 366

// Service adapts the application service to the shapes the MCP tools return.
type Service struct {
	App   *app.Service
	Clock timeutil.Clock
}

// ErrItemNotFound is returned when no day holds the requested id.
var ErrItemNotFound = errors.New("item not found")

// AddItemOptions captures the parameters used to create a new item.
type AddItemOptions struct {
	Date  string
	Kind  string
	Patch app.Patch
}

// ItemDTO is an item together with the day that holds it.
type ItemDTO struct {
	Date    string     `json:"date"`
	Changed bool       `json:"changed"`
	Item    entry.Item `json:"item"`
}

// NewService builds a service wrapper around the application service.
func NewService(a *app.Service, clock timeutil.Clock) *Service {
	return &Service{App: a, Clock: clock}
}

// ResolveDate accepts a date key or today, tomorrow and yesterday. Empty
// means today.
func (s *Service) ResolveDate(v string) (string, error) {
	key, err := timeutil.ResolveDate(s.Clock.Now(), v)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", v)
	}
	return key, nil
}

// AddItem creates an item and returns it.
func (s *Service) AddItem(ctx context.Context, opts AddItemOptions) (*ItemDTO, error) {
	if s.App == nil {
		return nil, errors.New("planner is not configured")
	}
	date, err := s.ResolveDate(opts.Date)
	if err != nil {
		return nil, err
	}
	kind, err := entry.ParseKind(opts.Kind)
	if err != nil {
		return nil, err
	}
	res, err := s.App.Add(ctx, date, kind, opts.Patch)
	if err != nil {
		return nil, err
	}
	return toDTO(res, date, entry.Item{}), nil
}

// UpdateItem applies patch to the item with id.
func (s *Service) UpdateItem(ctx context.Context, id string, patch app.Patch) (*ItemDTO, error) {
	return s.mutate(ctx, id, func(date string) (app.Result, error) {
		return s.App.Edit(ctx, date, id, patch)
	})
}

// DeleteItem removes the item with id and returns what was removed.
func (s *Service) DeleteItem(ctx context.Context, id string) (*ItemDTO, error) {
	return s.mutate(ctx, id, func(date string) (app.Result, error) {
		return s.App.Delete(ctx, date, id)
	})
}

// MoveItem relocates the item with id to the end of toDate.
func (s *Service) MoveItem(ctx context.Context, id, toDate string) (*ItemDTO, error) {
	to, err := s.ResolveDate(toDate)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(date string) (app.Result, error) {
		return s.App.Move(ctx, id, date, to)
	})
}

// ToggleComplete flips a to-do's completion.
func (s *Service) ToggleComplete(ctx context.Context, id string) (*ItemDTO, error) {
	return s.mutate(ctx, id, func(date string) (app.Result, error) {
		return s.App.ToggleComplete(ctx, date, id)
	})
}

// ToggleSubtask flips one subtask of a to-do.
func (s *Service) ToggleSubtask(ctx context.Context, id, subtaskID string) (*ItemDTO, error) {
	return s.mutate(ctx, id, func(date string) (app.Result, error) {
		return s.App.ToggleSubtask(ctx, date, id, subtaskID)
	})
}

// AddSubtask appends a subtask to a to-do.
func (s *Service) AddSubtask(ctx context.Context, id, title string) (*ItemDTO, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("subtask title is required")
	}
	return s.mutate(ctx, id, func(date string) (app.Result, error) {
		return s.App.AddSubtask(ctx, date, id, title)
	})
}

// SetMood records the mood value of a mood item.
func (s *Service) SetMood(ctx context.Context, id, mood string) (*ItemDTO, error) {
	return s.mutate(ctx, id, func(date string) (app.Result, error) {
		return s.App.SetMood(ctx, date, id, mood)
	})
}

// ReorderItems moves the item at index from to index to within date and
// returns the day afterwards.
func (s *Service) ReorderItems(ctx context.Context, date string, from, to int) (entry.Day, bool, error) {
	if s.App == nil {
		return entry.Day{}, false, errors.New("planner is not configured")
	}
	key, err := s.ResolveDate(date)
	if err != nil {
		return entry.Day{}, false, err
	}
	n := len(s.App.Snapshot().Items(key))
	if from < 0 || from >= n || to < 0 || to >= n {
		return entry.Day{}, false, fmt.Errorf("index out of range, %s has %d items", key, n)
	}
	res, err := s.App.Reorder(ctx, key, from, to)
	if err != nil {
		return entry.Day{}, false, err
	}
	day, err := s.App.Day(key)
	return day, res.Changed, err
}

// Day returns the items of one date.
func (s *Service) Day(date string) (entry.Day, error) {
	if s.App == nil {
		return entry.Day{}, errors.New("planner is not configured")
	}
	key, err := s.ResolveDate(date)
	if err != nil {
		return entry.Day{}, err
	}
	return s.App.Day(key)
}

// ListItems returns every day from from through to inclusive, including
// empty ones. An empty to means the single day from.
func (s *Service) ListItems(from, to string) ([]entry.Day, error) {
	if s.App == nil {
		return nil, errors.New("planner is not configured")
	}
	start, err := s.ResolveDate(from)
	if err != nil {
		return nil, err
	}
	end := start
	if strings.TrimSpace(to) != "" {
		if end, err = s.ResolveDate(to); err != nil {
			return nil, err
		}
	}
	a, _ := timeutil.ParseDateKey(start)
	b, _ := timeutil.ParseDateKey(end)
	if b.Before(a) {
		return nil, fmt.Errorf("range end %s is before start %s", end, start)
	}

	snap := s.App.Snapshot()
	days := make([]entry.Day, 0)
	for d := a; !d.After(b); d = d.AddDate(0, 0, 1) {
		if len(days) == maxRangeDays {
			return nil, fmt.Errorf("range is longer than %d days", maxRangeDays)
		}
		days = append(days, snap.Day(timeutil.DateKey(d)))
	}
	return days, nil
}

// Stats summarizes one date, the last window of days, or everything.
func (s *Service) Stats(date, last string) (any, error) {
	if s.App == nil {
		return nil, errors.New("planner is not configured")
	}
	snap := s.App.Snapshot()
	switch {
	case strings.TrimSpace(date) != "":
		key, err := s.ResolveDate(date)
		if err != nil {
			return nil, err
		}
		return stats.Day(snap, key), nil
	case strings.TrimSpace(last) != "":
		n, label, err := timeutil.ParseWindow(last)
		if err != nil {
			return nil, err
		}
		return stats.ReportFor(snap, label, timeutil.LastDays(s.Clock.Now(), n)), nil
	}
	return stats.Totals(snap), nil
}

func (s *Service) mutate(ctx context.Context, id string, op func(date string) (app.Result, error)) (*ItemDTO, error) {
	if s.App == nil {
		return nil, errors.New("planner is not configured")
	}
	if id == "" {
		return nil, errors.New("id is required")
	}
	date, before, err := s.App.Find(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	res, err := op(date)
	if err != nil {
		return nil, err
	}
	return toDTO(res, date, before), nil
}

// toDTO reports the changed item, or the item as it was when nothing changed.
func toDTO(res app.Result, date string, before entry.Item) *ItemDTO {
	dto := &ItemDTO{Date: date, Changed: res.Changed, Item: before}
	if res.Changed && res.Item != nil {
		dto.Date = res.Date
		dto.Item = *res.Item
	}
	return dto
}
