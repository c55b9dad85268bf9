// Package app owns the live planner store and exposes the operations shared
// by the CLI, the terminal UI, the MCP server and the HTTP API.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/logging"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
)

var (
	// ErrNotFound is returned by reads for an id that is not in the store.
	ErrNotFound = errors.New("app: item not found")

	// ErrInvalidDate is returned when a date is not a YYYY-MM-DD key.
	ErrInvalidDate = errors.New("app: invalid date")

	// ErrInvalidKind is returned for an unknown item kind.
	ErrInvalidKind = errors.New("app: invalid item kind")
)

// Persistence loads and saves whole stores. *store.Adapter satisfies it.
type Persistence interface {
	// Load returns the persisted store. ok is false when the stored data
	// could not be read or decoded.
	Load(ctx context.Context) (planner.Store, bool)
	Save(ctx context.Context, s planner.Store) bool
}

// Result reports the outcome of a mutation. Changed is false when the
// operation was a no-op, for example because the id was not found.
type Result struct {
	Changed bool        `json:"changed"`
	Date    string      `json:"date,omitempty"`
	Item    *entry.Item `json:"item,omitempty"`
}

// Service serializes every mutation and saves after each change.
type Service struct {
	Persistence Persistence
	Clock       timeutil.Clock
	NewID       func() string
	Logger      logging.Logger

	mu      sync.Mutex
	current planner.Store
}

// Open loads the persisted store, replacing whatever is in memory. Unusable
// stored data starts an empty planner.
func (s *Service) Open(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Persistence == nil {
		s.current = planner.Empty()
		return
	}
	s.current, _ = s.Persistence.Load(ctx)
}

// Reload re-reads the persisted store. The terminal UI calls it when another
// process has written. When the stored data cannot be read or decoded, for
// example mid-write, the in-memory store is kept and false is returned.
func (s *Service) Reload(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Persistence == nil {
		return false
	}
	next, ok := s.Persistence.Load(ctx)
	if !ok {
		logging.OrDiscard(s.Logger).Warn(ctx, "reload skipped, keeping in-memory planner")
		return false
	}
	s.current = next
	return true
}

// Snapshot returns the current store. Stores are immutable, so the value is
// safe to read without further locking.
func (s *Service) Snapshot() planner.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Day returns the items on date.
func (s *Service) Day(date string) (entry.Day, error) {
	if err := checkDate(date); err != nil {
		return entry.Day{}, err
	}
	return s.Snapshot().Day(date), nil
}

// Find returns the date and item for id.
func (s *Service) Find(id string) (string, entry.Item, error) {
	date, it, ok := s.Snapshot().Find(id)
	if !ok {
		return "", entry.Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return date, it, nil
}

// Add creates an item of kind on date, applies patch to its initial fields
// and saves once.
func (s *Service) Add(ctx context.Context, date string, kind entry.Kind, patch Patch) (Result, error) {
	if err := checkDate(date); err != nil {
		return Result{}, err
	}
	if !kind.Valid() {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	return s.apply(ctx, func(cur planner.Store) (planner.Store, Result, error) {
		next, it := cur.AddItem(date, kind, s.newID(), entry.MillisOf(s.Clock.Now()))
		if it.IsZero() {
			return cur, Result{}, nil
		}
		if !patch.IsEmpty() {
			next = next.UpdateItem(date, patch.Apply(it))
			it = itemOn(next, date, it.ID)
		}
		return next, changed(date, it), nil
	})
}

// Update replaces the item on date sharing item's id. An empty date looks
// the item up by id.
func (s *Service) Update(ctx context.Context, date string, item entry.Item) (Result, error) {
	return s.mapItem(ctx, date, item.ID, func(entry.Item) entry.Item { return item })
}

// Edit applies patch to the item with id.
func (s *Service) Edit(ctx context.Context, date, id string, patch Patch) (Result, error) {
	return s.mapItem(ctx, date, id, patch.Apply)
}

// Delete removes the item with id.
func (s *Service) Delete(ctx context.Context, date, id string) (Result, error) {
	return s.apply(ctx, func(cur planner.Store) (planner.Store, Result, error) {
		date, err := locate(cur, date, id)
		if err != nil || date == "" {
			return cur, Result{}, err
		}
		i := cur.Index(date, id)
		if i < 0 {
			return cur, Result{}, nil
		}
		it := cur.Items(date)[i]
		return cur.DeleteItem(date, id), changed(date, it), nil
	})
}

// Reorder moves the item at index from to index to on date.
func (s *Service) Reorder(ctx context.Context, date string, from, to int) (Result, error) {
	if err := checkDate(date); err != nil {
		return Result{}, err
	}
	return s.apply(ctx, func(cur planner.Store) (planner.Store, Result, error) {
		return reorder(cur, date, from, to)
	})
}

// Move relocates the item with id to toDate. An empty fromDate looks the
// item up by id.
func (s *Service) Move(ctx context.Context, id, fromDate, toDate string) (Result, error) {
	if err := checkDate(toDate); err != nil {
		return Result{}, err
	}
	return s.apply(ctx, func(cur planner.Store) (planner.Store, Result, error) {
		from, err := locate(cur, fromDate, id)
		if err != nil || from == "" {
			return cur, Result{}, err
		}
		return move(cur, id, from, toDate)
	})
}

// ToggleComplete flips completion of a to-do.
func (s *Service) ToggleComplete(ctx context.Context, date, id string) (Result, error) {
	return s.mapItem(ctx, date, id, entry.Item.ToggleCompleted)
}

// ToggleExpanded flips the display density flag.
func (s *Service) ToggleExpanded(ctx context.Context, date, id string) (Result, error) {
	return s.mapItem(ctx, date, id, entry.Item.ToggleExpanded)
}

// ToggleSubtask flips one subtask of a to-do.
func (s *Service) ToggleSubtask(ctx context.Context, date, id, subtaskID string) (Result, error) {
	return s.mapItem(ctx, date, id, func(it entry.Item) entry.Item {
		return it.ToggleSubtask(subtaskID)
	})
}

// AddSubtask appends a subtask with a fresh id. Blank titles are a no-op.
func (s *Service) AddSubtask(ctx context.Context, date, id, title string) (Result, error) {
	subID := s.newID()
	return s.mapItem(ctx, date, id, func(it entry.Item) entry.Item {
		return it.AddSubtask(subID, title)
	})
}

// SetMood records the mood value of a mood item.
func (s *Service) SetMood(ctx context.Context, date, id, mood string) (Result, error) {
	return s.mapItem(ctx, date, id, func(it entry.Item) entry.Item {
		return it.SetMood(mood)
	})
}

// apply runs op against the current store under the lock. A changed result
// swaps in the new store and saves it.
func (s *Service) apply(ctx context.Context, op func(planner.Store) (planner.Store, Result, error)) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, res, err := op(s.current)
	if err != nil || !res.Changed {
		return res, err
	}
	s.current = next
	if s.Persistence != nil && !s.Persistence.Save(ctx, next) {
		logging.OrDiscard(s.Logger).Warn(ctx, "change kept in memory only", "date", res.Date)
	}
	return res, nil
}

func (s *Service) mapItem(ctx context.Context, date, id string, fn func(entry.Item) entry.Item) (Result, error) {
	return s.apply(ctx, func(cur planner.Store) (planner.Store, Result, error) {
		date, err := locate(cur, date, id)
		if err != nil || date == "" {
			return cur, Result{}, err
		}
		i := cur.Index(date, id)
		if i < 0 {
			return cur, Result{}, nil
		}
		before := cur.Items(date)[i]
		next := cur.MapItem(date, id, fn)
		after := next.Items(date)[i]
		if before.Equal(after) {
			return cur, Result{}, nil
		}
		return next, changed(date, after), nil
	})
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return store.NewID()
}

func reorder(cur planner.Store, date string, from, to int) (planner.Store, Result, error) {
	items := cur.Items(date)
	if from == to || from < 0 || to < 0 || from >= len(items) || to >= len(items) {
		return cur, Result{}, nil
	}
	next := cur.ReorderItems(date, from, to)
	return next, changed(date, items[from]), nil
}

func move(cur planner.Store, id, from, to string) (planner.Store, Result, error) {
	if from == to || cur.Index(from, id) < 0 {
		return cur, Result{}, nil
	}
	next := cur.MoveItem(id, from, to)
	return next, changed(to, itemOn(next, to, id)), nil
}

// locate resolves the date holding id. An empty date means search the whole
// store; a miss there yields "" and no error.
func locate(cur planner.Store, date, id string) (string, error) {
	if date != "" {
		return date, checkDate(date)
	}
	found, _, ok := cur.Find(id)
	if !ok {
		return "", nil
	}
	return found, nil
}

func itemOn(s planner.Store, date, id string) entry.Item {
	i := s.Index(date, id)
	if i < 0 {
		return entry.Item{}
	}
	return s.Items(date)[i]
}

func changed(date string, it entry.Item) Result {
	return Result{Changed: true, Date: date, Item: &it}
}

func checkDate(date string) error {
	if !timeutil.ValidKey(date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}
