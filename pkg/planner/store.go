// Package planner holds the date-indexed planner state and the pure
// operations that transform it. A Store is a value: every operation returns a
// new Store and never modifies the one it was called on.
package planner

import (
	"maps"
	"slices"
	"sort"
	"time"

	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/timeutil"
)

// Store maps calendar date keys to their days. A date with no entry is
// equivalent to a date with an empty list.
type Store struct {
	days map[string]entry.Day
}

// Empty returns a store with no days.
func Empty() Store {
	return Store{days: map[string]entry.Day{}}
}

// FromDays builds a store from decoded days, forcing each Date to match its key.
func FromDays(days map[string]entry.Day) Store {
	s := Empty()
	for key, d := range days {
		s.days[key] = entry.Day{Date: key, Items: cloneItems(d.Items)}
	}
	return s
}

// Days returns a deep copy of the underlying mapping, suitable for encoding.
func (s Store) Days() map[string]entry.Day {
	out := make(map[string]entry.Day, len(s.days))
	for key, d := range s.days {
		out[key] = entry.Day{Date: key, Items: cloneItems(d.Items)}
	}
	return out
}

// Dates returns every stored date key in ascending order.
func (s Store) Dates() []string {
	keys := slices.Collect(maps.Keys(s.days))
	sort.Strings(keys)
	return keys
}

// Len returns the total number of items in the store.
func (s Store) Len() int {
	n := 0
	for _, d := range s.days {
		n += len(d.Items)
	}
	return n
}

// Items returns a snapshot of the items on date, in display order.
func (s Store) Items(date string) []entry.Item {
	return cloneItems(s.days[date].Items)
}

// Day returns a snapshot of one day. Missing dates yield an empty day.
func (s Store) Day(date string) entry.Day {
	return entry.Day{Date: date, Items: s.Items(date)}
}

// Range returns snapshots for each of dates, in the order given.
func (s Store) Range(dates []time.Time) []entry.Day {
	out := make([]entry.Day, 0, len(dates))
	for _, d := range dates {
		out = append(out, s.Day(timeutil.DateKey(d)))
	}
	return out
}

// All returns every item in the store ordered by date then position.
func (s Store) All() []entry.Item {
	var out []entry.Item
	for _, key := range s.Dates() {
		out = append(out, s.Items(key)...)
	}
	return out
}

// Find locates an item anywhere in the store.
func (s Store) Find(id string) (string, entry.Item, bool) {
	for key, d := range s.days {
		if i := indexOf(d.Items, id); i >= 0 {
			return key, d.Items[i].Clone(), true
		}
	}
	return "", entry.Item{}, false
}

// Index returns the position of id on date, or -1.
func (s Store) Index(date, id string) int {
	return indexOf(s.days[date].Items, id)
}

// Contains reports whether any date holds an item with id.
func (s Store) Contains(id string) bool {
	_, _, ok := s.Find(id)
	return ok
}

// with returns a shallow copy of s whose date entry is replaced by items.
// Slices belonging to other days are shared, which is safe because no
// operation writes into an existing slice.
func (s Store) with(date string, items []entry.Item) Store {
	next := make(map[string]entry.Day, len(s.days)+1)
	maps.Copy(next, s.days)
	next[date] = entry.Day{Date: date, Items: items}
	return Store{days: next}
}

func indexOf(items []entry.Item, id string) int {
	return slices.IndexFunc(items, func(it entry.Item) bool { return it.ID == id })
}

func cloneItems(items []entry.Item) []entry.Item {
	out := make([]entry.Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
