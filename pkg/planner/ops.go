package planner

import (
	"slices"

	"tableflip.dev/planner/pkg/entry"
)

// Every operation below treats a missing date, id or index as a silent no-op
// and returns the receiver unchanged.

// AddItem appends a new item of kind to date. The returned item is the one
// stored; it is the zero Item when id is empty or already in use.
func (s Store) AddItem(date string, kind entry.Kind, id string, created entry.Millis) (Store, entry.Item) {
	if id == "" || !kind.Valid() || s.Contains(id) {
		return s, entry.Item{}
	}
	it := entry.New(id, kind, created)
	items := append(cloneItems(s.days[date].Items), it)
	return s.with(date, items), it.Clone()
}

// UpdateItem replaces the item on date that shares updated's id, keeping its
// position. Identity fields (id, kind, createdAt) cannot change.
func (s Store) UpdateItem(date string, updated entry.Item) Store {
	items := s.days[date].Items
	i := indexOf(items, updated.ID)
	if i < 0 {
		return s
	}
	cur := items[i]
	if updated.Kind != cur.Kind || updated.CreatedAt != cur.CreatedAt || updated.Validate() != nil {
		return s
	}
	next := cloneItems(items)
	next[i] = updated.Clone()
	return s.with(date, next)
}

// MapItem applies fn to the item with id on date and stores the result.
func (s Store) MapItem(date, id string, fn func(entry.Item) entry.Item) Store {
	items := s.days[date].Items
	i := indexOf(items, id)
	if i < 0 {
		return s
	}
	return s.UpdateItem(date, fn(items[i].Clone()))
}

// DeleteItem removes the item with id from date.
func (s Store) DeleteItem(date, id string) Store {
	items := s.days[date].Items
	i := indexOf(items, id)
	if i < 0 {
		return s
	}
	next := slices.Delete(cloneItems(items), i, i+1)
	return s.with(date, next)
}

// ReorderItems moves the item at from to position to within date, shifting
// the items between them.
func (s Store) ReorderItems(date string, from, to int) Store {
	items := s.days[date].Items
	n := len(items)
	if from == to || from < 0 || to < 0 || from >= n || to >= n {
		return s
	}
	next := cloneItems(items)
	moved := next[from]
	next = slices.Delete(next, from, from+1)
	next = slices.Insert(next, to, moved)
	return s.with(date, next)
}

// MoveItem removes the item with id from fromDate and appends it to toDate.
func (s Store) MoveItem(id, fromDate, toDate string) Store {
	if fromDate == toDate {
		return s
	}
	src := s.days[fromDate].Items
	i := indexOf(src, id)
	if i < 0 {
		return s
	}
	moved := src[i].Clone()
	rest := slices.Delete(cloneItems(src), i, i+1)
	dst := append(cloneItems(s.days[toDate].Items), moved)
	return s.with(fromDate, rest).with(toDate, dst)
}
