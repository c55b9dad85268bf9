// Package entry defines planner content items and their per-kind payloads.
package entry

import (
	"fmt"
	"slices"
	"strings"
)

// Kind identifies the shape of an item. It is fixed at creation.
type Kind string

const (
	KindTodo  Kind = "todo"
	KindNote  Kind = "note"
	KindMood  Kind = "mood"
	KindEvent Kind = "event"
)

// Kinds lists every item kind in display order.
func Kinds() []Kind {
	return []Kind{KindTodo, KindNote, KindMood, KindEvent}
}

// ParseKind resolves a kind name, accepting a few friendly aliases.
func ParseKind(v string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "todo", "to-do", "task", "t":
		return KindTodo, nil
	case "note", "n":
		return KindNote, nil
	case "mood", "m":
		return KindMood, nil
	case "event", "e":
		return KindEvent, nil
	}
	return "", fmt.Errorf("unknown item kind %q (expected todo, note, mood or event)", v)
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return slices.Contains(Kinds(), k)
}

// DefaultTitle is the placeholder title given to new items of kind k.
func (k Kind) DefaultTitle() string {
	switch k {
	case KindTodo:
		return "New to-do"
	case KindNote:
		return "New note"
	case KindMood:
		return "Mood"
	case KindEvent:
		return "New event"
	}
	return "New item"
}

// Moods is the palette offered when picking a mood.
var Moods = []string{"😊", "😔", "😴", "😤", "🤔", "😍", "😎", "🤗", "😂", "😭"}

// Subtask is a completable step of a to-do. Subtasks are only ever appended.
type Subtask struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Todo is the payload of a to-do item.
type Todo struct {
	Completed bool
	Subtasks  []Subtask
}

// Note is the payload of a note item.
type Note struct {
	Content string
}

// Mood is the payload of a mood item.
type Mood struct {
	Mood    string
	Content string
}

// Event is the payload of an event item. Times are HH:MM and are not
// validated against each other.
type Event struct {
	StartTime string
	EndTime   string
}

// Item is a unit of planned content on one date. Exactly one of the payload
// pointers is set and it always matches Kind.
type Item struct {
	ID        string
	Kind      Kind
	Title     string
	Expanded  bool
	CreatedAt Millis

	Todo  *Todo
	Note  *Note
	Mood  *Mood
	Event *Event
}

// New builds an item of the given kind with default title and empty payload.
func New(id string, kind Kind, created Millis) Item {
	it := Item{
		ID:        id,
		Kind:      kind,
		Title:     kind.DefaultTitle(),
		CreatedAt: created,
	}
	switch kind {
	case KindTodo:
		it.Todo = &Todo{Subtasks: []Subtask{}}
	case KindNote:
		it.Note = &Note{}
	case KindMood:
		it.Mood = &Mood{}
	case KindEvent:
		it.Event = &Event{}
	}
	return it
}

// IsZero reports whether it is the zero item.
func (it Item) IsZero() bool {
	return it.ID == ""
}

// Validate checks the variant invariant.
func (it Item) Validate() error {
	if strings.TrimSpace(it.ID) == "" {
		return fmt.Errorf("entry: item has no id")
	}
	set := 0
	for _, ok := range []bool{it.Todo != nil, it.Note != nil, it.Mood != nil, it.Event != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("entry: item %s carries %d payloads", it.ID, set)
	}
	var match bool
	switch it.Kind {
	case KindTodo:
		match = it.Todo != nil
	case KindNote:
		match = it.Note != nil
	case KindMood:
		match = it.Mood != nil
	case KindEvent:
		match = it.Event != nil
	default:
		return fmt.Errorf("entry: item %s has unknown kind %q", it.ID, it.Kind)
	}
	if !match {
		return fmt.Errorf("entry: item %s payload does not match kind %s", it.ID, it.Kind)
	}
	return nil
}

// Clone returns a deep copy so callers can never alias store-owned state.
func (it Item) Clone() Item {
	out := it
	if it.Todo != nil {
		t := *it.Todo
		t.Subtasks = slices.Clone(it.Todo.Subtasks)
		if t.Subtasks == nil {
			t.Subtasks = []Subtask{}
		}
		out.Todo = &t
	}
	if it.Note != nil {
		n := *it.Note
		out.Note = &n
	}
	if it.Mood != nil {
		m := *it.Mood
		out.Mood = &m
	}
	if it.Event != nil {
		e := *it.Event
		out.Event = &e
	}
	return out
}

// Equal reports whether it and other hold the same fields and payload. A nil
// and an empty subtask list are equal.
func (it Item) Equal(other Item) bool {
	if it.ID != other.ID || it.Kind != other.Kind || it.Title != other.Title ||
		it.Expanded != other.Expanded || it.CreatedAt != other.CreatedAt {
		return false
	}
	return equalTodo(it.Todo, other.Todo) &&
		equalPtr(it.Note, other.Note) &&
		equalPtr(it.Mood, other.Mood) &&
		equalPtr(it.Event, other.Event)
}

func equalTodo(a, b *Todo) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Completed == b.Completed && slices.Equal(a.Subtasks, b.Subtasks)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Completed reports whether the item is a completed to-do.
func (it Item) Completed() bool {
	return it.Todo != nil && it.Todo.Completed
}

// Content returns the free-text body for notes and moods.
func (it Item) Content() string {
	switch {
	case it.Note != nil:
		return it.Note.Content
	case it.Mood != nil:
		return it.Mood.Content
	}
	return ""
}

// TimeLabel renders an event's times as "09:00 - 10:00", or whichever one is set.
func (it Item) TimeLabel() string {
	if it.Event == nil {
		return ""
	}
	start, end := it.Event.StartTime, it.Event.EndTime
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	}
	return end
}
