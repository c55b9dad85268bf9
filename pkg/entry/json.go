package entry

import (
	"encoding/json"
	"fmt"
)

// wire is the flat persisted shape of an item. Fields that do not apply to the
// item's kind are omitted on write and ignored on read.
type wire struct {
	ID        *string    `json:"id" yaml:"id"`
	Type      *Kind      `json:"type" yaml:"type"`
	Title     string     `json:"title" yaml:"title"`
	Content   *string    `json:"content,omitempty" yaml:"content,omitempty"`
	Completed *bool      `json:"completed,omitempty" yaml:"completed,omitempty"`
	Subtasks  *[]Subtask `json:"subtasks,omitempty" yaml:"subtasks,omitempty"`
	Mood      *string    `json:"mood,omitempty" yaml:"mood,omitempty"`
	StartTime *string    `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	EndTime   *string    `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	Expanded  bool       `json:"expanded" yaml:"expanded"`
	CreatedAt Millis     `json:"createdAt" yaml:"createdAt"`
}

func (it Item) MarshalJSON() ([]byte, error) {
	w, err := it.toWire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// MarshalYAML renders the same flat shape as JSON for -o yaml output.
func (it Item) MarshalYAML() (any, error) {
	return it.toWire()
}

func (it Item) toWire() (wire, error) {
	if err := it.Validate(); err != nil {
		return wire{}, err
	}
	id, kind := it.ID, it.Kind
	w := wire{
		ID:        &id,
		Type:      &kind,
		Title:     it.Title,
		Expanded:  it.Expanded,
		CreatedAt: it.CreatedAt,
	}
	switch {
	case it.Todo != nil:
		completed := it.Todo.Completed
		w.Completed = &completed
		subtasks := it.Todo.Subtasks
		if subtasks == nil {
			subtasks = []Subtask{}
		}
		w.Subtasks = &subtasks
	case it.Note != nil:
		w.Content = strPtr(it.Note.Content)
	case it.Mood != nil:
		w.Content = strPtr(it.Mood.Content)
		w.Mood = strPtr(it.Mood.Mood)
	case it.Event != nil:
		w.StartTime = strPtr(it.Event.StartTime)
		w.EndTime = strPtr(it.Event.EndTime)
	}
	return w, nil
}

func (it *Item) UnmarshalJSON(b []byte) error {
	var w wire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.ID == nil || *w.ID == "" {
		return fmt.Errorf("entry: item without id")
	}
	if w.Type == nil || !w.Type.Valid() {
		return fmt.Errorf("entry: item %s has unknown type", *w.ID)
	}

	out := Item{
		ID:        *w.ID,
		Kind:      *w.Type,
		Title:     w.Title,
		Expanded:  w.Expanded,
		CreatedAt: w.CreatedAt,
	}
	switch out.Kind {
	case KindTodo:
		subtasks := []Subtask{}
		if w.Subtasks != nil && *w.Subtasks != nil {
			subtasks = *w.Subtasks
		}
		out.Todo = &Todo{Completed: deref(w.Completed), Subtasks: subtasks}
	case KindNote:
		out.Note = &Note{Content: derefStr(w.Content)}
	case KindMood:
		out.Mood = &Mood{Mood: derefStr(w.Mood), Content: derefStr(w.Content)}
	case KindEvent:
		out.Event = &Event{StartTime: derefStr(w.StartTime), EndTime: derefStr(w.EndTime)}
	}
	*it = out
	return nil
}

// Day is the ordered list of items planned for one calendar date. Date always
// equals the key the day is stored under.
type Day struct {
	Date  string `json:"date" yaml:"date"`
	Items []Item `json:"items" yaml:"items"`
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func deref(b *bool) bool {
	return b != nil && *b
}
