package entry

import "strings"

// The helpers below never modify their receiver. Each returns an updated copy,
// or an unchanged copy when the operation does not apply to the item's kind.

// WithTitle sets the title.
func (it Item) WithTitle(title string) Item {
	out := it.Clone()
	out.Title = title
	return out
}

// WithContent sets the body of a note or mood.
func (it Item) WithContent(content string) Item {
	out := it.Clone()
	switch {
	case out.Note != nil:
		out.Note.Content = content
	case out.Mood != nil:
		out.Mood.Content = content
	}
	return out
}

// WithTimes sets an event's start and end. Start after end is accepted.
func (it Item) WithTimes(start, end string) Item {
	out := it.Clone()
	if out.Event != nil {
		out.Event.StartTime = start
		out.Event.EndTime = end
	}
	return out
}

// ToggleCompleted flips a to-do's completion.
func (it Item) ToggleCompleted() Item {
	out := it.Clone()
	if out.Todo != nil {
		out.Todo.Completed = !out.Todo.Completed
	}
	return out
}

// ToggleExpanded flips the display density flag.
func (it Item) ToggleExpanded() Item {
	out := it.Clone()
	out.Expanded = !out.Expanded
	return out
}

// ToggleSubtask flips completion on the matching subtask. Unknown ids leave
// the item unchanged.
func (it Item) ToggleSubtask(subtaskID string) Item {
	out := it.Clone()
	if out.Todo == nil {
		return out
	}
	for i := range out.Todo.Subtasks {
		if out.Todo.Subtasks[i].ID == subtaskID {
			out.Todo.Subtasks[i].Completed = !out.Todo.Subtasks[i].Completed
			break
		}
	}
	return out
}

// AddSubtask appends a subtask to a to-do. Blank titles are ignored.
func (it Item) AddSubtask(id, title string) Item {
	out := it.Clone()
	title = strings.TrimSpace(title)
	if out.Todo == nil || title == "" || id == "" {
		return out
	}
	out.Todo.Subtasks = append(out.Todo.Subtasks, Subtask{ID: id, Title: title})
	return out
}

// SetMood records the mood value of a mood item.
func (it Item) SetMood(mood string) Item {
	out := it.Clone()
	if out.Mood != nil {
		out.Mood.Mood = mood
	}
	return out
}
