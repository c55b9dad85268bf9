package app

import "tableflip.dev/planner/pkg/entry"

// Patch is a partial edit. Nil fields are left alone, and fields that do not
// apply to the item's kind are ignored.
type Patch struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	Mood      *string `json:"mood,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Expanded  *bool   `json:"expanded,omitempty"`
}

// IsEmpty reports whether the patch sets nothing.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Apply returns a copy of it with the patch applied.
func (p Patch) Apply(it entry.Item) entry.Item {
	out := it.Clone()
	if p.Title != nil {
		out = out.WithTitle(*p.Title)
	}
	if p.Content != nil {
		out = out.WithContent(*p.Content)
	}
	if p.Mood != nil {
		out = out.SetMood(*p.Mood)
	}
	if out.Event != nil && (p.StartTime != nil || p.EndTime != nil) {
		start, end := out.Event.StartTime, out.Event.EndTime
		if p.StartTime != nil {
			start = *p.StartTime
		}
		if p.EndTime != nil {
			end = *p.EndTime
		}
		out = out.WithTimes(start, end)
	}
	if p.Completed != nil && out.Completed() != *p.Completed {
		out = out.ToggleCompleted()
	}
	if p.Expanded != nil && out.Expanded != *p.Expanded {
		out = out.ToggleExpanded()
	}
	return out
}

// String returns a pointer to v, for building patches.
func String(v string) *string { return &v }

// Bool returns a pointer to v, for building patches.
func Bool(v bool) *bool { return &v }
