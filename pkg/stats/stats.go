// Package stats computes read-only aggregates over planner items for the
// overview and info panels.
package stats

import (
	"math"
	"time"

	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/timeutil"
)

// Completion summarises to-do progress.
type Completion struct {
	CompletedTodos int     `json:"completedTodos" yaml:"completedTodos"`
	TotalTodos     int     `json:"totalTodos" yaml:"totalTodos"`
	Rate           float64 `json:"rate" yaml:"rate"`
}

// Percent returns the completion rate as a rounded whole percentage.
func (c Completion) Percent() int {
	return int(math.Round(c.Rate * 100))
}

// CompletionOf computes to-do completion over items. The rate is 0 when there
// are no to-dos.
func CompletionOf(items []entry.Item) Completion {
	var c Completion
	for _, it := range items {
		if it.Kind != entry.KindTodo {
			continue
		}
		c.TotalTodos++
		if it.Completed() {
			c.CompletedTodos++
		}
	}
	if c.TotalTodos > 0 {
		c.Rate = float64(c.CompletedTodos) / float64(c.TotalTodos)
	}
	return c
}

// CountByKind counts items of kind.
func CountByKind(items []entry.Item, kind entry.Kind) int {
	n := 0
	for _, it := range items {
		if it.Kind == kind {
			n++
		}
	}
	return n
}

// Summary is a set of per-kind counts plus completion.
type Summary struct {
	Counts     map[entry.Kind]int `json:"counts" yaml:"counts"`
	Total      int                `json:"total" yaml:"total"`
	Completion Completion         `json:"completion" yaml:"completion"`
}

// Summarize aggregates items into a Summary.
func Summarize(items []entry.Item) Summary {
	s := Summary{Counts: make(map[entry.Kind]int, len(entry.Kinds()))}
	for _, k := range entry.Kinds() {
		s.Counts[k] = CountByKind(items, k)
	}
	s.Total = len(items)
	s.Completion = CompletionOf(items)
	return s
}

// Totals scans every day in the store.
func Totals(s planner.Store) Summary {
	return Summarize(s.All())
}

// TotalsFor restricts the scan to the given dates.
func TotalsFor(s planner.Store, dates []time.Time) Summary {
	var items []entry.Item
	for _, d := range s.Range(dates) {
		items = append(items, d.Items...)
	}
	return Summarize(items)
}

// MoodLine is a mood shown in the info panel.
type MoodLine struct {
	Mood    string `json:"mood" yaml:"mood"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
}

// EventLine is an event shown in the info panel.
type EventLine struct {
	Title string `json:"title" yaml:"title"`
	Time  string `json:"time,omitempty" yaml:"time,omitempty"`
}

// DaySummary is the info panel for one date.
type DaySummary struct {
	Date    string      `json:"date" yaml:"date"`
	Summary Summary     `json:"summary" yaml:"summary"`
	Moods   []MoodLine  `json:"moods" yaml:"moods"`
	Events  []EventLine `json:"events" yaml:"events"`
}

// Day builds the info panel for date.
func Day(s planner.Store, date string) DaySummary {
	items := s.Items(date)
	out := DaySummary{
		Date:    date,
		Summary: Summarize(items),
		Moods:   []MoodLine{},
		Events:  []EventLine{},
	}
	for _, it := range items {
		switch {
		case it.Mood != nil:
			out.Moods = append(out.Moods, MoodLine{Mood: it.Mood.Mood, Title: it.Title, Content: it.Mood.Content})
		case it.Event != nil:
			out.Events = append(out.Events, EventLine{Title: it.Title, Time: it.TimeLabel()})
		}
	}
	return out
}

// Window describes the dates a summary covers.
type Window struct {
	Label string   `json:"label" yaml:"label"`
	From  string   `json:"from" yaml:"from"`
	To    string   `json:"to" yaml:"to"`
	Dates []string `json:"-" yaml:"-"`
}

// NewWindow builds a Window over dates.
func NewWindow(label string, dates []time.Time) Window {
	w := Window{Label: label, Dates: timeutil.Keys(dates)}
	if len(w.Dates) > 0 {
		w.From = w.Dates[0]
		w.To = w.Dates[len(w.Dates)-1]
	}
	return w
}

// Report is a summary over a window.
type Report struct {
	Window  Window  `json:"window" yaml:"window"`
	Summary Summary `json:"summary" yaml:"summary"`
}

// ReportFor aggregates s over the window's dates.
func ReportFor(s planner.Store, label string, dates []time.Time) Report {
	return Report{Window: NewWindow(label, dates), Summary: TotalsFor(s, dates)}
}
