package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/timeutil"
)

func TestCompletionEmptyIsZero(t *testing.T) {
	c := CompletionOf(nil)
	assert.Equal(t, 0.0, c.Rate)
	assert.Equal(t, 0, c.Percent())

	c = CompletionOf([]entry.Item{entry.New("n", entry.KindNote, 0)})
	assert.Equal(t, 0, c.TotalTodos)
	assert.Equal(t, 0.0, c.Rate)
}

func TestCompletionRate(t *testing.T) {
	items := []entry.Item{
		entry.New("a", entry.KindTodo, 0).ToggleCompleted(),
		entry.New("b", entry.KindTodo, 0),
		entry.New("c", entry.KindTodo, 0),
		entry.New("d", entry.KindEvent, 0),
	}
	c := CompletionOf(items)
	assert.Equal(t, 1, c.CompletedTodos)
	assert.Equal(t, 3, c.TotalTodos)
	assert.InDelta(t, 1.0/3, c.Rate, 1e-9)
	assert.Equal(t, 33, c.Percent())
}

func TestCountByKind(t *testing.T) {
	items := []entry.Item{
		entry.New("a", entry.KindNote, 0),
		entry.New("b", entry.KindNote, 0),
		entry.New("c", entry.KindMood, 0),
	}
	assert.Equal(t, 2, CountByKind(items, entry.KindNote))
	assert.Equal(t, 0, CountByKind(items, entry.KindEvent))
}

func build(t *testing.T) planner.Store {
	t.Helper()
	s := planner.Empty()
	add := func(date string, kind entry.Kind, id string) {
		var it entry.Item
		s, it = s.AddItem(date, kind, id, 0)
		require.False(t, it.IsZero())
	}
	add("2024-03-04", entry.KindTodo, "t1")
	add("2024-03-04", entry.KindMood, "m1")
	add("2024-03-05", entry.KindTodo, "t2")
	add("2024-03-05", entry.KindEvent, "e1")
	add("2024-04-20", entry.KindNote, "n1")
	s = s.MapItem("2024-03-05", "t2", entry.Item.ToggleCompleted)
	s = s.MapItem("2024-03-04", "m1", func(it entry.Item) entry.Item { return it.SetMood("😊").WithContent("sunny") })
	s = s.MapItem("2024-03-05", "e1", func(it entry.Item) entry.Item { return it.WithTimes("09:00", "10:30") })
	return s
}

func TestTotals(t *testing.T) {
	sum := Totals(build(t))
	assert.Equal(t, 5, sum.Total)
	assert.Equal(t, 2, sum.Counts[entry.KindTodo])
	assert.Equal(t, 1, sum.Counts[entry.KindNote])
	assert.Equal(t, 1, sum.Completion.CompletedTodos)
	assert.Equal(t, 50, sum.Completion.Percent())
}

func TestTotalsForWindow(t *testing.T) {
	now := time.Date(2024, time.March, 6, 12, 0, 0, 0, time.Local)
	sum := TotalsFor(build(t), timeutil.WeekWindow(now, 0))
	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, 0, sum.Counts[entry.KindNote])

	rep := ReportFor(build(t), "week", timeutil.WeekWindow(now, 0))
	assert.Equal(t, "2024-03-04", rep.Window.From)
	assert.Equal(t, "2024-03-12", rep.Window.To)
}

func TestDay(t *testing.T) {
	s := build(t)
	d := Day(s, "2024-03-04")
	require.Len(t, d.Moods, 1)
	assert.Equal(t, MoodLine{Mood: "😊", Title: "Mood", Content: "sunny"}, d.Moods[0])
	assert.Empty(t, d.Events)

	d = Day(s, "2024-03-05")
	require.Len(t, d.Events, 1)
	assert.Equal(t, "09:00 - 10:30", d.Events[0].Time)
	assert.Equal(t, 100, d.Summary.Completion.Percent())

	empty := Day(s, "2030-01-01")
	assert.Equal(t, 0, empty.Summary.Total)
	assert.NotNil(t, empty.Moods)
}
