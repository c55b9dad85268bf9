package export

import (
	"bytes"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/planner"
)

var stamp = time.Date(2024, time.March, 4, 8, 0, 0, 0, time.Local)

func withEvent(s planner.Store, date, id, start, end string) planner.Store {
	s, _ = s.AddItem(date, entry.KindEvent, id, entry.MillisOf(stamp))
	return s.MapItem(date, id, func(it entry.Item) entry.Item {
		return it.WithTitle("Event " + id).WithTimes(start, end)
	})
}

func parse(t *testing.T, s planner.Store) map[string]*ics.VEvent {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, ICS(&buf, s, stamp))
	cal, err := ics.ParseCalendar(&buf)
	require.NoError(t, err)
	out := map[string]*ics.VEvent{}
	for _, ev := range cal.Events() {
		out[ev.Id()] = ev
	}
	return out
}

func TestOnlyEventsAreExported(t *testing.T) {
	s := planner.Empty()
	s, _ = s.AddItem("2024-03-04", entry.KindTodo, "todo", 0)
	s, _ = s.AddItem("2024-03-04", entry.KindNote, "note", 0)
	s = withEvent(s, "2024-03-04", "e1", "09:00", "10:00")

	events := parse(t, s)
	assert.Len(t, events, 1)
	require.Contains(t, events, "e1")
	assert.Equal(t, "Event e1", events["e1"].GetProperty(ics.ComponentPropertySummary).Value)
}

func TestTimedEvent(t *testing.T) {
	events := parse(t, withEvent(planner.Empty(), "2024-03-04", "e1", "09:00", "10:30"))
	ev := events["e1"]
	require.NotNil(t, ev)

	start, err := ev.GetStartAt()
	require.NoError(t, err)
	end, err := ev.GetEndAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2024, time.March, 4, 9, 0, 0, 0, time.Local)))
	assert.Equal(t, 90*time.Minute, end.Sub(start))
}

func TestEndBeforeStartIsZeroLength(t *testing.T) {
	events := parse(t, withEvent(planner.Empty(), "2024-03-04", "e1", "11:00", "10:00"))
	ev := events["e1"]
	require.NotNil(t, ev)

	start, err := ev.GetStartAt()
	require.NoError(t, err)
	end, err := ev.GetEndAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(end))
}

func TestNoStartIsAllDay(t *testing.T) {
	events := parse(t, withEvent(planner.Empty(), "2024-03-05", "e1", "", "10:00"))
	ev := events["e1"]
	require.NotNil(t, ev)

	dtStart := ev.GetProperty(ics.ComponentPropertyDtStart)
	require.NotNil(t, dtStart)
	assert.Equal(t, "20240305", dtStart.Value)
	assert.Equal(t, "20240306", ev.GetProperty(ics.ComponentPropertyDtEnd).Value)
}
