package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/stats"
	"tableflip.dev/planner/pkg/timeutil"
)

var now = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.Local)

func plain(t *testing.T) (*PrettyPrint, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
	var buf bytes.Buffer
	return &PrettyPrint{Out: &buf, Now: timeutil.Fixed(now)}, &buf
}

func fixture() planner.Store {
	s := planner.Empty()
	s, _ = s.AddItem("2024-03-04", entry.KindTodo, "t1", 0)
	s, _ = s.AddItem("2024-03-04", entry.KindEvent, "e1", 0)
	s, _ = s.AddItem("2024-03-04", entry.KindMood, "m1", 0)
	s = s.MapItem("2024-03-04", "t1", func(it entry.Item) entry.Item {
		return it.WithTitle("Ship it").AddSubtask("s1", "tests").ToggleCompleted()
	})
	s = s.MapItem("2024-03-04", "e1", func(it entry.Item) entry.Item { return it.WithTimes("09:00", "10:00") })
	s = s.MapItem("2024-03-04", "m1", func(it entry.Item) entry.Item { return it.SetMood("😊") })
	return s
}

func TestDay(t *testing.T) {
	pp, buf := plain(t)
	pp.Day(fixture().Day("2024-03-04"))
	out := buf.String()
	assert.Contains(t, out, "Mon 4 March 2024 (today) - 3 items")
	assert.Contains(t, out, "[x] Ship it")
	assert.Contains(t, out, "    [ ] tests")
	assert.Contains(t, out, " ○  New event 09:00 - 10:00")
	assert.Contains(t, out, "😊 Mood")
	assert.NotContains(t, out, "t1")
}

func TestDayShowIDs(t *testing.T) {
	pp, buf := plain(t)
	pp.ShowID = true
	pp.Day(fixture().Day("2024-03-04"))
	assert.Contains(t, buf.String(), "t1")
	assert.Contains(t, buf.String(), "s1 [ ] tests")
}

func TestEmptyDay(t *testing.T) {
	pp, buf := plain(t)
	pp.Day(entry.Day{Date: "2024-03-05", Items: nil})
	assert.Contains(t, buf.String(), "Tue 5 March 2024 - 0 items")
	assert.Contains(t, buf.String(), " none")
}

func TestStats(t *testing.T) {
	pp, buf := plain(t)
	pp.Stats("All time", stats.Totals(fixture()))
	out := buf.String()
	assert.Contains(t, out, "Completed 1 of 1 to-dos (100%)")
	assert.Regexp(t, `todo\s+1`, out)
	assert.Regexp(t, `total\s+3`, out)
}

func TestDayStats(t *testing.T) {
	pp, buf := plain(t)
	pp.DayStats(stats.Day(fixture(), "2024-03-04"))
	out := buf.String()
	assert.Contains(t, out, "Moods")
	assert.Contains(t, out, "😊 Mood")
	assert.Regexp(t, `09:00 - 10:00\s+New event`, out)
}

func TestMonthGrid(t *testing.T) {
	pp, buf := plain(t)
	first := timeutil.FirstOfMonth(now, 0)
	pp.Month(first, timeutil.MonthGrid(now, 0), fixture())
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Contains(t, lines[0], "March 2024")
	assert.Equal(t, "Su Mo Tu We Th Fr Sa", lines[1])
	// March 2024 starts on a Friday, so the grid opens on Sunday 25 February
	assert.Equal(t, "25 26 27 28 29  1  2", lines[2])
	assert.Len(t, lines, 8)
}

func TestMonthCounts(t *testing.T) {
	pp, buf := plain(t)
	pp.MonthCounts(timeutil.FirstOfMonth(now, 0), timeutil.MonthGrid(now, 0), fixture())
	assert.Contains(t, buf.String(), " 4 Mo  [x] Ship it")
}

func TestReport(t *testing.T) {
	pp, buf := plain(t)
	it := fixture().Items("2024-03-04")[0]
	pp.Report(app.ReportResult{
		Since:    "2024-03-01",
		Until:    "2024-03-07",
		Total:    1,
		Sections: []app.ReportSection{{Date: "2024-03-04", Items: []entry.Item{it}}},
	})
	out := buf.String()
	assert.Contains(t, out, "Completed 2024-03-01 to 2024-03-07 - 1 item")
	assert.Contains(t, out, "Mon 4 Mar")
	assert.Contains(t, out, "[x] Ship it")
}
