// Package export renders planner data for other tools.
package export

import (
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/timeutil"
)

const (
	ProductID = "-//tableflip.dev//planner//EN"

	layoutClock = "15:04"
)

// Calendar builds a VCALENDAR holding one VEVENT per event item. Events with
// a start time are timed. An end before the start, or no end at all, gives a
// zero-length event. Events without a start time are all-day.
func Calendar(s planner.Store, stamp time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)

	for _, date := range s.Dates() {
		day, err := timeutil.ParseDateKey(date)
		if err != nil {
			continue
		}
		for _, it := range s.Items(date) {
			if it.Kind != entry.KindEvent || it.Event == nil {
				continue
			}
			addEvent(cal, day, it, stamp)
		}
	}
	return cal
}

// ICS writes the calendar for s to w.
func ICS(w io.Writer, s planner.Store, stamp time.Time) error {
	return Calendar(s, stamp).SerializeTo(w)
}

func addEvent(cal *ics.Calendar, day time.Time, it entry.Item, stamp time.Time) {
	ev := cal.AddEvent(it.ID)
	ev.SetDtStampTime(stamp)
	ev.SetCreatedTime(it.CreatedAt.Time())
	ev.SetSummary(it.Title)

	start, ok := clockOn(day, it.Event.StartTime)
	if !ok {
		ev.SetAllDayStartAt(day)
		ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		return
	}
	end, ok := clockOn(day, it.Event.EndTime)
	if !ok || end.Before(start) {
		end = start
	}
	ev.SetStartAt(start)
	ev.SetEndAt(end)
}

// clockOn places an HH:MM time on day.
func clockOn(day time.Time, hhmm string) (time.Time, bool) {
	if hhmm == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(layoutClock, hhmm, day.Location())
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), true
}
