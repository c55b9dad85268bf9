package app

import (
	"time"

	"tableflip.dev/planner/pkg/timeutil"
)

// ViewMode selects the calendar layout.
type ViewMode int

const (
	ViewWeek ViewMode = iota
	ViewMonth
)

func (v ViewMode) String() string {
	if v == ViewMonth {
		return "month"
	}
	return "week"
}

// Session is the navigation state of an interactive view. None of its
// methods touch the store.
type Session struct {
	Clock       timeutil.Clock
	Selected    string
	Mode        ViewMode
	WeekOffset  int
	MonthOffset int
}

// NewSession starts on today in week view.
func NewSession(clock timeutil.Clock) *Session {
	s := &Session{Clock: clock}
	s.JumpToToday()
	return s
}

// JumpToToday selects today and resets both offsets.
func (s *Session) JumpToToday() {
	s.Selected = timeutil.DateKey(s.Clock.Now())
	s.WeekOffset = 0
	s.MonthOffset = 0
}

// ToggleView switches between week and month.
func (s *Session) ToggleView() {
	if s.Mode == ViewWeek {
		s.Mode = ViewMonth
	} else {
		s.Mode = ViewWeek
	}
}

// Next pages forward one week or one month.
func (s *Session) Next() { s.page(1) }

// Prev pages back one week or one month.
func (s *Session) Prev() { s.page(-1) }

func (s *Session) page(delta int) {
	if s.Mode == ViewMonth {
		s.MonthOffset += delta
	} else {
		s.WeekOffset += delta
	}
}

// Select makes date the selected day. Invalid keys are rejected.
func (s *Session) Select(date string) error {
	if err := checkDate(date); err != nil {
		return err
	}
	s.Selected = date
	return nil
}

// Step moves the selection by days and pages the view so the new day stays
// visible.
func (s *Session) Step(days int) {
	cur, err := timeutil.ParseDateKey(s.Selected)
	if err != nil {
		cur = timeutil.Midnight(s.Clock.Now())
	}
	next := cur.AddDate(0, 0, days)
	s.Selected = timeutil.DateKey(next)
	if s.visible(next) {
		return
	}
	now := timeutil.Midnight(s.Clock.Now())
	if s.Mode == ViewMonth {
		s.MonthOffset = monthsBetween(now, next)
	} else {
		s.WeekOffset = weeksBetween(now, next)
	}
}

// SelectedTime returns the selected day at local midnight.
func (s *Session) SelectedTime() time.Time {
	t, err := timeutil.ParseDateKey(s.Selected)
	if err != nil {
		return timeutil.Midnight(s.Clock.Now())
	}
	return t
}

// VisibleDates is the week window or the month grid for the current offsets.
func (s *Session) VisibleDates() []time.Time {
	now := s.Clock.Now()
	if s.Mode == ViewMonth {
		return timeutil.MonthGrid(now, s.MonthOffset)
	}
	return timeutil.WeekWindow(now, s.WeekOffset)
}

// Title labels the current view, "Week 10 2024-03-04" or "March 2024".
func (s *Session) Title() string {
	if s.Mode == ViewMonth {
		return timeutil.MonthLabel(timeutil.FirstOfMonth(s.Clock.Now(), s.MonthOffset))
	}
	return timeutil.WeekRangeLabel(s.VisibleDates())
}

func (s *Session) visible(t time.Time) bool {
	key := timeutil.DateKey(t)
	for _, d := range s.VisibleDates() {
		if timeutil.DateKey(d) == key {
			return true
		}
	}
	return false
}

func weeksBetween(from, to time.Time) int {
	a, b := timeutil.Monday(from), timeutil.Monday(to)
	days := int(b.Sub(a).Round(24*time.Hour) / (24 * time.Hour))
	return days / 7
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
