package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// LayoutKey is the canonical calendar date key format.
	LayoutKey = "2006-01-02"

	// WeekWindowDays is the number of dates in a week view: Monday through
	// Sunday plus the following Monday and Tuesday.
	WeekWindowDays = 9

	// MonthGridDays is the number of cells in a month grid, six Sunday-first weeks.
	MonthGridDays = 42
)

// Clock returns the current time. Tests inject a fixed clock.
type Clock func() time.Time

// Now returns the current time from c, falling back to time.Now.
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// Midnight truncates t to the start of its local calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateKey renders the local calendar date of t as YYYY-MM-DD. It never
// converts to UTC, so a late-evening time keeps its own day.
func DateKey(t time.Time) string {
	return t.Format(LayoutKey)
}

// ParseDateKey parses a YYYY-MM-DD key as local midnight. Keys that do not
// round-trip (for example "2024-3-4") are rejected.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(LayoutKey, strings.TrimSpace(key), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", key, err)
	}
	if DateKey(t) != strings.TrimSpace(key) {
		return time.Time{}, fmt.Errorf("invalid date %q", key)
	}
	return t, nil
}

// ValidKey reports whether key is a canonical date key.
func ValidKey(key string) bool {
	_, err := ParseDateKey(key)
	return err == nil
}

// Monday returns the Monday starting the ISO week that contains t.
func Monday(t time.Time) time.Time {
	day := Midnight(t)
	// Sunday belongs to the week that began six days earlier.
	shift := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -shift)
}

// WeekWindow returns nine consecutive dates starting on the Monday of the week
// offset weeks away from the week containing now.
func WeekWindow(now time.Time, offset int) []time.Time {
	start := Monday(now).AddDate(0, 0, 7*offset)
	return consecutive(start, WeekWindowDays)
}

// MonthGrid returns the 42 dates of a Sunday-first grid covering the month
// offset months away from the month containing now.
func MonthGrid(now time.Time, offset int) []time.Time {
	first := FirstOfMonth(now, offset)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	return consecutive(start, MonthGridDays)
}

// FirstOfMonth returns local midnight on the first day of the month offset
// months away from now.
func FirstOfMonth(now time.Time, offset int) time.Time {
	return time.Date(now.Year(), now.Month()+time.Month(offset), 1, 0, 0, 0, 0, now.Location())
}

func consecutive(start time.Time, n int) []time.Time {
	dates := make([]time.Time, n)
	for i := range dates {
		// AddDate keeps calendar days correct across DST transitions.
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

// Keys maps dates to their canonical keys.
func Keys(dates []time.Time) []string {
	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = DateKey(d)
	}
	return keys
}

// ISOWeek returns the ISO-8601 week-numbering year and week of t. Week 1 is
// the week holding the year's first Thursday.
func ISOWeek(t time.Time) (year, week int) {
	return Midnight(t).ISOWeek()
}

// WeekRangeLabel renders "Week NN YYYY-MM-DD" for the first of dates.
func WeekRangeLabel(dates []time.Time) string {
	if len(dates) == 0 {
		return ""
	}
	_, week := ISOWeek(dates[0])
	return fmt.Sprintf("Week %d %s", week, DateKey(dates[0]))
}

// SameDay reports whether a and b fall on the same local calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether t is on the same calendar date as now.
func IsToday(now, t time.Time) bool {
	return SameDay(now, t)
}

// DisplayDate renders a compact day label such as "4 Mon".
func DisplayDate(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), t.Weekday().String()[:3])
}

// MonthLabel renders "March 2024".
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}

// ResolveDate understands canonical keys plus "today", "tomorrow" and
// "yesterday" relative to now.
func ResolveDate(now time.Time, v string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "today":
		return DateKey(now), nil
	case "tomorrow":
		return DateKey(Midnight(now).AddDate(0, 0, 1)), nil
	case "yesterday":
		return DateKey(Midnight(now).AddDate(0, 0, -1)), nil
	}
	t, err := ParseDateKey(v)
	if err != nil {
		return "", err
	}
	return DateKey(t), nil
}
