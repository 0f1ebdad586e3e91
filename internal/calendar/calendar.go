package calendar

import (
	"fmt"
	"math"
	"time"
)

// Pure date/time arithmetic shared by the scheduling engine and the
// week/day views. Everything here is deterministic and does no I/O.

// StartOfDay returns midnight of t's calendar day, in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Monday of t's week.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started six days earlier
	}
	return StartOfDay(t).AddDate(0, 0, -(weekday - 1))
}

// EndOfWeek returns midnight of the Sunday of t's week (inclusive last day).
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// DaysOfWeek returns the seven days of t's week, Monday first.
func DaysOfWeek(t time.Time) []time.Time {
	start := StartOfWeek(t)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns midnight of the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// SameDay reports whether a and b fall on the same calendar day,
// compared as local year/month/day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// GenerateTimeSlots produces "HH:MM" labels from startHour:00 up to but
// excluding endHour:00, stepping by intervalMinutes. Invalid arguments
// (non-positive step, startHour >= endHour) yield an empty slice: callers
// render "no slots", they do not handle errors.
func GenerateTimeSlots(startHour, endHour, intervalMinutes int) []string {
	if intervalMinutes <= 0 || startHour >= endHour {
		return nil
	}

	var slots []string
	for m := startHour * 60; m < endHour*60; m += intervalMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

// DurationMinutes returns end-start rounded to the nearest whole minute.
// An end before start is malformed input and reported as 0 so a render
// pass never dies on one bad record.
func DurationMinutes(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(math.Round(end.Sub(start).Minutes()))
}

// IntervalsOverlap reports whether [aStart, aEnd) and [bStart, bEnd)
// overlap. Touching endpoints (aEnd == bStart) do not overlap. This is
// the single boundary convention for every conflict check in the system;
// the SQL conflict predicate mirrors it as start_time < ? AND end_time > ?.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// AtTime anchors a "HH:MM" wall-clock value onto date's calendar day in
// loc. The boolean is false when clock does not parse.
func AtTime(date time.Time, clock string, loc *time.Location) (time.Time, bool) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		loc,
	), true
}
