package scheduling

import (
	"time"

	"github.com/clinidesk/clinic-scheduler/internal/calendar"
)

// Interval is a half-open [Start, End) time span. Booked appointments are
// reduced to Intervals before any conflict test; the engine never cares
// who or what the interval belongs to.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether a and b overlap under the engine's single
// boundary rule: touching endpoints are not a conflict.
func Overlaps(a, b Interval) bool {
	return calendar.IntervalsOverlap(a.Start, a.End, b.Start, b.End)
}

// HasConflict reports whether candidate overlaps any existing interval.
// It is the caller's job to scope existing to one doctor before calling.
func HasConflict(candidate Interval, existing []Interval) bool {
	for _, iv := range existing {
		if Overlaps(candidate, iv) {
			return true
		}
	}
	return false
}

// WindowConflicts flags pairs of active windows on the same day that
// overlap in time while accepting a common service type. Used by the
// settings layer to warn on misconfigured availability rules; the slot
// generator itself tolerates overlapping windows.
func WindowConflicts(date time.Time, windows []TimeWindow, loc *time.Location) [][2]int {
	var pairs [][2]int

	for i := 0; i < len(windows); i++ {
		if !windows[i].Active {
			continue
		}
		aStart, aEnd, ok := windowBounds(date, windows[i], loc)
		if !ok {
			continue
		}

		for j := i + 1; j < len(windows); j++ {
			if !windows[j].Active {
				continue
			}
			bStart, bEnd, ok := windowBounds(date, windows[j], loc)
			if !ok {
				continue
			}

			if calendar.IntervalsOverlap(aStart, aEnd, bStart, bEnd) && shareServiceType(windows[i], windows[j]) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}

	return pairs
}

func shareServiceType(a, b TimeWindow) bool {
	// an unrestricted window shares with everything
	if len(a.ServiceTypeIDs) == 0 || len(b.ServiceTypeIDs) == 0 {
		return true
	}
	for _, id := range a.ServiceTypeIDs {
		if b.Accepts(id) {
			return true
		}
	}
	return false
}

// windowBounds anchors a window's wall-clock bounds onto date. Windows
// with unparseable times or end <= start are malformed and reported as
// not usable rather than failing the whole pass.
func windowBounds(date time.Time, w TimeWindow, loc *time.Location) (time.Time, time.Time, bool) {
	start, ok := calendar.AtTime(date, w.StartTime, loc)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := calendar.AtTime(date, w.EndTime, loc)
	if !ok || !end.After(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
