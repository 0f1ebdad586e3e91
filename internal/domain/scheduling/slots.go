package scheduling

import (
	"sort"
	"time"
)

// DefaultSlotStepMin is the grid granularity shared by every service
// type, so a 20-minute and a 45-minute consultation offer start times on
// the same quarter-hour grid.
const DefaultSlotStepMin = 15

// Slot is one bookable start/end pair. End-Start always equals the
// requested service duration.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SlotRequest carries everything GenerateSlots needs; the generator
// itself holds no state and reads nothing else.
type SlotRequest struct {
	Date          time.Time
	ServiceTypeID uint
	DurationMin   int
	Availability  DayAvailability
	Booked        []Interval
	StepMin       int // 0 means DefaultSlotStepMin
	Location      *time.Location
}

// GenerateSlots computes the bookable start times for one doctor-day.
// Candidates step through each active window on the shared grid, must fit
// entirely inside their window, and must not overlap any booked interval.
// Slots surviving from overlapping windows are de-duplicated by start
// time and the result is sorted ascending.
//
// Every empty-looking situation (inactive day, no matching window,
// unknown service type, malformed windows) is a normal "no availability"
// answer, not an error.
func GenerateSlots(in SlotRequest) []Slot {
	if !in.Availability.Active || in.DurationMin <= 0 {
		return nil
	}

	step := in.StepMin
	if step <= 0 {
		step = DefaultSlotStepMin
	}

	loc := in.Location
	if loc == nil {
		loc = in.Date.Location()
	}

	duration := time.Duration(in.DurationMin) * time.Minute
	stepDur := time.Duration(step) * time.Minute

	var slots []Slot
	for _, w := range in.Availability.Windows {
		if !w.Active || !w.Accepts(in.ServiceTypeID) {
			continue
		}

		winStart, winEnd, ok := windowBounds(in.Date, w, loc)
		if !ok {
			continue
		}

		for cur := winStart; !cur.Add(duration).After(winEnd); cur = cur.Add(stepDur) {
			candidate := Interval{Start: cur, End: cur.Add(duration)}
			if HasConflict(candidate, in.Booked) {
				continue
			}
			slots = append(slots, Slot{Start: candidate.Start, End: candidate.End})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	return dedupeByStart(slots)
}

func dedupeByStart(slots []Slot) []Slot {
	if len(slots) < 2 {
		return slots
	}
	out := slots[:1]
	for _, s := range slots[1:] {
		if !s.Start.Equal(out[len(out)-1].Start) {
			out = append(out, s)
		}
	}
	return out
}
