package scheduling

import (
	"time"

	"github.com/clinidesk/clinic-scheduler/internal/calendar"
)

// TimeWindow is one contiguous span of a working day during which a
// subset of service types may be booked.
type TimeWindow struct {
	StartTime      string `json:"start_time"` // HH:MM
	EndTime        string `json:"end_time"`   // HH:MM
	ServiceTypeIDs []uint `json:"service_type_ids"`
	Active         bool   `json:"active"`
}

// Accepts reports whether the window takes bookings for the given
// service type. An empty ID list means the window accepts everything.
func (w TimeWindow) Accepts(serviceTypeID uint) bool {
	if len(w.ServiceTypeIDs) == 0 {
		return true
	}
	for _, id := range w.ServiceTypeIDs {
		if id == serviceTypeID {
			return true
		}
	}
	return false
}

// DayAvailability is the working-hours configuration for one day: either
// the recurring default for a weekday (SpecificDate nil) or an override
// for a single calendar date.
type DayAvailability struct {
	Weekday      time.Weekday
	SpecificDate *time.Time
	Active       bool
	Windows      []TimeWindow
}

// ResolveAvailability picks the configuration in effect for date: a
// date-specific override wins over the recurring weekday default, and
// the absence of both means no availability, never "fully open".
func ResolveAvailability(date time.Time, weekly, overrides []DayAvailability) DayAvailability {
	for _, ov := range overrides {
		if ov.SpecificDate != nil && calendar.SameDay(*ov.SpecificDate, date) {
			return ov
		}
	}

	weekday := date.Weekday()
	for _, def := range weekly {
		if def.SpecificDate == nil && def.Weekday == weekday {
			return def
		}
	}

	return DayAvailability{Weekday: weekday, Active: false}
}

// ContainsSpan reports whether [start, end) fits entirely inside one
// active window of day that accepts the service type. This is the
// booking-time counterpart of slot generation's containment rule.
func ContainsSpan(day DayAvailability, serviceTypeID uint, start, end time.Time, loc *time.Location) bool {
	if !day.Active || !end.After(start) {
		return false
	}

	for _, w := range day.Windows {
		if !w.Active || !w.Accepts(serviceTypeID) {
			continue
		}

		winStart, winEnd, ok := windowBounds(start, w, loc)
		if !ok {
			continue
		}

		if !start.Before(winStart) && !end.After(winEnd) {
			return true
		}
	}

	return false
}
