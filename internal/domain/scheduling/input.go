package scheduling

import "time"

// AvailabilityInput identifies the doctor-day-service triple a slot
// query is about.
type AvailabilityInput struct {
	ClinicID      uint
	DoctorID      uint
	ServiceTypeID uint
	Date          time.Time
	StepMin       int
}

// TimeSlot is the wall-clock shape of a Slot as shown to schedulers.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
