package handlers

import (
	"time"

	"github.com/clinidesk/clinic-scheduler/internal/models"
	"github.com/clinidesk/clinic-scheduler/internal/timezone"
)

// Request dates are parsed in the clinic's own zone; the engine never
// sees a date that was interpreted in server-local time.
func parseDateInClinic(clinic *models.Clinic, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(clinic.Timezone),
	)
}
