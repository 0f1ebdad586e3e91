package scheduling

import (
	"context"
	"errors"
	"time"

	domain "github.com/clinidesk/clinic-scheduler/internal/domain/scheduling"
	"github.com/clinidesk/clinic-scheduler/internal/models"
)

var errNotFound = errors.New("record not found")

// repoStub satisfies domain.Repository from plain fields so usecase
// tests run without a database.
type repoStub struct {
	clinic      *models.Clinic
	service     *models.ServiceType
	patient     *models.Patient
	weekly      []domain.DayAvailability
	overrides   []domain.DayAvailability
	booked      []domain.Interval
	appointment *models.Appointment
	period      []models.Appointment

	createErr error
	created   *models.Appointment
	updated   *models.Appointment
}

func (r *repoStub) GetClinicByID(ctx context.Context, id uint) (*models.Clinic, error) {
	if r.clinic == nil {
		return nil, errNotFound
	}
	return r.clinic, nil
}

func (r *repoStub) GetServiceType(ctx context.Context, clinicID, serviceTypeID uint) (*models.ServiceType, error) {
	if r.service == nil || r.service.ID != serviceTypeID {
		return nil, errNotFound
	}
	return r.service, nil
}

func (r *repoStub) GetOrCreatePatient(ctx context.Context, clinicID uint, name, phone, email string) (*models.Patient, error) {
	if r.patient != nil {
		return r.patient, nil
	}
	return &models.Patient{ID: 1, ClinicID: clinicID, Name: name, Phone: phone, Email: email}, nil
}

func (r *repoStub) ListWeeklyRules(ctx context.Context, doctorID uint) ([]domain.DayAvailability, error) {
	return r.weekly, nil
}

func (r *repoStub) ListOverrideRules(ctx context.Context, doctorID uint, date time.Time) ([]domain.DayAvailability, error) {
	return r.overrides, nil
}

func (r *repoStub) ListBookedIntervals(ctx context.Context, doctorID uint, dayStart, dayEnd time.Time) ([]domain.Interval, error) {
	return r.booked, nil
}

func (r *repoStub) CreateAppointmentChecked(ctx context.Context, ap *models.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	ap.ID = 42
	r.created = ap
	return nil
}

func (r *repoStub) GetAppointmentForDoctor(ctx context.Context, appointmentID, doctorID uint) (*models.Appointment, error) {
	if r.appointment == nil || r.appointment.ID != appointmentID {
		return nil, errNotFound
	}
	return r.appointment, nil
}

func (r *repoStub) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.updated = ap
	return nil
}

func (r *repoStub) ListAppointmentsForPeriod(ctx context.Context, doctorID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.period {
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, ap)
		}
	}
	return out, nil
}

var _ domain.Repository = (*repoStub)(nil)

// cacheStub records cache traffic; hit serves cached on every get.
type cacheStub struct {
	cached      []domain.TimeSlot
	hit         bool
	gets        int
	sets        int
	invalidated []time.Time
}

func (c *cacheStub) GetSlots(ctx context.Context, doctorID uint, date time.Time, serviceTypeID uint, step int) ([]domain.TimeSlot, bool) {
	c.gets++
	if c.hit {
		return c.cached, true
	}
	return nil, false
}

func (c *cacheStub) SetSlots(ctx context.Context, doctorID uint, date time.Time, serviceTypeID uint, step int, slots []domain.TimeSlot) {
	c.sets++
	c.cached = slots
}

func (c *cacheStub) InvalidateDay(ctx context.Context, doctorID uint, date time.Time) {
	c.invalidated = append(c.invalidated, date)
}

var _ SlotCache = (*cacheStub)(nil)

func utcClinic() *models.Clinic {
	return &models.Clinic{
		ID:                1,
		Name:              "Cabinet Fournier",
		Slug:              "cabinet-fournier",
		Timezone:          "UTC",
		MinAdvanceMinutes: 120,
	}
}

func consultation(durationMin int) *models.ServiceType {
	return &models.ServiceType{
		ID:          3,
		ClinicID:    1,
		Name:        "Consultation",
		DurationMin: durationMin,
		Active:      true,
	}
}

func openDay(weekday time.Weekday) []domain.DayAvailability {
	return []domain.DayAvailability{{
		Weekday: weekday,
		Active:  true,
		Windows: []domain.TimeWindow{
			{StartTime: "09:00", EndTime: "12:00", Active: true},
			{StartTime: "14:00", EndTime: "18:00", Active: true},
		},
	}}
}
