package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinidesk/clinic-scheduler/internal/audit"
	domain "github.com/clinidesk/clinic-scheduler/internal/domain/scheduling"
	"github.com/clinidesk/clinic-scheduler/internal/httperr"
	"github.com/clinidesk/clinic-scheduler/internal/models"
	"github.com/clinidesk/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClinicID uint
	DoctorID uint

	PatientName  string
	PatientPhone string
	PatientEmail string

	ServiceTypeID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	cache SlotCache
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	cache SlotCache,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(clinic.Timezone)

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := clinic.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(clinic.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	service, err := uc.repo.GetServiceType(ctx, in.ClinicID, in.ServiceTypeID)
	if err != nil || !service.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	// the requested span must sit inside an active window accepting
	// this service on that day
	if err := uc.assertWithinAvailability(ctx, in.DoctorID, in.ServiceTypeID, start, end, loc); err != nil {
		return nil, err
	}

	patient, err := uc.repo.GetOrCreatePatient(
		ctx,
		in.ClinicID,
		in.PatientName,
		in.PatientPhone,
		in.PatientEmail,
	)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		PublicRef:     uuid.NewString(),
		ClinicID:      in.ClinicID,
		DoctorID:      in.DoctorID,
		PatientID:     patient.ID,
		ServiceTypeID: service.ID,
		StartTime:     start,
		EndTime:       end,
		Status:        string(domain.InitialStatus()),
		Notes:         in.Notes,
	}

	// conflict re-check and insert share one transaction; the booked
	// set seen at slot-generation time may already be stale
	if err := uc.repo.CreateAppointmentChecked(ctx, ap); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.InvalidateDay(ctx, in.DoctorID, start)
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &in.DoctorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func (uc *CreateAppointment) assertWithinAvailability(
	ctx context.Context,
	doctorID uint,
	serviceTypeID uint,
	start time.Time,
	end time.Time,
	loc *time.Location,
) error {

	weekly, err := uc.repo.ListWeeklyRules(ctx, doctorID)
	if err != nil {
		return err
	}

	overrides, err := uc.repo.ListOverrideRules(ctx, doctorID, start)
	if err != nil {
		return err
	}

	availability := domain.ResolveAvailability(start, weekly, overrides)
	if !domain.ContainsSpan(availability, serviceTypeID, start, end, loc) {
		return httperr.ErrBusiness("outside_availability")
	}

	return nil
}
