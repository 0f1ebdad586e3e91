package scheduling

import (
	"context"
	"time"

	"github.com/clinidesk/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Clinic --------
	GetClinicByID(
		ctx context.Context,
		id uint,
	) (*models.Clinic, error)

	// -------- Service catalog --------
	GetServiceType(
		ctx context.Context,
		clinicID uint,
		serviceTypeID uint,
	) (*models.ServiceType, error)

	// -------- Patient --------
	GetOrCreatePatient(
		ctx context.Context,
		clinicID uint,
		name string,
		phone string,
		email string,
	) (*models.Patient, error)

	// -------- Availability rules --------
	ListWeeklyRules(
		ctx context.Context,
		doctorID uint,
	) ([]DayAvailability, error)

	ListOverrideRules(
		ctx context.Context,
		doctorID uint,
		date time.Time,
	) ([]DayAvailability, error)

	// -------- Booked intervals --------
	ListBookedIntervals(
		ctx context.Context,
		doctorID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]Interval, error)

	// -------- Appointment (create / conflict) --------
	// CreateAppointmentChecked re-runs the conflict predicate against the
	// live booked set inside the same transaction as the insert and
	// returns the slot_taken business error on collision.
	CreateAppointmentChecked(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForDoctor(
		ctx context.Context,
		appointmentID uint,
		doctorID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		doctorID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
