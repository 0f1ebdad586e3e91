package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/clinidesk/clinic-scheduler/internal/domain/scheduling"
	"github.com/clinidesk/clinic-scheduler/internal/httperr"
	"github.com/clinidesk/clinic-scheduler/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Clinic
// --------------------------------------------------

func (r *SchedulingGormRepository) GetClinicByID(
	ctx context.Context,
	id uint,
) (*models.Clinic, error) {

	var clinic models.Clinic
	if err := r.db.WithContext(ctx).First(&clinic, id).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

// --------------------------------------------------
// Service catalog
// --------------------------------------------------

func (r *SchedulingGormRepository) GetServiceType(
	ctx context.Context,
	clinicID uint,
	serviceTypeID uint,
) (*models.ServiceType, error) {

	var st models.ServiceType
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", serviceTypeID, clinicID).
		First(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

func (r *SchedulingGormRepository) GetOrCreatePatient(
	ctx context.Context,
	clinicID uint,
	name string,
	phone string,
	email string,
) (*models.Patient, error) {

	var patient models.Patient
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND phone = ?", clinicID, phone).
		First(&patient).Error

	if err == nil {
		return &patient, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	patient = models.Patient{
		ClinicID: clinicID,
		Name:     name,
		Phone:    phone,
		Email:    email,
	}

	if err := r.db.WithContext(ctx).Create(&patient).Error; err != nil {
		return nil, err
	}

	return &patient, nil
}

// --------------------------------------------------
// Availability rules
// --------------------------------------------------

func (r *SchedulingGormRepository) ListWeeklyRules(
	ctx context.Context,
	doctorID uint,
) ([]domain.DayAvailability, error) {

	var rules []models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND specific_date IS NULL", doctorID).
		Order("weekday ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}

	return toDayAvailabilities(rules), nil
}

func (r *SchedulingGormRepository) ListOverrideRules(
	ctx context.Context,
	doctorID uint,
	date time.Time,
) ([]domain.DayAvailability, error) {

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var rules []models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where(
			"doctor_id = ? AND specific_date >= ? AND specific_date < ?",
			doctorID, dayStart, dayEnd,
		).
		Find(&rules).Error; err != nil {
		return nil, err
	}

	return toDayAvailabilities(rules), nil
}

func toDayAvailabilities(rules []models.AvailabilityRule) []domain.DayAvailability {
	out := make([]domain.DayAvailability, 0, len(rules))
	for _, rule := range rules {
		var windows []domain.TimeWindow
		if len(rule.Windows) > 0 {
			// a rule with an undecodable window payload contributes no
			// windows; the engine treats that as a closed day
			_ = json.Unmarshal(rule.Windows, &windows)
		}

		out = append(out, domain.DayAvailability{
			Weekday:      time.Weekday(rule.Weekday),
			SpecificDate: rule.SpecificDate,
			Active:       rule.Active,
			Windows:      windows,
		})
	}
	return out
}

// --------------------------------------------------
// Booked intervals
// --------------------------------------------------

func (r *SchedulingGormRepository) ListBookedIntervals(
	ctx context.Context,
	doctorID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]domain.Interval, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"doctor_id = ? AND status = 'scheduled' AND start_time < ? AND end_time > ?",
			doctorID, dayEnd, dayStart,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	intervals := make([]domain.Interval, 0, len(aps))
	for _, ap := range aps {
		intervals = append(intervals, domain.Interval{
			Start: ap.StartTime,
			End:   ap.EndTime,
		})
	}

	return intervals, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// conflictQuery selects and row-locks the scheduled appointments that
// overlap [start, end) for a doctor. Postgres refuses FOR UPDATE on an
// aggregate, so the re-check locks the conflicting rows themselves and
// the caller counts what came back.
func conflictQuery(tx *gorm.DB, doctorID uint, start, end time.Time) *gorm.DB {
	return tx.
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"doctor_id = ? AND status = 'scheduled' AND start_time < ? AND end_time > ?",
			doctorID, end, start,
		)
}

func (r *SchedulingGormRepository) CreateAppointmentChecked(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicting []uint
		if err := conflictQuery(tx, ap.DoctorID, ap.StartTime, ap.EndTime).
			Pluck("id", &conflicting).Error; err != nil {
			return err
		}

		if len(conflicting) > 0 {
			return httperr.ErrBusiness("slot_taken")
		}

		return tx.Create(ap).Error
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		// the database exclusion constraint caught a race the row lock
		// did not cover; same outcome for the caller
		return httperr.ErrBusiness("slot_taken")
	}

	return err
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *SchedulingGormRepository) GetAppointmentForDoctor(
	ctx context.Context,
	appointmentID uint,
	doctorID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", appointmentID, doctorID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *SchedulingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *SchedulingGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	doctorID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("ServiceType").
		Where(
			"doctor_id = ? AND start_time >= ? AND start_time < ?",
			doctorID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&aps).Error

	if err != nil {
		return nil, err
	}

	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
