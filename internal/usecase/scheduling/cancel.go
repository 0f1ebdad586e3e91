package scheduling

import (
	"context"

	"github.com/clinidesk/clinic-scheduler/internal/audit"
	domain "github.com/clinidesk/clinic-scheduler/internal/domain/scheduling"
	"github.com/clinidesk/clinic-scheduler/internal/httperr"
	"github.com/clinidesk/clinic-scheduler/internal/models"
	"github.com/clinidesk/clinic-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	cache SlotCache
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	cache SlotCache,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	clinicID uint,
	doctorID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForDoctor(ctx, appointmentID, doctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(clinic.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// a cancelled slot becomes bookable again
	if uc.cache != nil {
		uc.cache.InvalidateDay(ctx, doctorID, ap.StartTime)
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   &doctorID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
