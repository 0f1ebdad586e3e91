package scheduling

import (
	"context"
	"time"

	domain "github.com/clinidesk/clinic-scheduler/internal/domain/scheduling"
	"github.com/clinidesk/clinic-scheduler/internal/httperr"
	"github.com/clinidesk/clinic-scheduler/internal/timezone"
)

func startOfDayIn(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

type GetAvailability struct {
	repo  domain.Repository
	cache SlotCache
}

func NewGetAvailability(repo domain.Repository, cache SlotCache) *GetAvailability {
	return &GetAvailability{repo: repo, cache: cache}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	step := in.StepMin
	if step <= 0 {
		step = domain.DefaultSlotStepMin
	}

	if uc.cache != nil {
		if slots, ok := uc.cache.GetSlots(ctx, in.DoctorID, in.Date, in.ServiceTypeID, step); ok {
			return slots, nil
		}
	}

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetServiceType(ctx, in.ClinicID, in.ServiceTypeID)
	if err != nil || !service.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	loc := timezone.Location(clinic.Timezone)

	weekly, err := uc.repo.ListWeeklyRules(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}

	overrides, err := uc.repo.ListOverrideRules(ctx, in.DoctorID, in.Date)
	if err != nil {
		return nil, err
	}

	dayStart := startOfDayIn(in.Date, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	booked, err := uc.repo.ListBookedIntervals(ctx, in.DoctorID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	availability := domain.ResolveAvailability(dayStart, weekly, overrides)

	slots := domain.GenerateSlots(domain.SlotRequest{
		Date:          dayStart,
		ServiceTypeID: in.ServiceTypeID,
		DurationMin:   service.DurationMin,
		Availability:  availability,
		Booked:        booked,
		StepMin:       step,
		Location:      loc,
	})

	out := make([]domain.TimeSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, domain.TimeSlot{
			Start: s.Start.Format("15:04"),
			End:   s.End.Format("15:04"),
		})
	}

	if uc.cache != nil {
		uc.cache.SetSlots(ctx, in.DoctorID, in.Date, in.ServiceTypeID, step, out)
	}

	return out, nil
}
