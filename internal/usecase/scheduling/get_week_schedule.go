package scheduling

import (
	"context"
	"time"

	"github.com/clinidesk/clinic-scheduler/internal/calendar"
	domain "github.com/clinidesk/clinic-scheduler/internal/domain/scheduling"
	"github.com/clinidesk/clinic-scheduler/internal/dto"
	"github.com/clinidesk/clinic-scheduler/internal/httperr"
	"github.com/clinidesk/clinic-scheduler/internal/models"
	"github.com/clinidesk/clinic-scheduler/internal/timezone"
)

type GetWeekSchedule struct {
	repo domain.Repository
}

func NewGetWeekSchedule(
	repo domain.Repository,
) *GetWeekSchedule {
	return &GetWeekSchedule{
		repo: repo,
	}
}

// Execute builds the Monday-start week grid containing the date. One
// period query, then a per-day layout pass so each day's columns are
// packed independently. The date is parsed in the clinic's timezone.
func (uc *GetWeekSchedule) Execute(
	ctx context.Context,
	doctorID uint,
	clinicID uint,
	dateStr string,
) (*dto.WeekScheduleDTO, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(clinic.Timezone)

	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	weekStart := calendar.StartOfWeek(startOfDayIn(date, loc))
	weekEnd := weekStart.AddDate(0, 0, 7)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		doctorID,
		weekStart,
		weekEnd,
	)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]models.Appointment)
	for _, ap := range appointments {
		key := ap.StartTime.In(loc).Format("2006-01-02")
		byDay[key] = append(byDay[key], ap)
	}

	days := make([]dto.DayScheduleDTO, 0, 7)
	for _, day := range calendar.DaysOfWeek(weekStart) {
		sched := buildDaySchedule(day, byDay[day.Format("2006-01-02")])
		days = append(days, *sched)
	}

	return &dto.WeekScheduleDTO{
		WeekStart: weekStart.Format("2006-01-02"),
		Days:      days,
	}, nil
}
