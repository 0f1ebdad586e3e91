package scheduling

import (
	"context"
	"time"

	domain "github.com/clinidesk/clinic-scheduler/internal/domain/scheduling"
	"github.com/clinidesk/clinic-scheduler/internal/dto"
	"github.com/clinidesk/clinic-scheduler/internal/httperr"
	"github.com/clinidesk/clinic-scheduler/internal/models"
	"github.com/clinidesk/clinic-scheduler/internal/timezone"
)

type GetDaySchedule struct {
	repo domain.Repository
}

func NewGetDaySchedule(
	repo domain.Repository,
) *GetDaySchedule {
	return &GetDaySchedule{
		repo: repo,
	}
}

// Execute returns the day's appointments with their grid positions. Only
// scheduled and completed appointments occupy lanes; cancelled ones are
// omitted from the grid. The date is interpreted in the clinic's
// timezone, so it is parsed here, after the clinic is loaded.
func (uc *GetDaySchedule) Execute(
	ctx context.Context,
	doctorID uint,
	clinicID uint,
	dateStr string,
) (*dto.DayScheduleDTO, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(clinic.Timezone)

	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	start := startOfDayIn(date, loc)
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		doctorID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return buildDaySchedule(start, appointments), nil
}

func buildDaySchedule(day time.Time, appointments []models.Appointment) *dto.DayScheduleDTO {
	var visible []models.Appointment
	items := make([]domain.LayoutItem, 0, len(appointments))

	for _, ap := range appointments {
		if ap.Status == string(domain.StatusCancelled) {
			continue
		}
		visible = append(visible, ap)
		items = append(items, domain.LayoutItem{
			ID:    ap.ID,
			Start: ap.StartTime,
			End:   ap.EndTime,
		})
	}

	layout := domain.LayoutDay(items)

	entries := make([]dto.ScheduleEntryDTO, 0, len(visible))
	for _, ap := range visible {
		pos := layout[ap.ID]
		entries = append(entries, dto.ScheduleEntryDTO{
			AppointmentListDTO: dto.AppointmentListDTO{
				ID:          ap.ID,
				PublicRef:   ap.PublicRef,
				StartTime:   ap.StartTime,
				EndTime:     ap.EndTime,
				Status:      ap.Status,
				PatientName: ap.Patient.Name,
				ServiceName: ap.ServiceType.Name,
				Color:       ap.ServiceType.Color,
			},
			Column:       pos.Column,
			TotalColumns: pos.TotalColumns,
		})
	}

	return &dto.DayScheduleDTO{
		Date:    day.Format("2006-01-02"),
		Entries: entries,
	}
}
