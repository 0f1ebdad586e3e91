package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinidesk/clinic-scheduler/internal/httperr"
	"github.com/clinidesk/clinic-scheduler/internal/middleware"
	ucScheduling "github.com/clinidesk/clinic-scheduler/internal/usecase/scheduling"
)

// ScheduleHandler serves the day and week grids: appointments plus the
// column assignments the frontend positions them with.
type ScheduleHandler struct {
	dayUC  *ucScheduling.GetDaySchedule
	weekUC *ucScheduling.GetWeekSchedule
}

func NewScheduleHandler(
	dayUC *ucScheduling.GetDaySchedule,
	weekUC *ucScheduling.GetWeekSchedule,
) *ScheduleHandler {
	return &ScheduleHandler{
		dayUC:  dayUC,
		weekUC: weekUC,
	}
}

func (h *ScheduleHandler) Day(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	sched, err := h.dayUC.Execute(c.Request.Context(), doctorID, clinicID, dateStr)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}
		httperr.Internal(c, "failed_to_build_schedule", "Could not build the day schedule.")
		return
	}

	c.JSON(http.StatusOK, sched)
}

func (h *ScheduleHandler) Week(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	sched, err := h.weekUC.Execute(c.Request.Context(), doctorID, clinicID, dateStr)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}
		httperr.Internal(c, "failed_to_build_schedule", "Could not build the week schedule.")
		return
	}

	c.JSON(http.StatusOK, sched)
}
