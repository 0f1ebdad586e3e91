package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinidesk/clinic-scheduler/internal/httperr"
	"github.com/clinidesk/clinic-scheduler/internal/httpresp"
	"github.com/clinidesk/clinic-scheduler/internal/middleware"
	ucScheduling "github.com/clinidesk/clinic-scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC   *ucScheduling.CreateAppointment
	completeUC *ucScheduling.CompleteAppointment
	cancelUC   *ucScheduling.CancelAppointment
	listUC     *ucScheduling.ListAppointmentsByDate
}

func NewAppointmentHandler(
	createUC *ucScheduling.CreateAppointment,
	completeUC *ucScheduling.CompleteAppointment,
	cancelUC *ucScheduling.CancelAppointment,
	listUC *ucScheduling.ListAppointmentsByDate,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:   createUC,
		completeUC: completeUC,
		cancelUC:   cancelUC,
		listUC:     listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientName   string `json:"patient_name" binding:"required"`
	PatientPhone  string `json:"patient_phone" binding:"required"`
	PatientEmail  string `json:"patient_email"`
	ServiceTypeID uint   `json:"service_type_id" binding:"required"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // HH:mm
	Notes         string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucScheduling.CreateAppointmentInput{
			ClinicID:      clinicID,
			DoctorID:      doctorID,
			PatientName:   req.PatientName,
			PatientPhone:  req.PatientPhone,
			PatientEmail:  req.PatientEmail,
			ServiceTypeID: req.ServiceTypeID,
			Date:          req.Date,
			Time:          req.Time,
			Notes:         req.Notes,
		},
	)
	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func mapCreateErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "The requested time is too soon.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Unknown consultation type.")
	case httperr.IsBusiness(err, "outside_availability"):
		httperr.BadRequest(c, "outside_availability", "The requested time is outside the doctor's hours.")
	case httperr.IsBusiness(err, "slot_taken"):
		httperr.Conflict(c, "slot_taken", "This slot was just taken.")
	default:
		httperr.Internal(c, "failed_to_create_appointment", "Could not create the appointment.")
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	out, err := h.listUC.Execute(c.Request.Context(), doctorID, clinicID, dateStr)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// CANCEL / COMPLETE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, func(doctorID, clinicID, id uint) (any, error) {
		return h.cancelUC.Execute(c.Request.Context(), clinicID, doctorID, id)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, func(doctorID, clinicID, id uint) (any, error) {
		return h.completeUC.Execute(c.Request.Context(), clinicID, doctorID, id)
	})
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	run func(doctorID, clinicID, id uint) (any, error),
) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := run(doctorID, clinicID, uint(id64))
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Appointment is not in a schedulable state.")
		default:
			httperr.Internal(c, "failed_to_update_appointment", "Could not update the appointment.")
		}
		return
	}

	c.JSON(http.StatusOK, ap)
}
