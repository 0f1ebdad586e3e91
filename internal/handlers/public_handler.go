package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/clinidesk/clinic-scheduler/internal/domain/scheduling"
	"github.com/clinidesk/clinic-scheduler/internal/httperr"
	"github.com/clinidesk/clinic-scheduler/internal/httpresp"
	"github.com/clinidesk/clinic-scheduler/internal/models"
	ucScheduling "github.com/clinidesk/clinic-scheduler/internal/usecase/scheduling"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler is the patient-facing booking surface, looked up by
// clinic slug without authentication.
type PublicHandler struct {
	db             *gorm.DB
	availabilityUC *ucScheduling.GetAvailability
	createUC       *ucScheduling.CreateAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityUC *ucScheduling.GetAvailability,
	createUC *ucScheduling.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		availabilityUC: availabilityUC,
		createUC:       createUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	PatientName   string `json:"patient_name" binding:"required"`
	PatientPhone  string `json:"patient_phone" binding:"required"`
	PatientEmail  string `json:"patient_email"`
	ServiceTypeID uint   `json:"service_type_id" binding:"required"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // HH:mm
	Notes         string `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICE CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServiceTypes(c *gin.Context) {
	slug := c.Param("slug")

	var clinic models.Clinic
	if err := h.db.Where("slug = ?", slug).First(&clinic).Error; err != nil {
		httperr.NotFound(c, "clinic_not_found", "Clinic not found.")
		return
	}

	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("clinic_id = ? AND active = true", clinic.ID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.ServiceType
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list consultation types.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clinic":   clinic,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_type_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Date and consultation type are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_type_id", "Invalid consultation type.")
		return
	}

	step := 0
	if stepStr := c.Query("step"); stepStr != "" {
		if v, err := strconv.Atoi(stepStr); err == nil {
			step = v
		}
	}

	var clinic models.Clinic
	if err := h.db.Where("slug = ?", slug).First(&clinic).Error; err != nil {
		httperr.NotFound(c, "clinic_not_found", "Clinic not found.")
		return
	}

	var doctor models.Doctor
	if err := h.db.
		Where("clinic_id = ? AND role = ?", clinic.ID, "owner").
		First(&doctor).Error; err != nil {

		httperr.BadRequest(c, "doctor_not_found", "Doctor not found.")
		return
	}

	date, err := parseDateInClinic(&clinic, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			ClinicID:      clinic.ID,
			DoctorID:      doctor.ID,
			ServiceTypeID: uint(serviceID),
			Date:          date,
			StepMin:       step,
		},
	)

	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Unknown consultation type.")
			return
		}

		httperr.Internal(c, "availability_failed", "Could not compute available slots.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	slug := c.Param("slug")

	var clinic models.Clinic
	if err := h.db.Where("slug = ?", slug).First(&clinic).Error; err != nil {
		httperr.NotFound(c, "clinic_not_found", "Clinic not found.")
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	var doctor models.Doctor
	if err := h.db.
		Where("clinic_id = ? AND role = ?", clinic.ID, "owner").
		First(&doctor).Error; err != nil {

		httperr.BadRequest(c, "doctor_not_found", "Doctor not found.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucScheduling.CreateAppointmentInput{
			ClinicID:      clinic.ID,
			DoctorID:      doctor.ID,
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
