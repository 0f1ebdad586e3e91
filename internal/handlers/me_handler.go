package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinidesk/clinic-scheduler/internal/middleware"
	"github.com/clinidesk/clinic-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	doctorIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	doctorID, ok := doctorIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var doctor models.Doctor
	if err := h.db.Preload("Clinic").First(&doctor, doctorID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "doctor_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"doctor": gin.H{
			"id":        doctor.ID,
			"name":      doctor.Name,
			"email":     doctor.Email,
			"phone":     doctor.Phone,
			"specialty": doctor.Specialty,
			"role":      doctor.Role,
			"clinic_id": doctor.ClinicID,
		},
		"clinic": gin.H{
			"id":      doctor.Clinic.ID,
			"name":    doctor.Clinic.Name,
			"slug":    doctor.Clinic.Slug,
			"phone":   doctor.Clinic.Phone,
			"address": doctor.Clinic.Address,
		},
	})
}
