package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	scheduling "github.com/clinidesk/clinic-scheduler/internal/domain/scheduling"
	"github.com/clinidesk/clinic-scheduler/internal/httperr"
	"github.com/clinidesk/clinic-scheduler/internal/middleware"
	"github.com/clinidesk/clinic-scheduler/internal/models"
	"github.com/clinidesk/clinic-scheduler/internal/timezone"
)

type AvailabilityRuleHandler struct {
	db *gorm.DB
}

func NewAvailabilityRuleHandler(db *gorm.DB) *AvailabilityRuleHandler {
	return &AvailabilityRuleHandler{db: db}
}

// --------- Requests ---------

type WindowConfig struct {
	StartTime      string `json:"start_time" binding:"required"`
	EndTime        string `json:"end_time" binding:"required"`
	ServiceTypeIDs []uint `json:"service_type_ids"`
	Active         bool   `json:"active"`
}

type WeekdayConfig struct {
	Weekday int            `json:"weekday" binding:"min=0,max=6"`
	Active  bool           `json:"active"`
	Windows []WindowConfig `json:"windows"`
}

type WeeklyAvailabilityUpdateRequest struct {
	Days []WeekdayConfig `json:"days" binding:"required"`
}

type OverrideUpsertRequest struct {
	Date    string         `json:"date" binding:"required"` // YYYY-MM-DD
	Active  bool           `json:"active"`
	Windows []WindowConfig `json:"windows"`
}

// --------- Handlers ---------

func (h *AvailabilityRuleHandler) Get(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	var rules []models.AvailabilityRule
	if err := h.db.
		Where("doctor_id = ?", doctorID).
		Order("specific_date ASC NULLS FIRST, weekday ASC").
		Find(&rules).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_availability"})
		return
	}

	c.JSON(http.StatusOK, rules)
}

// UpdateWeekly replaces the doctor's recurring week in one shot, the way
// the settings screen submits it. Date overrides are untouched.
func (h *AvailabilityRuleHandler) UpdateWeekly(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	var req WeeklyAvailabilityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	warnings := h.collectWindowWarnings(req.Days)

	if err := h.db.
		Where("doctor_id = ? AND specific_date IS NULL", doctorID).
		Delete(&models.AvailabilityRule{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_clear_existing_rules"})
		return
	}

	var toCreate []models.AvailabilityRule
	for _, d := range req.Days {
		raw, err := json.Marshal(toWindows(d.Windows))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_windows"})
			return
		}

		toCreate = append(toCreate, models.AvailabilityRule{
			DoctorID: doctorID,
			Weekday:  d.Weekday,
			Active:   d.Active,
			Windows:  datatypes.JSON(raw),
		})
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_availability"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"warnings": warnings,
	})
}

// UpsertOverride stores a date-specific rule that beats the weekly
// default for that single day (closed day, extra hours, changed hours).
func (h *AvailabilityRuleHandler) UpsertOverride(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	var req OverrideUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, timezone.Location(""))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid override date.")
		return
	}

	raw, err := json.Marshal(toWindows(req.Windows))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_windows"})
		return
	}

	warnings := h.collectWindowWarnings([]WeekdayConfig{{
		Weekday: int(date.Weekday()),
		Active:  req.Active,
		Windows: req.Windows,
	}})

	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)

	var rule models.AvailabilityRule
	err = h.db.
		Where(
			"doctor_id = ? AND specific_date >= ? AND specific_date < ?",
			doctorID, dayStart, dayEnd,
		).
		First(&rule).Error

	if err != nil {
		if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_override"})
			return
		}
		rule = models.AvailabilityRule{
			DoctorID:     doctorID,
			SpecificDate: &date,
		}
	}

	rule.Weekday = int(date.Weekday())
	rule.Active = req.Active
	rule.Windows = datatypes.JSON(raw)

	if err := h.db.Save(&rule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_override"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rule":     rule,
		"warnings": warnings,
	})
}

func (h *AvailabilityRuleHandler) DeleteOverride(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	res := h.db.
		Where("id = ? AND doctor_id = ? AND specific_date IS NOT NULL", id, doctorID).
		Delete(&models.AvailabilityRule{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_override"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "override_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --------- Helpers ---------

func toWindows(configs []WindowConfig) []scheduling.TimeWindow {
	windows := make([]scheduling.TimeWindow, 0, len(configs))
	for _, w := range configs {
		windows = append(windows, scheduling.TimeWindow{
			StartTime:      w.StartTime,
			EndTime:        w.EndTime,
			ServiceTypeIDs: w.ServiceTypeIDs,
			Active:         w.Active,
		})
	}
	return windows
}

// collectWindowWarnings flags overlapping windows that accept a common
// service type. Configuration is saved anyway; the engine tolerates
// overlap, this only tells the owner the setup looks off.
func (h *AvailabilityRuleHandler) collectWindowWarnings(days []WeekdayConfig) []string {
	loc := timezone.Location("")
	anchor := time.Date(2024, time.January, 1, 0, 0, 0, 0, loc)

	var warnings []string
	for _, d := range days {
		pairs := scheduling.WindowConflicts(anchor, toWindows(d.Windows), loc)
		for _, p := range pairs {
			warnings = append(warnings, fmt.Sprintf(
				"weekday %d: windows %d and %d overlap for a shared service type",
				d.Weekday, p[0], p[1],
			))
		}
	}
	return warnings
}
