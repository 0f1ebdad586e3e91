package models

import (
	"time"

	"gorm.io/datatypes"
)

// AvailabilityRule stores one day's working-hours configuration for a
// doctor. A recurring rule (SpecificDate nil) is the weekday default; a
// dated rule overrides the default for that single day. Windows holds a
// JSON array of scheduling.TimeWindow.
type AvailabilityRule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"index" json:"doctor_id"`

	Weekday      int        `json:"weekday"` // 0 = Sunday, as time.Weekday
	SpecificDate *time.Time `gorm:"index" json:"specific_date"`
	Active       bool       `json:"active"`

	Windows datatypes.JSON `json:"windows"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
