package dto

import "time"

type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	PublicRef   string    `json:"public_ref"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	PatientName string    `json:"patient_name"`
	ServiceName string    `json:"service_name"`
	Color       string    `json:"color"`
}

// ScheduleEntryDTO is one appointment positioned in the day grid. Column
// and TotalColumns come from the overlap layout pass: appointments that
// overlap in time never share a column, and TotalColumns is uniform
// across the day.
type ScheduleEntryDTO struct {
	AppointmentListDTO
	Column       int `json:"column"`
	TotalColumns int `json:"total_columns"`
}

type DayScheduleDTO struct {
	Date    string             `json:"date"` // YYYY-MM-DD
	Entries []ScheduleEntryDTO `json:"entries"`
}

type WeekScheduleDTO struct {
	WeekStart string           `json:"week_start"` // Monday, YYYY-MM-DD
	Days      []DayScheduleDTO `json:"days"`
}
