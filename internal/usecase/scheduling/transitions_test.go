package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/clinidesk/clinic-scheduler/internal/httperr"
	"github.com/clinidesk/clinic-scheduler/internal/models"
)

func scheduledAppointment() *models.Appointment {
	return &models.Appointment{
		ID:        42,
		ClinicID:  1,
		DoctorID:  7,
		StartTime: time.Date(2030, time.June, 3, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2030, time.June, 3, 10, 30, 0, 0, time.UTC),
		Status:    "scheduled",
	}
}

func TestCancelAppointment(t *testing.T) {
	repo := &repoStub{clinic: utcClinic(), appointment: scheduledAppointment()}
	cache := &cacheStub{}
	uc := NewCancelAppointment(repo, cache, nil)

	ap, err := uc.Execute(context.Background(), 1, 7, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != "cancelled" {
		t.Errorf("status = %s, want cancelled", ap.Status)
	}
	if ap.CancelledAt == nil {
		t.Error("cancellation timestamp not set")
	}
	if repo.updated == nil {
		t.Error("cancellation never persisted")
	}
	if len(cache.invalidated) != 1 {
		t.Errorf("cache invalidations = %d, want 1 so the slot frees up", len(cache.invalidated))
	}
}

func TestCancelAppointmentNotFound(t *testing.T) {
	uc := NewCancelAppointment(&repoStub{clinic: utcClinic()}, nil, nil)

	_, err := uc.Execute(context.Background(), 1, 7, 42)
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("got %v, want appointment_not_found", err)
	}
}

func TestCancelAppointmentTwice(t *testing.T) {
	ap := scheduledAppointment()
	ap.Status = "cancelled"
	repo := &repoStub{clinic: utcClinic(), appointment: ap}
	uc := NewCancelAppointment(repo, nil, nil)

	_, err := uc.Execute(context.Background(), 1, 7, 42)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("got %v, want invalid_state", err)
	}
	if repo.updated != nil {
		t.Error("rejected transition must not persist")
	}
}

func TestCompleteAppointment(t *testing.T) {
	repo := &repoStub{clinic: utcClinic(), appointment: scheduledAppointment()}
	uc := NewCompleteAppointment(repo, nil)

	ap, err := uc.Execute(context.Background(), 1, 7, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != "completed" {
		t.Errorf("status = %s, want completed", ap.Status)
	}
	if ap.CompletedAt == nil {
		t.Error("completion timestamp not set")
	}
	if repo.updated == nil {
		t.Error("completion never persisted")
	}
}

func TestCompleteCancelledAppointment(t *testing.T) {
	ap := scheduledAppointment()
	ap.Status = "cancelled"
	uc := NewCompleteAppointment(&repoStub{clinic: utcClinic(), appointment: ap}, nil)

	_, err := uc.Execute(context.Background(), 1, 7, 42)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("got %v, want invalid_state", err)
	}
}
