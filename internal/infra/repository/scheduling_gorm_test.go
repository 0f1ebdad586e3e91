package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/clinidesk/clinic-scheduler/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

// --------------------------------------------------
// Patients
// --------------------------------------------------

func TestGetOrCreatePatientReusesExistingPhone(t *testing.T) {
	db := openTestDB(t)
	if err := db.AutoMigrate(&models.Patient{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	existing := models.Patient{ClinicID: 1, Name: "Marie Tremblay", Phone: "+15145550101"}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	repo := NewSchedulingGormRepository(db)

	got, err := repo.GetOrCreatePatient(context.Background(), 1, "M. Tremblay", "+15145550101", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != existing.ID {
		t.Fatalf("expected existing patient %d, got %d", existing.ID, got.ID)
	}
	if got.Name != "Marie Tremblay" {
		t.Errorf("existing record should win, got name %q", got.Name)
	}

	created, err := repo.GetOrCreatePatient(context.Background(), 1, "Jean Roy", "+15145550202", "jean@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == existing.ID {
		t.Fatal("a new phone must create a new patient")
	}

	var count int64
	db.Model(&models.Patient{}).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 patients, got %d", count)
	}
}

func TestGetOrCreatePatientPropagatesLookupError(t *testing.T) {
	// No migration: the lookup fails with a real database error, which
	// must surface instead of being mistaken for "patient not found".
	db := openTestDB(t)
	repo := NewSchedulingGormRepository(db)

	got, err := repo.GetOrCreatePatient(context.Background(), 1, "Jean Roy", "+15145550202", "")
	if err == nil {
		t.Fatal("expected the lookup error to propagate")
	}
	if got != nil {
		t.Fatalf("expected no patient, got %+v", got)
	}
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func TestConflictQueryLocksRowsNotAggregate(t *testing.T) {
	// Postgres rejects FOR UPDATE on count(*), so the overlap re-check
	// has to lock the conflicting rows themselves.
	db := openTestDB(t)
	session := db.Session(&gorm.Session{DryRun: true})

	start := time.Date(2030, 6, 3, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	var ids []uint
	stmt := conflictQuery(session, 7, start, end).Pluck("id", &ids).Statement

	sql := stmt.SQL.String()
	if strings.Contains(strings.ToLower(sql), "count(") {
		t.Fatalf("re-check must not aggregate: %s", sql)
	}
	if !strings.Contains(sql, "FOR UPDATE") {
		t.Fatalf("re-check must lock the conflicting rows: %s", sql)
	}
	if !strings.Contains(sql, "start_time < ? AND end_time > ?") {
		t.Fatalf("half-open overlap predicate missing: %s", sql)
	}
}
