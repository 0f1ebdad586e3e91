package scheduling

import (
	"context"
	"testing"
	"time"

	domain "github.com/clinidesk/clinic-scheduler/internal/domain/scheduling"
	"github.com/clinidesk/clinic-scheduler/internal/httperr"
)

func TestGetAvailability(t *testing.T) {
	date := time.Date(2030, time.June, 3, 0, 0, 0, 0, time.UTC)

	repo := &repoStub{
		clinic:  utcClinic(),
		service: consultation(30),
		weekly:  openDay(date.Weekday()),
	}
	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ClinicID:      1,
		DoctorID:      7,
		ServiceTypeID: 3,
		Date:          date,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 11 starts in the morning window, 15 in the afternoon
	if len(slots) != 26 {
		t.Fatalf("got %d slots, want 26", len(slots))
	}
	if slots[0].Start != "09:00" || slots[0].End != "09:30" {
		t.Errorf("first slot = %+v", slots[0])
	}
	if last := slots[len(slots)-1]; last.Start != "17:30" || last.End != "18:00" {
		t.Errorf("last slot = %+v", last)
	}
}

func TestGetAvailabilityBookedExcluded(t *testing.T) {
	date := time.Date(2030, time.June, 3, 0, 0, 0, 0, time.UTC)

	repo := &repoStub{
		clinic:  utcClinic(),
		service: consultation(30),
		weekly:  openDay(date.Weekday()),
		booked: []domain.Interval{{
			Start: time.Date(2030, time.June, 3, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2030, time.June, 3, 9, 30, 0, 0, time.UTC),
		}},
	}
	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ClinicID: 1, DoctorID: 7, ServiceTypeID: 3, Date: date,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range slots {
		if s.Start == "09:00" || s.Start == "09:15" {
			t.Errorf("slot %s overlaps the 09:00 booking", s.Start)
		}
	}
	if slots[0].Start != "09:30" {
		t.Errorf("first free slot = %s, want 09:30", slots[0].Start)
	}
}

func TestGetAvailabilityUnknownService(t *testing.T) {
	date := time.Date(2030, time.June, 3, 0, 0, 0, 0, time.UTC)

	repo := &repoStub{clinic: utcClinic(), weekly: openDay(date.Weekday())}
	uc := NewGetAvailability(repo, nil)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ClinicID: 1, DoctorID: 7, ServiceTypeID: 99, Date: date,
	})
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("got %v, want service_not_found", err)
	}
}

func TestGetAvailabilityInactiveService(t *testing.T) {
	date := time.Date(2030, time.June, 3, 0, 0, 0, 0, time.UTC)

	service := consultation(30)
	service.Active = false
	repo := &repoStub{clinic: utcClinic(), service: service, weekly: openDay(date.Weekday())}
	uc := NewGetAvailability(repo, nil)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ClinicID: 1, DoctorID: 7, ServiceTypeID: 3, Date: date,
	})
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("got %v, want service_not_found", err)
	}
}

func TestGetAvailabilityDayOffOverride(t *testing.T) {
	date := time.Date(2030, time.June, 3, 0, 0, 0, 0, time.UTC)

	repo := &repoStub{
		clinic:    utcClinic(),
		service:   consultation(30),
		weekly:    openDay(date.Weekday()),
		overrides: []domain.DayAvailability{{SpecificDate: &date, Active: false}},
	}
	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ClinicID: 1, DoctorID: 7, ServiceTypeID: 3, Date: date,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("closed day produced %d slots", len(slots))
	}
}

func TestGetAvailabilityCacheHit(t *testing.T) {
	date := time.Date(2030, time.June, 3, 0, 0, 0, 0, time.UTC)

	cached := []domain.TimeSlot{{Start: "10:00", End: "10:30"}}
	cache := &cacheStub{hit: true, cached: cached}
	// the repo has no clinic; a cache hit must short-circuit before any lookup
	uc := NewGetAvailability(&repoStub{}, cache)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ClinicID: 1, DoctorID: 7, ServiceTypeID: 3, Date: date,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 || slots[0].Start != "10:00" {
		t.Errorf("got %+v, want the cached slots", slots)
	}
	if cache.gets != 1 || cache.sets != 0 {
		t.Errorf("gets=%d sets=%d, want 1 and 0", cache.gets, cache.sets)
	}
}

func TestGetAvailabilityCacheMissFills(t *testing.T) {
	date := time.Date(2030, time.June, 3, 0, 0, 0, 0, time.UTC)

	cache := &cacheStub{}
	repo := &repoStub{
		clinic:  utcClinic(),
		service: consultation(30),
		weekly:  openDay(date.Weekday()),
	}
	uc := NewGetAvailability(repo, cache)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ClinicID: 1, DoctorID: 7, ServiceTypeID: 3, Date: date,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.sets != 1 {
		t.Errorf("sets = %d, want 1", cache.sets)
	}
	if len(cache.cached) != len(slots) {
		t.Errorf("cache filled with %d slots, computed %d", len(cache.cached), len(slots))
	}
}

func TestGetAvailabilityCustomStep(t *testing.T) {
	date := time.Date(2030, time.June, 3, 0, 0, 0, 0, time.UTC)

	repo := &repoStub{
		clinic:  utcClinic(),
		service: consultation(30),
		weekly: []domain.DayAvailability{{
			Weekday: date.Weekday(),
			Active:  true,
			Windows: []domain.TimeWindow{{StartTime: "09:00", EndTime: "11:00", Active: true}},
		}},
	}
	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ClinicID: 1, DoctorID: 7, ServiceTypeID: 3, Date: date, StepMin: 30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"09:00", "09:30", "10:00", "10:30"}
	if len(slots) != len(want) {
		t.Fatalf("got %d slots %+v, want %d", len(slots), slots, len(want))
	}
	for i, s := range slots {
		if s.Start != want[i] {
			t.Errorf("slot %d = %s, want %s", i, s.Start, want[i])
		}
	}
}
