package scheduling

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clock(base time.Time, hh, mm int) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(), hh, mm, 0, 0, base.Location())
}

func TestTimeWindowAccepts(t *testing.T) {
	unrestricted := TimeWindow{StartTime: "09:00", EndTime: "12:00", Active: true}
	if !unrestricted.Accepts(1) || !unrestricted.Accepts(99) {
		t.Error("a window with no service type list must accept every service type")
	}

	restricted := TimeWindow{StartTime: "09:00", EndTime: "12:00", ServiceTypeIDs: []uint{2, 5}, Active: true}
	if !restricted.Accepts(2) || !restricted.Accepts(5) {
		t.Error("listed service types must be accepted")
	}
	if restricted.Accepts(3) {
		t.Error("unlisted service type must be rejected")
	}
}

func TestResolveAvailabilityWeeklyDefault(t *testing.T) {
	wednesday := day(2026, time.March, 4)

	weekly := []DayAvailability{
		{Weekday: time.Monday, Active: true, Windows: []TimeWindow{{StartTime: "08:00", EndTime: "12:00", Active: true}}},
		{Weekday: time.Wednesday, Active: true, Windows: []TimeWindow{{StartTime: "09:00", EndTime: "17:00", Active: true}}},
	}

	got := ResolveAvailability(wednesday, weekly, nil)
	if !got.Active {
		t.Fatal("expected the Wednesday default to be active")
	}
	if len(got.Windows) != 1 || got.Windows[0].StartTime != "09:00" {
		t.Errorf("resolved wrong configuration: %+v", got)
	}
}

func TestResolveAvailabilityOverrideWins(t *testing.T) {
	wednesday := day(2026, time.March, 4)

	weekly := []DayAvailability{
		{Weekday: time.Wednesday, Active: true, Windows: []TimeWindow{{StartTime: "09:00", EndTime: "17:00", Active: true}}},
	}
	ovDate := wednesday
	overrides := []DayAvailability{
		{SpecificDate: &ovDate, Active: true, Windows: []TimeWindow{{StartTime: "14:00", EndTime: "18:00", Active: true}}},
	}

	got := ResolveAvailability(wednesday, weekly, overrides)
	if len(got.Windows) != 1 || got.Windows[0].StartTime != "14:00" {
		t.Errorf("override must replace the weekly default entirely, got %+v", got)
	}
}

// A date marked inactive closes the day even when the weekday default is
// wide open. This is how holidays and days off are expressed.
func TestResolveAvailabilityInactiveOverrideClosesDay(t *testing.T) {
	wednesday := day(2026, time.March, 4)

	weekly := []DayAvailability{
		{Weekday: time.Wednesday, Active: true, Windows: []TimeWindow{{StartTime: "09:00", EndTime: "17:00", Active: true}}},
	}
	ovDate := wednesday
	overrides := []DayAvailability{
		{SpecificDate: &ovDate, Active: false},
	}

	got := ResolveAvailability(wednesday, weekly, overrides)
	if got.Active {
		t.Fatal("inactive override must win over the active weekly default")
	}
}

func TestResolveAvailabilityNothingConfigured(t *testing.T) {
	got := ResolveAvailability(day(2026, time.March, 4), nil, nil)
	if got.Active {
		t.Fatal("a day with no configuration must be closed, never fully open")
	}
	if got.Weekday != time.Wednesday {
		t.Errorf("weekday = %v, want Wednesday", got.Weekday)
	}
}

func TestResolveAvailabilityOverrideForOtherDayIgnored(t *testing.T) {
	wednesday := day(2026, time.March, 4)
	thursday := day(2026, time.March, 5)

	weekly := []DayAvailability{
		{Weekday: time.Wednesday, Active: true, Windows: []TimeWindow{{StartTime: "09:00", EndTime: "17:00", Active: true}}},
	}
	overrides := []DayAvailability{
		{SpecificDate: &thursday, Active: false},
	}

	got := ResolveAvailability(wednesday, weekly, overrides)
	if !got.Active {
		t.Fatal("an override for another date must not affect this day")
	}
}

func TestContainsSpan(t *testing.T) {
	d := day(2026, time.March, 4)
	avail := DayAvailability{
		Weekday: time.Wednesday,
		Active:  true,
		Windows: []TimeWindow{
			{StartTime: "09:00", EndTime: "12:00", ServiceTypeIDs: []uint{1}, Active: true},
			{StartTime: "14:00", EndTime: "18:00", Active: true},
		},
	}

	cases := []struct {
		name    string
		service uint
		start   time.Time
		end     time.Time
		want    bool
	}{
		{"inside morning window", 1, clock(d, 9, 30), clock(d, 10, 0), true},
		{"exactly fills the window", 1, clock(d, 9, 0), clock(d, 12, 0), true},
		{"spills past window end", 1, clock(d, 11, 30), clock(d, 12, 15), false},
		{"starts before window", 1, clock(d, 8, 45), clock(d, 9, 30), false},
		{"in the lunch gap", 1, clock(d, 12, 30), clock(d, 13, 0), false},
		{"service not accepted by morning window", 7, clock(d, 9, 30), clock(d, 10, 0), false},
		{"afternoon window accepts any service", 7, clock(d, 14, 0), clock(d, 15, 0), true},
		{"zero-length span", 1, clock(d, 10, 0), clock(d, 10, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ContainsSpan(avail, tc.service, tc.start, tc.end, time.UTC); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestContainsSpanInactiveDay(t *testing.T) {
	d := day(2026, time.March, 4)
	avail := DayAvailability{
		Active:  false,
		Windows: []TimeWindow{{StartTime: "09:00", EndTime: "17:00", Active: true}},
	}
	if ContainsSpan(avail, 1, clock(d, 10, 0), clock(d, 10, 30), time.UTC) {
		t.Fatal("an inactive day contains nothing")
	}
}

func TestContainsSpanInactiveWindowSkipped(t *testing.T) {
	d := day(2026, time.March, 4)
	avail := DayAvailability{
		Active:  true,
		Windows: []TimeWindow{{StartTime: "09:00", EndTime: "17:00", Active: false}},
	}
	if ContainsSpan(avail, 1, clock(d, 10, 0), clock(d, 10, 30), time.UTC) {
		t.Fatal("inactive windows must not contain spans")
	}
}
