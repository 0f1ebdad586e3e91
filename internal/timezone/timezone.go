package timezone

import (
	"sync"
	"time"
)

// DefaultTimezone is used whenever a clinic has no zone configured or
// the configured name does not load.
const DefaultTimezone = "Europe/Paris"

var (
	defaultOnce sync.Once
	defaultLoc  *time.Location
)

func defaultLocation() *time.Location {
	defaultOnce.Do(func() {
		loc, err := time.LoadLocation(DefaultTimezone)
		if err != nil {
			loc = time.UTC
		}
		defaultLoc = loc
	})
	return defaultLoc
}

// IsValid reports whether tz names a loadable IANA zone.
func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back (never failing) to the default.
// Every wall-clock anchor in the scheduling path goes through here so a
// misconfigured clinic degrades to default-zone behavior instead of
// erroring per request.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return defaultLocation()
}

func Now() time.Time {
	return time.Now().In(defaultLocation())
}

// NowIn is the clinic-local clock.
func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
