package scheduling

import (
	"context"
	"time"

	domain "github.com/clinidesk/clinic-scheduler/internal/domain/scheduling"
)

// SlotCache is the slot-list cache consulted by availability queries and
// invalidated by booking mutations. Satisfied by cache.AvailabilityCache;
// a nil cache disables caching.
type SlotCache interface {
	GetSlots(ctx context.Context, doctorID uint, date time.Time, serviceTypeID uint, step int) ([]domain.TimeSlot, bool)
	SetSlots(ctx context.Context, doctorID uint, date time.Time, serviceTypeID uint, step int, slots []domain.TimeSlot)
	InvalidateDay(ctx context.Context, doctorID uint, date time.Time)
}
