package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/clinidesk/clinic-scheduler/internal/config"
	scheduling "github.com/clinidesk/clinic-scheduler/internal/domain/scheduling"
	"github.com/clinidesk/clinic-scheduler/internal/logger"
)

// Slot lists are cheap to recompute, so the cache only has to absorb
// burst traffic on popular days. Kept short on purpose: a stale entry
// can at worst offer a slot that the transactional booking check will
// reject anyway.
const availabilityTTL = 60 * time.Second

type AvailabilityCache struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewAvailabilityCache(cfg *config.Config) *AvailabilityCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	return &AvailabilityCache{
		rdb: rdb,
		log: logger.Get(),
	}
}

func slotKey(doctorID uint, date time.Time, serviceTypeID uint, step int) string {
	return fmt.Sprintf("avail:%d:%s:%d:%d", doctorID, date.Format("2006-01-02"), serviceTypeID, step)
}

// GetSlots returns the cached slot list, or ok=false on miss. Redis
// failures are logged and treated as misses; availability must never
// fail because the cache is down.
func (c *AvailabilityCache) GetSlots(
	ctx context.Context,
	doctorID uint,
	date time.Time,
	serviceTypeID uint,
	step int,
) ([]scheduling.TimeSlot, bool) {

	raw, err := c.rdb.Get(ctx, slotKey(doctorID, date, serviceTypeID, step)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("availability cache read failed", zap.Error(err))
		return nil, false
	}

	var slots []scheduling.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *AvailabilityCache) SetSlots(
	ctx context.Context,
	doctorID uint,
	date time.Time,
	serviceTypeID uint,
	step int,
	slots []scheduling.TimeSlot,
) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, slotKey(doctorID, date, serviceTypeID, step), raw, availabilityTTL).Err(); err != nil {
		c.log.Warn("availability cache write failed", zap.Error(err))
	}
}

// InvalidateDay drops every cached slot list for a doctor-day, whatever
// the service type or step. Called after any booking mutation.
func (c *AvailabilityCache) InvalidateDay(ctx context.Context, doctorID uint, date time.Time) {
	pattern := fmt.Sprintf("avail:%d:%s:*", doctorID, date.Format("2006-01-02"))

	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		c.log.Warn("availability cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("availability cache invalidation failed", zap.Error(err))
	}
}
