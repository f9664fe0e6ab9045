package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/parlourhq/parlour-scheduler/internal/domain/booking"
)

// AvailabilityCache keeps computed day slots in Redis for a short TTL.
// Availability is recomputed from storage on every miss, so a stale entry can
// only ever be as old as the TTL; every booking write invalidates its day.
// A nil *AvailabilityCache is a no-op, so callers never branch on presence.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(rdb *redis.Client, ttl time.Duration) *AvailabilityCache {
	if rdb == nil || ttl <= 0 {
		return nil
	}
	return &AvailabilityCache{rdb: rdb, ttl: ttl}
}

func key(parlourID uint, date time.Time) string {
	return fmt.Sprintf("availability:%d:%s", parlourID, date.Format("2006-01-02"))
}

func (c *AvailabilityCache) Get(ctx context.Context, parlourID uint, date time.Time) ([]domain.Slot, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(parlourID, date)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []domain.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *AvailabilityCache) Set(ctx context.Context, parlourID uint, date time.Time, slots []domain.Slot) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key(parlourID, date), raw, c.ttl)
}

// Invalidate drops the cached day after a booking write touched it.
func (c *AvailabilityCache) Invalidate(ctx context.Context, parlourID uint, dates ...time.Time) {
	if c == nil {
		return
	}

	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, key(parlourID, d))
	}
	if len(keys) > 0 {
		c.rdb.Del(ctx, keys...)
	}
}
