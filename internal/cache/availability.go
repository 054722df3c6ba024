package cache

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// AvailabilityCache holds short-lived pre-flight seat counts. Callers use
// it for display only; the approval path always recounts inside its
// transaction, so a stale value here can never overbook. A nil cache (or
// nil client) degrades to straight database reads.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(rdb *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{rdb: rdb, ttl: ttl}
}

func key(eventID uint) string {
	return fmt.Sprintf("availability:%d", eventID)
}

// Get returns the cached seat count and whether it was present.
func (c *AvailabilityCache) Get(ctx context.Context, eventID uint) (int, bool) {
	if c == nil || c.rdb == nil {
		return 0, false
	}
	val, err := c.rdb.Get(ctx, key(eventID)).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *AvailabilityCache) Set(ctx context.Context, eventID uint, available int) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key(eventID), strconv.Itoa(available), c.ttl).Err(); err != nil {
		log.Printf("[Cache] set availability for event %d: %v", eventID, err)
	}
}

// Invalidate drops the cached count after any commit that changes the
// capacity-held ticket set.
func (c *AvailabilityCache) Invalidate(ctx context.Context, eventID uint) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, key(eventID)).Err(); err != nil {
		log.Printf("[Cache] invalidate availability for event %d: %v", eventID, err)
	}
}
