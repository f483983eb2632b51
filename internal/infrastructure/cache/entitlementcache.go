package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skolar-inc/skolar/internal/shared/logger"
)

// CachedEntitlement is the cached answer to "is this school currently
// entitled". NotFound marks a school confirmed to have no subscription so
// repeated misses do not hammer the database.
type CachedEntitlement struct {
	Entitled     bool       `json:"entitled"`
	Status       string     `json:"status,omitempty"`
	PlanID       uint       `json:"plan_id,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	GraceEndDate *time.Time `json:"grace_end_date,omitempty"`
	NotFound     bool       `json:"not_found,omitempty"`
}

// EntitlementCache caches per-school entitlement lookups.
type EntitlementCache interface {
	Get(ctx context.Context, schoolID uint) (*CachedEntitlement, error)
	Set(ctx context.Context, schoolID uint, entitlement *CachedEntitlement) error
	Invalidate(ctx context.Context, schoolID uint) error
}

const (
	entitlementKeyPrefix = "school:entitlement:"
	entitlementTTLJitter = 60 * time.Second // anti-stampede
	notFoundTTL          = 2 * time.Minute  // short TTL for null markers
)

// RedisEntitlementCache implements EntitlementCache on Redis.
type RedisEntitlementCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

// NewRedisEntitlementCache creates a new Redis-based entitlement cache.
func NewRedisEntitlementCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisEntitlementCache {
	return &RedisEntitlementCache{client: client, ttl: ttl, logger: logger}
}

var _ EntitlementCache = (*RedisEntitlementCache)(nil)

func (c *RedisEntitlementCache) key(schoolID uint) string {
	return fmt.Sprintf("%s%d", entitlementKeyPrefix, schoolID)
}

// Get returns the cached entitlement, or (nil, nil) on a cache miss.
func (c *RedisEntitlementCache) Get(ctx context.Context, schoolID uint) (*CachedEntitlement, error) {
	raw, err := c.client.Get(ctx, c.key(schoolID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get entitlement from cache: %w", err)
	}

	var cached CachedEntitlement
	if err := json.Unmarshal(raw, &cached); err != nil {
		// A corrupt entry behaves like a miss.
		c.logger.Warnw("dropping corrupt entitlement cache entry", "school_id", schoolID, "error", err)
		return nil, nil
	}
	return &cached, nil
}

// Set stores an entitlement. Not-found markers get a short TTL; real entries
// get the configured TTL plus jitter.
func (c *RedisEntitlementCache) Set(ctx context.Context, schoolID uint, entitlement *CachedEntitlement) error {
	raw, err := json.Marshal(entitlement)
	if err != nil {
		return fmt.Errorf("failed to encode entitlement: %w", err)
	}

	ttl := notFoundTTL
	if !entitlement.NotFound {
		ttl = c.ttl + rand.N(entitlementTTLJitter)
	}

	if err := c.client.Set(ctx, c.key(schoolID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache entitlement: %w", err)
	}
	return nil
}

// Invalidate drops the cached entry, typically after an approval changes the
// school's current period.
func (c *RedisEntitlementCache) Invalidate(ctx context.Context, schoolID uint) error {
	if err := c.client.Del(ctx, c.key(schoolID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate entitlement cache: %w", err)
	}
	return nil
}

// NoopEntitlementCache is used when redis is disabled: every lookup is a
// miss and writes vanish.
type NoopEntitlementCache struct{}

var _ EntitlementCache = (*NoopEntitlementCache)(nil)

func (NoopEntitlementCache) Get(ctx context.Context, schoolID uint) (*CachedEntitlement, error) {
	return nil, nil
}

func (NoopEntitlementCache) Set(ctx context.Context, schoolID uint, entitlement *CachedEntitlement) error {
	return nil
}

func (NoopEntitlementCache) Invalidate(ctx context.Context, schoolID uint) error {
	return nil
}
