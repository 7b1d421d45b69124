package view

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"ldexchange/jobboard/internal/model"
)

// DefaultTTL bounds how stale a cached record set may be.
const DefaultTTL = 5 * time.Minute

// SnapshotKey is the Redis key shared by every process serving views.
const SnapshotKey = "jobboard:jobs:snapshot"

// LoadFunc reads the full record set from the store.
type LoadFunc func(ctx context.Context) ([]model.JobRecord, error)

// Cache memoizes the full record set for a bounded time. Load errors are
// never cached.
type Cache interface {
	Get(ctx context.Context, load LoadFunc) ([]model.JobRecord, error)
	Invalidate(ctx context.Context) error
}

// MemoryCache keeps one snapshot in process memory.
type MemoryCache struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	records  []model.JobRecord
	loadedAt time.Time
	valid    bool
}

// NewMemoryCache returns a MemoryCache. A non-positive ttl disables caching.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, now: time.Now}
}

// Get returns the cached snapshot, reloading it once expired.
func (c *MemoryCache) Get(ctx context.Context, load LoadFunc) ([]model.JobRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.now().Sub(c.loadedAt) < c.ttl {
		return c.records, nil
	}
	records, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.records, c.loadedAt, c.valid = records, c.now(), true
	return records, nil
}

// Invalidate drops the snapshot.
func (c *MemoryCache) Invalidate(context.Context) error {
	c.mu.Lock()
	c.records, c.valid = nil, false
	c.mu.Unlock()
	return nil
}

// RedisCache shares one snapshot between processes under a single key.
type RedisCache struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// NewRedisCache returns a RedisCache storing the snapshot at key.
func NewRedisCache(rdb *redis.Client, key string, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, key: key, ttl: ttl}
}

// Get reads the snapshot from Redis, falling back to load on a miss. A
// Redis failure degrades to an uncached load.
func (c *RedisCache) Get(ctx context.Context, load LoadFunc) ([]model.JobRecord, error) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		var records []model.JobRecord
		if uerr := json.Unmarshal(raw, &records); uerr == nil {
			return records, nil
		}
		slog.Warn("discarding corrupt jobs snapshot", "key", c.key)
	case !errors.Is(err, redis.Nil):
		slog.Warn("redis snapshot read failed", "key", c.key, "err", err)
	}

	records, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if c.ttl <= 0 {
		return records, nil
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal jobs snapshot: %w", err)
	}
	if err := c.rdb.Set(ctx, c.key, payload, c.ttl).Err(); err != nil {
		slog.Warn("redis snapshot write failed", "key", c.key, "err", err)
	}
	return records, nil
}

// Invalidate deletes the shared snapshot.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", c.key, err)
	}
	return nil
}
