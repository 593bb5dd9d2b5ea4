// Package cache holds the Redis-backed cache for dashboard totals. The
// cache is a pure accelerator: when Redis is unavailable the totals are
// computed from SQL on every request and nothing else changes.
package cache

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const statsKey = "crm:stats:totals"

// Stats carries the two derived counts shown on the dashboard.
type Stats struct {
	Customers    int64 `json:"customers"`
	Interactions int64 `json:"interactions"`
}

// StatsCache caches dashboard totals in Redis with a short TTL. Mutating
// handlers call Invalidate after a successful commit so stale totals never
// outlive the TTL by much. A nil Redis client disables the cache entirely.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStatsCache builds a StatsCache around the given client, which may be
// nil. STATS_CACHE_TTL overrides the default 30s lifetime.
func NewStatsCache(rdb *redis.Client) *StatsCache {
	ttl := 30 * time.Second
	if v := os.Getenv("STATS_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		}
	}
	return &StatsCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached totals and whether they were present.
func (s *StatsCache) Get(ctx context.Context) (Stats, bool) {
	if s.rdb == nil {
		return Stats{}, false
	}
	bs, err := s.rdb.Get(ctx, statsKey).Bytes()
	if err != nil {
		return Stats{}, false
	}
	var st Stats
	if err := json.Unmarshal(bs, &st); err != nil {
		return Stats{}, false
	}
	return st, true
}

// Put stores the totals with the configured TTL. Failures are ignored; the
// next request simply recomputes.
func (s *StatsCache) Put(ctx context.Context, st Stats) {
	if s.rdb == nil {
		return
	}
	bs, err := json.Marshal(st)
	if err != nil {
		return
	}
	_ = s.rdb.Set(ctx, statsKey, bs, s.ttl).Err()
}

// Invalidate drops the cached totals after a mutation.
func (s *StatsCache) Invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, statsKey).Err()
}
