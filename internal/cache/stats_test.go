package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatsCacheNilClientIsNoOp(t *testing.T) {
	sc := NewStatsCache(nil)
	ctx := context.Background()

	// All operations must be safe without Redis.
	sc.Put(ctx, Stats{Customers: 3, Interactions: 9})
	st, ok := sc.Get(ctx)
	assert.False(t, ok)
	assert.Zero(t, st)
	sc.Invalidate(ctx)
}

func TestStatsCacheTTLOverride(t *testing.T) {
	t.Setenv("STATS_CACHE_TTL", "90s")
	sc := NewStatsCache(nil)
	assert.Equal(t, 90*time.Second, sc.ttl)
}

func TestStatsCacheTTLOverrideInvalidFallsBack(t *testing.T) {
	t.Setenv("STATS_CACHE_TTL", "soon")
	sc := NewStatsCache(nil)
	assert.Equal(t, 30*time.Second, sc.ttl)
}
