package metrics

import (
	"context"
	"time"

	"github.com/madfam-org/tezca-gateway/internal/core"
)

// CacheWrapper provides a read-through cache for the audit-derived gauges.
// The underlying count query scans the audit table, so the periodic metrics
// job reads through this wrapper instead of hitting the database every tick.
type CacheWrapper struct {
	store core.MetricsStore
	cache core.Cache[int64]
}

// NewCacheWrapper creates a new cache wrapper for metrics.
func NewCacheWrapper(store core.MetricsStore, cache core.Cache[int64]) *CacheWrapper {
	return &CacheWrapper{
		store: store,
		cache: cache,
	}
}

// GetRecentLoginsCount returns the number of successful logins in the given
// window, cache-aside with the given TTL.
func (m *CacheWrapper) GetRecentLoginsCount(
	ctx context.Context,
	window time.Duration,
	ttl time.Duration,
) (int64, error) {
	return m.cache.GetWithFetch(
		ctx,
		"logins:recent",
		ttl,
		func(ctx context.Context, key string) (int64, error) {
			return m.store.CountLoginsSince(time.Now().Add(-window))
		},
	)
}
