package factors

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/carbonroute/carbonroute/internal/engine"
	"github.com/carbonroute/carbonroute/internal/logging"
)

// Cache sizing defaults. Factor tables are small; the cache exists to
// keep repeated batch lookups away from slow external stores.
const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 15 * time.Minute
)

// CachingProvider decorates any provider with an expiring LRU cache.
// Only successful lookups are cached: a transient failure must not pin
// "not found" for the TTL.
type CachingProvider struct {
	inner engine.FactorProvider
	cache *expirable.LRU[string, []engine.EmissionFactor]
}

// NewCachingProvider wraps inner with an LRU of the given size and TTL.
// Non-positive size or TTL fall back to the defaults.
func NewCachingProvider(inner engine.FactorProvider, size int, ttl time.Duration) *CachingProvider {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachingProvider{
		inner: inner,
		cache: expirable.NewLRU[string, []engine.EmissionFactor](size, nil, ttl),
	}
}

// Lookup serves from the cache when possible, delegating to the inner
// provider on miss.
func (p *CachingProvider) Lookup(ctx context.Context, mode engine.TransportMode, vehicleType string, fuel engine.FuelType) ([]engine.EmissionFactor, error) {
	key := cacheKey(mode, vehicleType, fuel)

	if cached, ok := p.cache.Get(key); ok {
		logger := logging.FromContext(ctx)
		logger.Trace().
			Str("component", "factors").
			Str("operation", "lookup").
			Str("key", key).
			Msg("factor cache hit")
		return cached, nil
	}

	factors, err := p.inner.Lookup(ctx, mode, vehicleType, fuel)
	if err != nil {
		return nil, err
	}

	p.cache.Add(key, factors)
	return factors, nil
}

// Len reports the number of cached entries.
func (p *CachingProvider) Len() int { return p.cache.Len() }

// cacheKey builds the lookup key for a mode/vehicle/fuel triple.
func cacheKey(mode engine.TransportMode, vehicleType string, fuel engine.FuelType) string {
	return fmt.Sprintf("%s|%s|%s", mode, vehicleType, fuel)
}
