package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// geoCache is the key-value surface CachedResolver needs. Satisfied by
// redisCache in production and by stubs in tests.
type geoCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// errCacheMiss marks an absent key, as distinct from a cache failure.
var errCacheMiss = errors.New("telemetry: cache miss")

// CachedResolver is a read-through cache in front of an IPGeoResolver.
// Geo metadata for an IP is stable over the cache TTL, and the hosted
// provider is both rate-limited and billed per lookup. Cache failures
// fall through to the inner resolver; they never fail a lookup.
type CachedResolver struct {
	inner IPGeoResolver
	cache geoCache
	ttl   time.Duration
}

var _ IPGeoResolver = (*CachedResolver)(nil)

// NewCachedResolver wraps inner with a Redis read-through cache.
func NewCachedResolver(inner IPGeoResolver, rdb *goredis.Client, ttl time.Duration) *CachedResolver {
	return &CachedResolver{inner: inner, cache: &redisCache{rdb: rdb}, ttl: ttl}
}

func (r *CachedResolver) Resolve(ctx context.Context, ip string) (IPGeo, error) {
	key := "ipgeo:" + ip

	if raw, err := r.cache.Get(ctx, key); err == nil {
		var geo IPGeo
		if err := json.Unmarshal([]byte(raw), &geo); err == nil {
			return geo, nil
		}
	} else if !errors.Is(err, errCacheMiss) {
		slog.Warn("ip-geo cache read failed", "ip", ip, "error", err)
	}

	geo, err := r.inner.Resolve(ctx, ip)
	if err != nil {
		return IPGeo{}, err
	}

	if raw, err := json.Marshal(geo); err == nil {
		if err := r.cache.Set(ctx, key, string(raw), r.ttl); err != nil {
			slog.Warn("ip-geo cache write failed", "ip", ip, "error", err)
		}
	}
	return geo, nil
}

// redisCache backs geoCache with go-redis.
type redisCache struct {
	rdb *goredis.Client
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	v, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", errCacheMiss
	}
	return v, err
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}
