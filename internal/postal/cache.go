package postal

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedResolver memoises successful lookups in Redis. Postal code data
// is effectively immutable, so entries only expire to bound memory.
type CachedResolver struct {
	next   Resolver
	client *redis.Client
	ttl    time.Duration
}

// NewCachedResolver wraps a resolver with a Redis cache.
func NewCachedResolver(next Resolver, client *redis.Client, ttl time.Duration) *CachedResolver {
	return &CachedResolver{next: next, client: client, ttl: ttl}
}

func cacheKey(code string) string {
	return "postal:" + CleanCode(code)
}

// Resolve returns the cached address when present, otherwise delegates
// and stores the result. Failures and misses are never cached.
func (c *CachedResolver) Resolve(ctx context.Context, code string) (*Address, error) {
	if c.client == nil {
		return c.next.Resolve(ctx, code)
	}

	key := cacheKey(code)
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var addr Address
		if err := json.Unmarshal(raw, &addr); err == nil {
			return &addr, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		// Cache trouble should not break lookups.
		return c.next.Resolve(ctx, code)
	}

	addr, err := c.next.Resolve(ctx, code)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(addr); err == nil {
		_ = c.client.Set(ctx, key, data, c.ttl).Err()
	}
	return addr, nil
}
