package lookup

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores candidate lists per normalized query. Implementations are
// best-effort: a broken cache must never break a lookup.
type Cache interface {
	Get(ctx context.Context, key string) ([]Candidate, bool)
	Set(ctx context.Context, key string, candidates []Candidate)
}

// RedisCache caches candidate lists in Redis with a TTL. Autocomplete data
// changes rarely, so short staleness is acceptable.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed cache.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

const cacheKeyPrefix = "intake:lookup:"

// Get returns the cached candidates for key, if present and decodable.
func (c *RedisCache) Get(ctx context.Context, key string) ([]Candidate, bool) {
	data, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}

	var candidates []Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, false
	}
	return candidates, true
}

// Set stores candidates under key. Failures are dropped; the next lookup
// simply goes back to the provider.
func (c *RedisCache) Set(ctx context.Context, key string, candidates []Candidate) {
	data, err := json.Marshal(candidates)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, cacheKeyPrefix+key, data, c.ttl).Err()
}
