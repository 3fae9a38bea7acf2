package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// PriceCache stores resolved price points for the process lifetime. No TTL
// or invalidation: unit prices change slowly relative to a session, and a
// concurrent last-write-wins overwrite is benign because the values are
// economically equivalent.
type PriceCache interface {
	Get(ctx context.Context, key string) (PricePoint, bool)
	Put(ctx context.Context, key string, point PricePoint)
}

// MemoryCache is the default in-process cache
type MemoryCache struct {
	mu     sync.RWMutex
	points map[string]PricePoint
}

// NewMemoryCache creates an empty in-process price cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{points: make(map[string]PricePoint)}
}

// Get returns the cached point for key, if any
func (c *MemoryCache) Get(_ context.Context, key string) (PricePoint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	point, ok := c.points[key]
	return point, ok
}

// Put stores the point under key
func (c *MemoryCache) Put(_ context.Context, key string, point PricePoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.points[key] = point
}

// RedisCache shares resolved prices across replicas. Entries are written
// without expiry; flushing the keyspace is the invalidation mechanism.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a Redis-backed price cache
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, prefix: "pricing:"}
}

// Get returns the cached point for key, if present and decodable. Redis
// errors degrade to a miss so pricing never fails on cache trouble.
func (c *RedisCache) Get(ctx context.Context, key string) (PricePoint, bool) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return PricePoint{}, false
	}
	var point PricePoint
	if err := json.Unmarshal(raw, &point); err != nil {
		return PricePoint{}, false
	}
	return point, true
}

// Put stores the point under key with no expiry
func (c *RedisCache) Put(ctx context.Context, key string, point PricePoint) {
	raw, err := json.Marshal(point)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.prefix+key, raw, 0)
}

var _ PriceCache = (*MemoryCache)(nil)
var _ PriceCache = (*RedisCache)(nil)

// cacheKeyString is a debugging helper used in assumption strings
func cacheKeyString(u Usage) string {
	return fmt.Sprintf("%s:%s:%s", u.Provider, u.Region, u.Service)
}
