package cache

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
)

const (
	memoryCapacity        = 1024
	memoryShards          = 16
	memoryEvictionPercent = 10
)

// MemoryCache is the in-process substitute used when no Redis address is
// configured. Semantics match RedisCache except that entries are not shared
// across processes. The client is built with the gateway's fixed TTL, so
// the per-call ttl argument is already accounted for.
type MemoryCache struct {
	client *sturdyc.Client[string]
}

// NewMemory creates an in-process cache whose entries expire after ttl.
func NewMemory(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		client: sturdyc.New[string](memoryCapacity, memoryShards, ttl, memoryEvictionPercent),
	}
}

// GetString returns the value for key, reporting absence via the bool.
// Expired entries count as absent.
func (c *MemoryCache) GetString(_ context.Context, key string) (string, bool, error) {
	val, ok := c.client.Get(key)
	return val, ok, nil
}

// SetString stores value under key. The expiration is the TTL the cache was
// constructed with.
func (c *MemoryCache) SetString(_ context.Context, key, value string, _ time.Duration) error {
	c.client.Set(key, value)
	return nil
}

// Remove drops key.
func (c *MemoryCache) Remove(_ context.Context, key string) error {
	c.client.Delete(key)
	return nil
}
