package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "catalog:item:"

// Cache wraps Redis helpers for cached item detail payloads. A nil client
// disables caching entirely; every method degrades to a no-op.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func itemKey(slug string) string {
	return cacheKeyPrefix + slug
}

// GetItem unmarshals a cached item payload. It reports whether the key existed.
func (c *Cache) GetItem(ctx context.Context, slug string, dst *Item) (bool, error) {
	if c == nil || c.client == nil || slug == "" {
		return false, nil
	}
	data, err := c.client.Get(ctx, itemKey(slug)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetItem serialises the item and stores it with the configured TTL.
func (c *Cache) SetItem(ctx context.Context, item Item) error {
	if c == nil || c.client == nil || item.Slug == "" {
		return nil
	}
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, itemKey(item.Slug), data, c.ttl).Err()
}

// Invalidate drops a cached item after a write.
func (c *Cache) Invalidate(ctx context.Context, slug string) error {
	if c == nil || c.client == nil || slug == "" {
		return nil
	}
	return c.client.Del(ctx, itemKey(slug)).Err()
}
