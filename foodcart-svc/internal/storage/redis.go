package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache keeps short-lived markers for addresses the geocoder could not resolve.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) MissMarkerKey(address string) string {
	return "place:miss:" + address
}

func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	if c.TTL <= 0 {
		return false, nil
	}
	res, err := c.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (c *RedisCache) SetMarker(ctx context.Context, key string) error {
	if c.TTL <= 0 {
		return nil
	}
	return c.Client.Set(ctx, key, "1", c.TTL).Err()
}
