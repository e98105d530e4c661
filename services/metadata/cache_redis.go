package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache shares cached payloads between several instances.
type redisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func newRedisCache(client *redis.Client, prefix string, ttl time.Duration) *redisCache {
	if prefix == "" {
		prefix = "cinelist:"
	}
	return &redisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *redisCache) get(ctx context.Context, key string, v any) (bool, error) {
	if key == "" {
		return false, errEmptyKey
	}
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache get error: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("cache unmarshal error: %w", err)
	}
	return true, nil
}

func (c *redisCache) set(ctx context.Context, key string, v any) error {
	if key == "" {
		return errEmptyKey
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

func (c *redisCache) clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == 100 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache clear error: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan error: %w", err)
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("cache clear error: %w", err)
		}
	}
	return nil
}

// Close releases the Redis connection pool.
func (c *redisCache) Close() error {
	return c.client.Close()
}
