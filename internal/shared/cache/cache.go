package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cache is a JSON read-through cache in redis. Concurrent misses on one key share a single load.
// A nil *Cache, or one without a redis client, always loads.
type Cache struct {
	rdb    *redis.Client
	sf     singleflight.Group
	logger *zap.Logger
}

func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb, logger: zap.L().Named("cache")}
}

func GetOrLoad[T any](
	ctx context.Context,
	c *Cache,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (T, error),
) (T, error) {
	if c == nil {
		return load(ctx)
	}

	if c.rdb != nil {
		cached, err := c.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var v T
			if err := json.Unmarshal(cached, &v); err == nil {
				return v, nil
			}
			c.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
		case !errors.Is(err, redis.Nil):
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		val, err := load(ctx)
		if err != nil {
			return nil, err
		}

		if c.rdb != nil {
			if data, err := json.Marshal(val); err == nil {
				if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
					c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}

// Invalidate deletes keys. Failures are logged, not returned: a stale entry expires with its TTL.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Error("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// InvalidatePrefix deletes every key starting with prefix.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) error {
	if c == nil || c.rdb == nil {
		return nil
	}

	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
