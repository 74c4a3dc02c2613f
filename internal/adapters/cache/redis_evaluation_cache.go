package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"apartment-eval-service/internal/domain"
	"apartment-eval-service/internal/ports"
)

const redisKeyPrefix = "eval:"

// Redis-backed evaluation cache. Expiry is delegated to Redis via the
// key TTL, so a stale entry can never be returned as a hit. Suitable when
// several instances should share one cache.
type RedisEvaluationCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisEvaluationCache(rdb *redis.Client, ttl time.Duration) *RedisEvaluationCache {
	return &RedisEvaluationCache{rdb: rdb, ttl: ttl}
}

func (c *RedisEvaluationCache) Get(ctx context.Context, key string) (*domain.Evaluation, bool, error) {
	val, err := c.rdb.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis evaluation cache get %q: %w", key, err)
	}

	var eval domain.Evaluation
	if err := json.Unmarshal([]byte(val), &eval); err != nil {
		return nil, false, fmt.Errorf("redis evaluation cache decode %q: %w", key, err)
	}

	return &eval, true, nil
}

func (c *RedisEvaluationCache) Put(ctx context.Context, key string, eval *domain.Evaluation) error {
	b, err := json.Marshal(eval)
	if err != nil {
		return fmt.Errorf("redis evaluation cache encode %q: %w", key, err)
	}

	if err := c.rdb.Set(ctx, redisKeyPrefix+key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis evaluation cache set %q: %w", key, err)
	}

	return nil
}

func (c *RedisEvaluationCache) Clear(ctx context.Context) error {
	keys, err := c.scanKeys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis evaluation cache clear: %w", err)
	}

	return nil
}

func (c *RedisEvaluationCache) Stats(ctx context.Context) (ports.CacheStats, error) {
	keys, err := c.scanKeys(ctx)
	if err != nil {
		return ports.CacheStats{}, err
	}

	stats := ports.CacheStats{Entries: len(keys), Keys: make([]string, 0, len(keys))}
	for _, k := range keys {
		stats.Keys = append(stats.Keys, strings.TrimPrefix(k, redisKeyPrefix))
	}
	return stats, nil
}

func (c *RedisEvaluationCache) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		batch, next, err := c.rdb.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("redis evaluation cache scan: %w", err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}
