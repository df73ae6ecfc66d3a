package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/platform/config"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Cache is a thin read-through cache over Redis for the public list
// endpoints. A nil client means caching is disabled and every call is a
// no-op miss.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func Connect() *Cache {
	cfg := config.AppConfig
	if cfg.RedisAddr == "" {
		logrus.Info("REDIS_ADDR not set, response caching disabled")
		return &Cache{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logrus.Fatalf("Could not connect to Redis: %v", err)
	}
	logrus.Info("Successfully connected to Redis")

	return &Cache{rdb: rdb, ttl: cfg.CacheTTL}
}

func (c *Cache) Close() {
	if c != nil && c.rdb != nil {
		c.rdb.Close()
		logrus.Info("Redis connection closed")
	}
}

// Get unmarshals the cached value for key into dest. It reports whether a
// value was found; cache errors are demoted to misses.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.Warnf("cache get %q: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logrus.Warnf("cache decode %q: %v", key, err)
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		logrus.Warnf("cache encode %q: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logrus.Warnf("cache set %q: %v", key, err)
	}
}

// Invalidate drops the given keys after a mutation.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logrus.Warnf("cache invalidate %v: %v", keys, err)
	}
}
