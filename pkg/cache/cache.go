package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"venue-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache stores JSON-encoded values under string keys.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	DeletePrefix(ctx context.Context, prefix string) error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	log    *zap.Logger
}

// NewRedisClient connects and pings so a bad address fails at startup.
func NewRedisClient(ctx context.Context, cfg utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func NewRedisCache(client *redis.Client, namespace string, ttl time.Duration, log *zap.Logger) Cache {
	return &redisCache{
		client: client,
		ttl:    ttl,
		prefix: namespace + ":",
		log:    log.With(zap.String("cache", "redis")),
	}
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) error {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		c.log.Warn("Cache get failed", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("cache decode %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Cache set failed", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, c.prefix+prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("Cache scan failed", zap.Error(err), zap.String("prefix", prefix))
		return fmt.Errorf("cache scan %s: %w", prefix, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("Cache delete failed", zap.Error(err), zap.String("prefix", prefix))
		return fmt.Errorf("cache delete %s: %w", prefix, err)
	}
	return nil
}

type noopCache struct{}

// NewNoop returns a cache that never holds anything.
func NewNoop() Cache { return noopCache{} }

func (noopCache) Get(context.Context, string, any) error { return ErrMiss }
func (noopCache) Set(context.Context, string, any) error { return nil }
func (noopCache) DeletePrefix(context.Context, string) error { return nil }
