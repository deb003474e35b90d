package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/orgball2608/insta-rest-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Redis caches JSON-encoded values in a shared Redis instance.
type Redis struct {
	client *redis.Client
	logger logger.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
}

var _ Cache = (*Redis)(nil)

func newRedis(url string, log logger.Logger) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	log.Info("Connected to redis", "addr", opt.Addr)
	return &Redis{client: client, logger: log}, nil
}

func (r *Redis) Get(ctx context.Context, key string, dest any) bool {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		r.misses.Add(1)
		return false
	}
	if err := json.Unmarshal(val, dest); err != nil {
		r.misses.Add(1)
		return false
	}
	r.hits.Add(1)
	return true
}

func (r *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.logger.Warn("Cache write failed", "key", key, "error", err)
	}
}

func (r *Redis) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	r.client.Del(ctx, keys...)
}

func (r *Redis) Stats(ctx context.Context) Stats {
	keys, err := r.client.DBSize(ctx).Result()
	if err != nil {
		keys = -1
	}
	return Stats{
		Backend: "redis",
		Keys:    keys,
		Hits:    r.hits.Load(),
		Misses:  r.misses.Load(),
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}
