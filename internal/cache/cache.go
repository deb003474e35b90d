package cache

import (
	"context"
	"time"

	"github.com/orgball2608/insta-rest-api/pkg/config"
	"github.com/orgball2608/insta-rest-api/pkg/logger"
	"go.uber.org/fx"
)

// Stats describes the active backend for the cache stats endpoint.
type Stats struct {
	Backend string `json:"backend"`
	Keys    int64  `json:"keys"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

type Cache interface {
	// Get unmarshals the cached value for key into dest and reports whether
	// the key was present and still fresh.
	Get(ctx context.Context, key string, dest any) bool

	// Set stores value under key for ttl. Marshal and backend failures are
	// logged and dropped.
	Set(ctx context.Context, key string, value any, ttl time.Duration)

	Delete(ctx context.Context, keys ...string)

	Stats(ctx context.Context) Stats
}

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger logger.Logger
}

// New picks the Redis backend when REDIS_URL is configured and falls back to
// the in-process map otherwise.
func New(opts Opts) (Cache, error) {
	log := opts.Logger.WithComponent("Cache")
	if url := opts.Config.Cache.RedisUrl; url != "" {
		r, err := newRedis(url, log)
		if err != nil {
			return nil, err
		}
		opts.LC.Append(fx.Hook{
			OnStop: func(context.Context) error { return r.Close() },
		})
		return r, nil
	}
	log.Info("Using in-memory cache")
	return newMemory(), nil
}
