package repository

import (
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"xrplutter/gateway/internal/config"
)

var (
	redisMu     sync.Mutex
	redisShared *redis.Client
)

// NewStore returns the TTL store selected by configuration. The Redis client
// is built once per process and reused across selections, so repeated calls
// share one connection pool.
func NewStore(cfg config.StoreConfig) (TTLStore, error) {
	switch cfg.Backend {
	case "redis":
		client, err := sharedRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		return NewRedisTTLStore(client, cfg.TTL()), nil
	case "", "memory":
		return NewMemoryTTLStore(cfg.TTL()), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func sharedRedisClient(cfg config.StoreConfig) (*redis.Client, error) {
	redisMu.Lock()
	defer redisMu.Unlock()

	if redisShared != nil {
		return redisShared, nil
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("STORE_REDIS_URL is required for STORE_BACKEND=redis")
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_REDIS_URL: %w", err)
	}
	if cfg.RedisToken != "" {
		opts.Password = cfg.RedisToken
	}
	redisShared = redis.NewClient(opts)
	return redisShared, nil
}
