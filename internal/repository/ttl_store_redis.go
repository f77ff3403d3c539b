package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisTTLStore applies the TTL as a server-side EX parameter so the remote
// service enforces expiry, not local clock arithmetic.
type redisTTLStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTTLStore(client *redis.Client, ttl time.Duration) TTLStore {
	return &redisTTLStore{client: client, ttl: ttl}
}

func (s *redisTTLStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, s.ttl).Err()
}

func (s *redisTTLStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return val, err
}
