package repository

import (
	"context"
)

// TTLStore abstracts ephemeral key-value state with a store-wide TTL fixed at
// construction. Implementations: Redis (production) or in-memory (local dev /
// single-instance).
//
// Get returns (nil, nil) for a missing or expired key; callers must treat nil
// as "absent", never as an error. Callers prefix keys by logical domain
// ("rl:", "wc:", "xumm:") so features sharing one backend never collide.
type TTLStore interface {
	Set(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}
