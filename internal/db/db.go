// Package db defines the key-value store contract used for caching
// catalog results.
package db

import (
	"context"
	"time"
)

// Store is the key-value facade the cache layer depends on.
type Store interface {
	Pinger
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
