// Package cache holds resolved site configs in a byte store keyed by
// resolution mode and identifier.
package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented key/value store with per-entry TTL. Get reports a
// miss with ok=false and a nil error.
type Store interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
