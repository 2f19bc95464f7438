// Package cache stores rendered artifacts so regenerating an unchanged
// parameter set is free.
//
// Entries are opaque byte slices under string keys produced by a [Keyer].
// [FileCache] is the CLI's on-disk cache; [NullCache] disables caching.
// A miss is never an error: Get returns ok=false and the caller renders.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the entry for key; ok is false on a miss or expired entry.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
