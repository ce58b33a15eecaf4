// Package cache provides the pluggable cache collaborator used by diagnostic
// routines. Callers inject an implementation; the library never assumes a
// particular backend or file path.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss indicates the requested key was not found in the cache.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a minimal get/put store with per-entry TTL.
type Cache interface {
	// Get returns the value stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key. A ttl of zero means no expiry.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
