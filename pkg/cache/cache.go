// Package cache provides the byte caches behind generated explanations,
// program lookups and rendered documents.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory; the CLI default.
//   - [RedisCache]: a shared Redis instance; used by the HTTP server so that
//     every replica sees the same explanations.
//   - [NullCache]: stores nothing; used with --no-cache and in tests.
//
// Keys come from a [Keyer] so that every backend agrees on their layout:
//
//	keyer := cache.NewDefaultKeyer()
//	c.Set(ctx, keyer.ExplanationKey(12, 40), []byte(text), cache.ExplanationTTL)
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for opaque bytes with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); an error means the backend itself
// failed. A ttl of zero stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Default entry lifetimes.
const (
	// ExplanationTTL keeps generated comparison explanations for an hour.
	ExplanationTTL = time.Hour
	// ProgramTTL bounds how stale a cached program row may get.
	ProgramTTL = 10 * time.Minute
	// ArtifactTTL keeps rendered documents.
	ArtifactTTL = 24 * time.Hour
)
