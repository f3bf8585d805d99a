// Package cache stores rendered artifacts so an identical document is only
// rasterized once.
//
// Rasterizing a 6000x4000 image dominates the cost of every export, and the
// same document is often exported several times: previewed in the TUI, then
// saved, or downloaded from the server as PNG and then as PDF. Artifacts are
// keyed by the SHA-256 of the SVG plus the format and size, so any backend
// can serve them:
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON entry per key under a local directory (CLI)
//   - [RedisCache]: shared across server instances
//
// Keys are built by a [Keyer]; wrap it with [NewScopedKeyer] to namespace
// keys per deployment.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long a rendered artifact stays cached.
const TTLArtifact = 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value and true on a hit. Misses are not errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// NullCache never stores anything.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)          { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
