// Package cache provides byte-slice caches for fetched sequence data.
//
// Three implementations share the [Cache] interface:
//
//   - [NullCache]: never stores anything; used when caching is disabled
//   - [FileCache]: JSON entries under a directory; used by the CLI
//   - [RedisCache]: a Redis server; used when the sequence store is shared
//
// Keys are built by a [Keyer] so every caller agrees on the layout of the
// key space. [ScopedKeyer] prefixes keys, for example with a hash of the
// FASTA file the slices were read from.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long cached sequence slices stay valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value for key. A miss returns (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}
