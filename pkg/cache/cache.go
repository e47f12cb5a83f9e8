// Package cache memoizes generated edge lists and rendered artifacts.
//
// Generation is deterministic for a fixed model, parameter set and seed, so
// an edge list can be stored once and replayed into any number of sinks.
// The [Keyer] derives stable keys from those inputs; a [Cache] stores the
// serialized value.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for the HTTP API
//   - [NullCache]: disables caching
//
// # Usage
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().EdgesKey("erdos-renyi", cache.EdgesKeyOpts{Nodes: 10, Edges: 20, Seed: 42})
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    // decode
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default expiries per entry type.
const (
	TTLEdges    = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)
