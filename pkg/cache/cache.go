// Package cache stores rendered chart artifacts.
//
// A [Cache] is a byte store with per-entry TTLs. Backends:
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: a shared Redis instance, for servers
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [MemoryCache]: process memory, for a single server
//   - [NullCache]: stores nothing
//
// Keys come from a [Keyer], which hashes everything that influences an
// artifact, so a hit is always byte-identical to a fresh render.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value byte store with expiration.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs.
const (
	// TTLArtifact is how long rendered SVG/PNG/PDF/JSON outputs are kept.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLDataset is how long parsed datasets are kept.
	TTLDataset = 24 * time.Hour
)
