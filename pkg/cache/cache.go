// Package cache provides pluggable byte caching for learned networks.
//
// A structure-learning run is fully determined by its inputs: the dataset
// bytes, the ordering, the seed, and the search options. That makes runs
// ideal cache candidates - the [Keyer] folds all inputs into a key, and the
// serialized network document is the cached value.
//
// Three backends are provided:
//   - [FileCache]: per-user cache directory, the CLI default
//   - [RedisCache]: shared cache for serve mode
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache with TTL support.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NetworkKeyOpts are the learn parameters that affect the resulting network
// and therefore belong in the cache key.
type NetworkKeyOpts struct {
	Ordering   string // ordering spec ("identity", "random", or explicit list)
	Seed       uint64
	MaxParents int
}

// Keyer generates cache keys. Implementations must be deterministic: the
// same inputs always produce the same key.
type Keyer interface {
	// NetworkKey generates a key for a learned network, scoped by the
	// dataset content hash and the learn options.
	NetworkKey(datasetHash string, opts NetworkKeyOpts) string
}

// DefaultKeyer hashes inputs into versioned, collision-resistant keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// NetworkKey generates a key of the form "network:v1:<sha256>".
// The version segment lets a format change invalidate old entries wholesale.
func (k *DefaultKeyer) NetworkKey(datasetHash string, opts NetworkKeyOpts) string {
	return hashKey("network:v1", datasetHash, opts.Ordering, opts.Seed, opts.MaxParents)
}
