// Package cache provides pluggable byte caches for derived artifacts.
//
// The serve command uses a cache to avoid re-rendering DOT and SVG output
// for documents that have not changed: artifacts are keyed by the content
// hash of the stored wire document, so a stale entry can never be served
// for modified content. Three backends are available:
//
//   - [FileCache]: entries as files on disk, for single-host setups
//   - [RedisCache]: shared cache for multi-instance deployments
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with an optional TTL.
//
// Implementations must treat Get misses as (nil, false, nil), reserving
// the error return for backend failures. All methods are safe for
// concurrent use.
type Cache interface {
	// Get retrieves the value for key. The second return is false on miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKey builds the cache key for a rendered artifact of a document.
// docHash is the content hash of the wire document (see [Hash]) and format
// names the artifact ("dot", "svg").
func ArtifactKey(docHash, format string) string {
	return "artifact:" + format + ":" + docHash
}
