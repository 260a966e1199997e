// Package cache stores enumeration results and rendered artifacts.
//
// Enumerating the paths of an n-gon visits (n-1)! visit orders, which takes
// seconds for n = 11 and minutes for n = 12. Results are a pure function of
// n, so they can be cached indefinitely and shared between runs.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under the user's cache directory (CLI)
//   - [RedisCache]: a shared Redis instance (HTTP server, several hosts)
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] so callers never build key strings by hand.
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries. Zero means the entry never expires.
const (
	// TTLPaths applies to enumeration results, which never change for a size.
	TTLPaths time.Duration = 0

	// TTLArtifact applies to rendered documents. Renderer output may change
	// between releases, so artifacts expire.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value stored under key. The bool reports whether the
	// key was found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 stores the entry without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// ArtifactKeyOpts holds the render parameters that distinguish artifacts.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Style  string `json:"style,omitempty"`
	Scale  int    `json:"scale,omitempty"`
	Labels bool   `json:"labels,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// PathsKey returns the key for the enumeration result of an n-gon.
	PathsKey(size int) string

	// ArtifactKey returns the key for a rendered document of the paths
	// identified by pathsHash.
	ArtifactKey(pathsHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PathsKey returns "paths:<hash>" for the given size.
func (DefaultKeyer) PathsKey(size int) string {
	return hashKey("paths", size)
}

// ArtifactKey returns "artifact:<hash>" over the paths hash and options.
func (DefaultKeyer) ArtifactKey(pathsHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", pathsHash, opts)
}
