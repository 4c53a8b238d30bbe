// Package cache stores raw bytes under string keys with optional expiry.
//
// The resolver uses it to avoid re-reading imported files that have not
// changed: keys are derived from a file's path, modification time and size
// by a [Keyer], so an edited file naturally misses.
//
// Three backends are provided:
//   - [FileCache] persists entries under a directory, for the CLI
//   - [MemoryCache] keeps a bounded, expiring LRU in process
//   - [NullCache] stores nothing
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store.
//
// Get reports a miss as (nil, false, nil); an error is reserved for backend
// failures. A ttl of zero means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// ImportKey identifies one version of an imported file.
	ImportKey(path string, modTime time.Time, size int64) string
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ImportKey returns "import:<sha256>" over the path, mtime and size.
func (DefaultKeyer) ImportKey(path string, modTime time.Time, size int64) string {
	return hashKey("import", path, modTime.UTC().UnixNano(), size)
}
