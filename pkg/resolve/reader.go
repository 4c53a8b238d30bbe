package resolve

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/fcss/pkg/cache"
	"github.com/matzehuels/fcss/pkg/observability"
)

// Reader returns the full contents of an import path.
type Reader interface {
	Read(ctx context.Context, path string) ([]byte, error)
}

// ReaderFunc adapts a function to [Reader].
type ReaderFunc func(ctx context.Context, path string) ([]byte, error)

// Read calls f.
func (f ReaderFunc) Read(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}

// FileReader reads imports from the file system. Relative paths are joined
// to Dir when it is set.
type FileReader struct {
	Dir string
}

// Read returns the file's contents.
func (r FileReader) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.path(path))
	if err != nil {
		return nil, readError(path, err)
	}
	return data, nil
}

func (r FileReader) path(p string) string {
	if r.Dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.Dir, p)
}

const importKeyType = "import"

// CachedReader serves imports from a cache keyed by path, modification time
// and size, falling back to the file system. A cache failure is treated as
// a miss.
type CachedReader struct {
	Files FileReader
	Cache cache.Cache
	Keyer cache.Keyer
	TTL   time.Duration
}

// NewCachedReader returns a CachedReader with the default keyer.
func NewCachedReader(c cache.Cache, ttl time.Duration) *CachedReader {
	return &CachedReader{Cache: c, Keyer: cache.NewDefaultKeyer(), TTL: ttl}
}

// Read returns the file's contents, from cache when the file is unchanged.
func (r *CachedReader) Read(ctx context.Context, path string) ([]byte, error) {
	info, err := os.Stat(r.Files.path(path))
	if err != nil {
		return nil, readError(path, err)
	}
	key := r.keyer().ImportKey(path, info.ModTime(), info.Size())

	if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, importKeyType)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, importKeyType)

	data, err := r.Files.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err == nil {
		observability.Cache().OnCacheSet(ctx, importKeyType, len(data))
	}
	return data, nil
}

func (r *CachedReader) keyer() cache.Keyer {
	if r.Keyer == nil {
		return cache.NewDefaultKeyer()
	}
	return r.Keyer
}
