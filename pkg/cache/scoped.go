package cache

import "time"

// ScopedKeyer wraps a Keyer with a prefix so that separate namespaces can
// share one backend. The CLI scopes keys by build version so entries written
// by an older parser are never served to a newer one.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ImportKey generates a prefixed key for an imported file.
func (k *ScopedKeyer) ImportKey(path string, modTime time.Time, size int64) string {
	return k.prefix + k.inner.ImportKey(path, modTime, size)
}
