package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestNewReaderKinds(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	for _, kind := range []string{"none", "memory", "file"} {
		r, closer, err := newReader("", kind, 0)
		if err != nil {
			t.Fatalf("newReader(%q) error: %v", kind, err)
		}
		if r == nil {
			t.Errorf("newReader(%q) returned nil reader", kind)
		}
		if err := closer(); err != nil {
			t.Errorf("close %q cache: %v", kind, err)
		}
	}
}
