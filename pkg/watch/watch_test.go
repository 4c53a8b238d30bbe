package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	fcsserrors "github.com/matzehuels/fcss/pkg/errors"
)

func touch(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "App.vue"), "")
	touch(t, filepath.Join(root, "components", "Button.vue"), "")
	touch(t, filepath.Join(root, "views", "Button.vue"), "")
	touch(t, filepath.Join(root, "views", "Button.vue~"), "")
	touch(t, filepath.Join(root, "views", "main.js"), "")
	touch(t, filepath.Join(root, "revue"), "")

	idx, err := Scan(root, "vue")
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	wantDirs := []string{filepath.Join(root, "components"), filepath.Join(root, "views")}
	if diff := cmp.Diff(wantDirs, idx.Lookup("Button.vue")); diff != "" {
		t.Errorf("Lookup() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{root}, idx.Lookup("App.vue")); diff != "" {
		t.Errorf("Lookup() mismatch (-want +got):\n%s", diff)
	}
	if len(idx) != 2 {
		t.Errorf("indexed names = %v, want App.vue and Button.vue", idx)
	}
	if got := len(idx.Files()); got != 3 {
		t.Errorf("Files() = %d entries, want 3", got)
	}

	dotted, err := Scan(root, ".vue")
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if diff := cmp.Diff(idx, dotted); diff != "" {
		t.Errorf("suffix with dot should match the same files (-plain +dotted):\n%s", diff)
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "nope"), "vue"); err == nil {
		t.Error("Scan() of a missing root should fail")
	}
}

func TestIndexMerge(t *testing.T) {
	a := Index{}
	a.Add("x.vue", "/a")
	b := Index{}
	b.Add("x.vue", "/b")
	b.Add("y.vue", "/b")

	a.Merge(b)
	if diff := cmp.Diff([]string{"/a", "/b"}, a.Lookup("x.vue")); diff != "" {
		t.Errorf("Lookup() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/a", "/b"}, a.Dirs()); diff != "" {
		t.Errorf("Dirs() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRejectsBadSuffix(t *testing.T) {
	if _, err := New("", nil); !fcsserrors.Is(err, fcsserrors.ErrCodeInvalidInput) {
		t.Errorf("New(\"\") error = %v, want %s", err, fcsserrors.ErrCodeInvalidInput)
	}
}

func TestWatcherEvents(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "sub", "Old.vue"), "<div/>")

	w, err := New("vue", nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer w.Close()
	if err := w.Add(root); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	touch(t, filepath.Join(root, "sub", "Old.vue~"), "backup")
	touch(t, filepath.Join(root, "notes.txt"), "ignored")
	touch(t, filepath.Join(root, "New.vue"), `<div class="h-12"/>`)

	select {
	case ev := <-w.Events():
		if ev.Path != filepath.Join(root, "New.vue") {
			t.Errorf("event path = %s, want New.vue", ev.Path)
		}
		if ev.Op != OpCreate && ev.Op != OpWrite {
			t.Errorf("event op = %v", ev.Op)
		}
		if ev.ID.String() == "" {
			t.Error("event should carry an ID")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event within 5s")
	}

	if got := w.Index().Lookup("New.vue"); len(got) != 1 {
		t.Errorf("created file not indexed: %v", got)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error: %v", err)
	}
	// Run closes the channel; drain what was buffered before cancellation.
	for range w.Events() {
	}
}

func TestOpString(t *testing.T) {
	if OpCreate.String() != "create" || OpWrite.String() != "write" || Op(0).String() != "unknown" {
		t.Error("unexpected Op names")
	}
}
