// Package watch finds template files under directory trees and reports
// when they change.
//
// [Scan] builds an [Index] from file name to the directories holding a file
// of that name. A [Watcher] watches every indexed directory with fsnotify and
// delivers an [Event] for each created or written template, skipping editor
// backup files that end in "~".
package watch

import (
	"io/fs"
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// Index maps a file name to the set of directories that contain it.
type Index map[string]map[string]struct{}

// Scan walks root and indexes every regular file whose name ends in
// "."+suffix. The suffix may be given with or without its leading dot.
func Scan(root, suffix string) (Index, error) {
	ext := normalizeSuffix(suffix)
	idx := Index{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && matches(d.Name(), ext) {
			idx.Add(d.Name(), filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// Add records that dir holds a file called name.
func (idx Index) Add(name, dir string) {
	dirs, ok := idx[name]
	if !ok {
		dirs = map[string]struct{}{}
		idx[name] = dirs
	}
	dirs[dir] = struct{}{}
}

// Merge adds every entry of o to idx.
func (idx Index) Merge(o Index) {
	for name, dirs := range o {
		for dir := range dirs {
			idx.Add(name, dir)
		}
	}
}

// Lookup returns the directories holding name, sorted.
func (idx Index) Lookup(name string) []string {
	return slices.Sorted(maps.Keys(idx[name]))
}

// Dirs returns every indexed directory, sorted.
func (idx Index) Dirs() []string {
	set := map[string]struct{}{}
	for _, dirs := range idx {
		maps.Copy(set, dirs)
	}
	return slices.Sorted(maps.Keys(set))
}

// Files returns every indexed file as a full path, sorted.
func (idx Index) Files() []string {
	var out []string
	for name, dirs := range idx {
		for dir := range dirs {
			out = append(out, filepath.Join(dir, name))
		}
	}
	slices.Sort(out)
	return out
}

func (idx Index) clone() Index {
	out := make(Index, len(idx))
	out.Merge(idx)
	return out
}

func normalizeSuffix(suffix string) string {
	return "." + strings.TrimPrefix(suffix, ".")
}

// matches reports whether name is a template file: it ends in ext and is
// not an editor backup.
func matches(name, ext string) bool {
	return !strings.HasSuffix(name, "~") && strings.HasSuffix(name, ext) && len(name) > len(ext)
}
