package sheet

import (
	"maps"
	"slices"
)

// Node is one of [Mapping], [Leaf], [Extend], [Import] or [Comment].
type Node interface {
	node()
}

// Mapping maps keys (selectors, property names, import paths) to children.
// Keys are unique; setting an existing key replaces its child.
type Mapping map[string]Node

// Leaf is a literal property value such as "1px".
type Leaf struct {
	Value string
}

// Extend is an unresolved placeholder statement written as "?name".
// It is preserved and re-emitted verbatim, never expanded.
type Extend struct {
	Name string
}

// Import is a pending reference to text that the resolver inlines.
// Count is the number of @import directives naming Path in the document the
// node was parsed from; the resolver rejects any path imported more than once.
type Import struct {
	Path  string
	Count int
}

// Comment is a top-level comment line. Parsers drop comments before
// returning a mapping, so callers never observe one as a child.
type Comment struct {
	Text string
}

func (Mapping) node() {}
func (Leaf) node()    {}
func (Extend) node()  {}
func (Import) node()  {}
func (Comment) node() {}

// Set stores n under key, replacing any previous child. Repeated imports of
// the same path accumulate into a single Import whose Count records every
// directive.
func (m Mapping) Set(key string, n Node) {
	if imp, ok := n.(Import); ok {
		if imp.Count < 1 {
			imp.Count = 1
		}
		if prev, ok := m[key].(Import); ok {
			imp.Count += prev.Count
		}
		n = imp
	}
	m[key] = n
}

// Keys returns the mapping's keys in sorted order.
func (m Mapping) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

// HasImport reports whether any direct child is an Import.
func (m Mapping) HasImport() bool {
	for _, n := range m {
		if _, ok := n.(Import); ok {
			return true
		}
	}
	return false
}

// Imports returns the paths of all direct Import children, sorted.
func (m Mapping) Imports() []string {
	var paths []string
	for _, k := range m.Keys() {
		if imp, ok := m[k].(Import); ok {
			paths = append(paths, imp.Path)
		}
	}
	return paths
}

// Clone returns a deep copy of m.
func (m Mapping) Clone() Mapping {
	if m == nil {
		return nil
	}
	out := make(Mapping, len(m))
	for k, n := range m {
		if sub, ok := n.(Mapping); ok {
			out[k] = sub.Clone()
			continue
		}
		out[k] = n
	}
	return out
}

// Equal reports whether a and b are structurally equal. Mappings compare by
// key/value identity without regard to order.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case Mapping:
		y, ok := b.(Mapping)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xn := range x {
			yn, ok := y[k]
			if !ok || !Equal(xn, yn) {
				return false
			}
		}
		return true
	case Leaf, Extend, Import, Comment:
		return a == b
	default:
		return a == nil && b == nil
	}
}
