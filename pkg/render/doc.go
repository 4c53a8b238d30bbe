// Package render serializes reg trees back to text.
//
// # Canonical Text
//
// [Sheet] prints a [sheet.Mapping] structurally, one statement per line:
//
//	selector{        block
//	width:1px;       leaf
//	?w-$1;           extend (the key is printed; the marker is never expanded)
//	}
//	@import(path)    unresolved import, printed without a trailing ';'
//
// This is not a byte-identical reproduction of the input: whitespace,
// statement order and trailing-';' style are normalized. Children are emitted
// in sorted key order so that output is reproducible; the grammar attaches no
// meaning to that order.
//
// Re-parsing the output of a tree that holds no imports yields an equal tree.
//
// # Diffs
//
// [Diff] produces a line diff between two texts, used to show how a source
// file differs from its canonical form.
//
// # Import Graphs
//
// The [importgraph] subpackage renders the file-level import graph built by
// the resolver as Graphviz DOT or SVG.
package render
