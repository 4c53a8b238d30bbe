// Package pkg provides the libraries behind fcss.
//
// # Overview
//
// fcss works on reg files, a CSS-like notation made of selector blocks,
// property statements, ?extend markers and top-level @import directives.
// The pkg directory is organized around the flow of a reg file:
//
//	reg source
//	     ↓
//	[parse] package (text → tree, SyntaxError with position)
//	     ↓
//	[resolve] package (splice @import files round by round)
//	     ↓
//	[render] package (tree → canonical text)
//	     ↓
//	[signature] package (selector and class signatures)
//
// # Quick Start
//
//	tree, err := parse.Document(src)
//	if err != nil {
//	    return err
//	}
//	tree, err = resolve.New(resolve.FileReader{}).Resolve(ctx, tree)
//	if err != nil {
//	    return err
//	}
//	fmt.Print(render.Sheet(tree))
//	sigs := signature.Extract(tree)
//
// # Main Packages
//
// [sheet] - The tree: Mapping, Leaf, Extend, Import and Comment nodes.
//
// [parse] - Strict (Document) and prefix (Parse) parsers.
//
// [resolve] - Import resolution with cycle and diamond detection, readers
// backed by [cache], and the file-level import graph.
//
// [render] - Canonical serialization and line diffs. [render/importgraph]
// draws the import graph as DOT or SVG.
//
// [signature] - Signature normalization and sets, class attribute scanning.
//
// ## Supporting Packages
//
// [config] - TOML, YAML and JSON configuration for "fcss watch".
//
// [watch] - Template directory index and fsnotify watcher.
//
// [cache] - Memory (LRU) and file caches for imported files.
//
// [observability] - Hooks for resolution and cache events.
//
// [errors] - Coded errors shared by every package.
//
// [sheet]: https://pkg.go.dev/github.com/matzehuels/fcss/pkg/sheet
// [parse]: https://pkg.go.dev/github.com/matzehuels/fcss/pkg/parse
// [resolve]: https://pkg.go.dev/github.com/matzehuels/fcss/pkg/resolve
// [render]: https://pkg.go.dev/github.com/matzehuels/fcss/pkg/render
// [render/importgraph]: https://pkg.go.dev/github.com/matzehuels/fcss/pkg/render/importgraph
// [signature]: https://pkg.go.dev/github.com/matzehuels/fcss/pkg/signature
// [config]: https://pkg.go.dev/github.com/matzehuels/fcss/pkg/config
// [watch]: https://pkg.go.dev/github.com/matzehuels/fcss/pkg/watch
// [cache]: https://pkg.go.dev/github.com/matzehuels/fcss/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/fcss/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/fcss/pkg/errors
package pkg
