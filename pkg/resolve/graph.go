package resolve

import (
	"context"
	"maps"
	"slices"

	"github.com/matzehuels/fcss/pkg/parse"
)

// ImportGraph records which file imports which, starting from Root.
type ImportGraph struct {
	Root  string
	Edges map[string][]string
}

// Files returns every file in the graph, sorted.
func (g *ImportGraph) Files() []string {
	return slices.Sorted(maps.Keys(g.Edges))
}

// Imports returns the files path imports directly, sorted.
func (g *ImportGraph) Imports(path string) []string {
	return g.Edges[path]
}

// Graph builds the import graph rooted at root by reading and parsing each
// file once. Files reached along several paths appear once with several
// incoming edges. A file that imports one of its own ancestors is reported
// as an [*ImportCycleError] carrying the chain of files.
func Graph(ctx context.Context, reader Reader, root string) (*ImportGraph, error) {
	if reader == nil {
		reader = FileReader{}
	}
	const (
		white = iota
		gray
		black
	)

	g := &ImportGraph{Root: root, Edges: make(map[string][]string)}
	color := make(map[string]int)
	var stack []string

	var visit func(path string) error
	visit = func(path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		color[path] = gray
		stack = append(stack, path)

		data, err := reader.Read(ctx, path)
		if err != nil {
			return readError(path, err)
		}
		tree, err := parse.Document(string(data))
		if err != nil {
			return err
		}
		children := tree.Imports()
		g.Edges[path] = children

		for _, child := range children {
			switch color[child] {
			case white:
				if err := visit(child); err != nil {
					return err
				}
			case gray:
				chain := slices.Clone(stack[slices.Index(stack, child):])
				return &ImportCycleError{Path: child, Chain: append(chain, child)}
			}
		}

		stack = stack[:len(stack)-1]
		color[path] = black
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return g, nil
}
