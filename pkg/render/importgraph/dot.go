package importgraph

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/fcss/pkg/resolve"
)

// Options configures import graph rendering.
type Options struct {
	// ShortLabels labels nodes with the file's base name instead of the full
	// import path.
	ShortLabels bool
}

// ToDOT converts an import graph to Graphviz DOT format. Edges point from
// the importing file to the imported one.
func ToDOT(g *resolve.ImportGraph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph imports {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=14];\n")
	buf.WriteString("\n")

	incoming := make(map[string]int)
	for _, from := range g.Files() {
		for _, to := range g.Imports(from) {
			incoming[to]++
		}
	}

	for _, f := range g.Files() {
		attrs := []string{fmt.Sprintf("label=%q", label(f, opts))}
		if f == g.Root {
			attrs = append(attrs, "penwidth=2")
		}
		if incoming[f] > 1 {
			attrs = append(attrs, "color=red", "fontcolor=red")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", f, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, from := range g.Files() {
		for _, to := range g.Imports(from) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", from, to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label(path string, opts Options) string {
	if opts.ShortLabels {
		return filepath.Base(path)
	}
	return path
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag to a zero-origin viewBox with pixel
// width and height, dropping Graphviz's point units.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
