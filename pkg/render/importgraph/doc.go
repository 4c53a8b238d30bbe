// Package importgraph renders reg import graphs as node-link diagrams.
//
// # Usage
//
// Build the graph with the resolver, convert it to DOT, then render to SVG:
//
//	g, err := resolve.Graph(ctx, resolve.FileReader{}, "main.reg")
//	dot := importgraph.ToDOT(g, importgraph.Options{})
//	svg, err := importgraph.RenderSVG(ctx, dot)
//
// The root file is drawn with a bold outline. Files imported from more than
// one place, which the resolver rejects, are drawn in red so they stand out.
//
// # DOT Format
//
// [ToDOT] output is plain Graphviz source and can be piped to the dot
// command for other formats:
//
//	fcss graph main.reg --format dot | dot -Tpng > imports.png
package importgraph
