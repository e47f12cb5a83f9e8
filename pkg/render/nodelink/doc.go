// Package nodelink renders generated graphs as node-link diagrams.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Engine: nodelink.EngineNeato})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// [ToDOT] produces an undirected Graphviz graph (graph G { a -- b }) with
// circular nodes. The layout engine is selected through the graph-level
// layout attribute; force-directed engines (neato, fdp, sfdp) suit random
// graphs, circo suits ring lattices.
//
// Large graphs render slowly; [ToDOT] omits node labels above
// [LabelLimit] nodes.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
