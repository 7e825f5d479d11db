// Package nodelink draws pipeline graphs as node-link diagrams with Graphviz.
//
// # Usage
//
// Convert a graph to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT text can also be saved and processed with external Graphviz tools.
// The layout runs left to right, from the Input sentinel to the Output
// sentinel.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
