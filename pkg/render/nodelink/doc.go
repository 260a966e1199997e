// Package nodelink renders polygon paths as Graphviz node-link diagrams.
//
// # Overview
//
// Each vertex of the polygon becomes a node pinned to its position on the
// circumcircle, and each jump of the path becomes an edge. Because positions
// are fixed, the neato engine is used with its no-layout flag so Graphviz only
// routes and draws.
//
// # Usage
//
//	dot := nodelink.ToDOT(p, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [GridDOT] places a whole enumeration in one graph, laid out on the same
// square grid as the SVG renderer.
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
