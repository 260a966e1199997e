// Package render draws polygon paths as vector diagrams.
//
// # Overview
//
// Every path is drawn in its own square cell: the n vertices of the regular
// polygon sit on a circle inside the cell, the path is a closed polyline
// through them in visiting order, and the cell is labeled with the path's
// jump digits. [SVG] lays the cells out in a square grid, one document for a
// whole enumeration; [ShapeSVG] renders a single path.
//
//	paths, _ := polypath.FindPaths(6)
//	svg := render.SVG(paths)
//	os.WriteFile("output6.svg", svg, 0o644)
//
// # Styles
//
// A [Style] controls how the pieces of a cell are drawn. [Simple] is the
// classic look (white framed cells on a grey background, red vertex dots);
// [Outline] draws hollow vertices and a lighter frame. Use [StyleByName] to
// resolve a style from a flag value.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x zoom
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders a path as a Graphviz graph with pinned
// vertex positions.
//
// [nodelink]: github.com/matzehuels/polypath/pkg/render/nodelink
package render
