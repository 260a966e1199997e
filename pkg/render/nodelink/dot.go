package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/polypath/pkg/polypath"
	"github.com/matzehuels/polypath/pkg/render"
)

// Options configures node-link diagram generation.
type Options struct {
	// Radius is the circumradius in inches. Zero selects 1.5.
	Radius float64

	// Numbered labels every node with its vertex index.
	// When false, nodes are small unlabeled points.
	Numbered bool
}

// ToDOT converts a path to Graphviz DOT format with every vertex pinned to
// its place on the circumcircle. Edges follow the visit order and are labeled
// with the jump length.
func ToDOT(p polypath.PolyPath, opts Options) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "graph %q {\n", p.Label())
	writeAttrs(&buf, opts)
	writeVertices(&buf, "v", p, opts.radius(), 0, 0, opts.Numbered)
	buf.WriteString("\n")
	writeEdges(&buf, "v", p)
	buf.WriteString("}\n")
	return buf.String()
}

// GridDOT places every path in one graph on a square grid of
// ceil(sqrt(len(paths))) columns, in order, each with a plaintext label
// above its polygon.
func GridDOT(paths []polypath.PolyPath, opts Options) string {
	r := opts.radius()
	pitch := 3 * r
	side := render.GridSide(len(paths))

	var buf bytes.Buffer
	buf.WriteString("graph \"polypath\" {\n")
	writeAttrs(&buf, opts)
	for i, p := range paths {
		cx := float64(i%side) * pitch
		cy := -float64(i/side) * pitch
		prefix := fmt.Sprintf("p%d_v", i)
		fmt.Fprintf(&buf, "  p%d_label [shape=plaintext, label=%q, pos=\"%.3f,%.3f!\"];\n",
			i, p.Label(), clean(cx), clean(cy+1.3*r))
		writeVertices(&buf, prefix, p, r, cx, cy, opts.Numbered)
		writeEdges(&buf, prefix, p)
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.String()
}

func (o Options) radius() float64 {
	if o.Radius <= 0 {
		return 1.5
	}
	return o.Radius
}

func writeAttrs(buf *bytes.Buffer, opts Options) {
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	if opts.Numbered {
		buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fixedsize=true, width=0.3, fontsize=10];\n")
	} else {
		buf.WriteString("  node [shape=point, width=0.12, color=red];\n")
	}
	buf.WriteString("  edge [penwidth=2, fontsize=9, fontcolor=\"#555555\"];\n")
	buf.WriteString("\n")
}

func writeVertices(buf *bytes.Buffer, prefix string, p polypath.PolyPath, r, cx, cy float64, numbered bool) {
	for k := range p.Size {
		a := 2 * math.Pi * float64(k) / float64(p.Size)
		x, y := clean(cx+r*math.Sin(a)), clean(cy+r*math.Cos(a))
		label := ""
		if numbered {
			label = strconv.Itoa(k)
		}
		fmt.Fprintf(buf, "  %s%d [label=%q, pos=\"%.3f,%.3f!\"];\n", prefix, k, label, x, y)
	}
}

func writeEdges(buf *bytes.Buffer, prefix string, p polypath.PolyPath) {
	verts := p.Vertices()
	for i, j := range p.Path {
		from := verts[i]
		to := (from + j) % p.Size
		fmt.Fprintf(buf, "  %s%d -- %s%d [label=\"%d\"];\n", prefix, from, prefix, to, j)
	}
}

// clean maps values that would print as -0.000 to zero.
func clean(v float64) float64 {
	if math.Abs(v) < 5e-4 {
		return 0
	}
	return v
}

// RenderSVG renders a DOT graph to SVG using the neato engine so pinned
// positions are kept. Returns the SVG bytes ready for display or further
// conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

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

// normalizeViewBox rewrites the root tag so the drawing scales with its
// container instead of carrying Graphviz's point-based size.
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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires rsvg-convert, see [render.ToPDF].
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
//
// Requires rsvg-convert, see [render.ToPDF].
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
