package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/polypath/pkg/polypath"
)

const (
	xmlHeader  = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n"
	svgDoctype = `<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">` + "\n"
)

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	scale  int
	labels bool
	style  Style
}

// WithScale sets the polygon circumradius in pixels. Values below 1 keep the default.
func WithScale(s int) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithLabels toggles the jump label in the corner of each cell.
func WithLabels(on bool) Option { return func(r *renderer) { r.labels = on } }

// WithStyle sets the drawing style. A nil style keeps the default.
func WithStyle(s Style) Option {
	return func(r *renderer) {
		if s != nil {
			r.style = s
		}
	}
}

func newRenderer(opts ...Option) renderer {
	r := renderer{scale: DefaultScale, labels: true, style: Simple{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// CellSize returns the width of one cell for the given scale.
func CellSize(scale int) int { return 4 * scale }

// SVG renders paths as a single document laid out on a square grid of
// ceil(sqrt(len(paths))) cells per row, in the given order.
func SVG(paths []polypath.PolyPath, opts ...Option) []byte {
	r := newRenderer(opts...)
	cell := CellSize(r.scale)
	side := GridSide(len(paths))
	total := cell * side

	var buf bytes.Buffer
	writeHeader(&buf, total, total)
	r.style.RenderBackground(&buf, total, total)
	for i, p := range paths {
		r.renderCell(&buf, p, (i%side)*cell, (i/side)*cell)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// ShapeSVG renders a single path as a stand-alone document one cell in size.
func ShapeSVG(p polypath.PolyPath, opts ...Option) []byte {
	r := newRenderer(opts...)
	cell := CellSize(r.scale)

	var buf bytes.Buffer
	writeHeader(&buf, cell, cell)
	r.renderCell(&buf, p, 0, 0)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeHeader(buf *bytes.Buffer, w, h int) {
	buf.WriteString(xmlHeader)
	buf.WriteString(svgDoctype)
	fmt.Fprintf(buf, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`+"\n",
		w, h, w, h)
}

func (r renderer) renderCell(buf *bytes.Buffer, p polypath.PolyPath, x, y int) {
	c := Cell{
		X: x, Y: y,
		Size:   CellSize(r.scale),
		Label:  p.Label(),
		Points: Vertices(p.Size, r.scale, x+2*r.scale, y+2*r.scale),
		Order:  p.Vertices(),
	}
	r.style.RenderFrame(buf, c)
	if r.labels {
		r.style.RenderLabel(buf, c)
	}
	r.style.RenderPath(buf, c)
	r.style.RenderVertices(buf, c)
}
