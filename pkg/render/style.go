package render

import (
	"bytes"
	"fmt"
	"strings"
)

// Style defines the visual appearance of a rendered grid.
// Implementations control how the background and each cell's pieces are drawn.
type Style interface {
	// Name identifies the style on the command line.
	Name() string
	// RenderBackground writes the shape behind all cells.
	RenderBackground(buf *bytes.Buffer, width, height int)
	// RenderFrame writes the cell border.
	RenderFrame(buf *bytes.Buffer, c Cell)
	// RenderLabel writes the cell's label text.
	RenderLabel(buf *bytes.Buffer, c Cell)
	// RenderPath writes the closed polyline through the cell's vertices.
	RenderPath(buf *bytes.Buffer, c Cell)
	// RenderVertices writes the vertex markers, including the start marker.
	RenderVertices(buf *bytes.Buffer, c Cell)
}

// Cell contains all data needed to draw one path.
type Cell struct {
	X, Y   int     // Top-left corner
	Size   int     // Width and height in pixels
	Label  string  // Display text
	Points []Point // Vertex positions, indexed by vertex
	Order  []int   // Visit order, starting at vertex 0
}

// Polyline returns the "x,y x,y ..." point list through the visit order,
// closing back at the first vertex.
func (c Cell) Polyline() string {
	if len(c.Order) == 0 {
		return ""
	}
	var b strings.Builder
	for i, v := range c.Order {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d,%d", c.Points[v].X, c.Points[v].Y)
	}
	start := c.Points[c.Order[0]]
	fmt.Fprintf(&b, " %d,%d", start.X, start.Y)
	return b.String()
}

// Simple draws white framed cells on a grey background with red vertex dots.
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) RenderBackground(buf *bytes.Buffer, w, h int) {
	fmt.Fprintf(buf, `<rect fill="#999" stroke="#000" x="0" y="0" width="%d" height="%d"/>`+"\n", w, h)
}

func (Simple) RenderFrame(buf *bytes.Buffer, c Cell) {
	fmt.Fprintf(buf, `<rect fill="#fff" stroke="#000" x="%d" y="%d" width="%d" height="%d"/>`+"\n", c.X, c.Y, c.Size, c.Size)
}

func (Simple) RenderLabel(buf *bytes.Buffer, c Cell) {
	fmt.Fprintf(buf, `<text x="%d" y="%d">%s</text>`+"\n", c.X+10, c.Y+15, escapeText(c.Label))
}

func (Simple) RenderPath(buf *bytes.Buffer, c Cell) {
	fmt.Fprintf(buf, `<polyline points="%s" stroke="black" stroke-width="3" fill="none" />`+"\n", c.Polyline())
}

func (Simple) RenderVertices(buf *bytes.Buffer, c Cell) {
	for _, p := range c.Points {
		fmt.Fprintf(buf, `<circle cx="%d" cy="%d" r="5" fill="red" />`+"\n", p.X, p.Y)
	}
	if len(c.Points) > 0 {
		fmt.Fprintf(buf, `<circle cx="%d" cy="%d" r="3" fill="white" />`+"\n", c.Points[0].X, c.Points[0].Y)
	}
}

// Outline draws hollow vertices and a thin frame on a white background.
type Outline struct{}

func (Outline) Name() string { return "outline" }

func (Outline) RenderBackground(buf *bytes.Buffer, w, h int) {
	fmt.Fprintf(buf, `<rect fill="#fff" x="0" y="0" width="%d" height="%d"/>`+"\n", w, h)
}

func (Outline) RenderFrame(buf *bytes.Buffer, c Cell) {
	fmt.Fprintf(buf, `<rect fill="none" stroke="#ccc" stroke-width="1" x="%d" y="%d" width="%d" height="%d"/>`+"\n", c.X, c.Y, c.Size, c.Size)
}

func (Outline) RenderLabel(buf *bytes.Buffer, c Cell) {
	fmt.Fprintf(buf, `<text x="%d" y="%d" font-family="monospace" font-size="12" fill="#555">%s</text>`+"\n",
		c.X+10, c.Y+15, escapeText(c.Label))
}

func (Outline) RenderPath(buf *bytes.Buffer, c Cell) {
	fmt.Fprintf(buf, `<polyline points="%s" stroke="#333" stroke-width="2" stroke-linejoin="round" fill="none" />`+"\n", c.Polyline())
}

func (Outline) RenderVertices(buf *bytes.Buffer, c Cell) {
	for i, p := range c.Points {
		fill := "#fff"
		if i == 0 {
			fill = "#333"
		}
		fmt.Fprintf(buf, `<circle cx="%d" cy="%d" r="4" fill="%s" stroke="#333" stroke-width="1.5" />`+"\n", p.X, p.Y, fill)
	}
}

// Styles lists the available styles by name.
var Styles = []Style{Simple{}, Outline{}}

// StyleByName resolves a style name. The empty string selects [Simple].
func StyleByName(name string) (Style, error) {
	if name == "" {
		return Simple{}, nil
	}
	for _, s := range Styles {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown style %q (valid: %s)", name, strings.Join(StyleNames(), ", "))
}

// StyleNames returns the names of [Styles].
func StyleNames() []string {
	names := make([]string, len(Styles))
	for i, s := range Styles {
		names[i] = s.Name()
	}
	return names
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string { return textEscaper.Replace(s) }
