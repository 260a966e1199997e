package render

import (
	"math"
)

// DefaultScale is the circumradius of the polygon in pixels. A cell is
// 4*scale pixels wide.
const DefaultScale = 50

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// Vertices returns the pixel positions of the n vertices of a regular polygon
// with circumradius scale centered at (cx, cy). Vertex 0 is at the top and
// indices increase clockwise.
func Vertices(n, scale, cx, cy int) []Point {
	pts := make([]Point, n)
	for k := range n {
		a := 2 * math.Pi * float64(k) / float64(n)
		pts[k] = Point{
			X: int(math.Round(math.Sin(a)*float64(scale))) + cx,
			Y: int(math.Round(-math.Cos(a)*float64(scale))) + cy,
		}
	}
	return pts
}

// GridSide returns the number of cells per row for a square grid holding
// count cells.
func GridSide(count int) int {
	if count <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(float64(count))))
}
