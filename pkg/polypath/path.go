package polypath

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// JumpSequence holds the forward step, modulo n, between consecutive visited
// vertices of a closed path. The last entry closes the path back to the first
// vertex, so len(s) == n.
type JumpSequence []int

// Clone returns a copy of s.
func (s JumpSequence) Clone() JumpSequence {
	return slices.Clone(s)
}

// Compare orders jump sequences lexicographically.
func (s JumpSequence) Compare(o JumpSequence) int {
	return slices.Compare(s, o)
}

// PolyPath is one distinct closed path through the corners of a regular
// polygon. Path is the canonical jump sequence of its symmetry orbit.
//
// PolyPath values returned by this package are never modified after
// construction and must be treated as read-only.
type PolyPath struct {
	Size int          `json:"size"`
	Path JumpSequence `json:"path"`
}

// Compare orders paths by size, then lexicographically by jump sequence.
func Compare(a, b PolyPath) int {
	if c := cmp.Compare(a.Size, b.Size); c != 0 {
		return c
	}
	return a.Path.Compare(b.Path)
}

// Equal reports whether p and o have the same size and sequence.
func (p PolyPath) Equal(o PolyPath) bool {
	return Compare(p, o) == 0
}

// Key returns a string that identifies p by value, suitable as a map key.
func (p PolyPath) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(p.Size))
	b.WriteByte(':')
	for i, j := range p.Path {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(j))
	}
	return b.String()
}

// Label encodes the jump sequence as base-36 digits, one per jump.
// Polygons with up to 36 vertices get a label of exactly Size characters.
func (p PolyPath) Label() string {
	var b strings.Builder
	for _, j := range p.Path {
		b.WriteString(strconv.FormatInt(int64(j), 36))
	}
	return b.String()
}

// Vertices returns the visit order drawn by p, starting at vertex 0.
// The closing return to vertex 0 is not repeated.
func (p PolyPath) Vertices() []int {
	if len(p.Path) == 0 {
		return nil
	}
	verts := make([]int, 0, len(p.Path))
	pos := 0
	for _, j := range p.Path[:len(p.Path)-1] {
		verts = append(verts, pos)
		pos = (pos + j) % p.Size
	}
	return append(verts, pos)
}

// String implements fmt.Stringer.
func (p PolyPath) String() string {
	return strconv.Itoa(p.Size) + "-gon " + p.Label()
}
