package polypath

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b PolyPath
		want int
	}{
		{"equal", PolyPath{4, JumpSequence{1, 1, 1, 1}}, PolyPath{4, JumpSequence{1, 1, 1, 1}}, 0},
		{"size first", PolyPath{3, JumpSequence{2, 2, 2}}, PolyPath{4, JumpSequence{1, 1, 1, 1}}, -1},
		{"sequence", PolyPath{4, JumpSequence{1, 2, 3, 2}}, PolyPath{4, JumpSequence{1, 1, 1, 1}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
			assert.Equal(t, -tt.want, Compare(tt.b, tt.a))
			assert.Equal(t, tt.want == 0, tt.a.Equal(tt.b))
		})
	}
}

func TestKeyDistinguishesMultiDigitJumps(t *testing.T) {
	a := PolyPath{Size: 12, Path: JumpSequence{1, 11, 1, 11, 1, 11, 1, 11, 1, 11, 1, 11}}
	b := PolyPath{Size: 12, Path: JumpSequence{11, 1, 11, 1, 11, 1, 11, 1, 11, 1, 11, 1}}
	assert.NotEqual(t, a.Key(), b.Key())
	assert.Equal(t, "4:1,2,3,2", PolyPath{Size: 4, Path: JumpSequence{1, 2, 3, 2}}.Key())
}

func TestLabel(t *testing.T) {
	tests := []struct {
		path PolyPath
		want string
	}{
		{PolyPath{3, JumpSequence{1, 1, 1}}, "111"},
		{PolyPath{4, JumpSequence{1, 2, 3, 2}}, "1232"},
		{PolyPath{12, JumpSequence{1, 11, 1, 11, 1, 11, 1, 11, 1, 11, 1, 11}}, "1b1b1b1b1b1b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.path.Label())
	}
}

func TestVertices(t *testing.T) {
	tests := []struct {
		path PolyPath
		want []int
	}{
		{PolyPath{4, JumpSequence{1, 1, 1, 1}}, []int{0, 1, 2, 3}},
		{PolyPath{4, JumpSequence{1, 2, 3, 2}}, []int{0, 1, 3, 2}},
		{PolyPath{5, JumpSequence{2, 2, 2, 2, 2}}, []int{0, 2, 4, 1, 3}},
		{PolyPath{}, nil},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.path.Path), func(t *testing.T) {
			got := tt.path.Vertices()
			assert.Equal(t, tt.want, got)
			if got != nil {
				assert.True(t, slices.Equal(tt.path.Path, Encode(got)), "Encode(Vertices()) should round-trip")
			}
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "4-gon 1232", PolyPath{4, JumpSequence{1, 2, 3, 2}}.String())
}
