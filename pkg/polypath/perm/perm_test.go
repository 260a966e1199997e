package perm

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeq(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3}, Seq(4))
	assert.Empty(t, Seq(0))
	assert.Empty(t, Seq(-2))
}

func TestFactorial(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{-1, 1}, {0, 1}, {1, 1}, {2, 2}, {5, 120}, {8, 40320}, {12, 479001600},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Factorial(tt.n), "Factorial(%d)", tt.n)
	}
}

func TestDecodeKnownRanks(t *testing.T) {
	tests := []struct {
		rank, n int
		want    []int
	}{
		{0, 3, []int{0, 1, 2}},
		{1, 3, []int{0, 2, 1}},
		{0, 4, []int{0, 1, 2, 3}},
		{1, 4, []int{0, 2, 1, 3}},
		{2, 4, []int{0, 3, 1, 2}},
		{5, 4, []int{0, 3, 2, 1}},
		{0, 1, []int{0}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("rank%d_n%d", tt.rank, tt.n), func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.rank, tt.n))
		})
	}
}

func TestDecodeIsBijection(t *testing.T) {
	for n := 3; n <= 7; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			total := Factorial(n - 1)
			seen := make(map[string]bool, total)
			for rank := 0; rank < total; rank++ {
				visits := Decode(rank, n)
				require.Len(t, visits, n)
				require.Equal(t, 0, visits[0], "rank %d must start at vertex 0", rank)

				sorted := slices.Sorted(slices.Values(visits))
				require.Equal(t, Seq(n), sorted, "rank %d is not a permutation", rank)

				key := fmt.Sprint(visits)
				require.False(t, seen[key], "rank %d repeats %v", rank, visits)
				seen[key] = true
			}
			assert.Len(t, seen, total)
		})
	}
}

func TestDecodeOutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { Decode(-1, 4) })
	assert.Panics(t, func() { Decode(6, 4) })
	assert.Panics(t, func() { Decode(0, 0) })
	assert.NotPanics(t, func() { Decode(5, 4) })
}

func TestRankInvertsDecode(t *testing.T) {
	for n := 1; n <= 7; n++ {
		for rank := 0; rank < Factorial(n-1); rank++ {
			got, err := Rank(Decode(rank, n))
			require.NoError(t, err)
			require.Equal(t, rank, got, "n=%d", n)
		}
	}
}

func TestRankErrors(t *testing.T) {
	tests := []struct {
		name   string
		visits []int
	}{
		{"empty", nil},
		{"not starting at zero", []int{1, 0, 2}},
		{"repeated vertex", []int{0, 1, 1}},
		{"out of range", []int{0, 1, 5}},
		{"negative", []int{0, -1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Rank(tt.visits)
			assert.Error(t, err)
		})
	}
}
