package perm

import (
	"fmt"
	"slices"
)

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	if n <= 0 {
		return []int{}
	}
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n! (n factorial), the product 1 × 2 × ... × n.
// For n <= 1, Factorial returns 1.
//
// Note that factorials grow extremely fast: 21! overflows a 64-bit int.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// Decode returns the visit order of n vertices identified by rank.
//
// The returned slice always starts with 0 and is followed by a permutation of
// {1, …, n-1}. Every rank in [0, (n-1)!) yields a distinct order.
//
// A rank outside that range is a caller bug: Decode panics rather than
// returning an error.
func Decode(rank, n int) []int {
	if n < 1 {
		panic(fmt.Sprintf("perm: invalid vertex count %d", n))
	}
	total := Factorial(n - 1)
	if rank < 0 || rank >= total {
		panic(fmt.Sprintf("perm: rank %d out of range [0, %d)", rank, total))
	}

	points := Seq(n)[1:]
	visits := make([]int, 1, n)

	for radix := n - 1; radix >= 1; radix-- {
		digit := rank % radix
		rank /= radix
		visits = append(visits, points[digit])
		points = slices.Delete(points, digit, digit+1)
	}
	return visits
}

// Rank returns the rank that [Decode] maps to visits.
//
// It returns an error if visits does not start with 0 or is not a
// permutation of [0, len(visits)).
func Rank(visits []int) (int, error) {
	n := len(visits)
	if n == 0 {
		return 0, fmt.Errorf("perm: empty visit order")
	}
	if visits[0] != 0 {
		return 0, fmt.Errorf("perm: visit order must start with 0, got %d", visits[0])
	}

	points := Seq(n)[1:]
	rank, weight := 0, 1
	for i, v := range visits[1:] {
		digit := slices.Index(points, v)
		if digit < 0 {
			return 0, fmt.Errorf("perm: vertex %d at position %d is repeated or out of range", v, i+1)
		}
		rank += digit * weight
		weight *= n - 1 - i
		points = slices.Delete(points, digit, digit+1)
	}
	return rank, nil
}
