// Package perm maps integer ranks to vertex visiting orders.
//
// # Overview
//
// A closed path through the n corners of a polygon is determined by the order
// in which the corners are visited. Fixing vertex 0 as the first visit leaves
// (n-1)! orders, one for every permutation of {1, …, n-1}. This package
// provides a bijection between the integers [0, (n-1)!) and those orders:
//
//   - [Decode]: rank → visit order (Lehmer code decode)
//   - [Rank]: visit order → rank (the inverse)
//   - [Factorial]: size of the rank space
//   - [Seq]: helper for building index sequences
//
// # Encoding
//
// The rank is read as a mixed-radix number with decreasing radices
// n-1, n-2, …, 1. Each digit selects, by position, one of the points that
// have not been placed yet:
//
//	Decode(0, 4) = [0 1 2 3]
//	Decode(1, 4) = [0 2 1 3]
//	Decode(5, 4) = [0 3 2 1]
//
// Digits are taken least-significant first, so neighbouring ranks differ in
// the second visited vertex rather than the last one.
package perm
