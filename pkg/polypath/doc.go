// Package polypath enumerates the distinct closed paths through the corners
// of a regular polygon.
//
// # Overview
//
// A closed path that visits all n vertices of a regular n-gon exactly once is
// a Hamiltonian cycle on n points. Many such cycles draw the same figure: the
// starting vertex can move around the polygon, the cycle can be walked
// backwards, and the whole drawing can be mirrored. This package collapses
// every family of equivalent cycles into a single [PolyPath].
//
// The pipeline has four steps:
//
//  1. [perm.Decode] turns a rank in [0, (n-1)!) into a visit order starting
//     at vertex 0.
//  2. [Encode] converts the visit order into a [JumpSequence], the forward
//     distance (mod n) between consecutive visits.
//  3. [Canonicalize] picks the lexicographically smallest sequence among all
//     rotations, reversals and mirror images (the orbit).
//  4. [FindPaths] collects the canonical sequences in a set and sorts them.
//
// # Jump Sequences
//
// The square's boundary 0→1→2→3→0 encodes as [1 1 1 1]; the bow-tie
// 0→1→3→2→0 encodes as [1 2 3 2]. A jump sequence is valid when its partial
// sums (mod n) reach every vertex once before returning to 0, see [Validate].
//
// # Usage
//
//	paths, err := polypath.FindPaths(6)
//	if err != nil {
//	    return err
//	}
//	for _, p := range paths {
//	    fmt.Println(p.Label()) // "111111", "111252", ...
//	}
//
// Large polygons can be enumerated in parallel; the result is identical to the
// sequential run:
//
//	paths, err := polypath.FindPathsContext(ctx, 10, polypath.WithWorkers(8))
//
// [perm.Decode]: github.com/matzehuels/polypath/pkg/polypath/perm.Decode
package polypath
