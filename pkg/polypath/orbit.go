package polypath

import "slices"

// Rotate returns s cyclically shifted left by k positions, which is the same
// cycle started k visits later. k may be negative or exceed len(s).
func Rotate(s JumpSequence, k int) JumpSequence {
	n := len(s)
	if n == 0 {
		return JumpSequence{}
	}
	k = ((k % n) + n) % n
	out := make(JumpSequence, 0, n)
	out = append(out, s[k:]...)
	return append(out, s[:k]...)
}

// Reverse returns the jumps of s in reverse order.
//
// Walking a cycle backwards negates every step and reverses their order;
// combined with [Mirror] this yields the reversed traversal of the mirrored
// polygon. Both transforms are in the orbit, so either view gives the same
// canonical form.
func Reverse(s JumpSequence) JumpSequence {
	out := s.Clone()
	slices.Reverse(out)
	return out
}

// Mirror returns s reflected across the polygon's axis through vertex 0:
// every jump j becomes (n - j) mod n.
func Mirror(s JumpSequence) JumpSequence {
	n := len(s)
	out := make(JumpSequence, n)
	for i, j := range s {
		out[i] = (n - j) % n
	}
	return out
}

// Orbit returns every distinct sequence reachable from s by rotation,
// reversal and mirroring, sorted lexicographically. The orbit has at most
// 4·len(s) members; symmetric paths have fewer.
func Orbit(s JumpSequence) []JumpSequence {
	seen := make(map[string]bool, 4*len(s))
	var orbit []JumpSequence

	bases := []JumpSequence{s, Reverse(s), Mirror(s), Mirror(Reverse(s))}
	for _, base := range bases {
		for k := range base {
			r := Rotate(base, k)
			key := PolyPath{Size: len(r), Path: r}.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			orbit = append(orbit, r)
		}
	}

	slices.SortFunc(orbit, JumpSequence.Compare)
	return orbit
}

// Canonicalize returns the lexicographically smallest member of the orbit of
// s. Canonicalizing any member of the orbit yields the same sequence, and
// canonicalizing a canonical sequence returns it unchanged.
func Canonicalize(s JumpSequence) JumpSequence {
	if len(s) == 0 {
		return JumpSequence{}
	}
	var best JumpSequence
	for _, base := range []JumpSequence{s, Reverse(s), Mirror(s), Mirror(Reverse(s))} {
		for k := range base {
			if r := Rotate(base, k); best == nil || r.Compare(best) < 0 {
				best = r
			}
		}
	}
	return best
}
