package polypath

// Encode converts a visit order into its jump sequence.
//
// jump[i] is the forward distance from visits[i] to visits[i+1] modulo n; the
// last jump returns from visits[n-1] to visits[0]. When visits is a
// permutation of [0, n) every jump lies in [1, n) and the result passes
// [Validate].
func Encode(visits []int) JumpSequence {
	n := len(visits)
	jumps := make(JumpSequence, n)
	for i := range visits {
		next := visits[(i+1)%n]
		jumps[i] = (n + next - visits[i]) % n
	}
	return jumps
}

// Validate reports whether s encodes a Hamiltonian cycle on len(s) points.
//
// Starting at vertex 0, each jump is added modulo n. Every position reached
// before the final step must be new (and not 0), and the final step must land
// on 0 again. Jumps outside [1, n) are rejected.
func Validate(s JumpSequence) bool {
	n := len(s)
	if n == 0 {
		return false
	}
	visited := make([]bool, n)
	visited[0] = true
	pos := 0
	for i, j := range s {
		if j < 1 || j >= n {
			return false
		}
		pos = (pos + j) % n
		if i == n-1 {
			return pos == 0
		}
		if visited[pos] {
			return false
		}
		visited[pos] = true
	}
	return false
}

// ValidateVisits reports whether visits is a permutation of [0, n) with at
// least MinSize vertices.
func ValidateVisits(visits []int) bool {
	n := len(visits)
	if n < MinSize {
		return false
	}
	seen := make([]bool, n)
	for _, v := range visits {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
