// Package editdistance implements the classical two-row dynamic-programming
// Levenshtein distance. It is the oracle the automaton package is tested
// against, not a dependency of it: automaton never imports this package.
package editdistance

import "github.com/aaw/levfuzzy/alphabet"

// Distance returns the Levenshtein edit distance between a and b: the
// minimum number of single-element insertions, deletions, and substitutions
// needed to turn a into b.
func Distance[C any](a, b []C, alpha alphabet.Interface[C]) int {
	la, lb := alpha.Len(a), alpha.Len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	if sequencesEqual(a, b, alpha) {
		return 0
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		ai := alpha.Get(a, i-1)
		for j := 1; j <= lb; j++ {
			cost := 1
			if alpha.Compare(ai, alpha.Get(b, j-1)) == 0 {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

func sequencesEqual[C any](a, b []C, alpha alphabet.Interface[C]) bool {
	la, lb := alpha.Len(a), alpha.Len(b)
	if la != lb {
		return false
	}
	for i := 0; i < la; i++ {
		if alpha.Compare(alpha.Get(a, i), alpha.Get(b, i)) != 0 {
			return false
		}
	}
	return true
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
