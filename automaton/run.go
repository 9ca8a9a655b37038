package automaton

import "github.com/aaw/levfuzzy/alphabet"

// MatchWith walks q through the DFA from its start state (id 0) and
// reports whether the resulting state is final. Cost is O(len(q)); the
// per-character edge lookup is O(deg) where deg is bounded by the number of
// distinct Match labels reachable from the current state set, at most
// len(pattern).
func (d *DFA[C]) MatchWith(q []C, alpha alphabet.Interface[C]) bool {
	state := 0
	n := alpha.Len(q)
	for i := 0; i < n; i++ {
		c := alpha.Get(q, i)
		next, ok := d.step(state, c, alpha)
		if !ok {
			return false
		}
		state = next
	}
	return d.final[state]
}

// step looks up the explicit edge for c at state, falling back to the
// otherwise edge. ok is false iff the query must be rejected immediately.
func (d *DFA[C]) step(state int, c C, alpha alphabet.Interface[C]) (next int, ok bool) {
	for _, e := range d.edges[state] {
		if alpha.Compare(e.c, c) == 0 {
			return e.next, true
		}
	}
	if d.otherwise[state] >= 0 {
		return d.otherwise[state], true
	}
	return 0, false
}

// Final reports whether state is an accepting state. Exposed for the trie
// co-traversal, which needs to test finality without re-running MatchWith.
func (d *DFA[C]) Final(state int) bool {
	return d.final[state]
}

// Step is the single-character transition used by the trie co-traversal:
// given the current DFA state and the next trie edge label c, it returns
// the new state, or ok == false if that edge is blocked and the subtree
// should be pruned.
func (d *DFA[C]) Step(state int, c C, alpha alphabet.Interface[C]) (next int, ok bool) {
	return d.step(state, c, alpha)
}

// NumStates returns the number of DFA states, mostly useful for debugging
// and tests.
func (d *DFA[C]) NumStates() int {
	return len(d.final)
}
