package automaton

import "github.com/aaw/levfuzzy/alphabet"

// ndaState is a pair (i, j): i is how much of the pattern has been
// consumed, j is how much of the edit budget has been spent. ε-edges only
// ever increase i or j, so the transition graph restricted to ε-edges is
// acyclic by construction.
type ndaState struct {
	i, j int
}

type transKind uint8

const (
	transMatch transKind = iota
	transAny
	transEpsilon
)

// transition is one outgoing edge of an NDA cell. c is only meaningful
// when kind == transMatch.
type transition[C any] struct {
	kind   transKind
	c      C
	ni, nj int
}

// cell is the set of outgoing transitions from one NDA state, plus whether
// that state is an accepting (Success) state. Success is tracked as a bit
// rather than a transition variant: it never participates in ε-closure or
// char-set computation, so folding it into the transition list would only
// complicate every consumer that walks transitions.
type cell[C any] struct {
	transitions []transition[C]
	success     bool
}

// nda is the (len(pattern)+1) x (limit+1) grid of cells described by the
// NDA builder. It is ephemeral: built, consumed by Compile, discarded.
type nda[C any] struct {
	pattern []C
	limit   int
	grid    [][]cell[C] // grid[i][j]
}

// buildNDA constructs the Levenshtein NDA for (pattern, limit).
func buildNDA[C any](pattern []C, limit int, alpha alphabet.Interface[C]) *nda[C] {
	plen := alpha.Len(pattern)
	grid := make([][]cell[C], plen+1)
	for i := range grid {
		grid[i] = make([]cell[C], limit+1)
	}
	n := &nda[C]{pattern: pattern, limit: limit, grid: grid}

	for i := 0; i < plen; i++ {
		for j := 0; j <= limit; j++ {
			c := alpha.Get(pattern, i)
			n.addMatch(i, j, c, i+1, j, alpha)
			if j < limit {
				n.addAny(i, j, i+1, j+1)     // substitution
				n.addAny(i, j, i, j+1)       // deletion from query
				n.addEpsilon(i, j, i+1, j+1) // insertion into query
			}
		}
	}
	for j := 0; j <= limit; j++ {
		if j < limit {
			n.addAny(plen, j, plen, j+1) // trailing deletions
		}
		n.grid[plen][j].success = true
	}
	return n
}

// The three insert helpers below dedup using alpha.Compare for Match labels
// and plain int equality for the destination pair, so two transitions that
// would behave identically are never stored twice in the same cell.

func (n *nda[C]) addMatch(i, j int, c C, ni, nj int, alpha alphabet.Interface[C]) {
	cl := &n.grid[i][j]
	for _, t := range cl.transitions {
		if t.kind == transMatch && t.ni == ni && t.nj == nj && alpha.Compare(t.c, c) == 0 {
			return
		}
	}
	cl.transitions = append(cl.transitions, transition[C]{kind: transMatch, c: c, ni: ni, nj: nj})
}

func (n *nda[C]) addAny(i, j, ni, nj int) {
	cl := &n.grid[i][j]
	for _, t := range cl.transitions {
		if t.kind == transAny && t.ni == ni && t.nj == nj {
			return
		}
	}
	cl.transitions = append(cl.transitions, transition[C]{kind: transAny, ni: ni, nj: nj})
}

func (n *nda[C]) addEpsilon(i, j, ni, nj int) {
	cl := &n.grid[i][j]
	for _, t := range cl.transitions {
		if t.kind == transEpsilon && t.ni == ni && t.nj == nj {
			return
		}
	}
	cl.transitions = append(cl.transitions, transition[C]{kind: transEpsilon, ni: ni, nj: nj})
}
