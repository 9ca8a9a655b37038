package automaton

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/aaw/levfuzzy/alphabet"
)

// ErrNegativeLimit is returned when a negative edit-distance bound is
// passed to a compile entry point. An edit-distance bound below zero is
// meaningless, surfaced here as an error rather than a panic since it is the
// one input an ordinary caller can trivially get wrong.
var ErrNegativeLimit = errors.New("automaton: limit must be >= 0")

// edge is one explicit, labelled DFA transition.
type edge[C any] struct {
	c    C
	next int
}

// DFA is an immutable deterministic automaton compiled from a pattern and
// edit-distance bound. A DFA is safe for concurrent read-only use by
// multiple callers once Compile returns it.
type DFA[C any] struct {
	edges     [][]edge[C]
	otherwise []int // -1 means "no otherwise edge"
	final     []bool
}

// Compile runs subset construction over the Levenshtein NDA for
// (pattern, limit) and returns the resulting DFA.
func Compile[C any](limit int, pattern []C, alpha alphabet.Interface[C]) (*DFA[C], error) {
	if limit < 0 {
		return nil, errors.Wrapf(ErrNegativeLimit, "limit=%d", limit)
	}
	n := buildNDA(pattern, limit, alpha)
	c := &compiler[C]{nda: n, alpha: alpha, ids: make(map[string]int)}
	start := c.saturate([]ndaState{{0, 0}})
	c.stateOf(start)
	return &DFA[C]{edges: c.edges, otherwise: c.otherwise, final: c.final}, nil
}

// compiler holds the ephemeral state of one subset-construction run: the
// StateSet -> DfaId map and the parallel output slices being built up.
// It is local to one Compile call and discarded afterwards.
type compiler[C any] struct {
	nda   *nda[C]
	alpha alphabet.Interface[C]

	ids map[string]int // sorted-stateset key -> dfa id

	edges     [][]edge[C]
	otherwise []int
	final     []bool
}

// stateOf returns the DFA id for state set S, allocating and recursing into
// it on first sight. S must already be ε-closed.
func (c *compiler[C]) stateOf(s []ndaState) int {
	key := stateSetKey(s)
	if id, ok := c.ids[key]; ok {
		return id
	}
	id := len(c.edges)
	c.ids[key] = id
	c.edges = append(c.edges, nil)
	c.otherwise = append(c.otherwise, -1)
	c.final = append(c.final, c.isFinal(s))

	for _, ch := range c.charSet(s) {
		dest := c.step(s, ch)
		if len(dest) == 0 {
			continue
		}
		destID := c.stateOf(dest)
		c.edges[id] = append(c.edges[id], edge[C]{c: ch, next: destID})
	}
	wildcard := c.stepAny(s)
	if len(wildcard) > 0 {
		c.otherwise[id] = c.stateOf(wildcard)
	}
	return id
}

func (c *compiler[C]) isFinal(s []ndaState) bool {
	for _, st := range s {
		if c.nda.grid[st.i][st.j].success {
			return true
		}
	}
	return false
}

// saturate computes the ε-closure of a state set via a FIFO worklist.
func (c *compiler[C]) saturate(seed []ndaState) []ndaState {
	seen := make(map[ndaState]bool)
	var work []ndaState
	for _, s := range seed {
		if !seen[s] {
			seen[s] = true
			work = append(work, s)
		}
	}
	for i := 0; i < len(work); i++ {
		s := work[i]
		for _, t := range c.nda.grid[s.i][s.j].transitions {
			if t.kind != transEpsilon {
				continue
			}
			ns := ndaState{t.ni, t.nj}
			if !seen[ns] {
				seen[ns] = true
				work = append(work, ns)
			}
		}
	}
	return work
}

// charSet returns the distinct characters appearing as Match labels out of
// any state in s, deduplicated via alpha.Compare and sorted for
// deterministic DFA-edge ordering.
func (c *compiler[C]) charSet(s []ndaState) []C {
	var out []C
	for _, st := range s {
		for _, t := range c.nda.grid[st.i][st.j].transitions {
			if t.kind != transMatch {
				continue
			}
			dup := false
			for _, ex := range out {
				if c.alpha.Compare(ex, t.c) == 0 {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, t.c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return c.alpha.Compare(out[i], out[j]) < 0 })
	return out
}

// step computes δ(S, ch): destinations of Match(ch) transitions plus all
// Any transitions, ε-closed.
func (c *compiler[C]) step(s []ndaState, ch C) []ndaState {
	var dest []ndaState
	for _, st := range s {
		for _, t := range c.nda.grid[st.i][st.j].transitions {
			switch t.kind {
			case transMatch:
				if c.alpha.Compare(t.c, ch) == 0 {
					dest = append(dest, ndaState{t.ni, t.nj})
				}
			case transAny:
				dest = append(dest, ndaState{t.ni, t.nj})
			}
		}
	}
	if len(dest) == 0 {
		return nil
	}
	return c.saturate(dest)
}

// stepAny computes δ(S, *): destinations of Any transitions only, ε-closed.
func (c *compiler[C]) stepAny(s []ndaState) []ndaState {
	var dest []ndaState
	for _, st := range s {
		for _, t := range c.nda.grid[st.i][st.j].transitions {
			if t.kind == transAny {
				dest = append(dest, ndaState{t.ni, t.nj})
			}
		}
	}
	if len(dest) == 0 {
		return nil
	}
	return c.saturate(dest)
}

// stateSetKey produces a hashable, order-independent key for a state set by
// sorting it and joining the (i, j) pairs. This is the simplest correct key
// for a map[string]int, avoiding a custom Set type with its own Equal/Hash.
func stateSetKey(s []ndaState) string {
	sorted := make([]ndaState, len(s))
	copy(sorted, s)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].i != sorted[j].i {
			return sorted[i].i < sorted[j].i
		}
		return sorted[i].j < sorted[j].j
	})
	buf := make([]byte, 0, len(sorted)*8)
	for _, st := range sorted {
		buf = strconv.AppendInt(buf, int64(st.i), 10)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, int64(st.j), 10)
		buf = append(buf, ';')
	}
	return string(buf)
}
