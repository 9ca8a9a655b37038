package levfuzzy

import (
	"fmt"

	"github.com/aaw/levfuzzy/alphabet"
	"github.com/aaw/levfuzzy/automaton"
)

// acceptHandler decides what a node whose automaton state is final
// contributes to a Suggest result set, and whether matching should stop
// descending into that node's subtree once it has matched.
type acceptHandler[C comparable, V any] func(n *trieNode[C, V], key []C, limit int) (results []Pair[C, V], halt bool)

// stopAtMatch yields only the node's own value and keeps exploring its
// subtree for other matches further down.
func stopAtMatch[C comparable, V any](n *trieNode[C, V], key []C, limit int) ([]Pair[C, V], bool) {
	if n.value == nil {
		return nil, false
	}
	k := make([]C, len(key))
	copy(k, key)
	return []Pair[C, V]{{Key: k, Value: *n.value}}, false
}

// expandSubtree yields the node's value and every value in its subtree, then
// stops descending further: once a prefix has matched, every key it
// prefixes is a suggestion regardless of what comes after the match point.
func expandSubtree[C comparable, V any](alpha alphabet.Interface[C]) acceptHandler[C, V] {
	return func(n *trieNode[C, V], key []C, limit int) ([]Pair[C, V], bool) {
		var results []Pair[C, V]
		_ = walk(n, key, alpha, func(k []C, v V) error {
			kk := make([]C, len(k))
			copy(kk, k)
			results = append(results, Pair[C, V]{Key: kk, Value: v})
			if limit >= 0 && len(results) >= limit {
				return errHalt
			}
			return nil
		})
		if limit >= 0 && len(results) > limit {
			results = results[:limit]
		}
		return results, true
	}
}

// suggestAtDistance co-traverses root and dfa starting from state 0 at
// startKey, calling process at every node whose current DFA state is
// final. Children are visited in alpha's deterministic order and pruned
// wherever dfa.Step rejects the edge label.
func suggestAtDistance[C comparable, V any](process acceptHandler[C, V], root *trieNode[C, V], startKey []C, dfa *automaton.DFA[C], alpha alphabet.Interface[C], limit int) []Pair[C, V] {
	var results []Pair[C, V]
	var visit func(n *trieNode[C, V], state int, key []C) bool
	visit = func(n *trieNode[C, V], state int, key []C) bool {
		if dfa.Final(state) {
			rs, halt := process(n, key, limit-len(results))
			results = append(results, rs...)
			if limit >= 0 && len(results) >= limit {
				return false
			}
			if halt {
				return true
			}
		}
		for _, c := range sortedKeys(n.children, alpha) {
			next, ok := dfa.Step(state, c, alpha)
			if !ok {
				continue
			}
			nk := make([]C, len(key)+1)
			copy(nk, key)
			nk[len(key)] = c
			if !visit(n.children[c], next, nk) {
				return false
			}
		}
		return true
	}
	visit(root, 0, startKey)
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// suggestByIncreasingDistance compiles one automaton per edit distance from
// 0 up to d and runs suggestAtDistance against each in turn, so that every
// result already produced at a smaller distance is skipped and each round
// contributes only the matches exactly that far from query. The first limit
// results are therefore the closest matches, same as a single combined
// distance-0..d search but built entirely out of the DFA machinery that
// Retrieve already uses.
func suggestByIncreasingDistance[C comparable, V any](process acceptHandler[C, V], root *trieNode[C, V], startKey []C, query []C, d int8, limit int, alpha alphabet.Interface[C]) []Pair[C, V] {
	seen := make(map[string]bool)
	var results []Pair[C, V]
	for dist := 0; dist <= int(d); dist++ {
		dfa, err := automaton.Compile(dist, query, alpha)
		if err != nil {
			panic(err)
		}
		round := suggestAtDistance(process, root, startKey, dfa, alpha, -1)
		for _, p := range round {
			k := fmt.Sprint(p.Key)
			if seen[k] {
				continue
			}
			seen[k] = true
			results = append(results, p)
			if limit >= 0 && len(results) >= limit {
				return results
			}
		}
	}
	return results
}

// Suggest returns up to limit pairs whose keys are within edit distance d of
// key, ordered with closer matches first.
func (ix *Index[C, V]) Suggest(key []C, d int8, limit int) []Pair[C, V] {
	return suggestByIncreasingDistance[C, V](stopAtMatch[C, V], ix.root, nil, key, d, limit, ix.alpha)
}

// SuggestSuffixes returns up to limit pairs whose keys have a prefix within
// edit distance d of key.
func (ix *Index[C, V]) SuggestSuffixes(key []C, d int8, limit int) []Pair[C, V] {
	return suggestByIncreasingDistance[C, V](expandSubtree[C, V](ix.alpha), ix.root, nil, key, d, limit, ix.alpha)
}

// SuggestAfterExactPrefix returns up to limit pairs that share an exact
// prefix of length p with key and are within edit distance d of key beyond
// that prefix.
func (ix *Index[C, V]) SuggestAfterExactPrefix(key []C, p int, d int8, limit int) []Pair[C, V] {
	curr, prefix, ok := ix.descend(key, p)
	if !ok {
		return nil
	}
	return suggestByIncreasingDistance[C, V](stopAtMatch[C, V], curr, prefix, key[p:], d, limit, ix.alpha)
}

// SuggestSuffixesAfterExactPrefix combines SuggestAfterExactPrefix and
// SuggestSuffixes: an exact prefix of length p, then fuzzy matching over the
// remainder with suffix expansion.
func (ix *Index[C, V]) SuggestSuffixesAfterExactPrefix(key []C, p int, d int8, limit int) []Pair[C, V] {
	curr, prefix, ok := ix.descend(key, p)
	if !ok {
		return nil
	}
	return suggestByIncreasingDistance[C, V](expandSubtree[C, V](ix.alpha), curr, prefix, key[p:], d, limit, ix.alpha)
}

// descend walks p elements of key down from the root, returning the node
// reached and a copy of the prefix traversed, or ok == false if key's
// first p elements are not all present in the trie.
func (ix *Index[C, V]) descend(key []C, p int) (curr *trieNode[C, V], prefix []C, ok bool) {
	curr = ix.root
	for _, c := range key[:p] {
		child, exists := curr.children[c]
		if !exists {
			return nil, nil, false
		}
		curr = child
	}
	prefix = make([]C, p)
	copy(prefix, key[:p])
	return curr, prefix, true
}
