// Package levfuzzy provides a Levenshtein automaton compiler and a
// companion fuzzy trie index: given a pattern and an edit-distance bound,
// it compiles a DFA accepting every string within that bound of the
// pattern, and an Index can retrieve every stored value whose key lies
// within the bound of a query without scanning the full dictionary.
//
// Index is a persistent trie keyed by an arbitrary comparable alphabet
// element (package alphabet), not just bytes or runes. Retrieve and the
// Suggest family both co-traverse that trie against a compiled
// automaton.DFA rather than scanning stored keys one at a time; Suggest
// layers an increasing-distance search on top of the same DFA machinery to
// return closer matches first.
package levfuzzy

import (
	"iter"

	"github.com/aaw/levfuzzy/alphabet"
	"github.com/aaw/levfuzzy/automaton"
)

// Pair is a key-value pair, the basic storage unit of an Index.
type Pair[C comparable, V any] struct {
	Key   []C
	Value V
}

// Index is a persistent (immutable) trie from keys of type []C to values of
// type V, plus fuzzy retrieval by edit distance. The zero value is not
// usable; construct one with Empty or OfList.
type Index[C comparable, V any] struct {
	root  *trieNode[C, V]
	alpha alphabet.Interface[C]
}

// Empty returns an empty Index over the given alphabet.
func Empty[C comparable, V any](alpha alphabet.Interface[C]) *Index[C, V] {
	return &Index[C, V]{root: emptyNode[C, V](), alpha: alpha}
}

// IsEmpty reports whether t has no stored value anywhere.
func (ix *Index[C, V]) IsEmpty() bool {
	return ix.root.isEmpty()
}

// Get returns the value stored at key, if any.
func (ix *Index[C, V]) Get(key []C) (V, bool) {
	return getValue(ix.root, key)
}

// Add returns a new Index with key bound to v, replacing any existing
// value at key. ix is unmodified; the new and old Index share every node
// not on key's path.
func (ix *Index[C, V]) Add(key []C, v V) *Index[C, V] {
	return &Index[C, V]{root: addNode(ix.root, key, 0, v), alpha: ix.alpha}
}

// Remove returns a new Index with key unbound. If key is absent, the
// returned Index is equivalent to ix (a no-op, not an error).
func (ix *Index[C, V]) Remove(key []C) *Index[C, V] {
	newRoot := removeNode(ix.root, key, 0)
	if newRoot == nil {
		newRoot = emptyNode[C, V]()
	}
	return &Index[C, V]{root: newRoot, alpha: ix.alpha}
}

// OfList builds an Index from pairs via a left fold of Add.
func OfList[C comparable, V any](alpha alphabet.Interface[C], pairs []Pair[C, V]) *Index[C, V] {
	ix := Empty[C, V](alpha)
	for _, p := range pairs {
		ix = ix.Add(p.Key, p.Value)
	}
	return ix
}

// ToList returns every (key, value) pair in ix, in the deterministic
// pre-order described by sortedKeys.
func (ix *Index[C, V]) ToList() []Pair[C, V] {
	var out []Pair[C, V]
	_ = walk(ix.root, nil, ix.alpha, func(key []C, v V) error {
		k := make([]C, len(key))
		copy(k, key)
		out = append(out, Pair[C, V]{Key: k, Value: v})
		return nil
	})
	return out
}

// Fold performs a left fold of f over every (key, value) pair in ix, in
// the same deterministic order as ToList. An error returned by f aborts
// the traversal and is propagated to the caller.
func Fold[C comparable, V any, A any](ix *Index[C, V], f func(acc A, key []C, v V) (A, error), acc A) (A, error) {
	err := walk(ix.root, nil, ix.alpha, func(key []C, v V) error {
		var ferr error
		acc, ferr = f(acc, key, v)
		return ferr
	})
	if err != nil {
		var zero A
		return zero, err
	}
	return acc, nil
}

// Iter calls f with every (key, value) pair in ix, in the same
// deterministic order as ToList. An error returned by f aborts the
// traversal and is propagated to the caller.
func Iter[C comparable, V any](ix *Index[C, V], f func(key []C, v V) error) error {
	return walk(ix.root, nil, ix.alpha, f)
}

// ToSeq returns a lazy, pull-based sequence equivalent to ToList: the
// consumer controls how much of the trie gets walked by how much of the
// range it consumes.
func (ix *Index[C, V]) ToSeq() iter.Seq2[[]C, V] {
	return func(yield func([]C, V) bool) {
		_ = walk(ix.root, nil, ix.alpha, func(key []C, v V) error {
			k := make([]C, len(key))
			copy(k, key)
			if !yield(k, v) {
				return errHalt
			}
			return nil
		})
	}
}

// Retrieve compiles a DFA for (query, limit) and co-traverses it with ix's
// trie, lazily yielding the value at every node whose stored value is
// present and whose current DFA state is final. A limit < 0 is a contract
// violation (see package automaton) and panics, matching the treatment of
// an out-of-range alphabet index.
func (ix *Index[C, V]) Retrieve(limit int, query []C) iter.Seq[V] {
	dfa, err := automaton.Compile(limit, query, ix.alpha)
	if err != nil {
		panic(err)
	}
	return func(yield func(V) bool) {
		retrieveWalk(ix.root, 0, dfa, ix.alpha, yield)
	}
}

// RetrieveList is the forced (non-lazy) form of Retrieve.
func (ix *Index[C, V]) RetrieveList(limit int, query []C) []V {
	var out []V
	for v := range ix.Retrieve(limit, query) {
		out = append(out, v)
	}
	return out
}

// retrieveWalk is the DFA x trie co-traversal at the core of Retrieve: at
// each node, yield its value if present and the current DFA state is
// final, then recurse into each child whose edge label the DFA accepts
// from the current state (explicit edge, else otherwise, else the
// subtree is pruned). It returns false once the consumer has stopped
// pulling, so an early yield=false cuts the traversal short immediately.
func retrieveWalk[C comparable, V any](n *trieNode[C, V], state int, dfa *automaton.DFA[C], alpha alphabet.Interface[C], yield func(V) bool) bool {
	if n.value != nil && dfa.Final(state) {
		if !yield(*n.value) {
			return false
		}
	}
	for _, c := range sortedKeys(n.children, alpha) {
		next, ok := dfa.Step(state, c, alpha)
		if !ok {
			continue
		}
		if !retrieveWalk(n.children[c], next, dfa, alpha, yield) {
			return false
		}
	}
	return true
}

// AutomatonOfString compiles the Levenshtein automaton for a byte-string
// pattern, the module's default alphabet instantiation.
func AutomatonOfString(limit int, pattern string) (*automaton.DFA[byte], error) {
	return automaton.Compile(limit, []byte(pattern), alphabet.Bytes{})
}

// AutomatonOfRunes compiles the Levenshtein automaton for a pattern over
// runes, for matching against Unicode text rather than raw bytes.
func AutomatonOfRunes(limit int, pattern string) (*automaton.DFA[rune], error) {
	return automaton.Compile(limit, alphabet.StringToRunes(pattern), alphabet.Runes{})
}

// AutomatonOfList compiles the Levenshtein automaton for a pattern given
// as an explicit element list over an arbitrary alphabet.
func AutomatonOfList[C any](limit int, chars []C, alpha alphabet.Interface[C]) (*automaton.DFA[C], error) {
	return automaton.Compile(limit, chars, alpha)
}

// MatchWith reports whether q is within dfa's edit-distance bound.
func MatchWith[C any](dfa *automaton.DFA[C], q []C, alpha alphabet.Interface[C]) bool {
	return dfa.MatchWith(q, alpha)
}
