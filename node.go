package levfuzzy

import (
	"errors"
	"sort"

	"github.com/aaw/levfuzzy/alphabet"
)

// trieNode is one node of the persistent trie: an optional stored value
// plus a mapping from alphabet elements to child nodes. A node is "empty"
// iff value is nil and children is empty; empty nodes must never appear as
// a child, an invariant maintained entirely by addNode/removeNode below.
type trieNode[C comparable, V any] struct {
	value    *V
	children map[C]*trieNode[C, V]
}

func emptyNode[C comparable, V any]() *trieNode[C, V] {
	return &trieNode[C, V]{children: make(map[C]*trieNode[C, V])}
}

func (n *trieNode[C, V]) isEmpty() bool {
	return n.value == nil && len(n.children) == 0
}

// addNode returns a new tree with key bound to v, sharing every node not on
// key's path (path-copy persistence).
func addNode[C comparable, V any](n *trieNode[C, V], key []C, i int, v V) *trieNode[C, V] {
	if i == len(key) {
		val := v
		return &trieNode[C, V]{value: &val, children: n.children}
	}
	c := key[i]
	child, ok := n.children[c]
	if !ok {
		child = emptyNode[C, V]()
	}
	newChild := addNode(child, key, i+1, v)
	return &trieNode[C, V]{value: n.value, children: withChild(n.children, c, newChild)}
}

// removeNode returns the node key should map to after removal, sharing n
// itself when key was already absent (a true no-op, not just an
// equivalent copy) and pruning any node that becomes empty from its
// parent's child map.
func removeNode[C comparable, V any](n *trieNode[C, V], key []C, i int) *trieNode[C, V] {
	if i == len(key) {
		if n.value == nil {
			return n
		}
		nn := &trieNode[C, V]{children: n.children}
		if nn.isEmpty() {
			return nil
		}
		return nn
	}
	c := key[i]
	child, ok := n.children[c]
	if !ok {
		return n
	}
	newChild := removeNode(child, key, i+1)
	if newChild == child {
		return n
	}
	var children map[C]*trieNode[C, V]
	if newChild == nil {
		children = withoutChild(n.children, c)
	} else {
		children = withChild(n.children, c, newChild)
	}
	nn := &trieNode[C, V]{value: n.value, children: children}
	if nn.isEmpty() {
		return nil
	}
	return nn
}

func withChild[C comparable, V any](m map[C]*trieNode[C, V], c C, child *trieNode[C, V]) map[C]*trieNode[C, V] {
	nm := make(map[C]*trieNode[C, V], len(m)+1)
	for k, v := range m {
		nm[k] = v
	}
	nm[c] = child
	return nm
}

func withoutChild[C comparable, V any](m map[C]*trieNode[C, V], c C) map[C]*trieNode[C, V] {
	nm := make(map[C]*trieNode[C, V], len(m))
	for k, v := range m {
		if k != c {
			nm[k] = v
		}
	}
	return nm
}

func getValue[C comparable, V any](n *trieNode[C, V], key []C) (V, bool) {
	for _, c := range key {
		child, ok := n.children[c]
		if !ok {
			var zero V
			return zero, false
		}
		n = child
	}
	if n.value != nil {
		return *n.value, true
	}
	var zero V
	return zero, false
}

// errHalt is returned by walk's callback to stop traversal early without
// that being reported as a real error to the caller (used by ToSeq and
// expandSubtree to respect a consumer that stops pulling).
var errHalt = errors.New("levfuzzy: traversal halted")

// sortedKeys returns n's child labels in ascending alpha.Compare order, so
// that traversal order is deterministic and repeatable even though Go map
// iteration order is not.
func sortedKeys[C comparable, V any](m map[C]*trieNode[C, V], alpha alphabet.Interface[C]) []C {
	keys := make([]C, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return alpha.Compare(keys[i], keys[j]) < 0 })
	return keys
}

// walk performs a deterministic pre-order depth-first traversal of n,
// calling f with the full key and value of every value-bearing node.
// Returning errHalt from f stops the traversal immediately.
func walk[C comparable, V any](n *trieNode[C, V], prefix []C, alpha alphabet.Interface[C], f func(key []C, v V) error) error {
	if n.value != nil {
		if err := f(prefix, *n.value); err != nil {
			return err
		}
	}
	for _, c := range sortedKeys(n.children, alpha) {
		next := make([]C, len(prefix)+1)
		copy(next, prefix)
		next[len(prefix)] = c
		if err := walk(n.children[c], next, alpha, f); err != nil {
			return err
		}
	}
	return nil
}
