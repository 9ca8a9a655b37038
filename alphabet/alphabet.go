// Package alphabet defines the small capability pack the automaton and
// trie packages need over a sequence of opaque elements: length, indexed
// access, construction from a list, and a total order. Both the automaton
// and the trie are written against this interface rather than against
// []byte or []rune directly so that callers can plug in their own element
// type, with any decoding logic (such as UTF-8) isolated at the boundary
// rather than scattered through the core.
package alphabet

// Interface is the capability pack required of an alphabet element type C.
// Compare must implement total-order semantics: negative if a < b, zero if
// a == b, positive if a > b.
type Interface[C any] interface {
	Len(seq []C) int
	Get(seq []C, i int) C
	FromList(cs []C) []C
	Compare(a, b C) int
}

// Bytes is the default instantiation: C = byte, sequences are []byte.
type Bytes struct{}

func (Bytes) Len(seq []byte) int          { return len(seq) }
func (Bytes) Get(seq []byte, i int) byte  { return seq[i] }
func (Bytes) FromList(cs []byte) []byte   { return cs }
func (Bytes) Compare(a, b byte) int       { return int(a) - int(b) }

// Runes is an alternate instantiation over C = rune, for indexes keyed by
// Unicode text rather than raw bytes.
type Runes struct{}

func (Runes) Len(seq []rune) int         { return len(seq) }
func (Runes) Get(seq []rune, i int) rune { return seq[i] }
func (Runes) FromList(cs []rune) []rune  { return cs }
func (Runes) Compare(a, b rune) int      { return int(a) - int(b) }

// StringToRunes decodes a string into the []rune form Runes operates over.
// UTF-8 decoding lives here, at the alphabet boundary, rather than inside
// the automaton or trie core, which never need to know a key came from a
// string in the first place.
func StringToRunes(s string) []rune {
	return []rune(s)
}
