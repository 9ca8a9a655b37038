package automaton

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaw/levfuzzy/alphabet"
)

// Table-driven cases in the style of the pack's vellum levenshtein2 tests
// (isMatch/canMatch per query/distance/term), adapted to this automaton's
// Compile + MatchWith surface.
func TestCompileAndMatchWith(t *testing.T) {
	tests := []struct {
		desc     string
		pattern  string
		distance int
		query    string
		isMatch  bool
	}{
		{"cat/0 exact", "cat", 0, "cat", true},
		{"cat/1 deletion", "cat", 1, "ca", true},
		{"cat/1 insertion", "cat", 1, "cats", true},
		{"cat/0 short by one", "cat", 0, "ca", false},
		{"cat/0 long by one", "cat", 0, "cats", false},
		{"cat/1 substitution", "cat", 1, "cot", true},
		{"cat/1 too far", "cat", 1, "dog", false},
		{"empty pattern/0", "", 0, "", true},
		{"empty pattern/1", "", 1, "a", true},
		{"empty pattern/1 too far", "", 1, "ab", false},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			dfa, err := Compile(tc.distance, []byte(tc.pattern), alphabet.Bytes{})
			require.NoError(t, err)
			assert.Equal(t, tc.isMatch, dfa.MatchWith([]byte(tc.query), alphabet.Bytes{}))
		})
	}
}

func TestCompileRejectsNegativeLimit(t *testing.T) {
	_, err := Compile(-1, []byte("abc"), alphabet.Bytes{})
	require.Error(t, err)
}

func TestOtherwiseEdgeCoversUnseenCharacters(t *testing.T) {
	// The char set of the start state of "a" with limit 1 only ever
	// contains 'a' as an explicit Match label; every other byte must still
	// be handled via the otherwise edge rather than rejected outright.
	dfa, err := Compile(1, []byte("a"), alphabet.Bytes{})
	require.NoError(t, err)
	assert.True(t, dfa.MatchWith([]byte("z"), alphabet.Bytes{}))
	assert.True(t, dfa.MatchWith([]byte("za"), alphabet.Bytes{}))
}

func TestDFAStateCountIsBounded(t *testing.T) {
	// Regression guard for the subset-construction termination property:
	// the DFA should compile in a small, roughly linear number of states
	// rather than exploring anything close to the theoretical powerset
	// bound 2^((|P|+1)*(k+1)).
	dfa, err := Compile(2, []byte("hello"), alphabet.Bytes{})
	require.NoError(t, err)
	assert.Less(t, dfa.NumStates(), 200)
}

func TestDebugWriteToDoesNotError(t *testing.T) {
	dfa, err := Compile(1, []byte("ab"), alphabet.Bytes{})
	require.NoError(t, err)
	var buf strings.Builder
	err = dfa.WriteTo(&buf, func(w io.Writer, c byte) error {
		_, werr := w.Write([]byte{c})
		return werr
	})
	require.NoError(t, err)
	assert.NotEmpty(t, buf.String())
}
