package utrie

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sparseValues builds a dense value array the way real property data looks:
// a handful of populated ranges in an ocean of default zeroes.
func sparseValues(tb testing.TB) []uint8 {
	tb.Helper()
	values := make([]uint8, CodePointCount)
	set := func(lo, hi rune, v uint8) {
		for cp := lo; cp <= hi; cp++ {
			values[cp] = v
		}
	}
	set('0', '9', 1)
	set('A', 'Z', 2)
	set('a', 'z', 3)
	set(0x0370, 0x03FF, 4)     // Greek
	set(0x4E00, 0x9FFF, 5)     // CJK
	set(0x1F600, 0x1F64F, 6)   // emoji
	set(0xE0000, 0xE007F, 7)   // tags
	values[0x10FFFF] = 8
	return values
}

func TestBuildLookupEquivalence(t *testing.T) {
	values := sparseValues(t)
	trie, err := Build(values)
	require.NoError(t, err)

	for cp := rune(0); cp < CodePointCount; cp++ {
		if got := trie.Get(cp); got != values[cp] {
			t.Fatalf("U+%04X: trie returned %d, dense array has %d", cp, got, values[cp])
		}
	}
}

func TestBuildDeduplicates(t *testing.T) {
	trie, err := Build(sparseValues(t))
	require.NoError(t, err)

	n1, n2, n3 := trie.SectionLengths()
	assert.Equal(t, index1Len, n1)
	// Without structural sharing level 3 alone would hold 0x110000 entries.
	// The sparse input above collapses to a few dozen unique blocks.
	assert.Less(t, n3, 64*blockLen3, "level-3 not deduplicated")
	assert.Less(t, n2, 64*blockLen2, "level-2 not deduplicated")
}

func TestBuildDeterministic(t *testing.T) {
	values := sparseValues(t)
	a, err := Build(values)
	require.NoError(t, err)
	b, err := Build(values)
	require.NoError(t, err)
	assert.Equal(t, a.AppendTo(nil), b.AppendTo(nil))
}

func TestSerializeRoundTrip(t *testing.T) {
	values := sparseValues(t)
	trie, err := Build(values)
	require.NoError(t, err)

	buf := trie.AppendTo(nil)
	require.Equal(t, trie.SerializedSize(), len(buf))

	// Trailing bytes must be handed back untouched.
	parsed, rest, err := Parse(append(buf, 0xAA, 0xBB))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, rest)

	for _, cp := range []rune{0, '5', 'q', 0x03A9, 0x4E2D, 0x1F604, 0xE0041, 0x10FFFF} {
		assert.Equal(t, trie.Get(cp), parsed.Get(cp), "U+%04X", cp)
	}
}

func TestParseRejectsCorruptInput(t *testing.T) {
	trie, err := Build(sparseValues(t))
	require.NoError(t, err)
	buf := trie.AppendTo(nil)

	_, _, err = Parse(buf[:8])
	assert.Error(t, err)

	_, _, err = Parse(buf[:len(buf)/2])
	assert.Error(t, err)

	// A level-2 entry pointing past the end of level 3 must be caught at
	// parse time, not at lookup time.
	bad := append([]byte(nil), buf...)
	bad[12+2*index1Len] = 0xFF
	bad[12+2*index1Len+1] = 0xFF
	_, _, err = Parse(bad)
	assert.Error(t, err)
}

func TestBuildCapacityOverflow(t *testing.T) {
	// Random values make nearly every level-3 block unique, overflowing the
	// 16-bit level-2 offsets.
	rng := rand.New(rand.NewSource(1))
	values := make([]uint8, CodePointCount)
	for i := range values {
		values[i] = uint8(rng.Intn(250))
	}
	_, err := Build(values)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level-3")
}

func TestBuildRejectsWrongLength(t *testing.T) {
	_, err := Build(make([]uint8, 100))
	assert.Error(t, err)
}
