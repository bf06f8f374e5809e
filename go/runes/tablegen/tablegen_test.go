package tablegen

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planetscale/runedata/go/runes"
	"github.com/planetscale/runedata/go/runes/ucd"
	"github.com/planetscale/runedata/go/runes/utrie"
)

func fixtureDatabase(t *testing.T) *ucd.Database {
	t.Helper()
	db, err := ucd.Load(filepath.Join("..", "ucd", "testdata"))
	require.NoError(t, err)
	return db
}

func buildTables(t *testing.T, db *ucd.Database) *runes.Tables {
	t.Helper()
	cc, err := BuildCategoryCasing(db)
	require.NoError(t, err)
	ng, err := BuildNumericGrapheme(db)
	require.NoError(t, err)
	tables, err := runes.LoadTables(cc, ng)
	require.NoError(t, err)
	return tables
}

// recordFromTables reassembles a ucd.Record from runtime lookups so the
// whole generate-serialize-load-query pipeline can be compared against the
// in-memory database it was built from.
func recordFromTables(tables *runes.Tables, cp rune) ucd.Record {
	return ucd.Record{
		Category:       tables.Category(cp),
		Bidi:           tables.BidiClass(cp),
		Whitespace:     tables.IsWhitespace(cp),
		UppercaseDelta: int32(tables.SimpleCaseMap(cp, runes.Uppercase) - cp),
		LowercaseDelta: int32(tables.SimpleCaseMap(cp, runes.Lowercase) - cp),
		TitlecaseDelta: int32(tables.SimpleCaseMap(cp, runes.Titlecase) - cp),
		CaseFoldDelta:  int32(tables.SimpleCaseMap(cp, runes.CaseFolding) - cp),
		DecimalDigit:   int8(tables.DecimalDigitValue(cp)),
		Digit:          int8(tables.DigitValue(cp)),
		Numeric:        tables.NumericValue(cp),
		Grapheme:       tables.GraphemeBreak(cp),
	}
}

func TestRoundTripWholeCodePointSpace(t *testing.T) {
	db := fixtureDatabase(t)
	tables := buildTables(t, db)

	for cp := rune(0); cp <= runes.MaxCodePoint; cp++ {
		want := db.Record(cp)
		got := recordFromTables(tables, cp)
		if got != want {
			t.Fatalf("U+%04X: table lookup disagrees with database:\n%s", cp, cmp.Diff(want, got))
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	db := fixtureDatabase(t)

	cc1, err := BuildCategoryCasing(db)
	require.NoError(t, err)
	cc2, err := BuildCategoryCasing(db)
	require.NoError(t, err)
	assert.Equal(t, cc1, cc2)

	ng1, err := BuildNumericGrapheme(db)
	require.NoError(t, err)
	ng2, err := BuildNumericGrapheme(db)
	require.NoError(t, err)
	assert.Equal(t, ng1, ng2)
}

func TestBlobStructure(t *testing.T) {
	db := fixtureDatabase(t)
	cc, err := BuildCategoryCasing(db)
	require.NoError(t, err)

	h, rest, err := runes.ParseTableHeader(cc)
	require.NoError(t, err)
	assert.EqualValues(t, runes.KindCategoryCasing, h.Kind)
	assert.EqualValues(t, runes.TableVersion, h.Version)
	assert.Greater(t, h.ValueCount, 1)

	_, rest, err = utrie.Parse(rest)
	require.NoError(t, err)
	// Packed bytes plus four int32 arrays.
	assert.Len(t, rest, h.ValueCount+16*h.ValueCount)

	// Deduplication is what keeps the blob small: the flat encoding of the
	// code point space would be >1MB per table.
	assert.Less(t, len(cc), 64*1024)
}

func TestKindMismatchRejected(t *testing.T) {
	db := fixtureDatabase(t)
	cc, err := BuildCategoryCasing(db)
	require.NoError(t, err)
	ng, err := BuildNumericGrapheme(db)
	require.NoError(t, err)

	_, err = runes.LoadTables(ng, cc)
	assert.Error(t, err)
}

func TestValueTupleOverflow(t *testing.T) {
	// 300 code points with 300 distinct numeric values cannot be interned
	// into 8-bit value indices.
	var primary strings.Builder
	for i := 0; i < 300; i++ {
		fmt.Fprintf(&primary, "%04X;CJK COMPATIBILITY IDEOGRAPH-%04X;Lo;0;L;;;;%d;N;;;;;\n", 0xF900+i, 0xF900+i, 100000+i)
	}
	db, err := ucd.Build(ucd.Files{
		UnicodeData:   strings.NewReader(primary.String()),
		PropList:      strings.NewReader(""),
		CaseFolding:   strings.NewReader(""),
		GraphemeBreak: strings.NewReader(""),
		EmojiData:     strings.NewReader(""),
	})
	require.NoError(t, err)

	_, err = BuildNumericGrapheme(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "256")
}
