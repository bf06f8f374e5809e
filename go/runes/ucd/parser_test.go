package ucd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planetscale/runedata/go/runes"
)

func TestParseRangeLine(t *testing.T) {
	cases := []struct {
		line string
		want RangeEntry
		ok   bool
		err  bool
	}{
		{line: "0009..000D    ; White_Space # Cc   [5] <control>", want: RangeEntry{0x9, 0xD, "White_Space"}, ok: true},
		{line: "0020          ; White_Space # Zs       SPACE", want: RangeEntry{0x20, 0x20, "White_Space"}, ok: true},
		{line: "1F600..1F64F  ; Extended_Pictographic# E1.0  [80]", want: RangeEntry{0x1F600, 0x1F64F, "Extended_Pictographic"}, ok: true},
		{line: "", ok: false},
		{line: "# pure comment", ok: false},
		{line: "   \t  ", ok: false},
		{line: "0020", err: true},
		{line: "GGGG ; White_Space", err: true},
		{line: "0020 ; ", err: true},
		{line: "000D..000A ; CR", err: true},
		{line: "110000 ; White_Space", err: true},
	}
	for _, tc := range cases {
		entry, ok, err := ParseRangeLine(tc.line)
		if tc.err {
			assert.Error(t, err, "line %q", tc.line)
			continue
		}
		require.NoError(t, err, "line %q", tc.line)
		assert.Equal(t, tc.ok, ok, "line %q", tc.line)
		if tc.ok {
			assert.Equal(t, tc.want, entry, "line %q", tc.line)
		}
	}
}

func TestParseUnicodeDataFields(t *testing.T) {
	const line = "0041;LATIN CAPITAL LETTER A;Lu;0;L;;;;;N;;;;0061;\n" +
		"0035;DIGIT FIVE;Nd;0;EN;;5;5;5;N;;;;;\n" +
		"00BD;VULGAR FRACTION ONE HALF;No;0;ON;<fraction> 0031 2044 0032;;;1/2;N;;;;;\n" +
		"05D0;HEBREW LETTER ALEF;Lo;0;R;;;;;N;;;;;\n"

	got := make(map[rune]Record)
	err := ParseUnicodeData(strings.NewReader(line), func(cp rune, rec Record) error {
		got[cp] = rec
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 4)

	a := got['A']
	assert.Equal(t, runes.UppercaseLetter, a.Category)
	assert.Equal(t, runes.BidiLeftToRight, a.Bidi)
	assert.EqualValues(t, 0, a.UppercaseDelta)
	assert.EqualValues(t, 0x20, a.LowercaseDelta)
	// Empty titlecase field falls back to the uppercase mapping.
	assert.EqualValues(t, 0, a.TitlecaseDelta)
	assert.EqualValues(t, -1, a.DecimalDigit)

	five := got['5']
	assert.Equal(t, runes.DecimalDigitNumber, five.Category)
	assert.EqualValues(t, 5, five.DecimalDigit)
	assert.EqualValues(t, 5, five.Digit)
	assert.Equal(t, 5.0, five.Numeric)
	assert.Equal(t, runes.BidiOther, five.Bidi) // EN is not a strong class

	half := got[0x00BD]
	assert.EqualValues(t, -1, half.DecimalDigit)
	assert.Equal(t, 0.5, half.Numeric)

	alef := got[0x05D0]
	assert.Equal(t, runes.BidiRightToLeft, alef.Bidi)
}

func TestParseUnicodeDataRangePairs(t *testing.T) {
	const input = "4E00;<CJK Ideograph, First>;Lo;0;L;;;;;N;;;;;\n" +
		"4E05;<CJK Ideograph, Last>;Lo;0;L;;;;;N;;;;;\n"

	var cps []rune
	err := ParseUnicodeData(strings.NewReader(input), func(cp rune, rec Record) error {
		cps = append(cps, cp)
		assert.Equal(t, runes.OtherLetter, rec.Category)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []rune{0x4E00, 0x4E01, 0x4E02, 0x4E03, 0x4E04, 0x4E05}, cps)
}

func TestParseUnicodeDataErrors(t *testing.T) {
	discard := func(rune, Record) error { return nil }

	cases := map[string]string{
		"wrong field count": "0041;LATIN CAPITAL LETTER A;Lu;0;L\n",
		"dangling Last":     "4E05;<CJK Ideograph, Last>;Lo;0;L;;;;;N;;;;;\n",
		"mismatched names": "4E00;<CJK Ideograph, First>;Lo;0;L;;;;;N;;;;;\n" +
			"D7A3;<Hangul Syllable, Last>;Lo;0;L;;;;;N;;;;;\n",
		"unclosed range":     "4E00;<CJK Ideograph, First>;Lo;0;L;;;;;N;;;;;\n",
		"record in range":    "4E00;<CJK Ideograph, First>;Lo;0;L;;;;;N;;;;;\n0041;A;Lu;0;L;;;;;N;;;;;\n",
		"double slash":       "00BD;HALF;No;0;ON;;;;1/2/3;N;;;;;\n",
		"bad category":       "0041;A;XX;0;L;;;;;N;;;;;\n",
		"bad code point":     "ZZZZ;A;Lu;0;L;;;;;N;;;;;\n",
		"range ends early":   "4E05;<X, First>;Lo;0;L;;;;;N;;;;;\n4E00;<X, Last>;Lo;0;L;;;;;N;;;;;\n",
		"bad decimal":        "0041;A;Lu;0;L;;77;;;N;;;;;\n",
		"bad numeric":        "0041;A;Lu;0;L;;;;x;N;;;;;\n",
		"zero denominator":   "0041;A;Lu;0;L;;;;1/0;N;;;;;\n",
	}
	for name, input := range cases {
		err := ParseUnicodeData(strings.NewReader(input), discard)
		assert.Error(t, err, name)
	}
}

func TestParseCaseFolding(t *testing.T) {
	const input = `# CaseFolding (excerpt)
0041; C; 0061; # LATIN CAPITAL LETTER A
00DF; F; 0073 0073; # LATIN SMALL LETTER SHARP S
0130; T; 0069; # LATIN CAPITAL LETTER I WITH DOT ABOVE
10400; C; 10428; # DESERET CAPITAL LETTER LONG I
`
	folds, err := ParseCaseFolding(strings.NewReader(input))
	require.NoError(t, err)

	// Only C and S rows survive; F (full) and T (Turkic) are ignored.
	assert.Equal(t, map[rune]int32{
		0x0041:  0x20,
		0x10400: 0x28,
	}, folds)
}

func TestParseCaseFoldingMalformed(t *testing.T) {
	_, err := ParseCaseFolding(strings.NewReader("0041; C\n"))
	assert.Error(t, err)
	_, err = ParseCaseFolding(strings.NewReader("XXXX; C; 0061;\n"))
	assert.Error(t, err)
}
