// Package runes answers per-code-point Unicode property queries (general
// category, strong bidirectional class, simple case mappings, numeric values
// and grapheme cluster break classes) from compact precompiled tables.
//
// The tables are built offline by the runedatagen tool from the Unicode
// Character Database and embedded into the binary; every query is three array
// dereferences and never allocates. All functions are safe for concurrent use.
package runes

import "fmt"

// MaxCodePoint is the highest valid Unicode code point.
const MaxCodePoint rune = 0x10FFFF

// Category is a Unicode general category. The two-letter names follow the
// UCD abbreviations.
type Category uint8

const (
	UppercaseLetter      Category = iota // Lu
	LowercaseLetter                      // Ll
	TitlecaseLetter                      // Lt
	ModifierLetter                       // Lm
	OtherLetter                          // Lo
	NonSpacingMark                       // Mn
	SpacingCombiningMark                 // Mc
	EnclosingMark                        // Me
	DecimalDigitNumber                   // Nd
	LetterNumber                         // Nl
	OtherNumber                          // No
	ConnectorPunctuation                 // Pc
	DashPunctuation                      // Pd
	OpenPunctuation                      // Ps
	ClosePunctuation                     // Pe
	InitialQuotePunct                    // Pi
	FinalQuotePunct                      // Pf
	OtherPunctuation                     // Po
	MathSymbol                           // Sm
	CurrencySymbol                       // Sc
	ModifierSymbol                       // Sk
	OtherSymbol                          // So
	SpaceSeparator                       // Zs
	LineSeparator                        // Zl
	ParagraphSeparator                   // Zp
	Control                              // Cc
	Format                               // Cf
	Surrogate                            // Cs
	PrivateUse                           // Co
	Unassigned                           // Cn

	numCategories = iota
)

var categoryAbbrs = [numCategories]string{
	"Lu", "Ll", "Lt", "Lm", "Lo", "Mn", "Mc", "Me", "Nd", "Nl",
	"No", "Pc", "Pd", "Ps", "Pe", "Pi", "Pf", "Po", "Sm", "Sc",
	"Sk", "So", "Zs", "Zl", "Zp", "Cc", "Cf", "Cs", "Co", "Cn",
}

func (c Category) String() string {
	if int(c) >= len(categoryAbbrs) {
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
	return categoryAbbrs[c]
}

// CategoryFromAbbr resolves a UCD two-letter general category abbreviation.
func CategoryFromAbbr(abbr string) (Category, bool) {
	for i, a := range categoryAbbrs {
		if a == abbr {
			return Category(i), true
		}
	}
	return Unassigned, false
}

// IsLetter reports whether c is one of the five letter categories.
func (c Category) IsLetter() bool {
	return c <= OtherLetter
}

// BidiClass is the three-way strong-direction classification of a code
// point. Only strong direction is retained from the full UCD bidi class set;
// everything that is not strongly left-to-right or right-to-left collapses
// into BidiOther. The numeric values are an internal encoding detail.
type BidiClass uint8

const (
	BidiOther BidiClass = iota
	BidiLeftToRight
	BidiRightToLeft

	numBidiClasses = iota
)

func (b BidiClass) String() string {
	switch b {
	case BidiLeftToRight:
		return "LeftToRight"
	case BidiRightToLeft:
		return "RightToLeft"
	default:
		return "Other"
	}
}

// GraphemeBreak is a code point's Grapheme_Cluster_Break class per UAX #29,
// with Extended_Pictographic folded in as its own class (it takes precedence
// over the plain break property when both apply).
type GraphemeBreak uint8

const (
	GraphemeOther GraphemeBreak = iota
	GraphemeCR
	GraphemeLF
	GraphemeControl
	GraphemeExtend
	GraphemeZWJ
	GraphemeRegionalIndicator
	GraphemePrepend
	GraphemeSpacingMark
	GraphemeHangulL
	GraphemeHangulV
	GraphemeHangulT
	GraphemeHangulLV
	GraphemeHangulLVT
	GraphemeExtendedPictographic

	numGraphemeBreaks = iota
)

var graphemeBreakNames = [numGraphemeBreaks]string{
	"Other", "CR", "LF", "Control", "Extend", "ZWJ", "Regional_Indicator",
	"Prepend", "SpacingMark", "L", "V", "T", "LV", "LVT",
	"Extended_Pictographic",
}

func (g GraphemeBreak) String() string {
	if int(g) >= len(graphemeBreakNames) {
		return fmt.Sprintf("GraphemeBreak(%d)", uint8(g))
	}
	return graphemeBreakNames[g]
}

// GraphemeBreakFromName resolves a UCD property value name as it appears in
// GraphemeBreakProperty.txt or emoji-data.txt.
func GraphemeBreakFromName(name string) (GraphemeBreak, bool) {
	for i, n := range graphemeBreakNames {
		if n == name {
			return GraphemeBreak(i), true
		}
	}
	return GraphemeOther, false
}

// CaseMapping selects one of the four simple case mapping kinds.
type CaseMapping uint8

const (
	Uppercase CaseMapping = iota
	Lowercase
	Titlecase
	CaseFolding

	numCaseMappings = iota
)

func (m CaseMapping) String() string {
	switch m {
	case Uppercase:
		return "Uppercase"
	case Lowercase:
		return "Lowercase"
	case Titlecase:
		return "Titlecase"
	default:
		return "CaseFolding"
	}
}

const (
	highSurrogateFirst = 0xD800
	highSurrogateLast  = 0xDBFF
	lowSurrogateFirst  = 0xDC00
	lowSurrogateLast   = 0xDFFF
)

// DecodeCodePoint reads the code point starting at units[i] and returns it
// together with the number of UTF-16 code units it occupies (1 or 2). A high
// surrogate followed by a low surrogate combines into a supplementary code
// point; any other unit, including a lone or out-of-order surrogate, is
// returned as-is with length 1. The returned value may therefore lie in the
// surrogate range; callers that need well-formed input must check for that.
//
// DecodeCodePoint panics if units is nil or i is out of range.
func DecodeCodePoint(units []uint16, i int) (cp rune, size int) {
	if units == nil {
		panic("runes: DecodeCodePoint on nil unit slice")
	}
	if i < 0 || i >= len(units) {
		panic(fmt.Sprintf("runes: DecodeCodePoint index %d out of range [0, %d)", i, len(units)))
	}
	u := units[i]
	if u >= highSurrogateFirst && u <= highSurrogateLast && i+1 < len(units) {
		if u2 := units[i+1]; u2 >= lowSurrogateFirst && u2 <= lowSurrogateLast {
			return (rune(u)-highSurrogateFirst)*0x400 + (rune(u2) - lowSurrogateFirst) + 0x10000, 2
		}
	}
	return rune(u), 1
}

func checkCodePoint(cp rune) {
	if cp < 0 || cp > MaxCodePoint {
		panic(fmt.Sprintf("runes: code point U+%04X out of range [0, U+10FFFF]", cp))
	}
}

// CategoryOf returns the general category of cp. Unassigned code points
// report Unassigned. Panics if cp is outside [0, 0x10FFFF].
func CategoryOf(cp rune) Category {
	checkCodePoint(cp)
	return defaultTables().Category(cp)
}

// BidiClassOf returns the strong-direction class of cp.
// Panics if cp is outside [0, 0x10FFFF].
func BidiClassOf(cp rune) BidiClass {
	checkCodePoint(cp)
	return defaultTables().BidiClass(cp)
}

// IsWhitespace reports whether cp has the White_Space property.
// Panics if cp is outside [0, 0x10FFFF].
func IsWhitespace(cp rune) bool {
	checkCodePoint(cp)
	return defaultTables().IsWhitespace(cp)
}

// NumericValue returns the numeric value of cp, which may be non-integral
// for fractions, or -1 if cp has none. Panics if cp is outside [0, 0x10FFFF].
func NumericValue(cp rune) float64 {
	checkCodePoint(cp)
	return defaultTables().NumericValue(cp)
}

// DecimalDigitValue returns the decimal digit value of cp in 0..9, or -1.
// Panics if cp is outside [0, 0x10FFFF].
func DecimalDigitValue(cp rune) int {
	checkCodePoint(cp)
	return defaultTables().DecimalDigitValue(cp)
}

// DigitValue returns the digit value of cp in 0..9, or -1. This is a
// superset of the decimal digits (it includes e.g. superscript digits).
// Panics if cp is outside [0, 0x10FFFF].
func DigitValue(cp rune) int {
	checkCodePoint(cp)
	return defaultTables().DigitValue(cp)
}

// GraphemeBreakOf returns the grapheme cluster break class of cp.
// Panics if cp is outside [0, 0x10FFFF].
func GraphemeBreakOf(cp rune) GraphemeBreak {
	checkCodePoint(cp)
	return defaultTables().GraphemeBreak(cp)
}

func checkUnits(units []uint16, i int) {
	if units == nil {
		panic("runes: nil unit slice")
	}
	if i < 0 || i >= len(units) {
		panic(fmt.Sprintf("runes: index %d out of range [0, %d)", i, len(units)))
	}
}

// CategoryAt returns the general category of the code point starting at
// units[i], combining surrogate pairs. Panics if units is nil or i is out of
// range.
func CategoryAt(units []uint16, i int) Category {
	checkUnits(units, i)
	cp, _ := DecodeCodePoint(units, i)
	return defaultTables().Category(cp)
}

// IsWhitespaceAt reports whether the code point starting at units[i] has the
// White_Space property. Panics if units is nil or i is out of range.
func IsWhitespaceAt(units []uint16, i int) bool {
	checkUnits(units, i)
	cp, _ := DecodeCodePoint(units, i)
	return defaultTables().IsWhitespace(cp)
}

// NumericValueAt returns the numeric value of the code point starting at
// units[i], or -1. Panics if units is nil or i is out of range.
func NumericValueAt(units []uint16, i int) float64 {
	checkUnits(units, i)
	cp, _ := DecodeCodePoint(units, i)
	return defaultTables().NumericValue(cp)
}
