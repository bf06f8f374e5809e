// Package ucd parses Unicode Character Database source files and merges
// them into a per-code-point property database, the input to table
// generation. Parsing is strict: a malformed line anywhere aborts the run.
package ucd

import "github.com/planetscale/runedata/go/runes"

// Record holds every property the runtime tables carry for one code point.
// Case mappings are stored as signed deltas from the source code point; a
// zero delta means no mapping (or a mapping to itself, which is the same
// thing for simple case mapping).
type Record struct {
	Category   runes.Category
	Bidi       runes.BidiClass
	Whitespace bool

	UppercaseDelta int32
	LowercaseDelta int32
	TitlecaseDelta int32
	CaseFoldDelta  int32

	DecimalDigit int8    // 0..9, -1 if none
	Digit        int8    // 0..9, -1 if none
	Numeric      float64 // may be fractional; -1 if none

	Grapheme runes.GraphemeBreak
}

// DefaultRecord is what every code point absent from UnicodeData.txt maps
// to: unassigned, no strong direction, no mappings, no numeric value.
func DefaultRecord() Record {
	return Record{
		Category:     runes.Unassigned,
		Bidi:         runes.BidiOther,
		DecimalDigit: -1,
		Digit:        -1,
		Numeric:      -1,
		Grapheme:     runes.GraphemeOther,
	}
}
