package ucd

import (
	"fmt"
	"io"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/planetscale/runedata/go/runes"
)

// Files holds the five UCD source streams the database is built from.
type Files struct {
	UnicodeData   io.Reader
	PropList      io.Reader
	CaseFolding   io.Reader
	GraphemeBreak io.Reader
	EmojiData     io.Reader
}

// Database is the merged per-code-point property map. Only code points
// present in UnicodeData.txt are materialized; everything else is implicitly
// DefaultRecord.
type Database struct {
	records map[rune]Record
}

// Build parses and merges all five sources. The ancillary files (white
// space, case folding, grapheme breaks, emoji data) fold into the primary
// records; the Extended_Pictographic set overrides any grapheme class
// assigned earlier for the same code point. Any format error, duplicate
// primary record, or case mapping that would cross a 64K plane boundary
// aborts the build.
func Build(files Files) (*Database, error) {
	whitespace := make(map[rune]bool)
	err := ParseRangeFile(files.PropList, func(e RangeEntry) error {
		if e.Property != "White_Space" {
			return nil
		}
		for cp := e.Lo; cp <= e.Hi; cp++ {
			whitespace[cp] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("PropList: %w", err)
	}

	folds, err := ParseCaseFolding(files.CaseFolding)
	if err != nil {
		return nil, fmt.Errorf("CaseFolding: %w", err)
	}

	graphemes := make(map[rune]runes.GraphemeBreak)
	err = ParseRangeFile(files.GraphemeBreak, func(e RangeEntry) error {
		g, ok := runes.GraphemeBreakFromName(e.Property)
		if !ok {
			return fmt.Errorf("unknown grapheme break class %q", e.Property)
		}
		for cp := e.Lo; cp <= e.Hi; cp++ {
			graphemes[cp] = g
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("GraphemeBreakProperty: %w", err)
	}

	// Extended_Pictographic wins over the plain break property.
	err = ParseRangeFile(files.EmojiData, func(e RangeEntry) error {
		if e.Property != "Extended_Pictographic" {
			return nil
		}
		for cp := e.Lo; cp <= e.Hi; cp++ {
			graphemes[cp] = runes.GraphemeExtendedPictographic
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("emoji-data: %w", err)
	}

	records := make(map[rune]Record)
	err = ParseUnicodeData(files.UnicodeData, func(cp rune, rec Record) error {
		if _, dup := records[cp]; dup {
			return fmt.Errorf("duplicate record for U+%04X", cp)
		}
		rec.Whitespace = whitespace[cp]
		rec.CaseFoldDelta = folds[cp]
		if g, ok := graphemes[cp]; ok {
			rec.Grapheme = g
		}
		if err := checkPlanes(cp, rec); err != nil {
			return err
		}
		records[cp] = rec
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("UnicodeData: %w", err)
	}

	return &Database{records: records}, nil
}

// checkPlanes enforces the invariant the runtime case mapper relies on: a
// simple case mapping never leaves the 64K plane of its source code point.
func checkPlanes(cp rune, rec Record) error {
	for _, m := range []struct {
		what  string
		delta int32
	}{
		{"uppercase", rec.UppercaseDelta},
		{"lowercase", rec.LowercaseDelta},
		{"titlecase", rec.TitlecaseDelta},
		{"case fold", rec.CaseFoldDelta},
	} {
		if m.delta == 0 {
			continue
		}
		target := cp + rune(m.delta)
		if target < 0 || target > runes.MaxCodePoint || target>>16 != cp>>16 {
			return fmt.Errorf("U+%04X: %s mapping to U+%04X crosses a plane boundary", cp, m.what, target)
		}
	}
	return nil
}

// Get returns the record for cp and whether it is materialized.
func (db *Database) Get(cp rune) (Record, bool) {
	rec, ok := db.records[cp]
	return rec, ok
}

// Record returns the record for cp, falling back to DefaultRecord for code
// points absent from the primary file.
func (db *Database) Record(cp rune) Record {
	if rec, ok := db.records[cp]; ok {
		return rec
	}
	return DefaultRecord()
}

// Len returns the number of materialized code points.
func (db *Database) Len() int {
	return len(db.records)
}

// CodePoints returns every materialized code point in ascending order.
func (db *Database) CodePoints() []rune {
	cps := maps.Keys(db.records)
	slices.Sort(cps)
	return cps
}
