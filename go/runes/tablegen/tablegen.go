// Package tablegen compacts a merged UCD database into the serialized
// property table blobs the runes package loads at runtime.
//
// Each table interns the distinct per-code-point value tuples (at most 256
// of them; real Unicode data has ~235) and builds a deduplicated 3-level
// trie mapping every code point to its tuple's index. The default record is
// always interned first so that unassigned code points resolve to value
// index 0 without being materialized anywhere.
package tablegen

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/planetscale/runedata/go/runes"
	"github.com/planetscale/runedata/go/runes/ucd"
	"github.com/planetscale/runedata/go/runes/utrie"
)

func packCategory(rec ucd.Record) uint8 {
	bits := uint8(rec.Category) | uint8(rec.Bidi)<<runes.BidiShift
	if rec.Whitespace {
		bits |= runes.WhitespaceFlag
	}
	return bits
}

func packDigits(rec ucd.Record) uint8 {
	dec, dig := uint8(runes.DigitNone), uint8(runes.DigitNone)
	if rec.DecimalDigit >= 0 {
		dec = uint8(rec.DecimalDigit)
	}
	if rec.Digit >= 0 {
		dig = uint8(rec.Digit)
	}
	return dec<<4 | dig
}

type categoryKey struct {
	bits                       uint8
	upper, lower, title, fold int32
}

func categoryKeyOf(rec ucd.Record) categoryKey {
	return categoryKey{
		bits:  packCategory(rec),
		upper: rec.UppercaseDelta,
		lower: rec.LowercaseDelta,
		title: rec.TitlecaseDelta,
		fold:  rec.CaseFoldDelta,
	}
}

type numericKey struct {
	digits   uint8
	numeric  float64
	grapheme runes.GraphemeBreak
}

func numericKeyOf(rec ucd.Record) numericKey {
	return numericKey{
		digits:   packDigits(rec),
		numeric:  rec.Numeric,
		grapheme: rec.Grapheme,
	}
}

// interner assigns dense 8-bit indices to distinct comparable keys in
// first-seen order.
type interner[K comparable] struct {
	index map[K]uint8
	keys  []K
}

func newInterner[K comparable](def K) *interner[K] {
	in := &interner[K]{index: make(map[K]uint8)}
	in.index[def] = 0
	in.keys = append(in.keys, def)
	return in
}

func (in *interner[K]) intern(k K) (uint8, error) {
	if idx, ok := in.index[k]; ok {
		return idx, nil
	}
	if len(in.keys) == 256 {
		return 0, fmt.Errorf("tablegen: more than 256 distinct value tuples")
	}
	idx := uint8(len(in.keys))
	in.index[k] = idx
	in.keys = append(in.keys, k)
	return idx, nil
}

func buildTrie[K comparable](db *ucd.Database, def K, keyOf func(ucd.Record) K) (*utrie.Trie, []K, error) {
	in := newInterner(def)
	values := make([]uint8, utrie.CodePointCount)
	for _, cp := range db.CodePoints() {
		rec, _ := db.Get(cp)
		idx, err := in.intern(keyOf(rec))
		if err != nil {
			return nil, nil, err
		}
		values[cp] = idx
	}
	trie, err := utrie.Build(values)
	if err != nil {
		return nil, nil, err
	}
	return trie, in.keys, nil
}

func appendHeader(buf []byte, kind uint8, valueCount int) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, runes.TableMagic)
	buf = append(buf, runes.TableVersion, kind)
	return binary.LittleEndian.AppendUint16(buf, uint16(valueCount))
}

// BuildCategoryCasing serializes the category/bidi/whitespace/case-mapping
// table blob.
func BuildCategoryCasing(db *ucd.Database) ([]byte, error) {
	trie, keys, err := buildTrie(db, categoryKeyOf(ucd.DefaultRecord()), categoryKeyOf)
	if err != nil {
		return nil, err
	}

	buf := appendHeader(nil, runes.KindCategoryCasing, len(keys))
	buf = trie.AppendTo(buf)
	for _, k := range keys {
		buf = append(buf, k.bits)
	}
	for _, sel := range []func(categoryKey) int32{
		func(k categoryKey) int32 { return k.upper },
		func(k categoryKey) int32 { return k.lower },
		func(k categoryKey) int32 { return k.title },
		func(k categoryKey) int32 { return k.fold },
	} {
		for _, k := range keys {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(sel(k)))
		}
	}
	return buf, nil
}

// BuildNumericGrapheme serializes the digit/numeric/grapheme table blob.
func BuildNumericGrapheme(db *ucd.Database) ([]byte, error) {
	trie, keys, err := buildTrie(db, numericKeyOf(ucd.DefaultRecord()), numericKeyOf)
	if err != nil {
		return nil, err
	}

	buf := appendHeader(nil, runes.KindNumericGrapheme, len(keys))
	buf = trie.AppendTo(buf)
	for _, k := range keys {
		buf = append(buf, k.digits)
	}
	for _, k := range keys {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(k.numeric))
	}
	for _, k := range keys {
		buf = append(buf, uint8(k.grapheme))
	}
	return buf, nil
}
