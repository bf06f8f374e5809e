package runes

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/planetscale/runedata/go/runes/internal/tabledata"
	"github.com/planetscale/runedata/go/runes/utrie"
)

// Serialized table format shared with the runedatagen generator. Each blob
// is little-endian regardless of host byte order: a fixed header, the
// serialized trie, then the value arrays for the blob's kind.
const (
	TableMagic   = 0x4C425452 // "RTBL"
	TableVersion = 1

	// KindCategoryCasing blobs carry packed category/bidi/whitespace bytes
	// plus the four signed case mapping delta arrays.
	KindCategoryCasing = 1
	// KindNumericGrapheme blobs carry decimal/digit nibble pairs, float64
	// numeric values and grapheme break classes.
	KindNumericGrapheme = 2
)

// Packing of the category byte: bidi class in the top two bits, the
// White_Space flag below it, the general category in the low five.
const (
	CategoryMask   = 0x1F
	WhitespaceFlag = 0x20
	BidiShift      = 6
)

// DigitNone is the nibble value marking "no digit value" in a packed
// decimal/digit byte.
const DigitNone = 0xF

// TableHeader is the decoded fixed header of a serialized table blob.
type TableHeader struct {
	Version    uint8
	Kind       uint8
	ValueCount int
}

// ParseTableHeader decodes and validates a blob header, returning the
// remaining bytes (trie + value arrays).
func ParseTableHeader(data []byte) (TableHeader, []byte, error) {
	if len(data) < 8 {
		return TableHeader{}, nil, fmt.Errorf("runes: table blob truncated: %d bytes", len(data))
	}
	if magic := binary.LittleEndian.Uint32(data); magic != TableMagic {
		return TableHeader{}, nil, fmt.Errorf("runes: bad table magic 0x%08X", magic)
	}
	h := TableHeader{
		Version:    data[4],
		Kind:       data[5],
		ValueCount: int(binary.LittleEndian.Uint16(data[6:])),
	}
	if h.Version != TableVersion {
		return TableHeader{}, nil, fmt.Errorf("runes: unsupported table version %d", h.Version)
	}
	if h.Kind != KindCategoryCasing && h.Kind != KindNumericGrapheme {
		return TableHeader{}, nil, fmt.Errorf("runes: unknown table kind %d", h.Kind)
	}
	if h.ValueCount == 0 || h.ValueCount > 256 {
		return TableHeader{}, nil, fmt.Errorf("runes: invalid value count %d", h.ValueCount)
	}
	return h, data[8:], nil
}

// Tables answers every property query from two parsed table blobs. The
// zero value is not usable; construct with LoadTables. A Tables is immutable
// and safe for unsynchronized concurrent use.
type Tables struct {
	catTrie *utrie.Trie
	catBits []uint8 // bidi<<6 | whitespace<<5 | category
	upper   []int32
	lower   []int32
	title   []int32
	fold    []int32

	numTrie  *utrie.Trie
	digits   []uint8 // decimal nibble high, digit nibble low
	numeric  []float64
	grapheme []uint8
}

// LoadTables parses the two serialized table blobs produced by runedatagen.
func LoadTables(categoryCasing, numericGrapheme []byte) (*Tables, error) {
	t := &Tables{}

	h, rest, err := ParseTableHeader(categoryCasing)
	if err != nil {
		return nil, err
	}
	if h.Kind != KindCategoryCasing {
		return nil, fmt.Errorf("runes: expected category/casing blob, got kind %d", h.Kind)
	}
	if t.catTrie, rest, err = utrie.Parse(rest); err != nil {
		return nil, err
	}
	n := h.ValueCount
	if len(rest) != n+4*4*n {
		return nil, fmt.Errorf("runes: category/casing values: %d bytes, want %d", len(rest), n+16*n)
	}
	t.catBits = append([]uint8(nil), rest[:n]...)
	rest = rest[n:]
	for _, dst := range []*[]int32{&t.upper, &t.lower, &t.title, &t.fold} {
		*dst = make([]int32, n)
		for i := range *dst {
			(*dst)[i] = int32(binary.LittleEndian.Uint32(rest[4*i:]))
		}
		rest = rest[4*n:]
	}
	for i, bits := range t.catBits {
		if bits&CategoryMask >= uint8(numCategories) || bits>>BidiShift >= uint8(numBidiClasses) {
			return nil, fmt.Errorf("runes: invalid category byte 0x%02X at value %d", bits, i)
		}
	}

	if h, rest, err = ParseTableHeader(numericGrapheme); err != nil {
		return nil, err
	}
	if h.Kind != KindNumericGrapheme {
		return nil, fmt.Errorf("runes: expected numeric/grapheme blob, got kind %d", h.Kind)
	}
	if t.numTrie, rest, err = utrie.Parse(rest); err != nil {
		return nil, err
	}
	n = h.ValueCount
	if len(rest) != n+8*n+n {
		return nil, fmt.Errorf("runes: numeric/grapheme values: %d bytes, want %d", len(rest), 10*n)
	}
	t.digits = append([]uint8(nil), rest[:n]...)
	rest = rest[n:]
	t.numeric = make([]float64, n)
	for i := range t.numeric {
		t.numeric[i] = math.Float64frombits(binary.LittleEndian.Uint64(rest[8*i:]))
	}
	rest = rest[8*n:]
	t.grapheme = append([]uint8(nil), rest[:n]...)
	for i, g := range t.grapheme {
		if g >= uint8(numGraphemeBreaks) {
			return nil, fmt.Errorf("runes: invalid grapheme class %d at value %d", g, i)
		}
	}
	return t, nil
}

// Category returns the general category of cp. cp must already be
// validated; the exported package-level entry points do that.
func (t *Tables) Category(cp rune) Category {
	return Category(t.catBits[t.catTrie.Get(cp)] & CategoryMask)
}

// BidiClass returns the strong-direction class of cp.
func (t *Tables) BidiClass(cp rune) BidiClass {
	return BidiClass(t.catBits[t.catTrie.Get(cp)] >> BidiShift)
}

// IsWhitespace reports whether cp has the White_Space property.
func (t *Tables) IsWhitespace(cp rune) bool {
	return t.catBits[t.catTrie.Get(cp)]&WhitespaceFlag != 0
}

// SimpleCaseMap applies the simple case mapping m to cp. Code points
// without the requested mapping map to themselves. The result is always in
// the same 64K plane as cp; the generator validates that when the deltas are
// computed.
func (t *Tables) SimpleCaseMap(cp rune, m CaseMapping) rune {
	vi := t.catTrie.Get(cp)
	var delta int32
	switch m {
	case Uppercase:
		delta = t.upper[vi]
	case Lowercase:
		delta = t.lower[vi]
	case Titlecase:
		delta = t.title[vi]
	case CaseFolding:
		delta = t.fold[vi]
	default:
		panic(fmt.Sprintf("runes: unknown case mapping %d", m))
	}
	return cp + rune(delta)
}

// NumericValue returns the numeric value of cp, or -1.
func (t *Tables) NumericValue(cp rune) float64 {
	return t.numeric[t.numTrie.Get(cp)]
}

// DecimalDigitValue returns the decimal digit value of cp in 0..9, or -1.
func (t *Tables) DecimalDigitValue(cp rune) int {
	d := t.digits[t.numTrie.Get(cp)] >> 4
	if d == DigitNone {
		return -1
	}
	return int(d)
}

// DigitValue returns the digit value of cp in 0..9, or -1.
func (t *Tables) DigitValue(cp rune) int {
	d := t.digits[t.numTrie.Get(cp)] & 0xF
	if d == DigitNone {
		return -1
	}
	return int(d)
}

// GraphemeBreak returns the grapheme cluster break class of cp.
func (t *Tables) GraphemeBreak(cp rune) GraphemeBreak {
	return GraphemeBreak(t.grapheme[t.numTrie.Get(cp)])
}

var (
	embeddedOnce   sync.Once
	embeddedTables *Tables
)

// defaultTables returns the process-wide tables parsed from the embedded
// blobs. The parse happens once; the result is immutable, so no further
// synchronization is needed.
func defaultTables() *Tables {
	embeddedOnce.Do(func() {
		t, err := LoadTables(tabledata.CategoryCasing, tabledata.NumericGrapheme)
		if err != nil {
			panic(fmt.Sprintf("runes: embedded tables corrupt: %v", err))
		}
		embeddedTables = t
	})
	return embeddedTables
}
