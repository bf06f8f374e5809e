// Package utrie implements the compact 3-level lookup structure used by the
// runedata property tables.
//
// A code point (21 significant bits) is split into three fields:
//
//	cp>>9     level-1 index, one entry per 512 code points
//	cp>>4&31  position within a level-2 block of 32 entries
//	cp&15     position within a level-3 block of 16 entries
//
// A level-1 entry selects a level-2 block; a level-2 entry is a 16-bit byte
// offset into the level-3 array; a level-3 entry is the final byte index into
// a caller-owned values array. Identical level-2 and level-3 blocks are
// deduplicated during construction, which is what makes the tables small: the
// 0x110000-entry code point space has very low property variety, so huge
// unassigned ranges collapse into a single shared block.
package utrie

import (
	"encoding/binary"
	"fmt"
)

// CodePointCount is the size of the code point space covered by a trie.
const CodePointCount = 0x110000

const (
	shift3 = 4
	shift2 = 9

	blockLen3 = 1 << shift3          // code points per level-3 block
	blockLen2 = 1 << (shift2 - shift3) // level-3 indices per level-2 block

	index1Len  = CodePointCount >> shift2 // 0x880
	numBlocks3 = CodePointCount >> shift3

	// Level-2 entries are 16-bit byte offsets into the level-3 array, so at
	// most 0x10000/blockLen3 unique level-3 blocks can be addressed.
	maxBlocks3 = 0x10000 / blockLen3
)

// Trie is an immutable 3-level index from code point to an 8-bit value
// index. Build one with Build, or deserialize one with Parse.
type Trie struct {
	index1 []uint16
	index2 []uint16
	index3 []uint8
}

// Get returns the value index for cp. cp must be in [0, 0x10FFFF]; this is
// not rechecked here because Get sits on every query's hot path and all
// callers validate their input first.
func (t *Trie) Get(cp rune) uint8 {
	i2 := uint32(t.index1[cp>>shift2])<<(shift2-shift3) | uint32(cp)>>shift3&(blockLen2-1)
	off3 := uint32(t.index2[i2])
	return t.index3[off3+uint32(cp)&(blockLen3-1)]
}

// SectionLengths returns the entry counts of the three index levels.
func (t *Trie) SectionLengths() (index1, index2, index3 int) {
	return len(t.index1), len(t.index2), len(t.index3)
}

// SerializedSize returns the byte length of AppendTo's output.
func (t *Trie) SerializedSize() int {
	return 12 + 2*len(t.index1) + 2*len(t.index2) + len(t.index3)
}

// AppendTo serializes the trie to buf in the fixed little-endian layout
// shared with the runedatagen output format: three uint32 section lengths
// followed by the level-1 (uint16), level-2 (uint16) and level-3 (uint8)
// arrays. The encoding is little-endian regardless of host byte order.
func (t *Trie) AppendTo(buf []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.index1)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.index2)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(t.index3)))
	for _, v := range t.index1 {
		buf = binary.LittleEndian.AppendUint16(buf, v)
	}
	for _, v := range t.index2 {
		buf = binary.LittleEndian.AppendUint16(buf, v)
	}
	return append(buf, t.index3...)
}

// Parse deserializes a trie from the head of data and returns the remaining
// bytes. The input is byte-swapped on load where needed, so big-endian hosts
// read the same serialized form.
func Parse(data []byte) (*Trie, []byte, error) {
	if len(data) < 12 {
		return nil, nil, fmt.Errorf("utrie: truncated header: %d bytes", len(data))
	}
	n1 := int(binary.LittleEndian.Uint32(data))
	n2 := int(binary.LittleEndian.Uint32(data[4:]))
	n3 := int(binary.LittleEndian.Uint32(data[8:]))
	data = data[12:]

	if n1 != index1Len {
		return nil, nil, fmt.Errorf("utrie: level-1 length %d, want %d", n1, index1Len)
	}
	if n2%blockLen2 != 0 || n3%blockLen3 != 0 || n3 > 0x10000 {
		return nil, nil, fmt.Errorf("utrie: invalid section lengths %d/%d", n2, n3)
	}
	if need := 2*n1 + 2*n2 + n3; len(data) < need {
		return nil, nil, fmt.Errorf("utrie: truncated body: have %d bytes, need %d", len(data), need)
	}

	t := &Trie{
		index1: make([]uint16, n1),
		index2: make([]uint16, n2),
		index3: make([]uint8, n3),
	}
	for i := range t.index1 {
		t.index1[i] = binary.LittleEndian.Uint16(data[2*i:])
	}
	data = data[2*n1:]
	for i := range t.index2 {
		t.index2[i] = binary.LittleEndian.Uint16(data[2*i:])
	}
	data = data[2*n2:]
	copy(t.index3, data[:n3])

	// Validate offsets once here so Get can stay bounds-trusting.
	for i, v := range t.index1 {
		if int(v)*blockLen2 >= n2 {
			return nil, nil, fmt.Errorf("utrie: level-1 entry %d points past level 2 (%d)", i, v)
		}
	}
	for i, v := range t.index2 {
		if int(v)+blockLen3 > n3 {
			return nil, nil, fmt.Errorf("utrie: level-2 entry %d points past level 3 (%d)", i, v)
		}
	}
	return t, data[n3:], nil
}
