package utrie

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// blockDedup maps block content to the index of its first occurrence. Blocks
// are keyed by xxhash of their byte content; collisions fall back to a byte
// compare over the candidates in insertion order, so the first-seen block
// always wins.
type blockDedup struct {
	byHash map[uint64][]int
}

func newBlockDedup() *blockDedup {
	return &blockDedup{byHash: make(map[uint64][]int)}
}

// intern returns the index of an existing block equal to content, or
// registers next as its index. equal reports whether the candidate block at
// a given index matches content.
func (d *blockDedup) intern(content []byte, next int, equal func(idx int) bool) (int, bool) {
	h := xxhash.Sum64(content)
	for _, idx := range d.byHash[h] {
		if equal(idx) {
			return idx, true
		}
	}
	d.byHash[h] = append(d.byHash[h], next)
	return next, false
}

// Build constructs a deduplicated trie from a dense per-code-point array of
// value indices. values must have exactly CodePointCount entries; entry i is
// the 8-bit value index the trie will return for code point i.
//
// Construction iterates in code point order and is deterministic: building
// twice from equal input yields byte-identical serialized tries.
func Build(values []uint8) (*Trie, error) {
	if len(values) != CodePointCount {
		return nil, fmt.Errorf("utrie: need %d values, got %d", CodePointCount, len(values))
	}

	// Level 3: deduplicate 16-value blocks byte-for-byte.
	blockOf3 := make([]uint16, numBlocks3)
	var index3 []uint8
	dedup3 := newBlockDedup()
	for b := 0; b < numBlocks3; b++ {
		blk := values[b*blockLen3 : (b+1)*blockLen3]
		next := len(index3) / blockLen3
		idx, found := dedup3.intern(blk, next, func(i int) bool {
			return string(index3[i*blockLen3:(i+1)*blockLen3]) == string(blk)
		})
		if !found {
			if next >= maxBlocks3 {
				return nil, fmt.Errorf("utrie: more than %d unique level-3 blocks, 16-bit offsets exhausted", maxBlocks3)
			}
			index3 = append(index3, blk...)
		}
		blockOf3[b] = uint16(idx)
	}

	// Level 2: blocks of 32 level-3 byte offsets, deduplicated the same way.
	var index1 []uint16
	var index2 []uint16
	dedup2 := newBlockDedup()
	scratch := make([]byte, 2*blockLen2)
	for b := 0; b < index1Len; b++ {
		blk := make([]uint16, blockLen2)
		for j := 0; j < blockLen2; j++ {
			blk[j] = blockOf3[b*blockLen2+j] * blockLen3
		}
		for j, v := range blk {
			binary.LittleEndian.PutUint16(scratch[2*j:], v)
		}
		next := len(index2) / blockLen2
		idx, found := dedup2.intern(scratch, next, func(i int) bool {
			cand := index2[i*blockLen2 : (i+1)*blockLen2]
			for j := range cand {
				if cand[j] != blk[j] {
					return false
				}
			}
			return true
		})
		if !found {
			index2 = append(index2, blk...)
		}
		index1 = append(index1, uint16(idx))
	}

	return &Trie{index1: index1, index2: index2, index3: index3}, nil
}
