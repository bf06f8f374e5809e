package utf8x

import "encoding/binary"

const asciiMask = 0x8080808080808080

// FindFirstInvalid scans p for the first byte at which p stops being
// well-formed UTF-8 and returns its index, or -1 if p is entirely
// well-formed. asciiPrefix reports whether every byte before the returned
// index (or all of p, when the index is -1) is ASCII. A truncated sequence
// at the end of p is ill-formed; the index of its lead byte is returned.
//
// ASCII runs are consumed eight bytes at a time, so for the common case of
// mostly-ASCII input the scan touches each word once.
func FindFirstInvalid(p []byte) (index int, asciiPrefix bool) {
	i := 0
	ascii := true
	for i < len(p) {
		if p[i] < 0x80 {
			for i+8 <= len(p) && binary.LittleEndian.Uint64(p[i:])&asciiMask == 0 {
				i += 8
			}
			for i < len(p) && p[i] < 0x80 {
				i++
			}
			continue
		}
		_, n, state := decodeSequence(p[i:])
		if state != stateOK {
			return i, ascii
		}
		i += n
		ascii = false
	}
	return -1, ascii
}

// Valid reports whether p is entirely well-formed UTF-8.
func Valid(p []byte) bool {
	i, _ := FindFirstInvalid(p)
	return i < 0
}
