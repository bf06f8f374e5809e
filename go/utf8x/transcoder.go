package utf8x

const replacementChar = 0xFFFD

// Status is the outcome of a transcoding call.
type Status int

const (
	// StatusDone means all of src was consumed.
	StatusDone Status = iota
	// StatusDestinationTooSmall means dst filled up before src ran out.
	StatusDestinationTooSmall
	// StatusNeedMoreData means src ends in a valid but unfinished sequence
	// and the call was not marked as the final chunk.
	StatusNeedMoreData
	// StatusInvalidData means src contains an ill-formed sequence and
	// replacement was not requested.
	StatusInvalidData
)

var statusNames = [...]string{"Done", "DestinationTooSmall", "NeedMoreData", "InvalidData"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "Unknown"
	}
	return statusNames[s]
}

// FromUTF8 transcodes UTF-8 bytes into UTF-16 code units. It consumes src
// from the front and writes units to dst, returning how much of each was
// used. Supplementary-plane code points become surrogate pairs and are only
// written when both units fit.
//
// When replaceInvalid is set, each maximal ill-formed subpart of src
// becomes a single U+FFFD; otherwise transcoding stops at the first
// ill-formed byte with StatusInvalidData and consumed is the length of the
// well-formed prefix. A truncated but so-far-valid sequence at the end of
// src yields StatusNeedMoreData unless finalChunk is set, in which case the
// tail is treated like any other ill-formed sequence.
func FromUTF8(src []byte, dst []uint16, replaceInvalid, finalChunk bool) (status Status, consumed, written int) {
	for consumed < len(src) {
		cp, n, state := decodeSequence(src[consumed:])
		if state == stateIncomplete {
			if !finalChunk {
				return StatusNeedMoreData, consumed, written
			}
			// The truncated tail is one maximal subpart.
			n = len(src) - consumed
			state = stateInvalid
		}
		if state == stateInvalid {
			if !replaceInvalid {
				return StatusInvalidData, consumed, written
			}
			cp = replacementChar
		}
		if cp >= 0x10000 {
			if written+2 > len(dst) {
				return StatusDestinationTooSmall, consumed, written
			}
			cp -= 0x10000
			dst[written] = uint16(0xD800 + cp>>10)
			dst[written+1] = uint16(0xDC00 + cp&0x3FF)
			written += 2
		} else {
			if written >= len(dst) {
				return StatusDestinationTooSmall, consumed, written
			}
			dst[written] = uint16(cp)
			written++
		}
		consumed += n
	}
	return StatusDone, consumed, written
}

// ToUTF8 transcodes UTF-16 code units into UTF-8 bytes, the mirror of
// FromUTF8. An unpaired surrogate is ill-formed: with replaceInvalid it
// becomes U+FFFD, otherwise transcoding stops with StatusInvalidData. A
// trailing high surrogate that may yet be completed by the next chunk
// yields StatusNeedMoreData unless finalChunk is set.
func ToUTF8(src []uint16, dst []byte, replaceInvalid, finalChunk bool) (status Status, consumed, written int) {
	for consumed < len(src) {
		u := src[consumed]
		cp := rune(u)
		n := 1
		switch {
		case u < 0xD800 || u > 0xDFFF:
			// BMP scalar value.
		case u < 0xDC00:
			if consumed+1 >= len(src) {
				if !finalChunk {
					return StatusNeedMoreData, consumed, written
				}
				cp = -1
			} else if u2 := src[consumed+1]; u2 >= 0xDC00 && u2 <= 0xDFFF {
				cp = (rune(u)-0xD800)<<10 + rune(u2) - 0xDC00 + 0x10000
				n = 2
			} else {
				cp = -1
			}
		default:
			// Low surrogate with no preceding high surrogate.
			cp = -1
		}
		if cp < 0 {
			if !replaceInvalid {
				return StatusInvalidData, consumed, written
			}
			cp = replacementChar
		}
		size := encodedLen(cp)
		if written+size > len(dst) {
			return StatusDestinationTooSmall, consumed, written
		}
		encodeRune(dst[written:], cp, size)
		written += size
		consumed += n
	}
	return StatusDone, consumed, written
}

func encodedLen(cp rune) int {
	switch {
	case cp < 0x80:
		return 1
	case cp < 0x800:
		return 2
	case cp < 0x10000:
		return 3
	default:
		return 4
	}
}

// encodeRune writes the UTF-8 form of cp to p, which must have room for
// size bytes.
func encodeRune(p []byte, cp rune, size int) {
	switch size {
	case 1:
		p[0] = byte(cp)
	case 2:
		p[0] = 0xC0 | byte(cp>>6)
		p[1] = 0x80 | byte(cp)&0x3F
	case 3:
		p[0] = 0xE0 | byte(cp>>12)
		p[1] = 0x80 | byte(cp>>6)&0x3F
		p[2] = 0x80 | byte(cp)&0x3F
	default:
		p[0] = 0xF0 | byte(cp>>18)
		p[1] = 0x80 | byte(cp>>12)&0x3F
		p[2] = 0x80 | byte(cp>>6)&0x3F
		p[3] = 0x80 | byte(cp)&0x3F
	}
}
