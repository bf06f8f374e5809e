// Package utf8x validates and transcodes UTF-8 byte streams with precise
// ill-formed-sequence semantics: validation locates the exact first
// offending byte per the Unicode conformance rules (Table 3-7), and
// transcoding either substitutes U+FFFD for each maximal ill-formed subpart
// or stops at the well-formed prefix. Ill-formed input is an expected
// condition here, reported through return values, never a panic.
package utf8x

// Lead byte classification. leadSize is the total sequence length a lead
// byte announces (0 for bytes that cannot begin a sequence); leadAccept
// selects the valid range for the first continuation byte, which is where
// overlong encodings, encoded surrogates and values above U+10FFFF are all
// rejected.
var (
	leadSize   [256]uint8
	leadAccept [256]uint8
)

type acceptRange struct{ lo, hi uint8 }

var acceptRanges = [5]acceptRange{
	{0x80, 0xBF}, // default continuation range
	{0xA0, 0xBF}, // E0: excludes overlong 3-byte forms
	{0x80, 0x9F}, // ED: excludes encoded UTF-16 surrogates
	{0x90, 0xBF}, // F0: excludes overlong 4-byte forms
	{0x80, 0x8F}, // F4: excludes code points above U+10FFFF
}

func init() {
	for c := 0xC2; c <= 0xDF; c++ {
		leadSize[c] = 2
	}
	for c := 0xE0; c <= 0xEF; c++ {
		leadSize[c] = 3
	}
	for c := 0xF0; c <= 0xF4; c++ {
		leadSize[c] = 4
	}
	leadAccept[0xE0] = 1
	leadAccept[0xED] = 2
	leadAccept[0xF0] = 3
	leadAccept[0xF4] = 4
}

const (
	stateOK = iota
	stateInvalid
	stateIncomplete
)

// decodeSequence decodes the first UTF-8 sequence of p, which must be
// non-empty. On stateInvalid, n is the length of the maximal subpart to
// skip (at least 1); on stateIncomplete, every byte of p was consumed as a
// valid prefix of an unfinished sequence.
func decodeSequence(p []byte) (cp rune, n int, state int) {
	c := p[0]
	if c < 0x80 {
		return rune(c), 1, stateOK
	}
	size := int(leadSize[c])
	if size == 0 {
		return 0, 1, stateInvalid
	}
	accept := acceptRanges[leadAccept[c]]

	if len(p) < 2 {
		return 0, 1, stateIncomplete
	}
	if p[1] < accept.lo || p[1] > accept.hi {
		return 0, 1, stateInvalid
	}
	cp = rune(c&(0x7F>>uint(size))) << uint(6*(size-1))
	cp |= rune(p[1]&0x3F) << uint(6*(size-2))
	for i := 2; i < size; i++ {
		if len(p) < i+1 {
			return 0, i, stateIncomplete
		}
		if p[i]&0xC0 != 0x80 {
			return 0, i, stateInvalid
		}
		cp |= rune(p[i]&0x3F) << uint(6*(size-1-i))
	}
	return cp, size, stateOK
}
