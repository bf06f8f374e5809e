package utf8x

import "golang.org/x/text/transform"

// chunkUnits bounds the per-call scratch buffer of the transformers.
const chunkUnits = 256

// NewUTF16Encoder returns a transform.Transformer converting UTF-8 to
// little-endian UTF-16 bytes. Ill-formed input is replaced with U+FFFD, so
// the transformer never fails on malformed text.
func NewUTF16Encoder() transform.Transformer {
	return utf16Encoder{}
}

// NewUTF16Decoder returns a transform.Transformer converting little-endian
// UTF-16 bytes to UTF-8, replacing unpaired surrogates and any odd
// trailing byte with U+FFFD.
func NewUTF16Decoder() transform.Transformer {
	return utf16Decoder{}
}

type utf16Encoder struct {
	transform.NopResetter
}

func (utf16Encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	var units [chunkUnits]uint16
	for nSrc < len(src) {
		room := (len(dst) - nDst) / 2
		if room == 0 {
			return nDst, nSrc, transform.ErrShortDst
		}
		if room > chunkUnits {
			room = chunkUnits
		}
		status, consumed, written := FromUTF8(src[nSrc:], units[:room], true, atEOF)
		for _, u := range units[:written] {
			dst[nDst] = byte(u)
			dst[nDst+1] = byte(u >> 8)
			nDst += 2
		}
		nSrc += consumed
		switch status {
		case StatusNeedMoreData:
			return nDst, nSrc, transform.ErrShortSrc
		case StatusDestinationTooSmall:
			// Either the scratch chunk was the limit and the loop simply
			// continues, or dst cannot take a pending surrogate pair.
			if (len(dst)-nDst)/2 < 2 {
				return nDst, nSrc, transform.ErrShortDst
			}
		}
	}
	return nDst, nSrc, nil
}

type utf16Decoder struct {
	transform.NopResetter
}

func (utf16Decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	var units [chunkUnits]uint16
	for nSrc+1 < len(src) {
		n := (len(src) - nSrc) / 2
		chunked := n > chunkUnits
		if chunked {
			n = chunkUnits
		}
		for i := range units[:n] {
			units[i] = uint16(src[nSrc+2*i]) | uint16(src[nSrc+2*i+1])<<8
		}
		// An odd trailing byte cannot complete a surrogate pair, so the
		// last full chunk is final whenever the caller is at EOF.
		status, consumed, written := ToUTF8(units[:n], dst[nDst:], true, atEOF && !chunked)
		nDst += written
		nSrc += 2 * consumed
		switch status {
		case StatusDestinationTooSmall:
			return nDst, nSrc, transform.ErrShortDst
		case StatusNeedMoreData:
			if !chunked {
				// Trailing high surrogate may pair with the next call.
				return nDst, nSrc, transform.ErrShortSrc
			}
			// Its pair is in the next chunk; the loop re-reads it.
		}
	}
	if nSrc == len(src)-1 {
		if !atEOF {
			return nDst, nSrc, transform.ErrShortSrc
		}
		if len(dst)-nDst < 3 {
			return nDst, nSrc, transform.ErrShortDst
		}
		encodeRune(dst[nDst:], replacementChar, 3)
		nDst += 3
		nSrc++
	}
	return nDst, nSrc, nil
}
