package bao

import (
	"encoding/binary"
	"math"
)

// encodeLen serializes a content length as the 8-byte little-endian
// unsigned header that prefixes every encoding.
func encodeLen(contentLen int64) [HeaderSize]byte {
	var b [HeaderSize]byte
	binary.LittleEndian.PutUint64(b[:], uint64(contentLen))
	return b
}

// decodeLen is the inverse of encodeLen. The header is an unsigned
// 64-bit integer, so the raw value is returned as one: callers that need
// it as the signed int64 used throughout the rest of this package must
// go through decodeLenChecked instead of casting directly, since a
// hostile or corrupted header can set bit 63.
func decodeLen(b [HeaderSize]byte) uint64 {
	return binary.LittleEndian.Uint64(b[:])
}

// decodeLenChecked decodes the header and validates that it fits in a
// non-negative int64 before handing it to the rest of the package, where
// it is used as a slice length and as an argument to make([]byte, …).
// Without this check, a header with bit 63 set would decode to a
// negative int64 and panic deep inside the recursive decode, instead of
// surfacing as the verification/truncation error the format promises.
func decodeLenChecked(b [HeaderSize]byte) (int64, error) {
	raw := decodeLen(b)
	if raw > math.MaxInt64 {
		return 0, errHeaderOverflow(raw)
	}
	return int64(raw), nil
}
