package blake3

import "encoding/binary"

// BytesFromCV encodes a chaining value as its little-endian byte
// representation.
func BytesFromCV(cv [8]uint32) [OutSize]byte {
	var out [OutSize]byte
	for i, w := range cv {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

// CVFromBytes is the inverse of BytesFromCV. It reads the first OutSize
// bytes of b and panics if b is shorter than that; any further bytes are
// ignored.
func CVFromBytes(b []byte) [8]uint32 {
	var cv [8]uint32
	for i := range cv {
		cv[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return cv
}
