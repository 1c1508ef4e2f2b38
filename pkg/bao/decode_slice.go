package bao

import "github.com/baoformat/bao/pkg/blake3"

// DecodeSlice consumes a slice stream produced by Slice, verifies it
// against hash and the same (sliceStart, sliceLen) range used to produce
// it, and writes the verified plaintext within that range to sink. It
// fails at the first chaining-value mismatch and reads no further.
//
// Applies the same normalization as Slice (clamping an out-of-range
// sliceStart, coercing a zero sliceLen to 1), but additionally suppresses
// output in those degenerate cases via an internal skip-output flag, so
// that an out-of-range or zero-length request still verifies the one
// chunk the slice carries without emitting any bytes for it.
func DecodeSlice(slice Source, sink Sink, hash Hash, sliceStart, sliceLen int64) error {
	if sliceStart < 0 || sliceLen < 0 {
		return errInvalidArgument("bao: slice range (%d, %d) must not be negative", sliceStart, sliceLen)
	}

	var header [HeaderSize]byte
	if err := slice.ReadExact(header[:]); err != nil {
		return errTruncated("reading header", err)
	}
	contentLen, err := decodeLenChecked(header)
	if err != nil {
		return err
	}

	skipOutput := false
	if sliceLen == 0 {
		sliceLen = 1
		skipOutput = true
	}
	sliceEnd := sliceStart + sliceLen

	if sliceStart >= contentLen {
		if contentLen > 0 {
			sliceStart = contentLen - 1
		} else {
			sliceStart = 0
		}
		skipOutput = true
	}

	var chunkIndex int64
	var recurse func(subtreeStart, subtreeLen int64, expectedCV [8]uint32, final finalization) error
	recurse = func(subtreeStart, subtreeLen int64, expectedCV [8]uint32, final finalization) error {
		subtreeEnd := subtreeStart + subtreeLen
		switch {
		case subtreeEnd <= sliceStart && contentLen > 0:
			return nil
		case sliceEnd <= subtreeStart && contentLen > 0:
			return nil

		case subtreeLen <= ChunkSize:
			chunk := make([]byte, subtreeLen)
			if err := slice.ReadExact(chunk); err != nil {
				return errTruncated("reading chunk", err)
			}
			chunkIndex = subtreeStart / ChunkSize
			foundCV := blake3.ChunkCV(chunk, uint64(chunkIndex), bool(final))
			if err := verifyCV(expectedCV, foundCV, "chunk", chunkIndex); err != nil {
				return err
			}
			if skipOutput {
				return nil
			}
			lo := clamp(sliceStart-subtreeStart, 0, subtreeLen)
			hi := clamp(sliceEnd-subtreeStart, 0, subtreeLen)
			return sink.Write(chunk[lo:hi])

		default:
			var parent [ParentSize]byte
			if err := slice.ReadExact(parent[:]); err != nil {
				return errTruncated("reading parent node", err)
			}
			leftCV := blake3.CVFromBytes(parent[:HashSize])
			rightCV := blake3.CVFromBytes(parent[HashSize:])
			foundCV := blake3.ParentCV(leftCV, rightCV, bool(final))
			if err := verifyCV(expectedCV, foundCV, "parent", chunkIndex); err != nil {
				return err
			}

			llen := leftSubtreeLen(subtreeLen)
			if err := recurse(subtreeStart, llen, leftCV, notRoot); err != nil {
				return err
			}
			return recurse(subtreeStart+llen, subtreeLen-llen, rightCV, notRoot)
		}
	}

	return recurse(0, contentLen, cvFromHash(hash), isRoot)
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
