package bao

// CountChunks returns the number of chunks that a content string of the
// given length is split into. An empty input still counts as one (empty)
// chunk.
func CountChunks(contentLen int64) int64 {
	if contentLen == 0 {
		return 1
	}
	return (contentLen + ChunkSize - 1) / ChunkSize
}

// leftSubtreeLen returns the length in bytes of the left child of a
// subtree of length parentLen. Only defined for parentLen > ChunkSize: the
// left subtree always covers the largest power-of-two number of chunks
// strictly less than the subtree's own chunk count, guaranteeing both
// children are non-empty and the left child is a complete power-of-two
// subtree.
func leftSubtreeLen(parentLen int64) int64 {
	availableChunks := (parentLen - 1) / ChunkSize
	powerOfTwoChunks := int64(1) << (bitLength(availableChunks) - 1)
	return ChunkSize * powerOfTwoChunks
}

// bitLength returns the number of bits required to represent n (n > 0),
// i.e. floor(log2(n)) + 1.
func bitLength(n int64) uint {
	var bits uint
	for n > 0 {
		bits++
		n >>= 1
	}
	return bits
}

// EncodedSubtreeSize returns the number of bytes a subtree of the given
// content length occupies in an encoding, excluding any header. When
// outboard is true, leaf bytes are excluded (only parent nodes count).
func EncodedSubtreeSize(contentLen int64, outboard bool) int64 {
	parents := ParentSize * (CountChunks(contentLen) - 1)
	if outboard {
		return parents
	}
	return parents + contentLen
}
