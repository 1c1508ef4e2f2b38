package blake3

// ChunkCV computes the chaining value of a single chunk (at most
// ChunkSize bytes). chunkIndex is the zero-based position of the chunk in
// the chunk stream and is supplied as the counter field of every block
// compression belonging to this chunk, per the BLAKE3 spec. isRoot is set
// when this chunk is also the sole node of the entire tree.
func ChunkCV(chunk []byte, chunkIndex uint64, isRoot bool) [8]uint32 {
	cv := IV
	flags := FlagChunkStart

	// Compress all but the final block with CHUNK_START only on the
	// first, and no finalization flags in the middle.
	for len(chunk) > BlockSize {
		var block [BlockSize]byte
		copy(block[:], chunk[:BlockSize])
		cv = compress(cv, block, BlockSize, chunkIndex, flags)
		flags = 0
		chunk = chunk[BlockSize:]
	}

	flags |= FlagChunkEnd
	if isRoot {
		flags |= FlagRoot
	}
	var block [BlockSize]byte
	copy(block[:], chunk)
	return compress(cv, block, uint32(len(chunk)), chunkIndex, flags)
}

// ParentCV computes the chaining value of a parent node from its two
// children's chaining values. isRoot is set only when this parent is the
// root of the entire tree.
func ParentCV(left, right [8]uint32, isRoot bool) [8]uint32 {
	var block [BlockSize]byte
	leftBytes := BytesFromCV(left)
	rightBytes := BytesFromCV(right)
	copy(block[:32], leftBytes[:])
	copy(block[32:], rightBytes[:])

	flags := FlagParent
	if isRoot {
		flags |= FlagRoot
	}
	return compress(IV, block, BlockSize, 0, flags)
}
