package bao

import "github.com/baoformat/bao/pkg/blake3"

// Encode produces the combined encoding of content: the content is
// buffered in full (incremental, bounded-memory encoding is an explicit
// non-goal) and the resulting tree is emitted in pre-order, interleaving
// parent nodes with their descendant chunk bytes.
func Encode(content []byte) ([]byte, Hash) {
	return encode(content, false)
}

// EncodeOutboard produces the outboard encoding of content: identical to
// Encode, except that chunk bytes are omitted from the returned stream.
// The raw content must be kept separately by the caller; DecodeOutboard
// reads it back from a second stream.
func EncodeOutboard(content []byte) ([]byte, Hash) {
	return encode(content, true)
}

func encode(content []byte, outboard bool) ([]byte, Hash) {
	var chunkIndex uint64

	var encodeRecurse func(buf []byte, final finalization) ([]byte, [8]uint32)
	encodeRecurse = func(buf []byte, final finalization) ([]byte, [8]uint32) {
		if int64(len(buf)) <= ChunkSize {
			cv := blake3.ChunkCV(buf, chunkIndex, bool(final))
			chunkIndex++
			if outboard {
				return nil, cv
			}
			return buf, cv
		}

		llen := leftSubtreeLen(int64(len(buf)))
		leftEncoded, leftCV := encodeRecurse(buf[:llen], notRoot)
		rightEncoded, rightCV := encodeRecurse(buf[llen:], notRoot)

		node := make([]byte, 0, ParentSize)
		leftBytes := blake3.BytesFromCV(leftCV)
		rightBytes := blake3.BytesFromCV(rightCV)
		node = append(node, leftBytes[:]...)
		node = append(node, rightBytes[:]...)

		encoded := make([]byte, 0, len(node)+len(leftEncoded)+len(rightEncoded))
		encoded = append(encoded, node...)
		encoded = append(encoded, leftEncoded...)
		encoded = append(encoded, rightEncoded...)
		return encoded, blake3.ParentCV(leftCV, rightCV, bool(final))
	}

	// Only the outermost call is permitted to set the root finalization.
	encoded, cv := encodeRecurse(content, isRoot)

	header := encodeLen(int64(len(content)))
	output := make([]byte, 0, len(header)+len(encoded))
	output = append(output, header[:]...)
	output = append(output, encoded...)
	return output, hashFromCV(cv)
}
