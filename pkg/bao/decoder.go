package bao

import "github.com/baoformat/bao/pkg/blake3"

// Decode streams the combined encoding read from input, verifying it
// against hash, and writes the verified plaintext to sink. A chunk is
// only written to the sink after its chaining value has been verified;
// parent nodes are verified before their children are read, so the
// maximum amount of unverified data ever buffered is one chunk.
func Decode(input Source, sink Sink, hash Hash) error {
	return decodeTree(input, input, sink, hash)
}

// DecodeOutboard streams an outboard encoding: tree carries the header
// and parent nodes, content carries the raw chunk bytes, both verified
// against hash.
func DecodeOutboard(tree Source, content Source, sink Sink, hash Hash) error {
	return decodeTree(tree, content, sink, hash)
}

func decodeTree(treeSrc Source, contentSrc Source, sink Sink, hash Hash) error {
	var header [HeaderSize]byte
	if err := treeSrc.ReadExact(header[:]); err != nil {
		return errTruncated("reading header", err)
	}
	contentLen, err := decodeLenChecked(header)
	if err != nil {
		return err
	}

	var chunkIndex int64
	var recurse func(expectedCV [8]uint32, subtreeLen int64, final finalization) error
	recurse = func(expectedCV [8]uint32, subtreeLen int64, final finalization) error {
		if subtreeLen <= ChunkSize {
			chunk := make([]byte, subtreeLen)
			if err := contentSrc.ReadExact(chunk); err != nil {
				return errTruncated("reading chunk", err)
			}
			foundCV := blake3.ChunkCV(chunk, uint64(chunkIndex), bool(final))
			if err := verifyCV(expectedCV, foundCV, "chunk", chunkIndex); err != nil {
				return err
			}
			chunkIndex++
			return sink.Write(chunk)
		}

		var parent [ParentSize]byte
		if err := treeSrc.ReadExact(parent[:]); err != nil {
			return errTruncated("reading parent node", err)
		}
		leftCV := blake3.CVFromBytes(parent[:HashSize])
		rightCV := blake3.CVFromBytes(parent[HashSize:])
		foundCV := blake3.ParentCV(leftCV, rightCV, bool(final))
		if err := verifyCV(expectedCV, foundCV, "parent", chunkIndex); err != nil {
			return err
		}

		llen := leftSubtreeLen(subtreeLen)
		if err := recurse(leftCV, llen, notRoot); err != nil {
			return err
		}
		return recurse(rightCV, subtreeLen-llen, notRoot)
	}

	return recurse(cvFromHash(hash), contentLen, isRoot)
}
