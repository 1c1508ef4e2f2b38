// Package bao implements the Bao verified streaming tree codec layered on
// top of the BLAKE3 tree hash (package blake3). It provides the encoder,
// the streaming root hasher, the full decoder, and the slice
// producer/verifier described by the format's specification.
//
// The core package has no knowledge of files or standard input; it only
// consumes a Source (read-exact, and for slicing, seek-forward-by-n)
// and a Sink (write). Collaborators that adapt *os.File and friends to
// these interfaces live in package baoio.
package bao

import (
	"github.com/baoformat/bao/pkg/blake3"
)

const (
	// ChunkSize is the maximum number of content bytes addressed by a
	// single leaf of the tree.
	ChunkSize = blake3.ChunkSize
	// HashSize is the size in bytes of a chaining value or root hash.
	HashSize = blake3.OutSize
	// ParentSize is the size in bytes of a serialized parent node (the
	// concatenation of its two children's chaining values).
	ParentSize = 2 * HashSize
	// HeaderSize is the size in bytes of the content-length header that
	// prefixes every encoding.
	HeaderSize = 8
)

// Hash is a 32-byte BLAKE3 chaining value, used both as an intermediate
// node hash and, at the root, as the content hash of the whole input.
type Hash [HashSize]byte

// finalization carries whether the node currently being hashed is the
// topmost node of the whole tree. Modeled as a two-valued type, rather
// than a bool, to make accidental promotion of an inner node to root
// hashing a type error at the call site instead of a silent bug.
type finalization bool

const (
	notRoot finalization = false
	isRoot  finalization = true
)

func cvFromHash(h Hash) [8]uint32 {
	return blake3.CVFromBytes(h[:])
}

func hashFromCV(cv [8]uint32) Hash {
	return Hash(blake3.BytesFromCV(cv))
}
