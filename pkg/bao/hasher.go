package bao

import (
	"io"
	"math/bits"

	"github.com/baoformat/bao/pkg/blake3"
)

// Hasher computes the BLAKE3/Bao root hash of a stream read exactly once,
// without buffering more than one chunk plus a stack of subtree chaining
// values (depth at most 64, since chunk counts fit in a uint64).
//
// The invariant that keeps this small: after n complete chunks have been
// folded in, the balanced subtrees still unmerged correspond exactly to
// the set bits of n, largest to smallest from the bottom of the stack to
// the top. Writing one more chunk either starts a new, still-unique
// smallest subtree, or triggers a cascade of merges exactly deep enough to
// restore that invariant.
type Hasher struct {
	buf    [ChunkSize]byte
	bufLen int
	chunks uint64
	stack  [][8]uint32
}

// NewHasher returns a Hasher ready to hash an empty input.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Write adds more data to the running hash. It never returns an error.
func (h *Hasher) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		if h.bufLen < ChunkSize {
			n := copy(h.buf[h.bufLen:], p)
			h.bufLen += n
			p = p[n:]
		}
		if len(p) == 0 {
			// The buffer may now hold a full chunk, but we don't yet
			// know whether more input is coming; defer finalization
			// to the next Write or to Sum.
			return total, nil
		}

		// The buffer holds a full chunk, and more input remains, so
		// this chunk is provably not the last one in the stream.
		cv := blake3.ChunkCV(h.buf[:ChunkSize], h.chunks, false)
		h.chunks++
		h.mergeIn(cv)
		h.bufLen = 0
	}
	return total, nil
}

// mergeIn folds a newly completed subtree's chaining value into the
// stack, merging with the top of the stack as many times as needed to
// restore the popcount invariant.
func (h *Hasher) mergeIn(cv [8]uint32) {
	target := bits.OnesCount64(h.chunks)
	for len(h.stack)+1 > target {
		top := h.stack[len(h.stack)-1]
		h.stack = h.stack[:len(h.stack)-1]
		cv = blake3.ParentCV(top, cv, false)
	}
	h.stack = append(h.stack, cv)
}

// Sum returns the root hash of everything written so far. It does not
// mutate the Hasher, so Write may continue to be called afterwards (the
// trailing partial chunk is not finalized until Sum or another full
// chunk boundary is crossed).
func (h *Hasher) Sum() Hash {
	if h.chunks == 0 {
		cv := blake3.ChunkCV(h.buf[:h.bufLen], 0, true)
		return hashFromCV(cv)
	}

	cv := blake3.ChunkCV(h.buf[:h.bufLen], h.chunks, false)
	stack := append([][8]uint32(nil), h.stack...)
	for len(stack) > 1 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cv = blake3.ParentCV(top, cv, false)
	}
	return hashFromCV(blake3.ParentCV(stack[0], cv, true))
}

// HashReader computes the Bao/BLAKE3 root hash of everything r produces,
// reading it exactly once.
func HashReader(r io.Reader) (Hash, error) {
	h := NewHasher()
	buf := make([]byte, ChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			return h.Sum(), nil
		}
		if err != nil {
			return Hash{}, err
		}
	}
}
