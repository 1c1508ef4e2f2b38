package blake3

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkCVEmptyInput(t *testing.T) {
	cv := ChunkCV(nil, 0, true)
	out := BytesFromCV(cv)
	require.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", hex.EncodeToString(out[:]))
}

func TestChunkCVSingleByte(t *testing.T) {
	cv := ChunkCV([]byte{0x00}, 0, true)
	out := BytesFromCV(cv)
	require.Equal(t, "2d3adedff11b61f14c886e35afa036736dcd87a74d27b5c1510225d0f592e213", hex.EncodeToString(out[:]))
}

func TestChunkCVFullChunkIsNotRoot(t *testing.T) {
	// A full 1024-byte chunk is never finalized as root by itself unless
	// it is the only chunk in the input; within a bigger tree it carries
	// no ROOT flag, so the same bytes produce a different chaining value
	// depending on finalization.
	chunk := make([]byte, ChunkSize)
	rootCV := BytesFromCV(ChunkCV(chunk, 0, true))
	nonRootCV := BytesFromCV(ChunkCV(chunk, 0, false))
	require.NotEqual(t, rootCV, nonRootCV)
}

func TestChunkCVUsesChunkIndexAsCounter(t *testing.T) {
	chunk := []byte("some chunk bytes")
	a := BytesFromCV(ChunkCV(chunk, 0, false))
	b := BytesFromCV(ChunkCV(chunk, 1, false))
	require.NotEqual(t, a, b)
}

func TestParentCVDiffersFromChunkCV(t *testing.T) {
	left := ChunkCV([]byte("left"), 0, false)
	right := ChunkCV([]byte("right"), 1, false)
	parent := ParentCV(left, right, false)
	require.NotEqual(t, BytesFromCV(left), BytesFromCV(parent))
}

func TestBytesFromCVRoundTrip(t *testing.T) {
	cv := ChunkCV([]byte("round trip"), 0, true)
	b := BytesFromCV(cv)
	require.Equal(t, cv, CVFromBytes(b[:]))
}
