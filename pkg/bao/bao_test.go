package bao_test

import (
	"bytes"
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/baoformat/bao/pkg/bao"
)

func decodeCombined(t *testing.T, encoded []byte, hash bao.Hash) []byte {
	t.Helper()
	out := bytes.NewBuffer([]byte{})
	err := bao.Decode(bao.NewReaderSource(bytes.NewReader(encoded)), bao.NewWriterSink(out), hash)
	require.NoError(t, err)
	return out.Bytes()
}

func TestRoundTripCombined(t *testing.T) {
	sizes := []int{0, 1, 63, 64, 1023, 1024, 1025, 2048, 2049, 3*1024 + 17, 1 << 20}
	for _, n := range sizes {
		content := randomBytes(n)
		encoded, hash := bao.Encode(content)
		got := decodeCombined(t, encoded, hash)
		require.Equal(t, content, got, "size %d", n)
	}
}

func TestRoundTripOutboard(t *testing.T) {
	sizes := []int{0, 1, 1024, 1025, 3 * 1024}
	for _, n := range sizes {
		content := randomBytes(n)
		encoded, hash := bao.EncodeOutboard(content)

		out := bytes.NewBuffer([]byte{})
		err := bao.DecodeOutboard(
			bao.NewReaderSource(bytes.NewReader(encoded)),
			bao.NewReaderSource(bytes.NewReader(content)),
			bao.NewWriterSink(out),
			hash,
		)
		require.NoError(t, err, "size %d", n)
		require.Equal(t, content, out.Bytes(), "size %d", n)
	}
}

func TestHashAgreement(t *testing.T) {
	sizes := []int{0, 1, 1024, 1025, 1 << 18}
	for _, n := range sizes {
		content := randomBytes(n)
		_, encodedHash := bao.Encode(content)
		streamedHash, err := bao.HashReader(bytes.NewReader(content))
		require.NoError(t, err)
		require.Equal(t, encodedHash, streamedHash, "size %d", n)
	}
}

func TestHeaderExactness(t *testing.T) {
	for _, n := range []int{0, 1, 1024, 1<<32 + 5} {
		if n > 1<<24 {
			continue // keep the test fast; header math is size-independent
		}
		content := randomBytes(n)
		encoded, _ := bao.Encode(content)
		require.Len(t, encoded, 8+len(content))
		got := decodeLenForTest(encoded[:8])
		require.Equal(t, int64(n), got)
	}
}

func TestCombinedAndOutboardSizes(t *testing.T) {
	sizes := []int{0, 1, 1024, 1025, 2048, 3 * 1024, 3*1024 + 1}
	for _, n := range sizes {
		content := randomBytes(n)
		combined, _ := bao.Encode(content)
		outboard, _ := bao.EncodeOutboard(content)

		chunks := bao.CountChunks(int64(n))
		wantOutboard := int64(8) + bao.ParentSize*(chunks-1)
		wantCombined := wantOutboard + int64(n)
		require.EqualValues(t, wantOutboard, len(outboard), "size %d", n)
		require.EqualValues(t, wantCombined, len(combined), "size %d", n)
	}
}

func TestTamperResistanceCombined(t *testing.T) {
	content := randomBytes(2048)
	encoded, hash := bao.Encode(content)
	for _, offset := range []int{8, 9, 40, len(encoded) - 1} {
		tampered := append([]byte(nil), encoded...)
		tampered[offset] ^= 0x01
		var out bytes.Buffer
		err := bao.Decode(bao.NewReaderSource(bytes.NewReader(tampered)), bao.NewWriterSink(&out), hash)
		require.Error(t, err, "offset %d", offset)
	}
}

func TestTamperResistanceOutboardParent(t *testing.T) {
	content := randomBytes(4096)
	outboard, hash := bao.EncodeOutboard(content)
	tampered := append([]byte(nil), outboard...)
	tampered[10] ^= 0x01 // inside the first parent node

	var out bytes.Buffer
	err := bao.DecodeOutboard(
		bao.NewReaderSource(bytes.NewReader(tampered)),
		bao.NewReaderSource(bytes.NewReader(content)),
		bao.NewWriterSink(&out),
		hash,
	)
	require.Error(t, err)
}

func TestSliceSoundness(t *testing.T) {
	content := randomBytes(3 * 1024)
	encoded, hash := bao.Encode(content)

	cases := []struct{ start, length int }{
		{0, 0}, {0, 1}, {1500, 100}, {0, 3 * 1024}, {3*1024 - 1, 1},
	}
	for _, c := range cases {
		var sliceBuf bytes.Buffer
		src := bao.NewReaderSource(bytes.NewReader(encoded))
		err := bao.Slice(src, src, bao.NewWriterSink(&sliceBuf), int64(c.start), int64(c.length))
		require.NoError(t, err, "case %+v", c)

		out := bytes.NewBuffer([]byte{})
		err = bao.DecodeSlice(bao.NewReaderSource(bytes.NewReader(sliceBuf.Bytes())), bao.NewWriterSink(out), hash, int64(c.start), int64(c.length))
		require.NoError(t, err, "case %+v", c)
		require.Equal(t, content[c.start:c.start+c.length], out.Bytes(), "case %+v", c)
	}
}

func TestSliceOfThreeChunkInput(t *testing.T) {
	content := make([]byte, 3*1024)
	for i := range content {
		content[i] = byte(i & 0xff)
	}
	encoded, hash := bao.Encode(content)

	var sliceBuf bytes.Buffer
	src := bao.NewReaderSource(bytes.NewReader(encoded))
	require.NoError(t, bao.Slice(src, src, bao.NewWriterSink(&sliceBuf), 1500, 100))

	var out bytes.Buffer
	require.NoError(t, bao.DecodeSlice(bao.NewReaderSource(bytes.NewReader(sliceBuf.Bytes())), bao.NewWriterSink(&out), hash, 1500, 100))
	require.Equal(t, content[1500:1600], out.Bytes())
}

func TestSliceTamperResistance(t *testing.T) {
	content := randomBytes(3 * 1024)
	encoded, hash := bao.Encode(content)

	var sliceBuf bytes.Buffer
	src := bao.NewReaderSource(bytes.NewReader(encoded))
	require.NoError(t, bao.Slice(src, src, bao.NewWriterSink(&sliceBuf), 1500, 100))

	tampered := append([]byte(nil), sliceBuf.Bytes()...)
	tampered[len(tampered)-1] ^= 0x01

	var out bytes.Buffer
	err := bao.DecodeSlice(bao.NewReaderSource(bytes.NewReader(tampered)), bao.NewWriterSink(&out), hash, 1500, 100)
	require.Error(t, err)
}

func TestOutOfRangeSlice(t *testing.T) {
	content := randomBytes(2048)
	encoded, hash := bao.Encode(content)

	var sliceBuf bytes.Buffer
	src := bao.NewReaderSource(bytes.NewReader(encoded))
	require.NoError(t, bao.Slice(src, src, bao.NewWriterSink(&sliceBuf), 10000, 5))

	var out bytes.Buffer
	require.NoError(t, bao.DecodeSlice(bao.NewReaderSource(bytes.NewReader(sliceBuf.Bytes())), bao.NewWriterSink(&out), hash, 10000, 5))
	require.Empty(t, out.Bytes())
}

func TestZeroLengthSlice(t *testing.T) {
	content := randomBytes(2048)
	encoded, hash := bao.Encode(content)

	var sliceBuf bytes.Buffer
	src := bao.NewReaderSource(bytes.NewReader(encoded))
	require.NoError(t, bao.Slice(src, src, bao.NewWriterSink(&sliceBuf), 500, 0))
	require.NotEmpty(t, sliceBuf.Bytes())
	require.True(t, len(sliceBuf.Bytes()) > bao.HeaderSize, "slice must carry at least a header and one chunk's parent chain")

	var out bytes.Buffer
	require.NoError(t, bao.DecodeSlice(bao.NewReaderSource(bytes.NewReader(sliceBuf.Bytes())), bao.NewWriterSink(&out), hash, 500, 0))
	require.Empty(t, out.Bytes())
}

func TestEmptyInputVectors(t *testing.T) {
	encoded, hash := bao.Encode(nil)
	require.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", hex.EncodeToString(hash[:]))
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, encoded)
}

func TestSingleByteVectors(t *testing.T) {
	encoded, hash := bao.Encode([]byte{0x00})
	require.Equal(t, "2d3adedff11b61f14c886e35afa036736dcd87a74d27b5c1510225d0f592e213", hex.EncodeToString(hash[:]))
	require.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0, 0x00}, encoded)
}

func TestOneFullChunkVector(t *testing.T) {
	content := make([]byte, 1024)
	encoded, _ := bao.Encode(content)
	require.Len(t, encoded, 8+1024)

	got := decodeCombined(t, encoded, func() bao.Hash { _, h := bao.Encode(content); return h }())
	require.Equal(t, content, got)
}

func TestTwoChunkVectorLayout(t *testing.T) {
	content := make([]byte, 1025)
	encoded, hash := bao.Encode(content)
	require.Len(t, encoded, 8+64+1025)

	leftChunk := encoded[8+64 : 8+64+1024]
	rightChunk := encoded[8+64+1024:]
	require.Equal(t, content[:1024], leftChunk)
	require.Equal(t, content[1024:], rightChunk)

	got := decodeCombined(t, encoded, hash)
	require.Equal(t, content, got)
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	rand.New(rand.NewSource(int64(n) + 1)).Read(b)
	return b
}

func decodeLenForTest(b []byte) int64 {
	var v int64
	for i := 7; i >= 0; i-- {
		v = v<<8 | int64(b[i])
	}
	return v
}
