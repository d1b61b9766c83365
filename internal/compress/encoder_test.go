package compress

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sillyhouse/ifs/internal/ifstype"
)

func TestEncoderDecompressRoundTrip(t *testing.T) {
	raw := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 50)

	enc := NewEncoder(0)
	require.NoError(t, enc.Encode(bytes.NewReader(raw)))

	stream, more, err := enc.GetNextStream()
	require.NoError(t, err)
	require.True(t, more)
	compressed, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(raw), "repetitive input should compress smaller")

	_, more, err = enc.GetNextStream()
	require.NoError(t, err)
	assert.False(t, more, "a single-file encoder yields exactly one stream")

	meta := enc.Compression()
	assert.Equal(t, ifstype.CompressionZstd, meta.Type)
	assert.Equal(t, uint32(len(raw)), meta.OriginalSize)

	decoded, err := Decompress(compressed, meta.OriginalSize)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestEncoderResetsBetweenFiles(t *testing.T) {
	enc := NewEncoder(0)
	require.NoError(t, enc.Encode(bytes.NewReader([]byte("first"))))
	_, _, err := enc.GetNextStream()
	require.NoError(t, err)

	require.NoError(t, enc.Encode(bytes.NewReader([]byte("second-file-content"))))
	stream, more, err := enc.GetNextStream()
	require.NoError(t, err)
	require.True(t, more)

	compressed, err := io.ReadAll(stream)
	require.NoError(t, err)
	decoded, err := Decompress(compressed, enc.Compression().OriginalSize)
	require.NoError(t, err)
	assert.Equal(t, "second-file-content", string(decoded))
}
