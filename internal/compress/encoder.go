package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/sillyhouse/ifs/internal/ifstype"
)

// Encoder is the archive writer's zstd BlockEncoder (spec.md §4.5, "the
// archive's pluggable BlockEncoder"): for each file it is handed, it
// returns a single compressed stream and records the pre-compression
// size the Compression object needs (src/Compression.cpp's
// GroupStream/original_size pairing).
type Encoder struct {
	level        zstd.EncoderLevel
	pending      []byte
	originalSize uint32
	done         bool
}

// NewEncoder builds an Encoder at the given zstd level. Level zero
// selects zstd's default (SpeedDefault).
func NewEncoder(level zstd.EncoderLevel) *Encoder {
	if level == 0 {
		level = zstd.SpeedDefault
	}
	return &Encoder{level: level}
}

// Encode prepares the encoder to compress the next file's raw bytes,
// matching archive.BlockEncoder's contract.
func (e *Encoder) Encode(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(e.level))
	if err != nil {
		return err
	}
	defer enc.Close()
	e.pending = enc.EncodeAll(raw, nil)
	e.originalSize = uint32(len(raw))
	e.done = false
	return nil
}

// GetNextStream matches archive.BlockEncoder's contract: it yields the
// one compressed stream produced by Encode, then false to signal the
// caller has no more streams for this file.
func (e *Encoder) GetNextStream() (io.Reader, bool, error) {
	if e.done {
		return nil, false, nil
	}
	e.done = true
	return bytes.NewReader(e.pending), true, nil
}

// Compression returns the metadata object the archive writer must emit
// alongside the compressed stream (spec.md §4.4).
func (e *Encoder) Compression() ifstype.Compression {
	return ifstype.Compression{Type: ifstype.CompressionZstd, OriginalSize: e.originalSize}
}
