// Package compress provides the one concrete codec this module ships:
// zstd, used both as the archive writer's pluggable BlockEncoder and as
// fwfs's transparent decompression path for files whose Compression
// child records Type != None (spec.md §4.4, "Compression metadata").
package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Decompress fully decodes a zstd-compressed block, matching the eager
// decode strategy fwfs uses for compressed file content (§4.4): images
// are read-only and typically small enough that streaming adds
// complexity without a corresponding benefit.
func Decompress(compressed []byte, originalSize uint32) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	out := make([]byte, 0, originalSize)
	buf := make([]byte, 32*1024)
	for {
		n, err := dec.Read(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
