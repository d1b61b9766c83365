package fwfs

import (
	"github.com/sillyhouse/ifs/internal/blockdev"
	"github.com/sillyhouse/ifs/internal/compress"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// readCompressed serves Read for a file whose Compression child is
// Type != None (spec.md §4.4): the data children hold the compressed
// stream, decoded once and cached on fd so repeated reads/seeks don't
// re-inflate the block.
func (fs *FileSystem) readCompressed(fd *fileDesc, buf []byte) (int, error) {
	if fd.decoded == nil {
		raw, err := gatherRawData(fs.part, fs.base, fd.od)
		if err != nil {
			return 0, err
		}
		decoded, err := compress.Decompress(raw, uint32(fd.dataSize))
		if err != nil {
			return 0, err
		}
		fd.decoded = decoded
	}
	if fd.cursor >= uint64(len(fd.decoded)) {
		return 0, nil
	}
	n := copy(buf, fd.decoded[fd.cursor:])
	fd.cursor += uint64(n)
	return n, nil
}

// gatherRawData concatenates every data child's raw bytes in order,
// i.e. the file's on-media content before any decompression.
func gatherRawData(part blockdev.Partition, base int64, entry header) ([]byte, error) {
	var out []byte
	err := eachChild(part, base, entry, func(child header) error {
		resolved, err := resolveIfRef(part, base, child, entry.id)
		if err != nil {
			return err
		}
		if !ifstype.IsData(resolved.tag.Type()) {
			return nil
		}
		chunk := make([]byte, resolved.contentSize)
		if err := readContent(part, base, resolved, 0, chunk); err != nil {
			return err
		}
		out = append(out, chunk...)
		return nil
	})
	return out, err
}
