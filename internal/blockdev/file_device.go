package blockdev

import (
	"bytes"
	"os"

	"github.com/sillyhouse/ifs/internal/ifserrors"
)

// FileDevice wraps an *os.File as a block device, per spec.md §4.7. It
// enables filesystem-on-file composition (testing, backups, image
// inspection) without any platform-specific flash driver.
type FileDevice struct {
	file      *os.File
	size      int64
	blockSize int
}

// OpenFileDevice opens path (creating it if create is true and it doesn't
// exist) and reports it as a block device of the given size/erase-block
// size. If the file is smaller than size it is extended (sparse) to size.
func OpenFileDevice(path string, size int64, blockSize int, create bool) (*FileDevice, error) {
	flags := os.O_RDWR
	if create {
		flags |= os.O_CREATE
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, ifserrors.NoMedia
	}
	if err := f.Truncate(size); err != nil {
		f.Close()
		return nil, ifserrors.WriteFailure
	}
	return &FileDevice{file: f, size: size, blockSize: blockSize}, nil
}

func (d *FileDevice) Read(off int64, buf []byte) error {
	if err := checkExtent(off, int64(len(buf)), d.size); err != nil {
		return err
	}
	if _, err := d.file.ReadAt(buf, off); err != nil {
		return ifserrors.ReadFailure
	}
	return nil
}

func (d *FileDevice) Write(off int64, buf []byte) error {
	if err := checkExtent(off, int64(len(buf)), d.size); err != nil {
		return err
	}
	if _, err := d.file.WriteAt(buf, off); err != nil {
		return ifserrors.WriteFailure
	}
	return nil
}

// EraseRange simulates flash erase by writing 0xFF across the range, per
// spec.md §4.2 ("for file-backed devices erase is simulated by writing
// 0xFF").
func (d *FileDevice) EraseRange(off int64, length int64) error {
	if err := checkExtent(off, length, d.size); err != nil {
		return err
	}
	fill := bytes.Repeat([]byte{0xFF}, int(length))
	if _, err := d.file.WriteAt(fill, off); err != nil {
		return ifserrors.EraseFailure
	}
	return nil
}

func (d *FileDevice) Size() int64   { return d.size }
func (d *FileDevice) BlockSize() int { return d.blockSize }

// Close releases the underlying file handle.
func (d *FileDevice) Close() error { return d.file.Close() }
