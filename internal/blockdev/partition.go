// Package blockdev implements the byte-addressable Partition/BlockStore
// contract of spec.md §4.2, plus a file-backed FileDevice (§4.7) used both
// in tests and for filesystem-on-file composition.
package blockdev

import "github.com/sillyhouse/ifs/internal/ifserrors"

// Partition is the narrow storage contract every FWFS/HYFS backend reads
// and writes through. Implementations may validate that [off, off+len) is
// within [0, Size()) and return ifserrors.BadExtent otherwise.
type Partition interface {
	Read(off int64, buf []byte) error
	Write(off int64, buf []byte) error
	EraseRange(off int64, length int64) error
	Size() int64
	BlockSize() int
}

// checkExtent validates [off, off+int64(len)) against size, returning
// ifserrors.BadExtent when out of range.
func checkExtent(off, length, size int64) error {
	if off < 0 || length < 0 || off+length > size {
		return ifserrors.BadExtent
	}
	return nil
}
