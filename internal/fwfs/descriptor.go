package fwfs

import "github.com/sillyhouse/ifs/internal/capability"

// fileDesc is the FWFS file descriptor of spec.md §3.5: object id, data
// size, cursor, and — when the file is actually a mountpoint opened
// through a traversing path — a passthrough handle into the mounted
// filesystem.
type fileDesc struct {
	allocated bool
	od        header
	dataSize  uint64
	cursor    uint64

	// compressed and decoded serve spec.md §4.4 transparent decompression:
	// when the object's Compression child has Type != None, dataSize holds
	// the logical (decompressed) size and decoded is populated lazily on
	// first Read with the fully decompressed content.
	compressed bool
	decoded    []byte

	mounted   bool
	mountedFS capability.FileSystem
	mountedH  capability.Handle
}

func (fd *fileDesc) isMountPoint() bool { return fd.mounted }

// dirDesc is the FWFS directory descriptor of spec.md §3.5: path, parent
// object id, and child-table cursor.
type dirDesc struct {
	path       string
	dirOD      header
	cursor     *childIterator

	mounted   bool
	mountedFS capability.FileSystem
	mountedH  capability.Handle
}
