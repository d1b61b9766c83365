// Package capability defines the FileSystem interface shared by every
// backend (fwfs, hyfs, hostfs) per spec.md §4.1 — "a uniform set of
// operations that all backends implement, enabling composition".
package capability

import "github.com/sillyhouse/ifs/internal/ifstype"

// Handle identifies an open file or directory. Each backend allocates
// handles from its own disjoint numeric range (spec.md §5, Design Notes
// "Handle allocation") so a composing filesystem can route a call to the
// right backend purely by comparing the handle against a base constant.
type Handle int

// DirEntry is one result from ReadDir.
type DirEntry struct {
	Stat ifstype.Stat
}

// XAttr is one extended attribute slot enumerated by FEnumXAttr.
type XAttr struct {
	Tag   ifstype.AttributeTag
	Value []byte
}

// FileSystem is the polymorphic capability of spec.md §4.1. All methods
// return a non-nil error (normally an ifserrors.Code) on failure; a
// partial Read returns the bytes actually read alongside a nil error only
// at true EOF, matching POSIX semantics described in the spec.
type FileSystem interface {
	Mount() error
	GetInfo() (ifstype.Info, error)

	Stat(path string) (ifstype.Stat, error)
	FStat(h Handle) (ifstype.Stat, error)

	Open(path string, flags ifstype.OpenFlags) (Handle, error)
	Close(h Handle) error
	Read(h Handle, buf []byte) (int, error)
	Write(h Handle, buf []byte) (int, error)
	Lseek(h Handle, offset int64, whence int) (int64, error)
	Eof(h Handle) (bool, error)
	Tell(h Handle) (int64, error)
	Ftruncate(h Handle, size int64) error
	Flush(h Handle) error

	OpenDir(path string) (Handle, error)
	ReadDir(h Handle) (DirEntry, error)
	RewindDir(h Handle) error
	CloseDir(h Handle) error

	Mkdir(path string) error
	Remove(path string) error
	Rename(oldPath, newPath string) error
	FRemove(h Handle) error
	Format() error
	Check() (int, error)

	SetXAttr(path string, tag ifstype.AttributeTag, value []byte) error
	GetXAttr(path string, tag ifstype.AttributeTag) ([]byte, error)
	FSetXAttr(h Handle, tag ifstype.AttributeTag, value []byte) error
	FGetXAttr(h Handle, tag ifstype.AttributeTag) ([]byte, error)
	FEnumXAttr(h Handle) ([]XAttr, error)

	FControl(h Handle, code ifstype.ControlCode, buf []byte) (int, error)
	FGetExtents(h Handle) ([]ifstype.Extent, error)

	SetVolume(index int, fs FileSystem) error

	GetErrorString(err error) string
}

// Seek origin constants, matching io.Seeker's values so callers can pass
// io.SeekStart/Current/End directly.
const (
	SeekStart   = 0
	SeekCurrent = 1
	SeekEnd     = 2
)
