package hostfs

import (
	"crypto/md5"
	"io"

	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// FGetExtents reports a single contiguous run spanning the whole file: a
// generic host filesystem has no strided on-media layout to expose
// (spec.md §4.6 is meaningful for FWFS's block graph, not POSIX files).
func (fs *FileSystem) FGetExtents(h capability.Handle) ([]ifstype.Extent, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return nil, err
	}
	info, err := fd.file.Stat()
	if err != nil {
		return nil, ifserrors.ReadFailure
	}
	if info.Size() == 0 {
		return nil, nil
	}
	return []ifstype.Extent{{Offset: 0, Length: uint32(info.Size())}}, nil
}

// FControl implements ControlGetMd5Hash over the full file content;
// anything else, including the ControlUserBase passthrough range, is not
// meaningful without an installed handler hook on this backend.
func (fs *FileSystem) FControl(h capability.Handle, code ifstype.ControlCode, buf []byte) (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return 0, err
	}

	switch code {
	case ifstype.ControlGetMd5Hash:
		if _, err := fd.file.Seek(0, io.SeekStart); err != nil {
			return 0, ifserrors.SeekBounds
		}
		sum := md5.New()
		if _, err := io.Copy(sum, fd.file); err != nil {
			return 0, ifserrors.ReadFailure
		}
		hash := sum.Sum(nil)
		if len(buf) < len(hash) {
			return 0, ifserrors.BufferTooSmall
		}
		copy(buf, hash)
		return len(hash), nil
	default:
		return 0, ifserrors.NotSupported
	}
}
