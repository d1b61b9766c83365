package fwfs

import (
	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

func (fs *FileSystem) Stat(path string) (ifstype.Stat, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return ifstype.Stat{}, ifserrors.NotMounted
	}
	res, err := fs.resolvePath(path, false)
	if err != nil {
		return ifstype.Stat{}, err
	}
	if res.delegateFS != nil {
		return res.delegateFS.Stat(res.delegatePath)
	}
	return fillStat(fs.part, fs.base, *res.local, fs.rootACL)
}

func (fs *FileSystem) FStat(h capability.Handle) (ifstype.Stat, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return ifstype.Stat{}, ifserrors.NotMounted
	}
	fd, err := fs.files.Get(h)
	if err != nil {
		return ifstype.Stat{}, err
	}
	if fd.isMountPoint() {
		return fd.mountedFS.FStat(fd.mountedH)
	}
	return fillStat(fs.part, fs.base, fd.od, fs.rootACL)
}

// Open implements spec.md §4.1 Open: any write-combination fails with
// ReadOnly on this strictly read-only backend; NoFollow opens a
// mountpoint object directly instead of traversing into it.
func (fs *FileSystem) Open(path string, flags ifstype.OpenFlags) (capability.Handle, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return 0, ifserrors.NotMounted
	}
	if flags.WantsWrite() {
		return 0, ifserrors.ReadOnly
	}

	res, err := fs.resolvePath(path, flags.Has(ifstype.NoFollow))
	if err != nil {
		return 0, err
	}
	if res.delegateFS != nil {
		innerH, err := res.delegateFS.Open(res.delegatePath, flags)
		if err != nil {
			return 0, err
		}
		h, fd, err := fs.files.Alloc()
		if err != nil {
			res.delegateFS.Close(innerH)
			return 0, err
		}
		fd.allocated = true
		fd.mounted = true
		fd.mountedFS = res.delegateFS
		fd.mountedH = innerH
		return h, nil
	}

	if res.local.tag.Type() != ifstype.TypeFile && res.local.tag.Type() != ifstype.TypeMountPoint {
		return 0, ifserrors.NotFound
	}

	stat, err := fillStat(fs.part, fs.base, *res.local, fs.rootACL)
	if err != nil {
		return 0, err
	}

	h, fd, err := fs.files.Alloc()
	if err != nil {
		return 0, err
	}
	fd.allocated = true
	fd.od = *res.local
	fd.cursor = 0
	fd.decoded = nil
	if stat.Compression.Type != ifstype.CompressionNone {
		fd.compressed = true
		fd.dataSize = uint64(stat.Compression.OriginalSize)
	} else {
		fd.compressed = false
		fd.dataSize = stat.Size
	}
	return h, nil
}

func (fs *FileSystem) Close(h capability.Handle) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return err
	}
	if fd.isMountPoint() {
		_ = fd.mountedFS.Close(fd.mountedH)
	}
	return fs.files.Free(h)
}

// Read implements spec.md §4.3 "File size and data read": walk data
// children in order, skipping those ending before the cursor, reading
// min(remaining_in_child, n-done) from each, until n bytes gathered or EOF.
func (fs *FileSystem) Read(h capability.Handle, buf []byte) (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return 0, err
	}
	if fd.isMountPoint() {
		return fd.mountedFS.Read(fd.mountedH, buf)
	}
	if fd.compressed {
		return fs.readCompressed(fd, buf)
	}

	var readTotal int
	var extStart uint64
	err = eachChild(fs.part, fs.base, fd.od, func(child header) error {
		if readTotal == len(buf) || fd.cursor >= fd.dataSize {
			return ifserrors.EndOfObjects
		}
		resolved := child
		if child.tag.IsRef() {
			r, rerr := resolveRef(fs.part, fs.base, child, fd.od.id)
			if rerr != nil {
				return rerr
			}
			resolved = r
		}
		if !ifstype.IsData(resolved.tag.Type()) {
			return nil
		}

		extLen := uint64(resolved.contentSize)
		if fd.cursor >= extStart && fd.cursor < extStart+extLen {
			offsetInChild := fd.cursor - extStart
			remaining := extLen - offsetInChild
			want := uint64(len(buf) - readTotal)
			readLen := remaining
			if want < readLen {
				readLen = want
			}
			if readLen > 0 {
				if rerr := readContent(fs.part, fs.base, resolved, uint32(offsetInChild), buf[readTotal:readTotal+int(readLen)]); rerr != nil {
					return rerr
				}
				fd.cursor += readLen
				readTotal += int(readLen)
			}
		}
		extStart += extLen
		return nil
	})
	if err != nil && err != ifserrors.EndOfObjects {
		return readTotal, err
	}
	return readTotal, nil
}

func (fs *FileSystem) Write(h capability.Handle, buf []byte) (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return 0, err
	}
	if fd.isMountPoint() {
		return fd.mountedFS.Write(fd.mountedH, buf)
	}
	return 0, ifserrors.ReadOnly
}

func (fs *FileSystem) Lseek(h capability.Handle, offset int64, whence int) (int64, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return 0, err
	}
	if fd.isMountPoint() {
		return fd.mountedFS.Lseek(fd.mountedH, offset, whence)
	}

	var newOffset int64
	switch whence {
	case capability.SeekStart:
		newOffset = offset
	case capability.SeekCurrent:
		newOffset = int64(fd.cursor) + offset
	case capability.SeekEnd:
		newOffset = int64(fd.dataSize) + offset
	default:
		return 0, ifserrors.BadParam
	}
	if newOffset < 0 || uint64(newOffset) > fd.dataSize {
		return 0, ifserrors.SeekBounds
	}
	fd.cursor = uint64(newOffset)
	return newOffset, nil
}

func (fs *FileSystem) Eof(h capability.Handle) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return false, err
	}
	if fd.isMountPoint() {
		return fd.mountedFS.Eof(fd.mountedH)
	}
	return fd.cursor >= fd.dataSize, nil
}

func (fs *FileSystem) Tell(h capability.Handle) (int64, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return 0, err
	}
	if fd.isMountPoint() {
		return fd.mountedFS.Tell(fd.mountedH)
	}
	return int64(fd.cursor), nil
}

func (fs *FileSystem) Ftruncate(h capability.Handle, size int64) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return err
	}
	if fd.isMountPoint() {
		return fd.mountedFS.Ftruncate(fd.mountedH, size)
	}
	return ifserrors.ReadOnly
}

func (fs *FileSystem) Flush(h capability.Handle) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return err
	}
	if fd.isMountPoint() {
		return fd.mountedFS.Flush(fd.mountedH)
	}
	return nil
}
