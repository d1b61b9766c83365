package hyfs

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
	if stat, err := fs.upper.Stat(path); err == nil {
		return stat, nil
	}
	if fs.isHidden(path) {
		return ifstype.Stat{}, ifserrors.NotFound
	}
	return fs.lower.Stat(path)
}

func (fs *FileSystem) FStat(h capability.Handle) (ifstype.Stat, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return ifstype.Stat{}, err
	}
	return fd.backend(fs).FStat(fd.inner)
}

// Open implements spec.md §4.4's promote-on-write: a write-flagged open
// of a lower-only, non-hidden path promotes it to upper first; a
// read-only open prefers upper, falling back to lower when not hidden.
func (fs *FileSystem) Open(path string, flags ifstype.OpenFlags) (capability.Handle, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return 0, ifserrors.NotMounted
	}

	if flags.WantsWrite() {
		if err := fs.ensureWritable(path); err != nil {
			return 0, err
		}
		innerH, err := fs.upper.Open(path, flags)
		if err != nil {
			return 0, err
		}
		h, fd, err := fs.files.Alloc()
		if err != nil {
			fs.upper.Close(innerH)
			return 0, err
		}
		fd.allocated = true
		fd.path = path
		fd.onUpper = true
		fd.inner = innerH
		return h, nil
	}

	if _, err := fs.upper.Stat(path); err == nil {
		innerH, err := fs.upper.Open(path, flags)
		if err != nil {
			return 0, err
		}
		h, fd, err := fs.files.Alloc()
		if err != nil {
			fs.upper.Close(innerH)
			return 0, err
		}
		fd.allocated, fd.path, fd.onUpper, fd.inner = true, path, true, innerH
		return h, nil
	}
	if fs.isHidden(path) {
		return 0, ifserrors.NotFound
	}
	innerH, err := fs.lower.Open(path, flags)
	if err != nil {
		return 0, err
	}
	h, fd, err := fs.files.Alloc()
	if err != nil {
		fs.lower.Close(innerH)
		return 0, err
	}
	fd.allocated, fd.path, fd.onUpper, fd.inner = true, path, false, innerH
	return h, nil
}

func (fs *FileSystem) Close(h capability.Handle) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return err
	}
	_ = fd.backend(fs).Close(fd.inner)
	return fs.files.Free(h)
}

func (fs *FileSystem) Read(h capability.Handle, buf []byte) (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return 0, err
	}
	return fd.backend(fs).Read(fd.inner, buf)
}

func (fs *FileSystem) Write(h capability.Handle, buf []byte) (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return 0, err
	}
	if !fd.onUpper {
		return 0, ifserrors.ReadOnly
	}
	return fs.upper.Write(fd.inner, buf)
}

func (fs *FileSystem) Lseek(h capability.Handle, offset int64, whence int) (int64, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return 0, err
	}
	return fd.backend(fs).Lseek(fd.inner, offset, whence)
}

func (fs *FileSystem) Eof(h capability.Handle) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return false, err
	}
	return fd.backend(fs).Eof(fd.inner)
}

func (fs *FileSystem) Tell(h capability.Handle) (int64, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return 0, err
	}
	return fd.backend(fs).Tell(fd.inner)
}

func (fs *FileSystem) Ftruncate(h capability.Handle, size int64) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return err
	}
	if !fd.onUpper {
		return ifserrors.ReadOnly
	}
	return fs.upper.Ftruncate(fd.inner, size)
}

func (fs *FileSystem) Flush(h capability.Handle) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return err
	}
	return fd.backend(fs).Flush(fd.inner)
}
