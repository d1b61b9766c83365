package hostfs

import (
	"io"
	"os"

	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

func toOSFlags(flags ifstype.OpenFlags) int {
	osFlags := os.O_RDONLY
	switch {
	case flags.Has(ifstype.Read | ifstype.Write):
		osFlags = os.O_RDWR
	case flags.Has(ifstype.Write):
		osFlags = os.O_WRONLY
	}
	if flags.Has(ifstype.Create) {
		osFlags |= os.O_CREATE
	}
	if flags.Has(ifstype.Append) {
		osFlags |= os.O_APPEND
	}
	if flags.Has(ifstype.Truncate) {
		osFlags |= os.O_TRUNC
	}
	return osFlags
}

func (fs *FileSystem) Stat(path string) (ifstype.Stat, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return ifstype.Stat{}, ifserrors.NotMounted
	}
	return fs.statPath(path)
}

func (fs *FileSystem) statPath(path string) (ifstype.Stat, error) {
	info, err := fs.fs.Stat(path)
	if err != nil {
		return ifstype.Stat{}, ifserrors.NotFound
	}
	stat := ifstype.Stat{
		Name:    info.Name(),
		Size:    uint64(info.Size()),
		ModTime: info.ModTime(),
	}
	if info.IsDir() {
		stat.Attr |= ifstype.AttrDirectory
	}
	if attrs, _ := fs.meta.enum(path); attrs != nil {
		if b, ok := attrs[ifstype.TagFileAttributes]; ok && len(b) == 1 {
			stat.Attr |= ifstype.FileAttribute(b[0])
		}
		if b, ok := attrs[ifstype.TagReadAce]; ok && len(b) == 1 {
			stat.Acl.ReadAccess = ifstype.UserRole(b[0])
		}
		if b, ok := attrs[ifstype.TagWriteAce]; ok && len(b) == 1 {
			stat.Acl.WriteAccess = ifstype.UserRole(b[0])
		}
	}
	return stat, nil
}

func (fs *FileSystem) FStat(h capability.Handle) (ifstype.Stat, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return ifstype.Stat{}, err
	}
	return fs.statPath(fd.path)
}

func (fs *FileSystem) Open(path string, flags ifstype.OpenFlags) (capability.Handle, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return 0, ifserrors.NotMounted
	}
	f, err := fs.fs.OpenFile(path, toOSFlags(flags), 0o644)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ifserrors.NotFound
		}
		return 0, ifserrors.ReadFailure
	}
	h, fd, err := fs.files.Alloc()
	if err != nil {
		f.Close()
		return 0, err
	}
	fd.allocated = true
	fd.path = path
	fd.file = f
	return h, nil
}

func (fs *FileSystem) Close(h capability.Handle) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return err
	}
	_ = fd.file.Close()
	return fs.files.Free(h)
}

func (fs *FileSystem) Read(h capability.Handle, buf []byte) (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return 0, err
	}
	n, err := fd.file.Read(buf)
	if err == io.EOF {
		return n, nil
	}
	if err != nil {
		return n, ifserrors.ReadFailure
	}
	return n, nil
}

func (fs *FileSystem) Write(h capability.Handle, buf []byte) (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return 0, err
	}
	n, err := fd.file.Write(buf)
	if err != nil {
		return n, ifserrors.WriteFailure
	}
	return n, nil
}

func (fs *FileSystem) Lseek(h capability.Handle, offset int64, whence int) (int64, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return 0, err
	}
	n, err := fd.file.Seek(offset, whence)
	if err != nil {
		return 0, ifserrors.SeekBounds
	}
	return n, nil
}

func (fs *FileSystem) Eof(h capability.Handle) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return false, err
	}
	cur, err := fd.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, ifserrors.SeekBounds
	}
	info, err := fd.file.Stat()
	if err != nil {
		return false, ifserrors.ReadFailure
	}
	return cur >= info.Size(), nil
}

func (fs *FileSystem) Tell(h capability.Handle) (int64, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return 0, err
	}
	return fd.file.Seek(0, io.SeekCurrent)
}

func (fs *FileSystem) Ftruncate(h capability.Handle, size int64) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return err
	}
	if err := fd.file.Truncate(size); err != nil {
		return ifserrors.WriteFailure
	}
	return nil
}

func (fs *FileSystem) Flush(h capability.Handle) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return err
	}
	if err := fd.file.Sync(); err != nil {
		return ifserrors.WriteFailure
	}
	return nil
}
