package hyfs

import (
	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

func (fs *FileSystem) FControl(h capability.Handle, code ifstype.ControlCode, buf []byte) (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return 0, err
	}
	return fd.backend(fs).FControl(fd.inner, code, buf)
}

func (fs *FileSystem) FGetExtents(h capability.Handle) ([]ifstype.Extent, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return nil, err
	}
	return fd.backend(fs).FGetExtents(fd.inner)
}
