package hyfs

import (
	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

func (fs *FileSystem) SetXAttr(path string, tag ifstype.AttributeTag, value []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return ifserrors.NotMounted
	}
	if err := fs.ensureWritable(path); err != nil {
		return err
	}
	return fs.upper.SetXAttr(path, tag, value)
}

func (fs *FileSystem) GetXAttr(path string, tag ifstype.AttributeTag) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return nil, ifserrors.NotMounted
	}
	if v, err := fs.upper.GetXAttr(path, tag); err == nil {
		return v, nil
	}
	if fs.isHidden(path) {
		return nil, ifserrors.NotFound
	}
	return fs.lower.GetXAttr(path, tag)
}

func (fs *FileSystem) FSetXAttr(h capability.Handle, tag ifstype.AttributeTag, value []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return err
	}
	if !fd.onUpper {
		return ifserrors.ReadOnly
	}
	return fs.upper.FSetXAttr(fd.inner, tag, value)
}

func (fs *FileSystem) FGetXAttr(h capability.Handle, tag ifstype.AttributeTag) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return nil, err
	}
	return fd.backend(fs).FGetXAttr(fd.inner, tag)
}

func (fs *FileSystem) FEnumXAttr(h capability.Handle) ([]capability.XAttr, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return nil, err
	}
	return fd.backend(fs).FEnumXAttr(fd.inner)
}
