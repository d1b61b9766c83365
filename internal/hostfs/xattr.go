package hostfs

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
	return fs.meta.set(path, tag, value)
}

func (fs *FileSystem) GetXAttr(path string, tag ifstype.AttributeTag) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return nil, ifserrors.NotMounted
	}
	return fs.meta.get(path, tag)
}

func (fs *FileSystem) FSetXAttr(h capability.Handle, tag ifstype.AttributeTag, value []byte) error {
	fs.mu.Lock()
	fd, err := fs.files.Get(h)
	fs.mu.Unlock()
	if err != nil {
		return err
	}
	return fs.meta.set(fd.path, tag, value)
}

func (fs *FileSystem) FGetXAttr(h capability.Handle, tag ifstype.AttributeTag) ([]byte, error) {
	fs.mu.Lock()
	fd, err := fs.files.Get(h)
	fs.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return fs.meta.get(fd.path, tag)
}

func (fs *FileSystem) FEnumXAttr(h capability.Handle) ([]capability.XAttr, error) {
	fs.mu.Lock()
	fd, err := fs.files.Get(h)
	fs.mu.Unlock()
	if err != nil {
		return nil, err
	}
	attrs, err := fs.meta.enum(fd.path)
	if err != nil {
		return nil, err
	}
	out := make([]capability.XAttr, 0, len(attrs))
	for tag, value := range attrs {
		out = append(out, capability.XAttr{Tag: tag, Value: value})
	}
	return out, nil
}
