package hostfs

import (
	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifserrors"
)

func (fs *FileSystem) Mkdir(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return ifserrors.NotMounted
	}
	if err := fs.fs.Mkdir(path, 0o755); err != nil {
		return ifserrors.WriteFailure
	}
	return nil
}

func (fs *FileSystem) Remove(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return ifserrors.NotMounted
	}
	if err := fs.fs.Remove(path); err != nil {
		return ifserrors.WriteFailure
	}
	_ = fs.meta.remove(path)
	return nil
}

func (fs *FileSystem) Rename(oldPath, newPath string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return ifserrors.NotMounted
	}
	if err := fs.fs.Rename(oldPath, newPath); err != nil {
		return ifserrors.WriteFailure
	}
	if attrs, _ := fs.meta.enum(oldPath); attrs != nil {
		for tag, v := range attrs {
			_ = fs.meta.set(newPath, tag, v)
		}
		_ = fs.meta.remove(oldPath)
	}
	return nil
}

func (fs *FileSystem) FRemove(h capability.Handle) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return err
	}
	path := fd.path
	_ = fd.file.Close()
	if err := fs.files.Free(h); err != nil {
		return err
	}
	if err := fs.fs.Remove(path); err != nil {
		return ifserrors.WriteFailure
	}
	_ = fs.meta.remove(path)
	return nil
}

// Format wipes the entire backing tree and re-creates the root,
// discarding all metadata (spec.md §4.1, "format").
func (fs *FileSystem) Format() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return ifserrors.NotMounted
	}
	if err := fs.fs.RemoveAll("/"); err != nil {
		return ifserrors.EraseFailure
	}
	if err := fs.fs.MkdirAll("/", 0o755); err != nil {
		return ifserrors.EraseFailure
	}
	fs.meta.data = nil
	return nil
}

// Check reports 0 recoverable issues: hostfs delegates integrity entirely
// to the underlying afero.Fs / host OS, which is outside this module's
// recovery model (spec.md §7, "Recovery: none automatic").
func (fs *FileSystem) Check() (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return 0, ifserrors.NotMounted
	}
	return 0, nil
}
