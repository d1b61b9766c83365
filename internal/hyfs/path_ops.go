package hyfs

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
	if err := fs.upper.Mkdir(path); err != nil {
		return err
	}
	return fs.unhideFile(path)
}

// Remove implements spec.md §4.4: delete from upper if present there,
// and hide the lower entry (if any) so it stops shadowing through.
func (fs *FileSystem) Remove(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return ifserrors.NotMounted
	}
	if err := fs.checkLowerWritable(path); err != nil {
		return err
	}
	_, upperErr := fs.upper.Stat(path)
	if upperErr == nil {
		if err := fs.upper.Remove(path); err != nil {
			return err
		}
	}
	if _, err := fs.lower.Stat(path); err == nil {
		return fs.hideFile(path)
	}
	if upperErr != nil {
		return ifserrors.NotFound
	}
	return nil
}

// Rename promotes a lower-only source to upper before moving it, then
// hides the original lower path so it no longer shadows back in.
func (fs *FileSystem) Rename(oldPath, newPath string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return ifserrors.NotMounted
	}
	if err := fs.ensureWritable(oldPath); err != nil {
		return err
	}
	if err := fs.upper.Rename(oldPath, newPath); err != nil {
		return err
	}
	if _, err := fs.lower.Stat(oldPath); err == nil {
		if err := fs.hideFile(oldPath); err != nil {
			return err
		}
	}
	return fs.unhideFile(newPath)
}

func (fs *FileSystem) FRemove(h capability.Handle) error {
	fs.mu.Lock()
	fd, err := fs.files.Get(h)
	fs.mu.Unlock()
	if err != nil {
		return err
	}
	return fs.Remove(fd.path)
}

// Format wipes the upper layer and clears the hide-list; the lower
// layer, being read-only, is untouched and becomes fully visible again.
func (fs *FileSystem) Format() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return ifserrors.NotMounted
	}
	if err := fs.upper.Format(); err != nil {
		return err
	}
	fs.hidden = make(map[string]bool)
	if fs.store != nil {
		return fs.store.Save(fs.hidden)
	}
	return nil
}
