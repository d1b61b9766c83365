package hostfs

import (
	"sort"

	"github.com/spf13/afero"

	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifserrors"
)

func (fs *FileSystem) listDir(path string) ([]string, error) {
	entries, err := afero.ReadDir(fs.fs, path)
	if err != nil {
		return nil, ifserrors.NotFound
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name() == metaPath[1:] || e.Name() == metaPath[1:]+".tmp" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (fs *FileSystem) OpenDir(path string) (capability.Handle, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return 0, ifserrors.NotMounted
	}
	entries, err := fs.listDir(path)
	if err != nil {
		return 0, err
	}
	d := &dirDesc{path: path, entries: entries}
	return fs.dirs.Alloc(d), nil
}

func (fs *FileSystem) ReadDir(h capability.Handle) (capability.DirEntry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	d, err := fs.dirs.Get(h)
	if err != nil {
		return capability.DirEntry{}, err
	}
	if d.pos >= len(d.entries) {
		return capability.DirEntry{}, ifserrors.NoMoreFiles
	}
	name := d.entries[d.pos]
	d.pos++
	stat, err := fs.statPath(joinPath(d.path, name))
	if err != nil {
		return capability.DirEntry{}, err
	}
	return capability.DirEntry{Stat: stat}, nil
}

func (fs *FileSystem) RewindDir(h capability.Handle) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	d, err := fs.dirs.Get(h)
	if err != nil {
		return err
	}
	entries, err := fs.listDir(d.path)
	if err != nil {
		return err
	}
	d.entries = entries
	d.pos = 0
	return nil
}

func (fs *FileSystem) CloseDir(h capability.Handle) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.dirs.Free(h)
}

func joinPath(dir, name string) string {
	if dir == "" || dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}
