package fwfs

import (
	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

func (fs *FileSystem) OpenDir(path string) (capability.Handle, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return 0, ifserrors.NotMounted
	}

	res, err := fs.resolvePath(path, false)
	if err != nil {
		return 0, err
	}
	if res.delegateFS != nil {
		innerH, err := res.delegateFS.OpenDir(res.delegatePath)
		if err != nil {
			return 0, err
		}
		d := &dirDesc{path: path, mounted: true, mountedFS: res.delegateFS, mountedH: innerH}
		return fs.dirs.Alloc(d), nil
	}
	if res.local.tag.Type() != ifstype.TypeDirectory {
		return 0, ifserrors.NotFound
	}

	it, err := newChildIterator(fs.part, fs.base, *res.local)
	if err != nil {
		return 0, err
	}
	d := &dirDesc{path: path, dirOD: *res.local, cursor: it}
	return fs.dirs.Alloc(d), nil
}

// ReadDir implements spec.md §4.3 enumeration: skip non-named children,
// and by construction '.'/'..' are never emitted since the wire format
// has no such synthetic entries (spec.md §8 property 10).
func (fs *FileSystem) ReadDir(h capability.Handle) (capability.DirEntry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	d, err := fs.dirs.Get(h)
	if err != nil {
		return capability.DirEntry{}, err
	}
	if d.mounted {
		return d.mountedFS.ReadDir(d.mountedH)
	}

	for {
		child, err := d.cursor.next()
		if err == ifserrors.EndOfObjects {
			return capability.DirEntry{}, ifserrors.NoMoreFiles
		}
		if err != nil {
			return capability.DirEntry{}, err
		}
		resolved := child
		if child.tag.IsRef() {
			r, rerr := resolveRef(fs.part, fs.base, child, d.dirOD.id)
			if rerr != nil {
				return capability.DirEntry{}, rerr
			}
			resolved = r
		}
		if !resolved.isNamed() {
			continue
		}
		stat, err := fillStat(fs.part, fs.base, resolved, fs.rootACL)
		if err != nil {
			return capability.DirEntry{}, err
		}
		return capability.DirEntry{Stat: stat}, nil
	}
}

func (fs *FileSystem) RewindDir(h capability.Handle) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	d, err := fs.dirs.Get(h)
	if err != nil {
		return err
	}
	if d.mounted {
		return d.mountedFS.RewindDir(d.mountedH)
	}
	it, err := newChildIterator(fs.part, fs.base, d.dirOD)
	if err != nil {
		return err
	}
	d.cursor = it
	return nil
}

func (fs *FileSystem) CloseDir(h capability.Handle) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	d, err := fs.dirs.Get(h)
	if err != nil {
		return err
	}
	if d.mounted {
		_ = d.mountedFS.CloseDir(d.mountedH)
	}
	return fs.dirs.Free(h)
}
