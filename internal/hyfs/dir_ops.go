package hyfs

import (
	"path"
	"sort"
	"strings"

	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// childPath joins a directory and an entry name into an absolute,
// slash-clean path usable by either backend (fwfs paths have no leading
// slash requirement; hostfs/afero paths need one to stay host-independent
// of any process cwd).
func childPath(dir, name string) string {
	return "/" + strings.Trim(path.Join(dir, name), "/")
}

// mergedListing implements spec.md §4.4 "directory merge": upper entries
// first, then lower entries not shadowed by an upper entry of the same
// name and not hidden.
func (fs *FileSystem) mergedListing(dir string) ([]string, []bool, error) {
	var names []string
	var fromUpper []bool
	seen := make(map[string]bool)

	upperNames, err := listNames(fs.upper, dir)
	if err != nil && err != ifserrors.NotFound {
		return nil, nil, err
	}
	for _, n := range upperNames {
		names = append(names, n)
		fromUpper = append(fromUpper, true)
		seen[n] = true
	}

	lowerNames, err := listNames(fs.lower, dir)
	if err != nil && err != ifserrors.NotFound {
		return nil, nil, err
	}
	for _, n := range lowerNames {
		if seen[n] {
			continue
		}
		if fs.isHidden(childPath(dir, n)) {
			continue
		}
		names = append(names, n)
		fromUpper = append(fromUpper, false)
	}

	return names, fromUpper, nil
}

func listNames(be capability.FileSystem, dir string) ([]string, error) {
	h, err := be.OpenDir(dir)
	if err != nil {
		return nil, err
	}
	defer be.CloseDir(h)
	var names []string
	for {
		entry, err := be.ReadDir(h)
		if err == ifserrors.NoMoreFiles {
			break
		}
		if err != nil {
			return nil, err
		}
		names = append(names, entry.Stat.Name)
	}
	sort.Strings(names)
	return names, nil
}

func (fs *FileSystem) OpenDir(dir string) (capability.Handle, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return 0, ifserrors.NotMounted
	}
	names, fromUpper, err := fs.mergedListing(dir)
	if err != nil {
		return 0, err
	}
	d := &dirDesc{path: dir, names: names, fromUpper: fromUpper}
	return fs.dirs.Alloc(d), nil
}

func (fs *FileSystem) ReadDir(h capability.Handle) (capability.DirEntry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	d, err := fs.dirs.Get(h)
	if err != nil {
		return capability.DirEntry{}, err
	}
	if d.pos >= len(d.names) {
		return capability.DirEntry{}, ifserrors.NoMoreFiles
	}
	name := d.names[d.pos]
	onUpper := d.fromUpper[d.pos]
	d.pos++

	full := childPath(d.path, name)
	var stat ifstype.Stat
	if onUpper {
		stat, err = fs.upper.Stat(full)
	} else {
		stat, err = fs.lower.Stat(full)
	}
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
	names, fromUpper, err := fs.mergedListing(d.path)
	if err != nil {
		return err
	}
	d.names, d.fromUpper, d.pos = names, fromUpper, 0
	return nil
}

func (fs *FileSystem) CloseDir(h capability.Handle) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.dirs.Free(h)
}
