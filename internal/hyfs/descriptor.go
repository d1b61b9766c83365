package hyfs

import "github.com/sillyhouse/ifs/internal/capability"

// fileDesc records which backend actually served an Open and the
// logical path, so later handle-based calls (xattr, fcontrol, extents,
// remove) can route to the right layer or trigger promotion.
type fileDesc struct {
	allocated bool
	path      string
	onUpper   bool
	inner     capability.Handle
}

func (fd *fileDesc) backend(fs *FileSystem) capability.FileSystem {
	if fd.onUpper {
		return fs.upper
	}
	return fs.lower
}

// dirDesc merges an upper listing with the lower listing minus hidden
// and upper-shadowed names (spec.md §4.4 "directory merge").
type dirDesc struct {
	path    string
	names   []string
	fromUpper []bool
	pos     int
}
