package hostfs

import "github.com/spf13/afero"

// fileDesc is the hostfs file descriptor: the open afero.File plus the
// path it was opened with (xattr/fcontrol operations are path-keyed in
// the metadata store).
type fileDesc struct {
	allocated bool
	path      string
	file      afero.File
}

// dirDesc is the hostfs directory descriptor: the listing captured at
// opendir/rewinddir time and a cursor into it.
type dirDesc struct {
	path    string
	entries []string
	pos     int
}
