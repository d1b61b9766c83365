// Package hostfs implements the reference writable capability.FileSystem
// backend of spec.md's "writable layer" (§4.4, §4.7): a thin adapter over
// an afero.Fs, used both directly (testing) and as HYFS's upper layer.
package hostfs

import (
	"sync"

	"github.com/spf13/afero"

	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/handle"
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// HandleMin is this backend's handle-range base (Design Notes §9). Chosen
// well clear of fwfs.HandleMin (0x1000) so the two never collide even
// after the fixed fwfs file-descriptor table and fwfs's growing
// directory-handle counter are both accounted for.
const HandleMin capability.Handle = 0x100000

// MaxFileDescs bounds the fixed file-descriptor pool.
const MaxFileDescs = 64

// FileSystem adapts an afero.Fs to capability.FileSystem. Metadata this
// repo's wire format needs but POSIX filesystems don't carry natively —
// xattrs, ACLs, compression records — is kept in a sidecar metadata store
// rather than mapped onto real OS xattrs, so the same backend works
// unmodified over afero.NewMemMapFs (tests) and afero.NewOsFs (real use).
type FileSystem struct {
	capability.Unsupported

	mu sync.Mutex

	fs      afero.Fs
	mounted bool

	files *handle.FilePool[fileDesc]
	dirs  *handle.DirPool[dirDesc]

	meta *metaStore
}

// New constructs an unmounted hostfs backend over fs.
func New(fs afero.Fs) *FileSystem {
	return &FileSystem{
		fs:    fs,
		files: handle.NewFilePool[fileDesc](HandleMin, MaxFileDescs),
		dirs:  handle.NewDirPool[dirDesc](HandleMin + MaxFileDescs),
		meta:  newMetaStore(fs),
	}
}

// Mount ensures the backing root directory exists. Idempotent.
func (fs *FileSystem) Mount() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.mounted {
		return nil
	}
	if fs.fs == nil {
		return ifserrors.NoPartition
	}
	if err := fs.fs.MkdirAll("/", 0o755); err != nil {
		return ifserrors.ReadFailure
	}
	fs.mounted = true
	return nil
}

func (fs *FileSystem) GetInfo() (ifstype.Info, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return ifstype.Info{}, ifserrors.NotMounted
	}
	return ifstype.Info{
		Type:          ifstype.FSTypeHost,
		MaxNameLength: 255,
		MaxPathLength: 4096,
	}, nil
}
