// Package hyfs implements the HYFS copy-on-write overlay (spec.md §4.4):
// a read-only lower FileSystem (normally fwfs) beneath a writable upper
// FileSystem (normally hostfs), with promote-on-write and a hide-list
// masking lower entries that have been deleted or superseded.
package hyfs

import (
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/handle"
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// HandleMin is this backend's handle-range base (Design Notes §9). HYFS
// is normally the outermost FileSystem an application talks to, so its
// handles never need to coexist with its own lower/upper backends'
// ranges in the same descriptor table — but it still picks a dedicated
// base for consistency with every other backend in this module.
const HandleMin capability.Handle = 0x10000

// MaxFileDescs bounds the fixed file-descriptor pool.
const MaxFileDescs = 64

// TombstoneStore persists the hide-list across process restarts. The
// default (spec's stated default, "not persisted") is the in-memory map
// hyfs.FileSystem keeps itself; hostfs.XattrTombstoneStore is the opt-in
// persisted alternative.
type TombstoneStore interface {
	Load() (map[string]bool, error)
	Save(hidden map[string]bool) error
}

// FileSystem is the HYFS overlay capability.FileSystem implementation.
type FileSystem struct {
	capability.Unsupported

	mu sync.Mutex

	lower capability.FileSystem
	upper capability.FileSystem

	mounted  bool
	hidden   map[string]bool
	store    TombstoneStore
	warnings *multierror.Error

	files *handle.FilePool[fileDesc]
	dirs  *handle.DirPool[dirDesc]
}

// New builds an unmounted HYFS overlay over lower (read-only) and upper
// (writable). store may be nil, in which case the hide-list lives only
// in memory for the lifetime of the FileSystem.
func New(lower, upper capability.FileSystem, store TombstoneStore) *FileSystem {
	return &FileSystem{
		lower: lower,
		upper: upper,
		store: store,
		files: handle.NewFilePool[fileDesc](HandleMin, MaxFileDescs),
		dirs:  handle.NewDirPool[dirDesc](HandleMin + MaxFileDescs),
	}
}

// Mount mounts both layers and loads the persisted hide-list, if any.
func (fs *FileSystem) Mount() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.mounted {
		return nil
	}
	if err := fs.lower.Mount(); err != nil {
		return err
	}
	if err := fs.upper.Mount(); err != nil {
		return err
	}
	if fs.store != nil {
		hidden, err := fs.store.Load()
		if err != nil {
			return err
		}
		fs.hidden = hidden
	} else {
		fs.hidden = make(map[string]bool)
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
	info, err := fs.lower.GetInfo()
	if err != nil {
		return ifstype.Info{}, err
	}
	info.Type = ifstype.FSTypeHybrid
	info.Attributes &^= ifstype.AttrReadOnly
	return info, nil
}

func (fs *FileSystem) hideFile(path string) error {
	fs.hidden[normPath(path)] = true
	if fs.store != nil {
		return fs.store.Save(fs.hidden)
	}
	return nil
}

func (fs *FileSystem) unhideFile(path string) error {
	delete(fs.hidden, normPath(path))
	if fs.store != nil {
		return fs.store.Save(fs.hidden)
	}
	return nil
}

func (fs *FileSystem) isHidden(path string) bool {
	return fs.hidden[normPath(path)]
}

func normPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

// Check sums both layers' recoverable-issue counts (SPEC_FULL.md
// "hyfs.FileSystem.Check checks both layers and sums counts").
func (fs *FileSystem) Check() (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return 0, ifserrors.NotMounted
	}
	lowerCount, lowerErr := fs.lower.Check()
	upperCount, upperErr := fs.upper.Check()
	if lowerErr != nil {
		return lowerCount + upperCount, lowerErr
	}
	if upperErr != nil {
		return lowerCount + upperCount, upperErr
	}
	return lowerCount + upperCount, nil
}

func (fs *FileSystem) SetVolume(index int, childFS capability.FileSystem) error {
	return fs.lower.SetVolume(index, childFS)
}

// Warnings returns non-fatal errors accumulated during promotion's
// per-attribute xattr copy (spec.md §7 ambient addition). It is cleared
// each time it is read.
func (fs *FileSystem) Warnings() *multierror.Error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	w := fs.warnings
	fs.warnings = nil
	return w
}
