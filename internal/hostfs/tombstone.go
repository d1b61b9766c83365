package hostfs

import (
	"sort"
	"strings"

	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// hideListTag is the reserved user-attribute slot this store persists
// HYFS's hidden-path set under, stored as a root-level xattr rather than
// per-file metadata (original_source's HYFS_HIDE_FLAGS compile-time
// toggle, turned into this runtime strategy — see SPEC_FULL.md §4.4).
var hideListTag = ifstype.UserTag(254)

// XattrTombstoneStore persists HYFS's hide-list as a newline-separated
// path list in a reserved xattr on the writable layer's root, satisfying
// hyfs.TombstoneStore. The in-memory default (spec's stated default,
// "not persisted") is what hyfs.FileSystem uses when no store is
// supplied; this is the opt-in persisted alternative.
type XattrTombstoneStore struct {
	FS *FileSystem
}

func (s XattrTombstoneStore) Load() (map[string]bool, error) {
	raw, err := s.FS.GetXAttr("/", hideListTag)
	if err == ifserrors.NotFound {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool)
	for _, line := range strings.Split(string(raw), "\n") {
		if line != "" {
			out[line] = true
		}
	}
	return out, nil
}

func (s XattrTombstoneStore) Save(hidden map[string]bool) error {
	paths := make([]string, 0, len(hidden))
	for p := range hidden {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return s.FS.SetXAttr("/", hideListTag, []byte(strings.Join(paths, "\n")))
}
