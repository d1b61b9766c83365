package fwfs

import (
	"strings"

	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// splitPath normalizes a path into non-empty segments: leading/trailing
// slashes and repeated separators are ignored so "/a/b", "a/b/", and
// "a//b" all resolve identically (spec.md §8 property 2).
func splitPath(path string) []string {
	if path == "" || path == "/" {
		return nil
	}
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// resolution is the result of walking a path: either a local object
// header, or a delegation to a mounted filesystem with the residual path.
type resolution struct {
	local  *header
	delegateFS   capability.FileSystem
	delegatePath string
}

// resolvePath implements spec.md §4.3 "Path resolution". noFollow, when
// true and the path's final segment names a mountpoint, returns the
// mountpoint object itself instead of delegating into it.
func (fs *FileSystem) resolvePath(path string, noFollow bool) (resolution, error) {
	segs := splitPath(path)
	cur := fs.rootOD
	if len(segs) == 0 {
		return resolution{local: &cur}, nil
	}

	for i, seg := range segs {
		isLast := i == len(segs)-1

		var match *header
		var matchName string
		err := namedChildren(fs.part, fs.base, cur, func(name string, h header) error {
			if match != nil {
				return nil
			}
			if name == seg {
				hc := h
				match = &hc
				matchName = name
			}
			return nil
		})
		if err != nil {
			return resolution{}, err
		}
		if match == nil {
			return resolution{}, ifserrors.NotFound
		}
		_ = matchName

		if match.tag.Type() == ifstype.TypeMountPoint {
			if !isLast || !noFollow {
				volFS, residual, err := fs.enterMountPoint(*match, segs[i+1:])
				if err != nil {
					return resolution{}, err
				}
				return resolution{delegateFS: volFS, delegatePath: residual}, nil
			}
			// NoFollow on the final segment: return the mountpoint object itself.
			return resolution{local: match}, nil
		}

		if isLast {
			return resolution{local: match}, nil
		}

		if match.tag.Type() != ifstype.TypeDirectory {
			return resolution{}, ifserrors.NotFound
		}
		cur = *match
	}

	return resolution{local: &cur}, nil
}

// enterMountPoint reads the VolumeIndex child of a mountpoint object and
// returns the installed filesystem for that slot plus the joined residual
// path (spec.md §3.4 "MountPoint objects contain exactly one VolumeIndex
// child naming a slot").
func (fs *FileSystem) enterMountPoint(mp header, residualSegs []string) (capability.FileSystem, string, error) {
	var slot = -1
	err := eachChild(fs.part, fs.base, mp, func(child header) error {
		resolved := child
		if child.tag.IsRef() {
			r, err := resolveRef(fs.part, fs.base, child, mp.id)
			if err != nil {
				return err
			}
			resolved = r
		}
		if resolved.tag.Type() == ifstype.TypeVolumeIndex {
			var b [1]byte
			if err := readContent(fs.part, fs.base, resolved, 0, b[:]); err != nil {
				return err
			}
			slot = int(b[0])
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	if slot < 0 || slot >= MaxVolumes || fs.volumes[slot] == nil {
		return nil, "", ifserrors.BadVolumeIndex
	}
	return fs.volumes[slot], strings.Join(residualSegs, "/"), nil
}

// SetVolume installs a child filesystem at a mountpoint slot (spec.md §4.1).
func (fs *FileSystem) SetVolume(index int, childFS capability.FileSystem) error {
	if index < 0 || index >= MaxVolumes {
		return ifserrors.BadVolumeIndex
	}
	fs.volumes[index] = childFS
	return nil
}
