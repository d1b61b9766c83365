package fwfs

import (
	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// FGetExtents implements spec.md §4.6: each data child contributes one
// extent at its absolute partition offset, then adjacent runs of equal
// length separated by a constant stride are folded into a single
// {offset,length,skip,repeat} descriptor (scenario E6).
func (fs *FileSystem) FGetExtents(h capability.Handle) ([]ifstype.Extent, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return nil, err
	}
	if fd.isMountPoint() {
		return fd.mountedFS.FGetExtents(fd.mountedH)
	}
	if fd.compressed {
		// The on-media data children hold compressed bytes at physical
		// offsets that bear no relation to the logical byte stream Read
		// produces (spec.md §4.4 transparent decompression), so no
		// extent list built from them could satisfy spec.md §8
		// invariant #7 ("read sequentially vs. via the extent list
		// produce equal byte streams"). Reporting this as one logical
		// run is the only answer consistent with Read.
		return []ifstype.Extent{{Length: uint32(fd.dataSize)}}, nil
	}

	var raw []ifstype.Extent
	err = eachChild(fs.part, fs.base, fd.od, func(child header) error {
		resolved, rerr := resolveIfRef(fs.part, fs.base, child, fd.od.id)
		if rerr != nil {
			return rerr
		}
		if !ifstype.IsData(resolved.tag.Type()) {
			return nil
		}
		raw = append(raw, ifstype.Extent{
			Offset: uint64(fs.base) + uint64(resolved.contentOffset),
			Length: resolved.contentSize,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mergeExtents(raw), nil
}

// mergeExtents folds a sequence of contiguous-or-strided, equal-length
// extents into repeat runs (spec.md §4.6).
func mergeExtents(raw []ifstype.Extent) []ifstype.Extent {
	if len(raw) == 0 {
		return nil
	}
	out := make([]ifstype.Extent, 0, len(raw))
	cur := raw[0]
	cur.Skip = 0
	cur.Repeat = 0

	for i := 1; i < len(raw); i++ {
		next := raw[i]
		runEnd := cur.Offset + uint64(cur.Length+cur.Skip)*uint64(cur.Repeat) + uint64(cur.Length)
		stride := next.Offset - runEnd
		sameStride := cur.Repeat == 0 || uint64(cur.Skip) == stride
		if next.Length == cur.Length && sameStride {
			cur.Skip = uint32(stride)
			cur.Repeat++
			continue
		}
		out = append(out, cur)
		cur = next
		cur.Skip = 0
		cur.Repeat = 0
	}
	out = append(out, cur)
	return out
}

// FControl implements spec.md §6.5: ControlGetMd5Hash copies the file's
// stored Md5Hash attribute into buf; everything else, including the
// ControlUserBase passthrough range, is not meaningful on a read-only
// backend with no installed control handlers.
func (fs *FileSystem) FControl(h capability.Handle, code ifstype.ControlCode, buf []byte) (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return 0, err
	}
	if fd.isMountPoint() {
		return fd.mountedFS.FControl(fd.mountedH, code, buf)
	}

	switch code {
	case ifstype.ControlGetMd5Hash:
		hash, err := md5Child(fs.part, fs.base, fd.od)
		if err != nil {
			return 0, err
		}
		if len(buf) < len(hash) {
			return 0, ifserrors.BufferTooSmall
		}
		copy(buf, hash)
		return len(hash), nil
	default:
		return 0, ifserrors.NotSupported
	}
}
