package hyfs

import (
	"github.com/hashicorp/go-multierror"

	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// copyChunkSize is the fixed scratch-buffer size used by copyContent,
// matching original_source/src/FileCopier.cpp's fixed-buffer streaming
// loop rather than buffering a whole file in memory.
const copyChunkSize = 32 * 1024

// copyContent streams srcH's bytes (opened on src) into dstH (opened on
// dst), a fixed number of bytes per iteration until src reports EOF.
func copyContent(src capability.FileSystem, srcH capability.Handle, dst capability.FileSystem, dstH capability.Handle) error {
	buf := make([]byte, copyChunkSize)
	for {
		n, err := src.Read(srcH, buf)
		if err != nil {
			return err
		}
		if n == 0 {
			eof, err := src.Eof(srcH)
			if err != nil {
				return err
			}
			if eof {
				return nil
			}
			continue
		}
		if _, err := dst.Write(dstH, buf[:n]); err != nil {
			return err
		}
	}
}

// promote implements spec.md §4.4's copy-on-write promotion protocol:
// copy lower's content to upper, then its extended attributes, so the
// upper layer becomes a complete standalone copy before the caller's
// write proceeds. Attribute-copy failures are appended to fs.warnings (a
// *multierror.Error read back through Warnings) rather than returned or
// aborting promotion, since the
// file's byte content — the part a write actually needs — already landed
// safely on upper by the time attributes are being copied.
func (fs *FileSystem) promote(path string) error {
	lowerH, err := fs.lower.Open(path, ifstype.Read)
	if err != nil {
		return err
	}
	defer fs.lower.Close(lowerH)

	upperH, err := fs.upper.Open(path, ifstype.Write|ifstype.Create|ifstype.Truncate)
	if err != nil {
		return err
	}
	defer fs.upper.Close(upperH)

	if err := copyContent(fs.lower, lowerH, fs.upper, upperH); err != nil {
		return err
	}

	attrs, err := fs.lower.FEnumXAttr(lowerH)
	if err != nil && err != ifserrors.NotSupported {
		return err
	}
	for _, a := range attrs {
		if a.Tag == ifstype.TagModifiedTime {
			continue // upper's own mtime already reflects the copy
		}
		if err := fs.upper.FSetXAttr(upperH, a.Tag, a.Value); err != nil {
			fs.warnings = multierror.Append(fs.warnings, err)
		}
	}
	return nil
}

// checkLowerWritable enforces spec.md §4.4 step 2 and §8 invariant #4: a
// lower entry marked ReadOnly can never be opened for write, renamed, or
// removed, promoted copy or not. Absence on lower imposes no restriction.
func (fs *FileSystem) checkLowerWritable(path string) error {
	stat, err := fs.lower.Stat(path)
	if err != nil {
		return nil
	}
	if stat.IsReadOnly() {
		return ifserrors.ReadOnly
	}
	return nil
}

// ensureWritable guarantees path exists on upper, promoting it from
// lower first if it's only present there. Returns ifserrors.NotFound if
// path exists on neither layer or is hidden, and ifserrors.ReadOnly if
// the lower entry is marked ReadOnly.
func (fs *FileSystem) ensureWritable(path string) error {
	if fs.isHidden(path) {
		if _, err := fs.upper.Stat(path); err != nil {
			return ifserrors.NotFound
		}
		return nil
	}
	if err := fs.checkLowerWritable(path); err != nil {
		return err
	}
	if _, err := fs.upper.Stat(path); err == nil {
		return nil
	}
	if _, err := fs.lower.Stat(path); err != nil {
		return ifserrors.NotFound
	}
	return fs.promote(path)
}
