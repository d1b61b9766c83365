package fwfs

import (
	"bytes"
	"crypto/md5"

	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// Check implements spec.md §7 "Recovery: check() may return positive
// recoverable counts": it walks every File object reachable from the
// root, recomputes its MD5 over the actual data children, and counts
// mismatches against a recorded Md5Hash attribute. Nothing is repaired —
// this backend is read-only — so a positive count only ever reports a
// divergence already baked into the image.
func (fs *FileSystem) Check() (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return 0, ifserrors.NotMounted
	}
	mismatches := 0
	if err := fs.checkDir(fs.rootOD, &mismatches); err != nil {
		return mismatches, err
	}
	return mismatches, nil
}

func (fs *FileSystem) checkDir(dir header, mismatches *int) error {
	return eachChild(fs.part, fs.base, dir, func(child header) error {
		resolved, err := resolveIfRef(fs.part, fs.base, child, dir.id)
		if err != nil {
			return err
		}
		switch resolved.tag.Type() {
		case ifstype.TypeDirectory:
			return fs.checkDir(resolved, mismatches)
		case ifstype.TypeFile:
			return fs.checkFile(resolved, mismatches)
		default:
			return nil
		}
	})
}

func (fs *FileSystem) checkFile(file header, mismatches *int) error {
	recorded, err := md5Child(fs.part, fs.base, file)
	if err == ifserrors.NotFound {
		return nil
	}
	if err != nil {
		return err
	}

	h := md5.New()
	walkErr := eachChild(fs.part, fs.base, file, func(child header) error {
		resolved, err := resolveIfRef(fs.part, fs.base, child, file.id)
		if err != nil {
			return err
		}
		if !ifstype.IsData(resolved.tag.Type()) {
			return nil
		}
		buf := make([]byte, resolved.contentSize)
		if err := readContent(fs.part, fs.base, resolved, 0, buf); err != nil {
			return err
		}
		h.Write(buf)
		return nil
	})
	if walkErr != nil {
		return walkErr
	}
	if !bytes.Equal(h.Sum(nil), recorded) {
		*mismatches++
	}
	return nil
}
