package hostfs

import (
	"os"

	"github.com/google/renameio"
	"github.com/spf13/afero"

	"github.com/sillyhouse/ifs/internal/ifserrors"
)

// atomicWrite replaces path's content in one create-temp-then-rename step,
// so a crash mid-write never leaves a half-written file (spec.md §4.4
// promotion protocol, "copy content"). Against a real OS-backed afero.Fs
// this uses renameio directly; against any other afero.Fs (chiefly
// afero.MemMapFs in tests, which has no on-disk temp file to rename) it
// falls back to write-then-Rename through the afero.Fs interface itself,
// which is equally atomic for an in-memory filesystem.
func atomicWrite(fsys afero.Fs, path string, data []byte) error {
	if _, ok := fsys.(*afero.OsFs); ok {
		if err := renameio.WriteFile(path, data, 0o644); err != nil {
			return ifserrors.WriteFailure
		}
		return nil
	}

	tmp := path + ".tmp"
	f, err := fsys.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return ifserrors.WriteFailure
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return ifserrors.WriteFailure
	}
	if err := f.Close(); err != nil {
		return ifserrors.WriteFailure
	}
	if err := fsys.Rename(tmp, path); err != nil {
		return ifserrors.WriteFailure
	}
	return nil
}
