package fwfs

import (
	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifserrors"
)

// Mkdir, Remove, Rename, FRemove and Format are all meaningful operations
// this backend understands but refuses, since FWFS images are immutable
// once mounted (spec.md §4.3, "this backend is strictly read-only"). They
// return ReadOnly rather than the embedded Unsupported default's
// NotSupported, matching Open's handling of write flags.
func (fs *FileSystem) Mkdir(string) error                 { return ifserrors.ReadOnly }
func (fs *FileSystem) Remove(string) error                { return ifserrors.ReadOnly }
func (fs *FileSystem) Rename(string, string) error        { return ifserrors.ReadOnly }
func (fs *FileSystem) FRemove(capability.Handle) error     { return ifserrors.ReadOnly }
func (fs *FileSystem) Format() error                      { return ifserrors.ReadOnly }
