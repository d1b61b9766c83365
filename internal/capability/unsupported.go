package capability

import (
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// Unsupported is an embeddable FileSystem implementation where every
// method returns ifserrors.NotSupported. Design Notes §9 prefers "a flat
// trait with default NotSupported implementations over deep inheritance";
// a concrete backend embeds Unsupported and overrides only the operations
// it actually implements, rather than hand-writing a stub for every
// method of the interface.
type Unsupported struct{}

func (Unsupported) Mount() error                    { return ifserrors.NotSupported }
func (Unsupported) GetInfo() (ifstype.Info, error)  { return ifstype.Info{}, ifserrors.NotSupported }
func (Unsupported) Stat(string) (ifstype.Stat, error) {
	return ifstype.Stat{}, ifserrors.NotSupported
}
func (Unsupported) FStat(Handle) (ifstype.Stat, error) {
	return ifstype.Stat{}, ifserrors.NotSupported
}
func (Unsupported) Open(string, ifstype.OpenFlags) (Handle, error) { return 0, ifserrors.NotSupported }
func (Unsupported) Close(Handle) error                             { return ifserrors.NotSupported }
func (Unsupported) Read(Handle, []byte) (int, error)               { return 0, ifserrors.NotSupported }
func (Unsupported) Write(Handle, []byte) (int, error)              { return 0, ifserrors.NotSupported }
func (Unsupported) Lseek(Handle, int64, int) (int64, error)        { return 0, ifserrors.NotSupported }
func (Unsupported) Eof(Handle) (bool, error)                       { return false, ifserrors.NotSupported }
func (Unsupported) Tell(Handle) (int64, error)                     { return 0, ifserrors.NotSupported }
func (Unsupported) Ftruncate(Handle, int64) error                  { return ifserrors.NotSupported }
func (Unsupported) Flush(Handle) error                             { return ifserrors.NotSupported }
func (Unsupported) OpenDir(string) (Handle, error)                 { return 0, ifserrors.NotSupported }
func (Unsupported) ReadDir(Handle) (DirEntry, error)               { return DirEntry{}, ifserrors.NotSupported }
func (Unsupported) RewindDir(Handle) error                         { return ifserrors.NotSupported }
func (Unsupported) CloseDir(Handle) error                          { return ifserrors.NotSupported }
func (Unsupported) Mkdir(string) error                             { return ifserrors.NotSupported }
func (Unsupported) Remove(string) error                            { return ifserrors.NotSupported }
func (Unsupported) Rename(string, string) error                    { return ifserrors.NotSupported }
func (Unsupported) FRemove(Handle) error                           { return ifserrors.NotSupported }
func (Unsupported) Format() error                                  { return ifserrors.NotSupported }
func (Unsupported) Check() (int, error)                            { return 0, ifserrors.NotSupported }
func (Unsupported) SetXAttr(string, ifstype.AttributeTag, []byte) error {
	return ifserrors.NotSupported
}
func (Unsupported) GetXAttr(string, ifstype.AttributeTag) ([]byte, error) {
	return nil, ifserrors.NotSupported
}
func (Unsupported) FSetXAttr(Handle, ifstype.AttributeTag, []byte) error {
	return ifserrors.NotSupported
}
func (Unsupported) FGetXAttr(Handle, ifstype.AttributeTag) ([]byte, error) {
	return nil, ifserrors.NotSupported
}
func (Unsupported) FEnumXAttr(Handle) ([]XAttr, error) { return nil, ifserrors.NotSupported }
func (Unsupported) FControl(Handle, ifstype.ControlCode, []byte) (int, error) {
	return 0, ifserrors.NotSupported
}
func (Unsupported) FGetExtents(Handle) ([]ifstype.Extent, error) {
	return nil, ifserrors.NotSupported
}
func (Unsupported) SetVolume(int, FileSystem) error { return ifserrors.NotSupported }
func (Unsupported) GetErrorString(err error) string { return ifserrors.String(err) }
