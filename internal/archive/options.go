// Package archive implements the ArchiveStream writer of spec.md §4.5:
// it walks any mounted capability.FileSystem and streams out a new FWFS
// image, post-order, with no random-access requirement on the output.
package archive

import (
	"io"

	"github.com/google/uuid"

	"github.com/sillyhouse/ifs/internal/clock"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// BlockEncoder is the pluggable per-file encoder contract (spec.md §4.5.1,
// `IBlockEncoder`). Encode is handed the file's raw content once; the
// writer then drains GetNextStream until it reports no more streams,
// writing each returned stream as data objects of at most the block size.
type BlockEncoder interface {
	Encode(r io.Reader) error
	GetNextStream() (stream io.Reader, more bool, err error)
}

// Options configures one archive run.
type Options struct {
	// Encoder, if set, is used for every file's content instead of the
	// writer's own inline/blocked Data8/16/24 choice.
	Encoder BlockEncoder

	// FilterStat, if set, is consulted for every entry (file or
	// directory); returning false skips it and its descendants.
	FilterStat func(ifstype.Stat) bool

	// IncludeMountPoints controls whether mountpoint targets are
	// traversed into or emitted as opaque MountPoint objects. This
	// writer does not currently traverse mountpoints regardless of this
	// flag's value: capability.FileSystem exposes no way to recover a
	// mountpoint's volume-index slot from a DirEntry, so there is no
	// source data to build a MountPoint object's VolumeIndex child from.
	// Either way the mountpoint is always emitted as an (empty) opaque
	// MountPoint object rather than dropped from the image. The field is
	// retained for interface fidelity with spec.md §4.5 and future
	// backends that add a volume-index accessor.
	IncludeMountPoints bool

	// VolumeID is the 4-byte ID32 value recorded on the Volume object.
	// Zero means "generate one": the first 4 bytes of a fresh random UUID,
	// read big-endian.
	VolumeID uint32

	// VolumeName is the name recorded on the Volume object itself.
	VolumeName string

	// BlockSize bounds how much of an un-encoded file's content is read
	// into memory at once when it is large enough to need a blocked
	// Data16/Data24 record rather than a single inline Data8. Zero means
	// defaultBlockSize.
	BlockSize int

	// Clock supplies the mtime stamped on the synthetic root-directory
	// and Volume frames, which have no corresponding source object of
	// their own. Nil means clock.System{}.
	Clock clock.Clock
}

const defaultBlockSize = 32 * 1024

func (o Options) blockSize() int {
	if o.BlockSize > 0 {
		return o.BlockSize
	}
	return defaultBlockSize
}

func (o Options) now() uint32 {
	c := o.Clock
	if c == nil {
		c = clock.System{}
	}
	return uint32(c.Now().Unix())
}

func (o Options) resolveVolumeID() uint32 {
	if o.VolumeID != 0 {
		return o.VolumeID
	}
	id := uuid.New()
	return uint32(id[0])<<24 | uint32(id[1])<<16 | uint32(id[2])<<8 | uint32(id[3])
}
