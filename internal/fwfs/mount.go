// Package fwfs implements the read-only FWFS reader: mount, path
// resolution, child enumeration, stat, read, fcontrol and extents
// (spec.md §4.3, component C3).
package fwfs

import (
	"encoding/binary"
	"sync"

	"github.com/sillyhouse/ifs/internal/blockdev"
	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/handle"
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// HandleMin is the base of this backend's handle range (Design Notes §9,
// "document the base constant each backend must adopt"). HYFS and other
// composers route a call by comparing a handle against this constant.
const HandleMin capability.Handle = 0x1000

// MaxVolumes bounds the number of mountpoint slots (spec.md §3.2, code 7
// VolumeIndex: "0…MAX_VOLUMES-1").
const MaxVolumes = 8

// MaxFileDescs bounds the fixed file-descriptor pool (spec.md §3.5).
const MaxFileDescs = 16

// FileSystem is the FWFS reader capability.FileSystem implementation. It
// has no mutable shared state beyond the descriptor tables and the
// mounted flag (spec.md §5).
type FileSystem struct {
	capability.Unsupported

	mu sync.Mutex

	part      blockdev.Partition
	base      int64 // offset of first data byte, i.e. just past START_MARKER
	mounted   bool
	volumeID  uint32
	volumeName string
	rootOD    header
	rootACL   ifstype.ACL

	files *handle.FilePool[fileDesc]
	dirs  *handle.DirPool[dirDesc]

	volumes [MaxVolumes]capability.FileSystem
}

// New constructs an unmounted FWFS reader over part. base is normally 4
// (past the 4-byte START_MARKER); callers building a partition that
// starts the image at a non-zero partition offset should account for
// that themselves, since Partition offsets are already partition-relative
// (spec.md §4.2).
func New(part blockdev.Partition) *FileSystem {
	return &FileSystem{
		part:  part,
		base:  4,
		files: handle.NewFilePool[fileDesc](HandleMin, MaxFileDescs),
		dirs:  handle.NewDirPool[dirDesc](HandleMin + MaxFileDescs),
	}
}

func (fs *FileSystem) isMounted() bool { return fs.mounted }

// Mount implements spec.md §4.3 "Mount": verify markers, locate the last
// Volume and last Directory objects, verify the Volume's child table
// references that Directory, verify the end marker, and capture the root
// ACL. Idempotent after success (spec.md §4.1).
func (fs *FileSystem) Mount() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.mounted {
		return nil
	}
	if fs.part == nil {
		return ifserrors.NoPartition
	}

	var markerBuf [4]byte
	if err := fs.part.Read(0, markerBuf[:]); err != nil {
		return ifserrors.ReadFailure
	}
	if binary.LittleEndian.Uint32(markerBuf[:]) != ifstype.StartMarker {
		return ifserrors.BadFileSystem
	}

	var volumeOD, rootOD header
	haveVolume := false
	id := uint32(0)
	var lastHeader header
	for {
		h, err := readHeader(fs.part, fs.base, id)
		if err != nil {
			return err
		}
		lastHeader = h

		switch h.tag.Type() {
		case ifstype.TypeVolume:
			volumeOD = h
			haveVolume = true
		case ifstype.TypeDirectory:
			rootOD = h
		case ifstype.TypeEnd:
			goto scanned
		}
		id = h.nextID()
	}

scanned:
	if !haveVolume {
		return ifserrors.BadFileSystem
	}

	// The Volume's child table must contain a Directory reference whose
	// target is exactly the last Directory object seen (spec.md §3.4).
	var rootRefOK bool
	err := eachChild(fs.part, fs.base, volumeOD, func(child header) error {
		if child.tag.Type() != ifstype.TypeDirectory {
			return nil
		}
		resolved, err := resolveRef(fs.part, fs.base, child, volumeOD.id)
		if err != nil {
			return err
		}
		if resolved.id == rootOD.id {
			rootRefOK = true
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !rootRefOK {
		return ifserrors.BadFileSystem
	}

	endMarkerOffset := lastHeader.nextID()
	var endMarkerBuf [4]byte
	if err := fs.part.Read(fs.base+int64(endMarkerOffset), endMarkerBuf[:]); err != nil {
		return ifserrors.ReadFailure
	}
	if binary.LittleEndian.Uint32(endMarkerBuf[:]) != ifstype.EndMarker {
		return ifserrors.BadFileSystem
	}

	var volID uint32
	_ = eachChild(fs.part, fs.base, volumeOD, func(child header) error {
		resolved := child
		if child.tag.IsRef() {
			r, err := resolveRef(fs.part, fs.base, child, volumeOD.id)
			if err != nil {
				return nil
			}
			resolved = r
		}
		if resolved.tag.Type() == ifstype.TypeID32 {
			var b [4]byte
			if readContent(fs.part, fs.base, resolved, 0, b[:]) == nil {
				volID = binary.LittleEndian.Uint32(b[:])
			}
		}
		return nil
	})

	volName, err := readName(fs.part, fs.base, volumeOD)
	if err != nil {
		return err
	}

	stat, err := fillStat(fs.part, fs.base, rootOD, ifstype.ACL{})
	if err != nil {
		return err
	}

	fs.rootOD = rootOD
	fs.rootACL = stat.Acl
	fs.volumeID = volID
	fs.volumeName = volName
	fs.mounted = true
	return nil
}

// GetInfo implements spec.md §4.1 GetInfo.
func (fs *FileSystem) GetInfo() (ifstype.Info, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return ifstype.Info{}, ifserrors.NotMounted
	}
	stat, err := fillStat(fs.part, fs.base, fs.rootOD, fs.rootACL)
	if err != nil {
		return ifstype.Info{}, err
	}
	return ifstype.Info{
		Type:          ifstype.FSTypeFWFS,
		Attributes:    ifstype.AttrReadOnly,
		MaxNameLength: 255,
		MaxPathLength: 1 << 15,
		VolumeSize:    uint64(fs.part.Size()),
		VolumeID:      fs.volumeID,
		Name:          fs.volumeName,
		CreationTime:  stat.ModTime,
	}, nil
}
