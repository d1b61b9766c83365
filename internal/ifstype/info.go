package ifstype

import "time"

// Info is returned by FileSystem.GetInfo (spec.md §4.1).
type Info struct {
	Type           FSType
	Attributes     FileAttribute
	MaxNameLength  int
	MaxPathLength  int
	VolumeSize     uint64
	FreeSpace      uint64
	VolumeID       uint32
	Name           string
	CreationTime   time.Time
}

// Stat is returned by FileSystem.Stat / FStat (spec.md §4.1, §4.3).
type Stat struct {
	Name        string
	Size        uint64
	ID          uint32
	ModTime     time.Time
	Attr        FileAttribute
	Acl         ACL
	Compression Compression
}

// IsDirectory reports whether the stat describes a directory or mountpoint.
func (s Stat) IsDirectory() bool { return s.Attr&AttrDirectory != 0 }

// IsMountPoint reports whether the stat describes a mountpoint.
func (s Stat) IsMountPoint() bool { return s.Attr&AttrMountPoint != 0 }

// IsReadOnly reports whether the ReadOnly attribute bit is set.
func (s Stat) IsReadOnly() bool { return s.Attr&AttrReadOnly != 0 }
