// Package ifstype implements the FWFS on-wire object model: the record
// tag encoding, size classes, and named-object layout described in
// spec.md §3. It has no knowledge of partitions or traversal — see
// package fwfs for that.
package ifstype

import "fmt"

// StartMarker / EndMarker bracket an FWFS image. Little-endian on disk.
const (
	StartMarker uint32 = 0x53465746 // "FWFS"
	EndMarker   uint32 = 0x46574653
)

// Tag is the one-byte value at the start of every object record. Bit 7
// marks a reference; bits 0-6 are the Type.
type Tag byte

const refBit = 0x80

func (t Tag) IsRef() bool  { return t&refBit != 0 }
func (t Tag) Type() Type   { return Type(t &^ refBit) }
func MakeTag(t Type, isRef bool) Tag {
	if isRef {
		return Tag(t) | refBit
	}
	return Tag(t)
}

// Type is the object type code (bits 0-6 of the tag).
type Type byte

const (
	TypeEnd          Type = 0
	TypeData8        Type = 1
	TypeID32         Type = 2
	TypeObjAttr      Type = 3
	TypeCompression  Type = 4
	TypeReadACE      Type = 5
	TypeWriteACE     Type = 6
	TypeVolumeIndex  Type = 7
	TypeMd5Hash      Type = 8
	TypeUserAttr     Type = 9
	TypeData16       Type = 32
	TypeVolume       Type = 33
	TypeMountPoint   Type = 34
	TypeDirectory    Type = 35
	TypeFile         Type = 36
	TypeData24       Type = 64
)

var typeNames = map[Type]string{
	TypeEnd:         "End",
	TypeData8:       "Data8",
	TypeID32:        "ID32",
	TypeObjAttr:     "ObjAttr",
	TypeCompression: "Compression",
	TypeReadACE:     "ReadACE",
	TypeWriteACE:    "WriteACE",
	TypeVolumeIndex: "VolumeIndex",
	TypeMd5Hash:     "Md5Hash",
	TypeUserAttr:    "UserAttribute",
	TypeData16:      "Data16",
	TypeVolume:      "Volume",
	TypeMountPoint:  "MountPoint",
	TypeDirectory:   "Directory",
	TypeFile:        "File",
	TypeData24:      "Data24",
}

// TypeName mirrors the original FWFS_OBJTYPE_MAP lookup (src/Object.cpp,
// FWFileDefs.cpp): known codes render their name, unknown codes render
// "#<n>".
func TypeName(t Type) string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("#%d", t)
}

// SizeClass determines how many bytes encode the content-size field that
// follows the tag, and is fixed per Type per the table in spec.md §3.2.
type SizeClass int

const (
	SizeClass8  SizeClass = 1 // 1-byte size field, tag "size class 8"
	SizeClass16 SizeClass = 2 // 2-byte size field
	SizeClass24 SizeClass = 3 // 3-byte size field
)

// ClassOf returns the size class for a given object type.
func ClassOf(t Type) SizeClass {
	switch t {
	case TypeData16, TypeVolume, TypeMountPoint, TypeDirectory, TypeFile:
		return SizeClass16
	case TypeData24:
		return SizeClass24
	default:
		return SizeClass8
	}
}

// IsNamed reports whether a type carries a name + mtime + child table
// (Volume, MountPoint, Directory, File).
func IsNamed(t Type) bool {
	switch t {
	case TypeVolume, TypeMountPoint, TypeDirectory, TypeFile:
		return true
	default:
		return false
	}
}

// IsData reports whether a type is a data child contributing to a File's
// byte stream.
func IsData(t Type) bool {
	switch t {
	case TypeData8, TypeData16, TypeData24:
		return true
	default:
		return false
	}
}

// MaxInlineSize returns the largest payload a given data type can hold
// inline, used by the archive writer to choose which data record to emit
// for a given block size.
func MaxInlineSize(t Type) int {
	switch t {
	case TypeData8:
		return 255
	case TypeData16:
		return 65535
	case TypeData24:
		return 16*1024*1024 - 1
	default:
		return 0
	}
}

// InlineThreshold is the size below which the archive writer prefers an
// inline Data8 record over a referenced block (spec.md §4.5).
const InlineThreshold = 255
