package ifstype

// FileAttribute is the bitmask reported in Stat.Attr (§3.2 ObjAttr, §4.3).
type FileAttribute uint16

const (
	AttrReadOnly FileAttribute = 1 << iota
	AttrArchive
	AttrEncrypted
	AttrDirectory
	AttrMountPoint
	AttrCompressed
	AttrVirtual
)

// CompressionType identifies the codec recorded in a Compression object.
type CompressionType byte

const (
	CompressionNone CompressionType = iota
	CompressionZstd
)

// Compression is the decoded payload of a Compression object (§3.2 code 4).
type Compression struct {
	Type         CompressionType
	OriginalSize uint32
}

// UserRole is the closed access-control set of §6.4.
type UserRole byte

const (
	RoleNone UserRole = iota
	RoleGuest
	RoleUser
	RoleManager
	RoleAdmin
)

// Allows reports whether a requester holding role `have` may perform an
// operation that requires at least `need`.
func (have UserRole) Allows(need UserRole) bool { return have >= need }

// ACL is the pair of minimum roles needed to read/write an object (§4.1, §6.3).
type ACL struct {
	ReadAccess  UserRole
	WriteAccess UserRole
}

// AttributeTag identifies a typed metadata slot (§6.3). Values 0-15 are
// well-known; values >= UserTagBase are user attributes, with the raw
// tag byte stored in the record being tag - UserTagBase + 1 (see IsUser).
type AttributeTag int

const (
	TagModifiedTime AttributeTag = iota
	TagFileAttributes
	TagAcl
	TagCompression
	TagReadAce
	TagWriteAce
	TagVolumeIndex
	TagMd5Hash
	TagComment
)

// UserTagBase is the first tag value reserved for user-defined attributes.
const UserTagBase AttributeTag = 16

// CommentRawTag is the raw UserAttribute tag_value byte reserved for
// TagComment. spec.md §3.2 assigns no dedicated object Type to Comment
// (unlike the original implementation's ArchiveStream, which targets an
// older header revision that had one); this repo stores Comment as a
// UserAttribute record and reserves raw value 0 for it, shifting true
// user attributes to raw values 1..255 (AttributeTag n -> raw n+1). See
// DESIGN.md "Open Question — Comment/UserAttribute raw-tag encoding".
const CommentRawTag byte = 0

// UserTag builds the AttributeTag for user attribute index n (0..254),
// whose raw on-disk tag_value is n+1 (raw 0 is reserved for Comment).
func UserTag(n byte) AttributeTag { return UserTagBase + AttributeTag(n) }

// IsUser reports whether tag identifies a user attribute, and if so the
// raw tag-value byte stored on disk (n+1, since raw 0 is Comment).
func (tag AttributeTag) IsUser() (n byte, ok bool) {
	if tag < UserTagBase {
		return 0, false
	}
	return byte(tag-UserTagBase) + 1, true
}

var tagNames = map[AttributeTag]string{
	TagModifiedTime:   "ModifiedTime",
	TagFileAttributes: "FileAttributes",
	TagAcl:            "Acl",
	TagCompression:    "Compression",
	TagReadAce:        "ReadAce",
	TagWriteAce:       "WriteAce",
	TagVolumeIndex:    "VolumeIndex",
	TagMd5Hash:        "Md5Hash",
	TagComment:        "Comment",
}

func (tag AttributeTag) String() string {
	if name, ok := tagNames[tag]; ok {
		return name
	}
	if n, ok := tag.IsUser(); ok {
		return "User" + string(rune('0'+n%10))
	}
	return "Unknown"
}

// ControlCode identifies an fcontrol escape-hatch operation (§6.5).
type ControlCode int

const (
	ControlGetMd5Hash     ControlCode = 1
	ControlSetVolumeLabel ControlCode = 2
	ControlUserBase       ControlCode = 0x8000
)
