package fwfs

import (
	"time"

	"github.com/sillyhouse/ifs/internal/blockdev"
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// fillStat derives a Stat from a named object's children, per spec.md
// §4.3 "Attribute derivation for stat" and "File size and data read".
func fillStat(part blockdev.Partition, base int64, entry header, rootACL ifstype.ACL) (ifstype.Stat, error) {
	if !entry.isNamed() {
		return ifstype.Stat{}, ifserrors.BadObject
	}

	name, err := readName(part, base, entry)
	if err != nil {
		return ifstype.Stat{}, err
	}
	mtime, err := readMTime(part, base, entry)
	if err != nil {
		return ifstype.Stat{}, err
	}

	stat := ifstype.Stat{
		Name:    name,
		ID:      entry.id,
		ModTime: time.Unix(int64(mtime), 0).UTC(),
		Acl:     rootACL,
	}

	err = eachChild(part, base, entry, func(child header) error {
		resolved := child
		if child.tag.IsRef() {
			r, err := resolveRef(part, base, child, entry.id)
			if err != nil {
				return err
			}
			resolved = r
		}

		if resolved.isNamed() {
			return nil // not interested in sub-directories here
		}

		if ifstype.IsData(resolved.tag.Type()) {
			stat.Size += uint64(resolved.contentSize)
			return nil
		}

		switch resolved.tag.Type() {
		case ifstype.TypeObjAttr:
			var b [1]byte
			if err := readContent(part, base, resolved, 0, b[:]); err != nil {
				return err
			}
			stat.Attr |= ifstype.FileAttribute(b[0])
		case ifstype.TypeCompression:
			var b [5]byte
			if err := readContent(part, base, resolved, 0, b[:]); err != nil {
				return err
			}
			stat.Compression = ifstype.Compression{
				Type:         ifstype.CompressionType(b[0]),
				OriginalSize: readU32LE(b[1:5]),
			}
			if stat.Compression.Type != ifstype.CompressionNone {
				stat.Attr |= ifstype.AttrCompressed
			}
		case ifstype.TypeReadACE:
			var b [1]byte
			if err := readContent(part, base, resolved, 0, b[:]); err != nil {
				return err
			}
			stat.Acl.ReadAccess = ifstype.UserRole(b[0])
		case ifstype.TypeWriteACE:
			var b [1]byte
			if err := readContent(part, base, resolved, 0, b[:]); err != nil {
				return err
			}
			stat.Acl.WriteAccess = ifstype.UserRole(b[0])
		}
		return nil
	})
	if err != nil {
		return ifstype.Stat{}, err
	}

	switch entry.tag.Type() {
	case ifstype.TypeDirectory:
		stat.Attr |= ifstype.AttrDirectory
	case ifstype.TypeMountPoint:
		stat.Attr |= ifstype.AttrDirectory | ifstype.AttrMountPoint
	}

	return stat, nil
}

// md5Child returns the Md5Hash child of entry, if any.
func md5Child(part blockdev.Partition, base int64, entry header) ([]byte, error) {
	var hash []byte
	err := eachChild(part, base, entry, func(child header) error {
		resolved := child
		if child.tag.IsRef() {
			r, err := resolveRef(part, base, child, entry.id)
			if err != nil {
				return err
			}
			resolved = r
		}
		if resolved.tag.Type() == ifstype.TypeMd5Hash {
			buf := make([]byte, resolved.contentSize)
			if err := readContent(part, base, resolved, 0, buf); err != nil {
				return err
			}
			hash = buf
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if hash == nil {
		return nil, ifserrors.NotFound
	}
	return hash, nil
}
