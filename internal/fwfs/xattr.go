package fwfs

import (
	"github.com/sillyhouse/ifs/internal/blockdev"
	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// rawUserTag returns the raw tag_value byte a UserAttribute record stores
// for tag, if tag is TagComment or a user attribute (§6.3, CommentRawTag).
func rawUserTag(tag ifstype.AttributeTag) (byte, bool) {
	if tag == ifstype.TagComment {
		return ifstype.CommentRawTag, true
	}
	return tag.IsUser()
}

// getAttr resolves one logical AttributeTag against entry's children,
// matching spec.md §6.3's well-known tags to their dedicated object Types
// and everything else to a UserAttribute record carrying the raw tag byte.
func getAttr(part blockdev.Partition, base int64, entry header, tag ifstype.AttributeTag) ([]byte, error) {
	switch tag {
	case ifstype.TagModifiedTime:
		mtime, err := readMTime(part, base, entry)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, 4)
		putU32LE(buf, mtime)
		return buf, nil
	case ifstype.TagAcl:
		var read, write byte
		err := eachChild(part, base, entry, func(child header) error {
			resolved, rerr := resolveIfRef(part, base, child, entry.id)
			if rerr != nil {
				return rerr
			}
			switch resolved.tag.Type() {
			case ifstype.TypeReadACE:
				var b [1]byte
				if err := readContent(part, base, resolved, 0, b[:]); err != nil {
					return err
				}
				read = b[0]
			case ifstype.TypeWriteACE:
				var b [1]byte
				if err := readContent(part, base, resolved, 0, b[:]); err != nil {
					return err
				}
				write = b[0]
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return []byte{read, write}, nil
	case ifstype.TagMd5Hash:
		return md5Child(part, base, entry)
	}

	wantType, single := objectTypeFor(tag)
	if single {
		var value []byte
		err := eachChild(part, base, entry, func(child header) error {
			resolved, rerr := resolveIfRef(part, base, child, entry.id)
			if rerr != nil {
				return rerr
			}
			if resolved.tag.Type() != wantType {
				return nil
			}
			buf := make([]byte, resolved.contentSize)
			if err := readContent(part, base, resolved, 0, buf); err != nil {
				return err
			}
			value = buf
			return nil
		})
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, ifserrors.NotFound
		}
		return value, nil
	}

	rawWant, ok := rawUserTag(tag)
	if !ok {
		return nil, ifserrors.BadParam
	}
	var value []byte
	err := eachChild(part, base, entry, func(child header) error {
		resolved, rerr := resolveIfRef(part, base, child, entry.id)
		if rerr != nil {
			return rerr
		}
		if resolved.tag.Type() != ifstype.TypeUserAttr {
			return nil
		}
		var rawTag [1]byte
		if err := readContent(part, base, resolved, 0, rawTag[:]); err != nil {
			return err
		}
		if rawTag[0] != rawWant {
			return nil
		}
		buf := make([]byte, resolved.contentSize-1)
		if err := readContent(part, base, resolved, 1, buf); err != nil {
			return err
		}
		value = buf
		return nil
	})
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, ifserrors.NotFound
	}
	return value, nil
}

// objectTypeFor reports the dedicated object Type backing a well-known
// AttributeTag that isn't handled directly in getAttr's switch, or
// single=false when tag must instead be looked up as a UserAttribute.
func objectTypeFor(tag ifstype.AttributeTag) (ifstype.Type, bool) {
	switch tag {
	case ifstype.TagFileAttributes:
		return ifstype.TypeObjAttr, true
	case ifstype.TagCompression:
		return ifstype.TypeCompression, true
	case ifstype.TagReadAce:
		return ifstype.TypeReadACE, true
	case ifstype.TagWriteAce:
		return ifstype.TypeWriteACE, true
	case ifstype.TagVolumeIndex:
		return ifstype.TypeVolumeIndex, true
	default:
		return 0, false
	}
}

// resolveIfRef is resolveRef's convenience form for callers that always
// want the resolved header whether or not child is itself a reference.
func resolveIfRef(part blockdev.Partition, base int64, child header, referrerID uint32) (header, error) {
	if !child.tag.IsRef() {
		return child, nil
	}
	return resolveRef(part, base, child, referrerID)
}

func enumAttrs(part blockdev.Partition, base int64, entry header) ([]capability.XAttr, error) {
	mtime, err := readMTime(part, base, entry)
	if err != nil {
		return nil, err
	}
	mtimeBuf := make([]byte, 4)
	putU32LE(mtimeBuf, mtime)
	out := []capability.XAttr{{Tag: ifstype.TagModifiedTime, Value: mtimeBuf}}

	singleValued := func(resolved header, tag ifstype.AttributeTag) error {
		buf := make([]byte, resolved.contentSize)
		if err := readContent(part, base, resolved, 0, buf); err != nil {
			return err
		}
		out = append(out, capability.XAttr{Tag: tag, Value: buf})
		return nil
	}

	err = eachChild(part, base, entry, func(child header) error {
		resolved, rerr := resolveIfRef(part, base, child, entry.id)
		if rerr != nil {
			return rerr
		}
		switch resolved.tag.Type() {
		case ifstype.TypeObjAttr:
			return singleValued(resolved, ifstype.TagFileAttributes)
		case ifstype.TypeCompression:
			return singleValued(resolved, ifstype.TagCompression)
		case ifstype.TypeReadACE:
			return singleValued(resolved, ifstype.TagReadAce)
		case ifstype.TypeWriteACE:
			return singleValued(resolved, ifstype.TagWriteAce)
		case ifstype.TypeVolumeIndex:
			return singleValued(resolved, ifstype.TagVolumeIndex)
		case ifstype.TypeMd5Hash:
			return singleValued(resolved, ifstype.TagMd5Hash)
		case ifstype.TypeUserAttr:
			var rawTag [1]byte
			if err := readContent(part, base, resolved, 0, rawTag[:]); err != nil {
				return err
			}
			buf := make([]byte, resolved.contentSize-1)
			if err := readContent(part, base, resolved, 1, buf); err != nil {
				return err
			}
			tag := ifstype.TagComment
			if rawTag[0] != ifstype.CommentRawTag {
				tag = ifstype.UserTag(rawTag[0] - 1)
			}
			out = append(out, capability.XAttr{Tag: tag, Value: buf})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (fs *FileSystem) SetXAttr(string, ifstype.AttributeTag, []byte) error {
	return ifserrors.ReadOnly
}

func (fs *FileSystem) GetXAttr(path string, tag ifstype.AttributeTag) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.mounted {
		return nil, ifserrors.NotMounted
	}
	res, err := fs.resolvePath(path, false)
	if err != nil {
		return nil, err
	}
	if res.delegateFS != nil {
		return res.delegateFS.GetXAttr(res.delegatePath, tag)
	}
	return getAttr(fs.part, fs.base, *res.local, tag)
}

func (fs *FileSystem) FSetXAttr(capability.Handle, ifstype.AttributeTag, []byte) error {
	return ifserrors.ReadOnly
}

func (fs *FileSystem) FGetXAttr(h capability.Handle, tag ifstype.AttributeTag) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return nil, err
	}
	if fd.isMountPoint() {
		return fd.mountedFS.FGetXAttr(fd.mountedH, tag)
	}
	return getAttr(fs.part, fs.base, fd.od, tag)
}

func (fs *FileSystem) FEnumXAttr(h capability.Handle) ([]capability.XAttr, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fd, err := fs.files.Get(h)
	if err != nil {
		return nil, err
	}
	if fd.isMountPoint() {
		return fd.mountedFS.FEnumXAttr(fd.mountedH)
	}
	return enumAttrs(fs.part, fs.base, fd.od)
}
