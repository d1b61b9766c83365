package fwfs

import (
	"encoding/binary"

	"github.com/sillyhouse/ifs/internal/blockdev"
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// header is the decoded, but not yet content-loaded, form of one object
// record: its tag, byte offset (= object ID, spec.md §3.3), the size of
// its content, and where that content begins.
type header struct {
	id            uint32
	tag           ifstype.Tag
	contentSize   uint32
	contentOffset uint32 // offset, relative to image data start, of first content byte
}

// size class byte counts, matching ifstype.ClassOf.
func sizeFieldLen(class ifstype.SizeClass) int { return int(class) }

func readU32LE(buf []byte) uint32 {
	switch len(buf) {
	case 1:
		return uint32(buf[0])
	case 2:
		return uint32(binary.LittleEndian.Uint16(buf))
	case 3:
		return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16
	case 4:
		return binary.LittleEndian.Uint32(buf)
	}
	return 0
}

func putU32LE(buf []byte, v uint32) {
	switch len(buf) {
	case 1:
		buf[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(buf, uint16(v))
	case 3:
		buf[0] = byte(v)
		buf[1] = byte(v >> 8)
		buf[2] = byte(v >> 16)
	case 4:
		binary.LittleEndian.PutUint32(buf, v)
	}
}

// readHeader decodes the tag and content-size field at image-relative
// offset id, returning the header and the offset one past the record's
// final content byte (= the next record's id).
func readHeader(part blockdev.Partition, base int64, id uint32) (header, error) {
	var tagByte [1]byte
	if err := part.Read(base+int64(id), tagByte[:]); err != nil {
		return header{}, ifserrors.ReadFailure
	}
	tag := ifstype.Tag(tagByte[0])
	class := ifstype.ClassOf(tag.Type())
	sizeBuf := make([]byte, sizeFieldLen(class))
	if err := part.Read(base+int64(id)+1, sizeBuf); err != nil {
		return header{}, ifserrors.ReadFailure
	}
	size := readU32LE(sizeBuf)
	contentOffset := id + 1 + uint32(len(sizeBuf))
	return header{id: id, tag: tag, contentSize: size, contentOffset: contentOffset}, nil
}

// nextID returns the id of the record immediately following h.
func (h header) nextID() uint32 { return h.contentOffset + h.contentSize }

// named content layout: 1-byte namelen, 4-byte mtime, then name bytes,
// then the child table for the remainder of content.
const namedHeaderLen = 1 + 4

func (h header) isNamed() bool { return ifstype.IsNamed(h.tag.Type()) }

// readContent reads length bytes starting at offset within this record's
// content region.
func readContent(part blockdev.Partition, base int64, h header, offset uint32, buf []byte) error {
	if uint64(offset)+uint64(len(buf)) > uint64(h.contentSize) {
		return ifserrors.BadExtent
	}
	return part.Read(base+int64(h.contentOffset)+int64(offset), buf)
}

// readName returns the name of a named object (after resolving a
// reference, if any, by the caller).
func readName(part blockdev.Partition, base int64, h header) (string, error) {
	if !h.isNamed() {
		return "", ifserrors.BadObject
	}
	var hdr [namedHeaderLen]byte
	if err := readContent(part, base, h, 0, hdr[:]); err != nil {
		return "", err
	}
	namelen := uint32(hdr[0])
	nameBuf := make([]byte, namelen)
	if err := readContent(part, base, h, namedHeaderLen, nameBuf); err != nil {
		return "", err
	}
	return string(nameBuf), nil
}

func readMTime(part blockdev.Partition, base int64, h header) (uint32, error) {
	if !h.isNamed() {
		return 0, ifserrors.BadObject
	}
	var mtimeBuf [4]byte
	if err := readContent(part, base, h, 1, mtimeBuf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(mtimeBuf[:]), nil
}

// childTableOffset returns the content-relative offset where a named
// object's child table begins (spec.md §3.4).
func childTableOffset(part blockdev.Partition, base int64, h header) (uint32, error) {
	if !h.isNamed() {
		return 0, ifserrors.BadObject
	}
	var nlBuf [1]byte
	if err := readContent(part, base, h, 0, nlBuf[:]); err != nil {
		return 0, err
	}
	return namedHeaderLen + uint32(nlBuf[0]), nil
}

// resolveRef follows a reference record to its target header, verifying
// the target is not itself a reference and that its tag's type matches
// (spec.md §3.3, §3.4). visited guards against cyclic graphs (Design
// Notes §9); refOffset must be strictly less than referrer id because the
// writer emits children before parents (post-order), so a well-formed
// image never references forward.
func resolveRef(part blockdev.Partition, base int64, h header, referrerID uint32) (header, error) {
	if !h.tag.IsRef() {
		return h, nil
	}
	class := ifstype.ClassOf(h.tag.Type())
	offBuf := make([]byte, sizeFieldLen(class))
	if err := readContent(part, base, h, 0, offBuf); err != nil {
		return header{}, err
	}
	targetID := readU32LE(offBuf)
	if targetID >= referrerID {
		return header{}, ifserrors.BadObject
	}
	target, err := readHeader(part, base, targetID)
	if err != nil {
		return header{}, err
	}
	if target.tag.IsRef() || target.tag.Type() != h.tag.Type() {
		return header{}, ifserrors.BadObject
	}
	return target, nil
}
