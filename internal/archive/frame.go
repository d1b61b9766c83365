package archive

import (
	"encoding/binary"
	"io"

	"github.com/orcaman/writerseeker"

	"github.com/sillyhouse/ifs/internal/ifstype"
)

// frame accumulates one named object's child table (spec.md §3.4) while
// its directory or file is being walked. Everything written here ends up
// embedded verbatim as the content region of the named object once
// closeFrame flushes it to the image as a single top-level record, so a
// frame never needs to know its own eventual absolute offset: the only
// absolute offsets it carries are reference targets, and post-order
// traversal guarantees those targets are already flushed before a
// reference to them is appended (spec.md §3.3 "backward-only").
type frame struct {
	name  string
	mtime uint32
	buf   writerseeker.WriterSeeker
}

func newFrame(name string, mtime uint32) *frame {
	return &frame{name: name, mtime: mtime}
}

// appendRaw appends a fully-formed record (tag + size field + content) to
// the frame's pending child table.
func (f *frame) appendRaw(tag ifstype.Tag, content []byte) error {
	class := ifstype.ClassOf(tag.Type())
	sizeBuf := make([]byte, int(class))
	putSizeLE(sizeBuf, uint32(len(content)))
	if _, err := f.buf.Write([]byte{byte(tag)}); err != nil {
		return err
	}
	if _, err := f.buf.Write(sizeBuf); err != nil {
		return err
	}
	if len(content) > 0 {
		if _, err := f.buf.Write(content); err != nil {
			return err
		}
	}
	return nil
}

// appendInline writes a non-named object directly into this frame's child
// table (attribute objects, and small Data records that never get their
// own top-level home).
func (f *frame) appendInline(t ifstype.Type, content []byte) error {
	return f.appendRaw(ifstype.MakeTag(t, false), content)
}

// appendReference writes a backward reference to a previously-flushed
// top-level object into this frame's child table.
func (f *frame) appendReference(t ifstype.Type, targetID uint32) error {
	class := ifstype.ClassOf(t)
	offBuf := make([]byte, int(class))
	putSizeLE(offBuf, targetID)
	return f.appendRaw(ifstype.MakeTag(t, true), offBuf)
}

// content returns the bytes written so far, namelen+mtime+name prefixed,
// ready to become one named object's full content region.
func (f *frame) content() ([]byte, error) {
	table, err := io.ReadAll(f.buf.Reader())
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, namedHeaderLen+len(f.name)+len(table))
	out = append(out, byte(len(f.name)))
	var mtimeBuf [4]byte
	binary.LittleEndian.PutUint32(mtimeBuf[:], f.mtime)
	out = append(out, mtimeBuf[:]...)
	out = append(out, f.name...)
	out = append(out, table...)
	return out, nil
}

const namedHeaderLen = 1 + 4

func putSizeLE(buf []byte, v uint32) {
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
