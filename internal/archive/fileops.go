package archive

import (
	"io"

	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// fsHandleReader adapts a capability.FileSystem's Read/Eof pair to io.Reader
// so it can feed either the chunked inline path or a BlockEncoder.
type fsHandleReader struct {
	fs capability.FileSystem
	h  capability.Handle
}

func (r fsHandleReader) Read(p []byte) (int, error) {
	n, err := r.fs.Read(r.h, p)
	if err != nil {
		return n, err
	}
	if n == 0 {
		eof, eerr := r.fs.Eof(r.h)
		if eerr != nil {
			return 0, eerr
		}
		if eof {
			return 0, io.EOF
		}
	}
	return n, nil
}

// attrTypeFor returns the dedicated object Type backing a well-known
// AttributeTag carried by FEnumXAttr, mirroring fwfs's objectTypeFor.
// TagModifiedTime is embedded in the enclosing named object's header and
// is never written as a child; TagAcl is never enumerated (ReadAce/
// WriteAce are reported individually instead).
func attrTypeFor(tag ifstype.AttributeTag) (ifstype.Type, bool) {
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
	case ifstype.TagMd5Hash:
		return ifstype.TypeMd5Hash, true
	default:
		return 0, false
	}
}

// writeFile implements the per-file emission recipe of spec.md §4.5.1:
// a File header, its attributes (sourced from FEnumXAttr), and its
// content as either an encoder-driven set of blocks, a blocked run of
// Data16/24 records, or a single inline Data8 record.
func (w *writer) writeFile(fs capability.FileSystem, path string, stat ifstype.Stat) error {
	h, err := fs.Open(path, ifstype.Read)
	if err != nil {
		return err
	}
	defer fs.Close(h)

	attrs, err := fs.FEnumXAttr(h)
	if err != nil {
		return err
	}

	w.push(newFrame(stat.Name, uint32(stat.ModTime.Unix())))
	f := w.current()

	for _, a := range attrs {
		if a.Tag == ifstype.TagModifiedTime {
			continue
		}
		if a.Tag == ifstype.TagCompression && w.opts.Encoder != nil {
			continue // the encoder path below writes its own Compression object
		}
		if t, ok := attrTypeFor(a.Tag); ok {
			if err := f.appendInline(t, a.Value); err != nil {
				return err
			}
			continue
		}
		raw, ok := rawUserTag(a.Tag)
		if !ok {
			continue
		}
		content := append([]byte{raw}, a.Value...)
		if err := f.appendInline(ifstype.TypeUserAttr, content); err != nil {
			return err
		}
	}

	if err := w.writeFileContent(fs, h, stat); err != nil {
		return err
	}

	id, err := w.closeFrame(ifstype.TypeFile)
	if err != nil {
		return err
	}
	return w.current().appendReference(ifstype.TypeFile, id)
}

// rawUserTag mirrors fwfs's helper of the same name: the raw on-disk
// tag_value byte a UserAttribute record stores for tag.
func rawUserTag(tag ifstype.AttributeTag) (byte, bool) {
	if tag == ifstype.TagComment {
		return ifstype.CommentRawTag, true
	}
	return tag.IsUser()
}

func (w *writer) writeFileContent(fs capability.FileSystem, h capability.Handle, stat ifstype.Stat) error {
	f := w.current()
	src := fsHandleReader{fs: fs, h: h}

	if w.opts.Encoder != nil {
		if err := w.opts.Encoder.Encode(src); err != nil {
			return err
		}
		if ce, ok := w.opts.Encoder.(interface{ Compression() ifstype.Compression }); ok {
			comp := ce.Compression()
			var buf [5]byte
			buf[0] = byte(comp.Type)
			putSizeLE(buf[1:5], comp.OriginalSize)
			if err := f.appendInline(ifstype.TypeCompression, buf[:]); err != nil {
				return err
			}
		}
		blockSize := w.opts.blockSize()
		for {
			stream, more, err := w.opts.Encoder.GetNextStream()
			if err != nil {
				return err
			}
			if !more {
				break
			}
			// Chunked the same as the uncompressed path below: a
			// compressed blob has no size guarantee relative to the
			// source file, and chooseDataType's largest bucket
			// (Data24) only has a 3-byte size field, so an unbounded
			// single emitBlock could silently truncate a large one.
			buf := make([]byte, blockSize)
			for {
				n, rerr := io.ReadFull(stream, buf)
				if n > 0 {
					if err := w.emitBlock(buf[:n]); err != nil {
						return err
					}
				}
				if rerr == io.EOF || rerr == io.ErrUnexpectedEOF {
					break
				}
				if rerr != nil {
					return rerr
				}
			}
		}
		return nil
	}

	if stat.Size < ifstype.InlineThreshold {
		raw, err := io.ReadAll(src)
		if err != nil {
			return err
		}
		return f.appendInline(ifstype.TypeData8, raw)
	}

	blockSize := w.opts.blockSize()
	buf := make([]byte, blockSize)
	for {
		n, err := io.ReadFull(src, buf)
		if n > 0 {
			if err := w.emitBlock(buf[:n]); err != nil {
				return err
			}
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// emitBlock writes one content block as a standalone top-level Data
// record, sized to the smallest data type that holds it, and references
// it from the currently open File frame.
func (w *writer) emitBlock(block []byte) error {
	t := chooseDataType(len(block))
	id, err := w.writeTopLevel(t, block)
	if err != nil {
		return err
	}
	return w.current().appendReference(t, id)
}

func chooseDataType(size int) ifstype.Type {
	switch {
	case size <= ifstype.MaxInlineSize(ifstype.TypeData8):
		return ifstype.TypeData8
	case size <= ifstype.MaxInlineSize(ifstype.TypeData16):
		return ifstype.TypeData16
	default:
		return ifstype.TypeData24
	}
}
