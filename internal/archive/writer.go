package archive

import (
	"encoding/binary"
	"hash"
	"hash/crc32"
	"io"

	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// Sink is the output a Writer streams to. Truncate supports ADR-1 (see
// DESIGN.md): the format has no forward-recovery, so any mid-stream error
// truncates the output to zero length rather than leaving a partial image
// that a reader could mistake for a valid one.
type Sink interface {
	io.Writer
	Truncate(size int64) error
}

// Write streams fs, starting at dirPath (normally "/"), out to dst as a
// new FWFS image, following the post-order emission and state machine of
// spec.md §4.5.
func Write(dst Sink, fs capability.FileSystem, dirPath string, opts Options) (err error) {
	w := &writer{dst: dst, opts: opts, checksum: crc32.NewIEEE()}
	defer func() {
		if err != nil {
			_ = dst.Truncate(0)
		}
	}()

	if err = w.writeMarker(ifstype.StartMarker); err != nil {
		return err
	}

	w.push(newFrame("", opts.now()))
	if err = w.archiveDir(fs, dirPath); err != nil {
		return err
	}
	rootID, err := w.closeFrame(ifstype.TypeDirectory)
	if err != nil {
		return err
	}

	w.push(newFrame(opts.VolumeName, opts.now()))
	var id32 [4]byte
	binary.LittleEndian.PutUint32(id32[:], opts.resolveVolumeID())
	if err = w.current().appendInline(ifstype.TypeID32, id32[:]); err != nil {
		return err
	}
	if err = w.current().appendReference(ifstype.TypeDirectory, rootID); err != nil {
		return err
	}
	if _, err = w.closeFrame(ifstype.TypeVolume); err != nil {
		return err
	}

	checksum := w.checksum.Sum32()
	var endContent [4]byte
	binary.LittleEndian.PutUint32(endContent[:], checksum)
	if _, err = w.writeTopLevel(ifstype.TypeEnd, endContent[:]); err != nil {
		return err
	}
	if err = w.writeMarker(ifstype.EndMarker); err != nil {
		return err
	}
	return nil
}

// writer owns the directory-frame stack and the running image offset.
// checksum is fed every record sent to dst before the End record
// (neither marker nor the End record itself is fed), incrementally, so
// End's checksum covers the whole body without ever holding the image in
// memory or requiring dst to be readable back.
type writer struct {
	dst      Sink
	opts     Options
	frames   []*frame
	offset   uint32
	checksum hash.Hash32
}

func (w *writer) current() *frame { return w.frames[len(w.frames)-1] }
func (w *writer) push(f *frame)   { w.frames = append(w.frames, f) }

func (w *writer) writeMarker(v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.dst.Write(buf[:])
	return err
}

// writeTopLevel appends one fully-formed record directly to the image
// stream (outside any frame), returning its id (= byte offset) for use as
// a future backward-reference target.
func (w *writer) writeTopLevel(t ifstype.Type, content []byte) (uint32, error) {
	class := ifstype.ClassOf(t)
	sizeBuf := make([]byte, int(class))
	putSizeLE(sizeBuf, uint32(len(content)))

	id := w.offset
	tagByte := []byte{byte(ifstype.MakeTag(t, false))}
	if err := w.writeAndSum(tagByte); err != nil {
		return 0, err
	}
	if err := w.writeAndSum(sizeBuf); err != nil {
		return 0, err
	}
	if len(content) > 0 {
		if err := w.writeAndSum(content); err != nil {
			return 0, err
		}
	}
	w.offset += 1 + uint32(len(sizeBuf)) + uint32(len(content))
	return id, nil
}

func (w *writer) writeAndSum(p []byte) error {
	if _, err := w.dst.Write(p); err != nil {
		return err
	}
	_, err := w.checksum.Write(p)
	return err
}

// closeFrame flushes the top frame's accumulated content as one top-level
// named record, pops it, and leaves the reference-appending to the caller
// (root's frame has no parent; every other caller appends immediately
// after).
func (w *writer) closeFrame(t ifstype.Type) (uint32, error) {
	f := w.current()
	content, err := f.content()
	if err != nil {
		return 0, err
	}
	w.frames = w.frames[:len(w.frames)-1]
	return w.writeTopLevel(t, content)
}

// archiveDir walks one directory's entries in listing order, recursing
// into subdirectories and delegating regular files to writeFile. It
// assumes the caller has already pushed the frame this directory's
// content accumulates into.
func (w *writer) archiveDir(fs capability.FileSystem, dirPath string) error {
	h, err := fs.OpenDir(dirPath)
	if err != nil {
		return err
	}
	defer fs.CloseDir(h)

	for {
		entry, err := fs.ReadDir(h)
		if err == ifserrors.NoMoreFiles {
			break
		}
		if err != nil {
			return err
		}
		stat := entry.Stat
		if w.opts.FilterStat != nil && !w.opts.FilterStat(stat) {
			continue
		}

		childPath := joinPath(dirPath, stat.Name)

		if stat.IsMountPoint() {
			// Never traversed (see Options.IncludeMountPoints), but it
			// must still be emitted as an opaque MountPoint object
			// rather than vanish (spec.md §4.5 "Filtering and
			// mountpoints"), so archive(mount(I)) round-trips
			// byte-for-byte instead of silently dropping the entry.
			w.push(newFrame(stat.Name, uint32(stat.ModTime.Unix())))
			id, err := w.closeFrame(ifstype.TypeMountPoint)
			if err != nil {
				return err
			}
			if err := w.current().appendReference(ifstype.TypeMountPoint, id); err != nil {
				return err
			}
			continue
		}

		if stat.IsDirectory() {
			w.push(newFrame(stat.Name, uint32(stat.ModTime.Unix())))
			if err := w.archiveDir(fs, childPath); err != nil {
				return err
			}
			id, err := w.closeFrame(ifstype.TypeDirectory)
			if err != nil {
				return err
			}
			if err := w.current().appendReference(ifstype.TypeDirectory, id); err != nil {
				return err
			}
			continue
		}

		if err := w.writeFile(fs, childPath, stat); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(dir, name string) string {
	if dir == "" || dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}
