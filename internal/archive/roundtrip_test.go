package archive_test

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sillyhouse/ifs/internal/archive"
	"github.com/sillyhouse/ifs/internal/blockdev"
	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/fwfs"
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// fakeNode is a minimal in-memory tree exercised only through the subset of
// capability.FileSystem that archive.Write actually calls.
type fakeNode struct {
	name         string
	isDir        bool
	isMountPoint bool
	content      []byte
	children     []*fakeNode
}

type fakeFileHandle struct {
	node   *fakeNode
	cursor int
}

type fakeDirHandle struct {
	node  *fakeNode
	index int
}

type fakeFS struct {
	capability.Unsupported
	root  *fakeNode
	next  capability.Handle
	files map[capability.Handle]*fakeFileHandle
	dirs  map[capability.Handle]*fakeDirHandle
}

func newFakeFS(root *fakeNode) *fakeFS {
	return &fakeFS{root: root, next: 1, files: map[capability.Handle]*fakeFileHandle{}, dirs: map[capability.Handle]*fakeDirHandle{}}
}

func (fs *fakeFS) find(path string) *fakeNode {
	path = strings.Trim(path, "/")
	if path == "" {
		return fs.root
	}
	cur := fs.root
	for _, seg := range strings.Split(path, "/") {
		var next *fakeNode
		for _, c := range cur.children {
			if c.name == seg {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

func (fs *fakeFS) OpenDir(path string) (capability.Handle, error) {
	node := fs.find(path)
	if node == nil || !node.isDir {
		return 0, ifserrors.NotFound
	}
	h := fs.next
	fs.next++
	fs.dirs[h] = &fakeDirHandle{node: node}
	return h, nil
}

func (fs *fakeFS) ReadDir(h capability.Handle) (capability.DirEntry, error) {
	d := fs.dirs[h]
	if d.index >= len(d.node.children) {
		return capability.DirEntry{}, ifserrors.NoMoreFiles
	}
	child := d.node.children[d.index]
	d.index++
	attr := ifstype.FileAttribute(0)
	if child.isDir {
		attr |= ifstype.AttrDirectory
	}
	if child.isMountPoint {
		attr |= ifstype.AttrMountPoint
	}
	return capability.DirEntry{Stat: ifstype.Stat{
		Name:    child.name,
		Size:    uint64(len(child.content)),
		Attr:    attr,
		ModTime: time.Unix(1700000000, 0).UTC(),
	}}, nil
}

func (fs *fakeFS) CloseDir(h capability.Handle) error {
	delete(fs.dirs, h)
	return nil
}

func (fs *fakeFS) Open(path string, flags ifstype.OpenFlags) (capability.Handle, error) {
	node := fs.find(path)
	if node == nil || node.isDir {
		return 0, ifserrors.NotFound
	}
	h := fs.next
	fs.next++
	fs.files[h] = &fakeFileHandle{node: node}
	return h, nil
}

func (fs *fakeFS) Close(h capability.Handle) error {
	delete(fs.files, h)
	return nil
}

func (fs *fakeFS) Read(h capability.Handle, buf []byte) (int, error) {
	f := fs.files[h]
	n := copy(buf, f.node.content[f.cursor:])
	f.cursor += n
	return n, nil
}

func (fs *fakeFS) Eof(h capability.Handle) (bool, error) {
	f := fs.files[h]
	return f.cursor >= len(f.node.content), nil
}

func (fs *fakeFS) FEnumXAttr(h capability.Handle) ([]capability.XAttr, error) {
	return nil, nil
}

// memSink is an archive.Sink backed by an in-memory buffer.
type memSink struct{ buf bytes.Buffer }

func (s *memSink) Write(p []byte) (int, error) { return s.buf.Write(p) }
func (s *memSink) Truncate(size int64) error {
	if size == 0 {
		s.buf.Reset()
	}
	return nil
}

func buildTree() *fakeNode {
	return &fakeNode{
		name:  "",
		isDir: true,
		children: []*fakeNode{
			{name: "hello.txt", content: []byte("hello world")},
			{
				name:  "sub",
				isDir: true,
				children: []*fakeNode{
					{name: "data.bin", content: bytes.Repeat([]byte{0xAB}, 1000)},
				},
			},
		},
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	src := newFakeFS(buildTree())
	sink := &memSink{}

	require.NoError(t, archive.Write(sink, src, "/", archive.Options{VolumeName: "testvol"}))

	raw := sink.buf.Bytes()
	require.NotEmpty(t, raw)

	part := blockdev.NewMemPartition(len(raw), 512)
	require.NoError(t, part.Write(0, raw))

	dst := fwfs.New(part)
	require.NoError(t, dst.Mount())

	info, err := dst.GetInfo()
	require.NoError(t, err)
	assert.Equal(t, "testvol", info.Name)

	h, err := dst.Open("/hello.txt", ifstype.Read)
	require.NoError(t, err)
	defer dst.Close(h)

	got, err := io.ReadAll(fwfsReader{dst, h})
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(got))

	h2, err := dst.Open("/sub/data.bin", ifstype.Read)
	require.NoError(t, err)
	defer dst.Close(h2)

	got2, err := io.ReadAll(fwfsReader{dst, h2})
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xAB}, 1000), got2)

	stat, err := dst.Stat("/sub")
	require.NoError(t, err)
	assert.True(t, stat.IsDirectory())
}

// TestArchiveEmitsMountPointAsOpaqueObject confirms a mountpoint entry
// survives the archive instead of vanishing (it used to be skipped
// outright). Stat can't be used here: resolving "/mnt" by path always
// tries to delegate into the mounted volume (fwfs path resolution stops
// short of that only for Open with the NoFollow flag),
// so the mountpoint's presence is observed the way a real caller would —
// by listing its parent directory.
func TestArchiveEmitsMountPointAsOpaqueObject(t *testing.T) {
	root := &fakeNode{
		isDir: true,
		children: []*fakeNode{
			{name: "top.txt", content: []byte("x")},
			{
				name: "mnt", isDir: true, isMountPoint: true,
				children: []*fakeNode{
					{name: "hidden.txt", content: []byte("should not appear")},
				},
			},
		},
	}
	src := newFakeFS(root)
	sink := &memSink{}

	require.NoError(t, archive.Write(sink, src, "/", archive.Options{VolumeName: "mnttest"}))

	raw := sink.buf.Bytes()
	part := blockdev.NewMemPartition(len(raw), 512)
	require.NoError(t, part.Write(0, raw))

	dst := fwfs.New(part)
	require.NoError(t, dst.Mount())

	h, err := dst.OpenDir("/")
	require.NoError(t, err)
	defer dst.CloseDir(h)

	var sawMountPoint bool
	for {
		entry, err := dst.ReadDir(h)
		if err == ifserrors.NoMoreFiles {
			break
		}
		require.NoError(t, err)
		if entry.Stat.Name == "mnt" {
			sawMountPoint = true
			assert.True(t, entry.Stat.IsMountPoint())
		}
	}
	assert.True(t, sawMountPoint, "the mountpoint must still be emitted, not skipped entirely")
}

// fwfsReader adapts capability.FileSystem's Read/Eof to io.Reader.
type fwfsReader struct {
	fs capability.FileSystem
	h  capability.Handle
}

func (r fwfsReader) Read(p []byte) (int, error) {
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
