package hostfs

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

func mountedFS(t *testing.T) *FileSystem {
	t.Helper()
	fs := New(afero.NewMemMapFs())
	require.NoError(t, fs.Mount())
	return fs
}

func TestMountIdempotent(t *testing.T) {
	fs := mountedFS(t)
	assert.NoError(t, fs.Mount())
}

func TestWriteReadFile(t *testing.T) {
	fs := mountedFS(t)

	h, err := fs.Open("/greeting.txt", ifstype.Read|ifstype.Write|ifstype.Create)
	require.NoError(t, err)

	n, err := fs.Write(h, []byte("hello hostfs"))
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	require.NoError(t, fs.Close(h))

	h2, err := fs.Open("/greeting.txt", ifstype.Read)
	require.NoError(t, err)
	defer fs.Close(h2)

	buf := make([]byte, 12)
	n2, err := fs.Read(h2, buf)
	require.NoError(t, err)
	assert.Equal(t, "hello hostfs", string(buf[:n2]))

	eof, err := fs.Eof(h2)
	require.NoError(t, err)
	assert.True(t, eof)
}

func TestStatReportsDirectory(t *testing.T) {
	fs := mountedFS(t)
	require.NoError(t, fs.Mkdir("/sub"))

	stat, err := fs.Stat("/sub")
	require.NoError(t, err)
	assert.True(t, stat.IsDirectory())
}

func TestXAttrRoundTrip(t *testing.T) {
	fs := mountedFS(t)
	h, err := fs.Open("/file.txt", ifstype.Write|ifstype.Create)
	require.NoError(t, err)
	require.NoError(t, fs.Close(h))

	require.NoError(t, fs.SetXAttr("/file.txt", ifstype.TagComment, []byte("a note")))
	value, err := fs.GetXAttr("/file.txt", ifstype.TagComment)
	require.NoError(t, err)
	assert.Equal(t, "a note", string(value))
}

func TestRemoveFileClearsXAttrs(t *testing.T) {
	fs := mountedFS(t)
	h, err := fs.Open("/file.txt", ifstype.Write|ifstype.Create)
	require.NoError(t, err)
	require.NoError(t, fs.Close(h))
	require.NoError(t, fs.SetXAttr("/file.txt", ifstype.TagComment, []byte("note")))

	require.NoError(t, fs.Remove("/file.txt"))

	_, err = fs.GetXAttr("/file.txt", ifstype.TagComment)
	assert.Equal(t, ifserrors.NotFound, err)
}

func TestRenamePreservesXAttrs(t *testing.T) {
	fs := mountedFS(t)
	h, err := fs.Open("/old.txt", ifstype.Write|ifstype.Create)
	require.NoError(t, err)
	require.NoError(t, fs.Close(h))
	require.NoError(t, fs.SetXAttr("/old.txt", ifstype.TagComment, []byte("note")))

	require.NoError(t, fs.Rename("/old.txt", "/new.txt"))

	value, err := fs.GetXAttr("/new.txt", ifstype.TagComment)
	require.NoError(t, err)
	assert.Equal(t, "note", string(value))
}

func TestOpenDirListsEntriesSorted(t *testing.T) {
	fs := mountedFS(t)
	for _, name := range []string{"/b.txt", "/a.txt"} {
		h, err := fs.Open(name, ifstype.Write|ifstype.Create)
		require.NoError(t, err)
		require.NoError(t, fs.Close(h))
	}

	h, err := fs.OpenDir("/")
	require.NoError(t, err)
	defer fs.CloseDir(h)

	var names []string
	for {
		entry, err := fs.ReadDir(h)
		if err == ifserrors.NoMoreFiles {
			break
		}
		require.NoError(t, err)
		names = append(names, entry.Stat.Name)
	}
	assert.Equal(t, []string{"a.txt", "b.txt"}, names)
}

func TestFormatWipesTreeAndMetadata(t *testing.T) {
	fs := mountedFS(t)
	require.NoError(t, fs.Mkdir("/sub"))
	h, err := fs.Open("/sub/file.txt", ifstype.Write|ifstype.Create)
	require.NoError(t, err)
	require.NoError(t, fs.Close(h))
	require.NoError(t, fs.SetXAttr("/sub/file.txt", ifstype.TagComment, []byte("x")))

	require.NoError(t, fs.Format())

	_, err = fs.Stat("/sub")
	assert.Equal(t, ifserrors.NotFound, err)

	_, err = fs.GetXAttr("/sub/file.txt", ifstype.TagComment)
	assert.Equal(t, ifserrors.NotFound, err)
}

func TestXattrTombstoneStoreRoundTrip(t *testing.T) {
	fs := mountedFS(t)
	store := XattrTombstoneStore{FS: fs}

	hidden, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, hidden)

	require.NoError(t, store.Save(map[string]bool{"/a": true, "/b/c": true}))

	hidden, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"/a": true, "/b/c": true}, hidden)
}
