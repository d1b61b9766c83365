package hyfs

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sillyhouse/ifs/internal/hostfs"
	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

func mountedOverlay(t *testing.T) (*FileSystem, *hostfs.FileSystem, *hostfs.FileSystem) {
	t.Helper()
	lower := hostfs.New(afero.NewMemMapFs())
	upper := hostfs.New(afero.NewMemMapFs())
	require.NoError(t, lower.Mount())
	require.NoError(t, upper.Mount())

	fs := New(lower, upper, nil)
	require.NoError(t, fs.Mount())
	return fs, lower, upper
}

func seedLowerFile(t *testing.T, lower *hostfs.FileSystem, path, content string) {
	t.Helper()
	h, err := lower.Open(path, ifstype.Write|ifstype.Create)
	require.NoError(t, err)
	_, err = lower.Write(h, []byte(content))
	require.NoError(t, err)
	require.NoError(t, lower.Close(h))
}

func TestReadFallsThroughToLower(t *testing.T) {
	fs, lower, _ := mountedOverlay(t)
	seedLowerFile(t, lower, "/readme.txt", "from lower")

	h, err := fs.Open("/readme.txt", ifstype.Read)
	require.NoError(t, err)
	defer fs.Close(h)

	buf := make([]byte, 32)
	n, err := fs.Read(h, buf)
	require.NoError(t, err)
	assert.Equal(t, "from lower", string(buf[:n]))
}

func TestWriteToLowerOnlyPathPromotes(t *testing.T) {
	fs, lower, upper := mountedOverlay(t)
	seedLowerFile(t, lower, "/doc.txt", "original")

	h, err := fs.Open("/doc.txt", ifstype.Write)
	require.NoError(t, err)
	_, err = fs.Write(h, []byte("!!"))
	require.NoError(t, err)
	require.NoError(t, fs.Close(h))

	// promotion must have copied "original" to upper before the write
	// landed; without Append the write starts at offset 0, so upper now
	// holds "!!iginal"; re-read confirms it.
	stat, err := upper.Stat("/doc.txt")
	require.NoError(t, err)
	assert.True(t, stat.Size > 0)

	h2, err := fs.Open("/doc.txt", ifstype.Read)
	require.NoError(t, err)
	defer fs.Close(h2)
	buf := make([]byte, 32)
	n, err := fs.Read(h2, buf)
	require.NoError(t, err)
	assert.Equal(t, "!!iginal", string(buf[:n]))
}

func TestRemoveHidesLowerEntry(t *testing.T) {
	fs, lower, _ := mountedOverlay(t)
	seedLowerFile(t, lower, "/gone.txt", "data")

	require.NoError(t, fs.Remove("/gone.txt"))

	_, err := fs.Stat("/gone.txt")
	assert.Equal(t, ifserrors.NotFound, err)
}

func TestReadOnlyLowerEntryRejectsRemoveRenameAndWrite(t *testing.T) {
	fs, lower, _ := mountedOverlay(t)
	seedLowerFile(t, lower, "/locked.txt", "protected")
	require.NoError(t, lower.SetXAttr("/locked.txt", ifstype.TagFileAttributes, []byte{byte(ifstype.AttrReadOnly)}))

	assert.Equal(t, ifserrors.ReadOnly, fs.Remove("/locked.txt"))
	assert.Equal(t, ifserrors.ReadOnly, fs.Rename("/locked.txt", "/unlocked.txt"))

	_, err := fs.Open("/locked.txt", ifstype.Write)
	assert.Equal(t, ifserrors.ReadOnly, err)

	// the lower copy must survive untouched.
	h, err := fs.Open("/locked.txt", ifstype.Read)
	require.NoError(t, err)
	defer fs.Close(h)
	buf := make([]byte, 32)
	n, err := fs.Read(h, buf)
	require.NoError(t, err)
	assert.Equal(t, "protected", string(buf[:n]))
}

func TestUpperEntryShadowsLower(t *testing.T) {
	fs, lower, upper := mountedOverlay(t)
	seedLowerFile(t, lower, "/shared.txt", "lower-version")

	h, err := upper.Open("/shared.txt", ifstype.Write|ifstype.Create)
	require.NoError(t, err)
	_, err = upper.Write(h, []byte("upper-version"))
	require.NoError(t, err)
	require.NoError(t, upper.Close(h))

	h2, err := fs.Open("/shared.txt", ifstype.Read)
	require.NoError(t, err)
	defer fs.Close(h2)
	buf := make([]byte, 32)
	n, err := fs.Read(h2, buf)
	require.NoError(t, err)
	assert.Equal(t, "upper-version", string(buf[:n]))
}

func TestMergedDirectoryListing(t *testing.T) {
	fs, lower, upper := mountedOverlay(t)
	seedLowerFile(t, lower, "/a.txt", "a")
	seedLowerFile(t, lower, "/b.txt", "b")

	h, err := upper.Open("/c.txt", ifstype.Write|ifstype.Create)
	require.NoError(t, err)
	require.NoError(t, upper.Close(h))

	dh, err := fs.OpenDir("/")
	require.NoError(t, err)
	defer fs.CloseDir(dh)

	var names []string
	for {
		entry, err := fs.ReadDir(dh)
		if err == ifserrors.NoMoreFiles {
			break
		}
		require.NoError(t, err)
		names = append(names, entry.Stat.Name)
	}
	assert.ElementsMatch(t, []string{"a.txt", "b.txt", "c.txt"}, names)
}

func TestCheckSumsBothLayers(t *testing.T) {
	fs, _, _ := mountedOverlay(t)
	count, err := fs.Check()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
