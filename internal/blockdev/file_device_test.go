package blockdev

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileDeviceReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.img")
	dev, err := OpenFileDevice(path, 64, 16, true)
	require.NoError(t, err)
	defer dev.Close()

	assert.Equal(t, int64(64), dev.Size())
	assert.Equal(t, 16, dev.BlockSize())

	require.NoError(t, dev.Write(0, []byte("hello")))
	buf := make([]byte, 5)
	require.NoError(t, dev.Read(0, buf))
	assert.Equal(t, "hello", string(buf))
}

func TestFileDeviceEraseRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.img")
	dev, err := OpenFileDevice(path, 16, 16, true)
	require.NoError(t, err)
	defer dev.Close()

	require.NoError(t, dev.EraseRange(0, 16))
	buf := make([]byte, 16)
	require.NoError(t, dev.Read(0, buf))
	for _, b := range buf {
		assert.Equal(t, byte(0xFF), b)
	}
}

func TestFileDeviceOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.img")
	dev, err := OpenFileDevice(path, 16, 16, true)
	require.NoError(t, err)
	defer dev.Close()

	err = dev.Read(10, make([]byte, 16))
	assert.Error(t, err)
}
