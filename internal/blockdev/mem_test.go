package blockdev

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sillyhouse/ifs/internal/ifserrors"
)

func TestMemPartitionReadWrite(t *testing.T) {
	p := NewMemPartition(16, 4)
	require.NoError(t, p.Write(0, []byte{1, 2, 3, 4}))

	buf := make([]byte, 4)
	require.NoError(t, p.Read(0, buf))
	assert.Equal(t, []byte{1, 2, 3, 4}, buf)
	assert.Equal(t, int64(16), p.Size())
	assert.Equal(t, 4, p.BlockSize())
}

func TestMemPartitionOutOfRange(t *testing.T) {
	p := NewMemPartition(8, 4)
	err := p.Read(4, make([]byte, 8))
	assert.Equal(t, ifserrors.BadExtent, err)

	err = p.Write(-1, []byte{1})
	assert.Equal(t, ifserrors.BadExtent, err)
}

func TestMemPartitionEraseRange(t *testing.T) {
	p := NewMemPartition(4, 4)
	require.NoError(t, p.EraseRange(0, 4))
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, p.Bytes())
}
