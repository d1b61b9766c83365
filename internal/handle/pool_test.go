package handle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifserrors"
)

func TestFilePoolAllocFree(t *testing.T) {
	pool := NewFilePool[int](capability.Handle(100), 2)

	h1, slot1, err := pool.Alloc()
	require.NoError(t, err)
	assert.Equal(t, capability.Handle(100), h1)
	*slot1 = 42

	h2, _, err := pool.Alloc()
	require.NoError(t, err)
	assert.Equal(t, capability.Handle(101), h2)

	_, _, err = pool.Alloc()
	assert.Equal(t, ifserrors.OutOfFileDescs, err)

	got, err := pool.Get(h1)
	require.NoError(t, err)
	assert.Equal(t, 42, *got)

	require.NoError(t, pool.Free(h1))
	_, err = pool.Get(h1)
	assert.Equal(t, ifserrors.FileNotOpen, err)

	h3, _, err := pool.Alloc()
	require.NoError(t, err)
	assert.Equal(t, h1, h3, "freed slot should be reused")
}

func TestFilePoolOwnsRejectsOutOfRange(t *testing.T) {
	pool := NewFilePool[int](capability.Handle(100), 2)
	assert.False(t, pool.Owns(capability.Handle(99)))
	assert.False(t, pool.Owns(capability.Handle(102)))
	assert.True(t, pool.Owns(capability.Handle(101)))

	_, err := pool.Get(capability.Handle(5))
	assert.Equal(t, ifserrors.InvalidHandle, err)
}

func TestDirPoolAllocFree(t *testing.T) {
	pool := NewDirPool[string](capability.Handle(200))

	h1 := pool.Alloc(strPtr("a"))
	h2 := pool.Alloc(strPtr("b"))
	assert.NotEqual(t, h1, h2)
	assert.True(t, pool.Owns(h1))

	v, err := pool.Get(h1)
	require.NoError(t, err)
	assert.Equal(t, "a", *v)

	require.NoError(t, pool.Free(h1))
	_, err = pool.Get(h1)
	assert.Equal(t, ifserrors.InvalidHandle, err)

	err = pool.Free(h1)
	assert.Equal(t, ifserrors.InvalidHandle, err)
}

func strPtr(s string) *string { return &s }
