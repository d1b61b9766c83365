package ifstype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenFlagsHasAny(t *testing.T) {
	f := Read | Create
	assert.True(t, f.Has(Read))
	assert.True(t, f.Has(Create))
	assert.False(t, f.Has(Write))
	assert.True(t, f.Any(Write|Create))
}

func TestWantsWrite(t *testing.T) {
	assert.False(t, Read.WantsWrite())
	assert.True(t, Write.WantsWrite())
	assert.True(t, Create.WantsWrite())
	assert.True(t, (Read | Append).WantsWrite())
}

func TestExtentDecodedSize(t *testing.T) {
	e := Extent{Length: 100, Repeat: 3}
	assert.Equal(t, uint64(400), e.DecodedSize())

	zero := Extent{Length: 50}
	assert.Equal(t, uint64(50), zero.DecodedSize())
}
