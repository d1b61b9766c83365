package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// stub embeds Unsupported to confirm it alone satisfies FileSystem, and
// that every method returns NotSupported until overridden.
type stub struct{ Unsupported }

func TestUnsupportedSatisfiesFileSystem(t *testing.T) {
	var fs FileSystem = stub{}

	_, err := fs.Open("/x", ifstype.Read)
	assert.Equal(t, ifserrors.NotSupported, err)

	err = fs.Mkdir("/x")
	assert.Equal(t, ifserrors.NotSupported, err)

	_, err = fs.FEnumXAttr(0)
	assert.Equal(t, ifserrors.NotSupported, err)

	assert.Equal(t, "NotSupported", fs.GetErrorString(ifserrors.NotSupported))
}

// overriding exercises that a concrete backend can override a single
// method while inheriting every other NotSupported stub.
type overriding struct{ Unsupported }

func (overriding) Mkdir(path string) error { return nil }

func TestUnsupportedOverride(t *testing.T) {
	var fs FileSystem = overriding{}
	assert.NoError(t, fs.Mkdir("/x"))

	_, err := fs.Open("/x", ifstype.Read)
	assert.Equal(t, ifserrors.NotSupported, err)
}
