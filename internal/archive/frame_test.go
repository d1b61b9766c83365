package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sillyhouse/ifs/internal/ifstype"
)

func TestFrameContentPrefixesNameAndMtime(t *testing.T) {
	f := newFrame("abc", 0x01020304)
	content, err := f.content()
	require.NoError(t, err)

	require.Len(t, content, namedHeaderLen+3)
	assert.Equal(t, byte(3), content[0])
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, content[1:5])
	assert.Equal(t, "abc", string(content[5:8]))
}

func TestFrameAppendInlineAndReference(t *testing.T) {
	f := newFrame("", 0)
	require.NoError(t, f.appendInline(ifstype.TypeObjAttr, []byte{0x07}))
	require.NoError(t, f.appendReference(ifstype.TypeFile, 42))

	content, err := f.content()
	require.NoError(t, err)

	table := content[namedHeaderLen:]
	// ObjAttr: tag byte, 1-byte size class, 1 byte content.
	assert.Equal(t, byte(ifstype.TypeObjAttr), table[0])
	assert.Equal(t, byte(1), table[1])
	assert.Equal(t, byte(0x07), table[2])

	// File reference: tag byte with ref bit set, 2-byte size field (File's
	// class) holding the payload length 2, then the little-endian target
	// id in that many bytes.
	refTag := table[3]
	assert.True(t, ifstype.Tag(refTag).IsRef())
	assert.Equal(t, ifstype.TypeFile, ifstype.Tag(refTag).Type())
	assert.Equal(t, []byte{2, 0}, table[4:6])
	assert.Equal(t, []byte{42, 0}, table[6:8])
}
