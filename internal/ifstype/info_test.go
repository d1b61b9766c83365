package ifstype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatPredicates(t *testing.T) {
	dir := Stat{Attr: AttrDirectory}
	assert.True(t, dir.IsDirectory())
	assert.False(t, dir.IsMountPoint())
	assert.False(t, dir.IsReadOnly())

	mp := Stat{Attr: AttrDirectory | AttrMountPoint}
	assert.True(t, mp.IsMountPoint())

	ro := Stat{Attr: AttrReadOnly}
	assert.True(t, ro.IsReadOnly())
	assert.False(t, ro.IsDirectory())
}
