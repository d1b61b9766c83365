package ifstype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserTagRoundTrip(t *testing.T) {
	tag := UserTag(5)
	n, ok := tag.IsUser()
	assert.True(t, ok)
	assert.Equal(t, byte(6), n)
}

func TestIsUserRejectsWellKnown(t *testing.T) {
	_, ok := TagComment.IsUser()
	assert.False(t, ok)
}

func TestCommentRawTagReservedAtZero(t *testing.T) {
	n, ok := UserTag(0).IsUser()
	assert.True(t, ok)
	assert.NotEqual(t, CommentRawTag, n, "UserTag(0)'s raw byte must not collide with the reserved Comment raw tag")
}

func TestUserRoleAllows(t *testing.T) {
	assert.True(t, RoleAdmin.Allows(RoleUser))
	assert.True(t, RoleUser.Allows(RoleUser))
	assert.False(t, RoleGuest.Allows(RoleManager))
}

func TestAttributeTagString(t *testing.T) {
	assert.Equal(t, "VolumeIndex", TagVolumeIndex.String())
	assert.Equal(t, "Unknown", AttributeTag(-1).String())
}
