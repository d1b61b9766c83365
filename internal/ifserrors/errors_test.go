package ifserrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeError(t *testing.T) {
	assert.Equal(t, "NotFound", NotFound.Error())
	assert.Equal(t, "OK", OK.Error())
}

func TestCodeUnknown(t *testing.T) {
	unknown := Code(-999)
	assert.Contains(t, unknown.Error(), "FSERR")
}

func TestErrorsIs(t *testing.T) {
	wrapped := fmtErrorf(NotFound)
	assert.True(t, errors.Is(wrapped, NotFound))
	assert.False(t, errors.Is(wrapped, BadObject))
}

func TestIsSystem(t *testing.T) {
	assert.True(t, IsSystem(NotMounted))
	assert.False(t, IsSystem(errors.New("plain error")))
}

func TestStringHelper(t *testing.T) {
	assert.Equal(t, "OK", String(nil))
	assert.Equal(t, "BadObject", String(BadObject))
	assert.Equal(t, "boom", String(errors.New("boom")))
}

func fmtErrorf(c Code) error {
	return errors.Join(c)
}
