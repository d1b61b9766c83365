package archive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sillyhouse/ifs/internal/clock"
)

func TestOptionsBlockSizeDefault(t *testing.T) {
	var o Options
	assert.Equal(t, defaultBlockSize, o.blockSize())

	o.BlockSize = 4096
	assert.Equal(t, 4096, o.blockSize())
}

func TestOptionsNowUsesClock(t *testing.T) {
	fixed := time.Unix(1000, 0).UTC()
	o := Options{Clock: clock.Fixed{At: fixed}}
	assert.Equal(t, uint32(1000), o.now())
}

func TestOptionsResolveVolumeIDExplicit(t *testing.T) {
	o := Options{VolumeID: 0xDEADBEEF}
	assert.Equal(t, uint32(0xDEADBEEF), o.resolveVolumeID())
}

func TestOptionsResolveVolumeIDGenerated(t *testing.T) {
	var o Options
	id1 := o.resolveVolumeID()
	id2 := o.resolveVolumeID()
	assert.NotEqual(t, uint32(0), id1)
	assert.NotEqual(t, uint32(0), id2)
	assert.NotEqual(t, id1, id2, "each call with VolumeID unset should mint a fresh id")
}
