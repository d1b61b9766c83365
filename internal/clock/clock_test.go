package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock(t *testing.T) {
	at := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	c := Fixed{At: at}
	assert.Equal(t, at, c.Now())
	assert.Equal(t, at, c.Now(), "Fixed must return the same instant every call")
}

func TestSystemClockAdvances(t *testing.T) {
	var c System
	first := c.Now()
	time.Sleep(time.Millisecond)
	second := c.Now()
	assert.True(t, second.After(first) || second.Equal(first))
}
