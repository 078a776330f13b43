package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptions_CloseReleasesNewestFirst(t *testing.T) {
	subs := NewSubscriptions()
	var order []string

	subs.Add("scroll", func() { order = append(order, "scroll") })
	subs.Add("frame", func() { order = append(order, "frame") })
	subs.Add("resize", func() { order = append(order, "resize") })
	assert.Equal(t, []string{"scroll", "frame", "resize"}, subs.Names())

	subs.Close()
	assert.Equal(t, []string{"resize", "frame", "scroll"}, order)
	assert.Zero(t, subs.Len())
	assert.True(t, subs.Closed())

	// Closing twice does not release again.
	subs.Close()
	assert.Len(t, order, 3)
}

func TestSubscriptions_Remove(t *testing.T) {
	subs := NewSubscriptions()
	released := 0
	id := subs.Add("scroll", func() { released++ })
	other := subs.Add("frame", nil)
	assert.NotEqual(t, id, other)

	assert.True(t, subs.Remove(id))
	assert.Equal(t, 1, released)
	assert.False(t, subs.Remove(id))
	assert.Equal(t, 1, released)
	assert.Equal(t, []string{"frame"}, subs.Names())
}

func TestSubscriptions_AddAfterClose(t *testing.T) {
	subs := NewSubscriptions()
	subs.Close()

	released := false
	subs.Add("late", func() { released = true })
	assert.True(t, released)
	assert.Zero(t, subs.Len())
}
