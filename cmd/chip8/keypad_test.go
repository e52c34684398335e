package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/io"
)

func TestKeypadPoll(t *testing.T) {
	assert := assert.New(t)

	tk := &termKeypad{strokes: make(chan byte, io.KEY_COUNT)}
	keys := &io.Keys{}

	tk.strokes <- 'W'
	tk.strokes <- '?'
	assert.False(tk.Poll(keys))
	assert.True(keys.Pressed(0x5))

	for range KEY_HOLD_FRAMES - 1 {
		assert.False(tk.Poll(keys))
		assert.True(keys.Pressed(0x5))
	}

	assert.False(tk.Poll(keys))
	assert.False(keys.Pressed(0x5))

	tk.strokes <- KEY_QUIT
	assert.True(tk.Poll(keys))
}

func TestKeypadPoll_Repeat(t *testing.T) {
	assert := assert.New(t)

	tk := &termKeypad{strokes: make(chan byte, io.KEY_COUNT)}
	keys := &io.Keys{}

	tk.strokes <- 'x'
	assert.False(tk.Poll(keys))
	assert.True(keys.Pressed(0x0))

	// A second stroke while the key is still held is a new press.
	_, ok := keys.Await()
	assert.False(ok)
	tk.strokes <- 'x'
	assert.False(tk.Poll(keys))

	key, ok := keys.Await()
	assert.True(ok)
	assert.Equal(uint8(0x0), key)
	assert.True(keys.Pressed(0x0))
}

func TestKeypadPoll_Closed(t *testing.T) {
	assert := assert.New(t)

	tk := &termKeypad{strokes: make(chan byte)}
	close(tk.strokes)
	assert.True(tk.Poll(&io.Keys{}))
}
