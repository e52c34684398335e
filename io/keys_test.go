package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys_Pressed(t *testing.T) {
	assert := assert.New(t)

	kp := &Keys{}
	for key := range uint8(KEY_COUNT) {
		assert.False(kp.Pressed(key))
	}

	assert.NoError(kp.Press(0xa))
	assert.True(kp.Pressed(0xa))
	assert.True(kp.Pressed(0x1a), "only the low nibble selects the key")
	assert.False(kp.Pressed(0xb))

	assert.NoError(kp.Release(0xa))
	assert.False(kp.Pressed(0xa))
}

func TestKeys_Invalid(t *testing.T) {
	assert := assert.New(t)

	kp := &Keys{}
	assert.ErrorIs(kp.Press(KEY_COUNT), ErrKeyInvalid)
	assert.ErrorIs(kp.Release(0xff), ErrKeyInvalid)
}

func TestKeys_Await(t *testing.T) {
	assert := assert.New(t)

	kp := &Keys{}

	// A key held before the wait does not satisfy it.
	assert.NoError(kp.Press(0x3))

	_, ok := kp.Await()
	assert.False(ok)
	assert.True(kp.Waiting())

	_, ok = kp.Await()
	assert.False(ok)

	// Still held, so no new press.
	assert.NoError(kp.Press(0x3))
	_, ok = kp.Await()
	assert.False(ok)

	assert.NoError(kp.Press(0x7))
	assert.NoError(kp.Press(0x9))
	key, ok := kp.Await()
	assert.True(ok)
	assert.Equal(uint8(0x7), key)
	assert.False(kp.Waiting())

	// Next wait starts fresh.
	_, ok = kp.Await()
	assert.False(ok)
}

func TestKeys_Reset(t *testing.T) {
	assert := assert.New(t)

	kp := &Keys{}
	kp.Await()
	assert.NoError(kp.Press(0x1))
	kp.Reset()

	assert.False(kp.Pressed(0x1))
	assert.False(kp.Waiting())
}
