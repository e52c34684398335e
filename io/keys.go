package io

import (
	"fmt"
	"iter"
	"maps"
)

const (
	KEY_COUNT = 16 // Number of keys on the keypad.
)

// Keys is an in-memory Keypad. Press and Release are driven by the host,
// Pressed and Await are consumed by the CPU.
type Keys struct {
	Down [KEY_COUNT]bool // Current key state.

	waiting bool    // An Await is in progress.
	events  []uint8 // Keys pressed while waiting, oldest first.
}

var _ Keypad = (*Keys)(nil)

// Defines returns an iter of defines for the keypad.
func (kp *Keys) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"KEY_COUNT": fmt.Sprintf("%v", KEY_COUNT),
	})
}

// Reset releases all keys and abandons any wait in progress.
func (kp *Keys) Reset() {
	clear(kp.Down[:])
	kp.waiting = false
	kp.events = nil
}

// Press marks a key as held down.
func (kp *Keys) Press(key uint8) (err error) {
	if key >= KEY_COUNT {
		err = ErrKeyInvalid
		return
	}

	if !kp.Down[key] && kp.waiting {
		kp.events = append(kp.events, key)
	}
	kp.Down[key] = true

	return
}

// Release marks a key as no longer held down.
func (kp *Keys) Release(key uint8) (err error) {
	if key >= KEY_COUNT {
		err = ErrKeyInvalid
		return
	}

	kp.Down[key] = false

	return
}

// Pressed reports if the key is currently held down. Only the low nibble
// of the key is significant.
func (kp *Keys) Pressed(key uint8) bool {
	return kp.Down[key&0xf]
}

// Await arms the wait on first call, and returns the first key pressed
// afterwards on a later call.
func (kp *Keys) Await() (key uint8, ok bool) {
	if !kp.waiting {
		kp.waiting = true
		kp.events = kp.events[:0]
		return
	}

	if len(kp.events) == 0 {
		return
	}

	key = kp.events[0]
	ok = true
	kp.waiting = false
	kp.events = kp.events[:0]

	return
}

// Waiting reports if an Await is in progress.
func (kp *Keys) Waiting() bool {
	return kp.waiting
}
