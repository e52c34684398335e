// Package io provides the devices attached to the CHIP-8 core: the
// monochrome display surface, the sixteen key hexadecimal keypad, the
// 60Hz timer clock, and the ROM image loader.
package io

// Display is the pixel surface mutated by the CLS and DRW instructions.
type Display interface {
	// Clear turns off every pixel.
	Clear()
	// Blit XORs an 8-pixel wide sprite, one byte per row, onto the surface
	// with its top-left corner at (x, y). Returns true if any lit pixel
	// was turned off.
	Blit(x, y int, sprite []byte) (collision bool)
}

// Keypad is the sixteen key input device.
type Keypad interface {
	// Reset releases all keys and abandons any wait in progress.
	Reset()
	// Pressed reports if the key is currently held down.
	Pressed(key uint8) bool
	// Await returns the next key pressed after the wait began. When no key
	// has been pressed yet, ok is false and the caller should poll again.
	Await() (key uint8, ok bool)
}

// Timers is the register interface decremented by a Clock.
type Timers interface {
	DelayTimer() uint8
	SetDelayTimer(value uint8)
	SoundTimer() uint8
	SetSoundTimer(value uint8)
}
