package io

import (
	"fmt"
	"iter"
	"maps"
	"strings"
)

const (
	SCREEN_WIDTH  = 64 // Pixels per row.
	SCREEN_HEIGHT = 32 // Rows of pixels.
	SPRITE_WIDTH  = 8  // Pixels per sprite row.
)

// Framebuffer is a monochrome SCREEN_WIDTH x SCREEN_HEIGHT Display.
//
// Sprite origins wrap around the screen edges. Sprite pixels that would
// fall past the right or bottom edge are clipped.
type Framebuffer struct {
	Pixel [SCREEN_HEIGHT][SCREEN_WIDTH]bool

	Dirty bool // Set whenever the surface changes; cleared by the host.
}

var _ Display = (*Framebuffer)(nil)

// Defines returns an iter of defines for the display.
func (fb *Framebuffer) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"SCREEN_WIDTH":  fmt.Sprintf("%v", SCREEN_WIDTH),
		"SCREEN_HEIGHT": fmt.Sprintf("%v", SCREEN_HEIGHT),
	})
}

// Clear turns off every pixel.
func (fb *Framebuffer) Clear() {
	for row := range fb.Pixel {
		clear(fb.Pixel[row][:])
	}
	fb.Dirty = true
}

// Blit XORs the sprite onto the surface, and reports a collision if any
// lit pixel was turned off.
func (fb *Framebuffer) Blit(x, y int, sprite []byte) (collision bool) {
	x %= SCREEN_WIDTH
	y %= SCREEN_HEIGHT

	for n, bits := range sprite {
		row := y + n
		if row >= SCREEN_HEIGHT {
			break
		}
		for bit := range SPRITE_WIDTH {
			col := x + bit
			if col >= SCREEN_WIDTH {
				break
			}
			if (bits & (0x80 >> bit)) == 0 {
				continue
			}
			if fb.Pixel[row][col] {
				collision = true
			}
			fb.Pixel[row][col] = !fb.Pixel[row][col]
		}
	}

	if len(sprite) > 0 {
		fb.Dirty = true
	}

	return
}

// Lit returns the number of pixels turned on.
func (fb *Framebuffer) Lit() (count int) {
	for _, row := range fb.Pixel {
		for _, on := range row {
			if on {
				count++
			}
		}
	}
	return
}

// String returns the surface as text, '#' for lit pixels and '.' for dark.
func (fb *Framebuffer) String() string {
	var sb strings.Builder
	for _, row := range fb.Pixel {
		for _, on := range row {
			if on {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
