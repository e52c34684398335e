package io

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFramebuffer_Blit(t *testing.T) {
	assert := assert.New(t)

	fb := &Framebuffer{}

	collision := fb.Blit(0, 0, []byte{0xf0, 0x90})
	assert.False(collision)
	assert.True(fb.Dirty)
	assert.Equal(6, fb.Lit())
	assert.True(fb.Pixel[0][0])
	assert.True(fb.Pixel[0][3])
	assert.False(fb.Pixel[0][4])
	assert.True(fb.Pixel[1][0])
	assert.False(fb.Pixel[1][1])
	assert.True(fb.Pixel[1][3])

	// Same sprite again erases it, and reports the collision.
	collision = fb.Blit(0, 0, []byte{0xf0, 0x90})
	assert.True(collision)
	assert.Equal(0, fb.Lit())
}

func TestFramebuffer_NoCollisionOnDarkOverlap(t *testing.T) {
	assert := assert.New(t)

	fb := &Framebuffer{}
	fb.Blit(0, 0, []byte{0x80})
	collision := fb.Blit(1, 0, []byte{0x80})
	assert.False(collision)
	assert.Equal(2, fb.Lit())
}

func TestFramebuffer_Wrap(t *testing.T) {
	assert := assert.New(t)

	fb := &Framebuffer{}

	// Origin wraps.
	fb.Blit(SCREEN_WIDTH+2, SCREEN_HEIGHT+1, []byte{0x80})
	assert.True(fb.Pixel[1][2])
	assert.Equal(1, fb.Lit())

	fb.Clear()
	assert.Equal(0, fb.Lit())

	// Pixels past the edge are clipped.
	fb.Blit(SCREEN_WIDTH-4, SCREEN_HEIGHT-1, []byte{0xff, 0xff})
	assert.Equal(4, fb.Lit())
	assert.True(fb.Pixel[SCREEN_HEIGHT-1][SCREEN_WIDTH-1])
}

func TestFramebuffer_String(t *testing.T) {
	assert := assert.New(t)

	fb := &Framebuffer{}
	fb.Blit(0, 0, []byte{0xa0})

	lines := strings.Split(fb.String(), "\n")
	assert.Equal(SCREEN_HEIGHT+1, len(lines))
	assert.Equal("#.#"+strings.Repeat(".", SCREEN_WIDTH-3), lines[0])
	assert.Equal(strings.Repeat(".", SCREEN_WIDTH), lines[1])
}
