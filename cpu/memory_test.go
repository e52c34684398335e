package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_Reset(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem[PROGRAM_BASE] = 0xaa
	mem.Reset()

	assert.Equal(uint8(0), mem[PROGRAM_BASE])
	assert.Equal(fontSprites[:], mem[FONT_BASE:FONT_BASE+len(fontSprites)])
	assert.Equal(uint8(0), mem[0])
}

func TestMemory_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	assert.NoError(mem.Write(0xfff, 0x5a))
	val, err := mem.Read(0xfff)
	assert.NoError(err)
	assert.Equal(uint8(0x5a), val)

	err = mem.Write(MEMORY_SIZE, 1)
	assert.ErrorIs(err, ErrAddress(0))
	assert.Equal(ErrAddress(MEMORY_SIZE), err)

	_, err = mem.Read(0xffff)
	assert.ErrorIs(err, ErrAddress(0))
}

func TestMemory_Fetch(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem[0x200] = 0x12
	mem[0x201] = 0x4e

	word, err := mem.Fetch(0x200)
	assert.NoError(err)
	assert.Equal(uint16(0x124e), word)

	// Second byte of the word is out of range.
	_, err = mem.Fetch(MEMORY_SIZE - 1)
	var addr ErrAddress
	assert.True(errors.As(err, &addr))
	assert.Equal(ErrAddress(MEMORY_SIZE), addr)
}

func TestMemory_Slice(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Reset()

	data, err := mem.Slice(FONT_BASE, FONT_HEIGHT)
	assert.NoError(err)
	assert.Equal([]byte{0xf0, 0x90, 0x90, 0x90, 0xf0}, data)

	data, err = mem.Slice(MEMORY_SIZE-2, 2)
	assert.NoError(err)
	assert.Equal(2, len(data))

	data, err = mem.Slice(0x300, 0)
	assert.NoError(err)
	assert.Equal(0, len(data))

	_, err = mem.Slice(MEMORY_SIZE-2, 3)
	assert.ErrorIs(err, ErrAddress(0))

	_, err = mem.Slice(MEMORY_SIZE, 1)
	assert.Equal(ErrAddress(MEMORY_SIZE), err)
}

func TestMemory_Load(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	assert.NoError(mem.Load(PROGRAM_BASE, []byte{0x00, 0xe0}))
	assert.Equal(uint8(0xe0), mem[PROGRAM_BASE+1])

	assert.NoError(mem.Load(PROGRAM_BASE, make([]byte, MEMORY_SIZE-PROGRAM_BASE)))

	err := mem.Load(PROGRAM_BASE, make([]byte, MEMORY_SIZE-PROGRAM_BASE+1))
	assert.ErrorIs(err, ErrAddress(0))
}
