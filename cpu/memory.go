package cpu

// Memory map.
const (
	MEMORY_SIZE  = 0x1000 // Addressable bytes.
	ADDRESS_MASK = 0x0fff // Mask of a 12-bit address operand.
	FONT_BASE    = 0x050  // Hexadecimal digit sprites.
	FONT_HEIGHT  = 5      // Rows per digit sprite.
	PROGRAM_BASE = 0x200  // Programs are loaded here.
)

// fontSprites are the 4x5 sprites for the hexadecimal digits 0-F.
var fontSprites = [16 * FONT_HEIGHT]byte{
	0xf0, 0x90, 0x90, 0x90, 0xf0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xf0, 0x10, 0xf0, 0x80, 0xf0, // 2
	0xf0, 0x10, 0xf0, 0x10, 0xf0, // 3
	0x90, 0x90, 0xf0, 0x10, 0x10, // 4
	0xf0, 0x80, 0xf0, 0x10, 0xf0, // 5
	0xf0, 0x80, 0xf0, 0x90, 0xf0, // 6
	0xf0, 0x10, 0x20, 0x40, 0x40, // 7
	0xf0, 0x90, 0xf0, 0x90, 0xf0, // 8
	0xf0, 0x90, 0xf0, 0x10, 0xf0, // 9
	0xf0, 0x90, 0xf0, 0x90, 0x90, // A
	0xe0, 0x90, 0xe0, 0x90, 0xe0, // B
	0xf0, 0x80, 0x80, 0x80, 0xf0, // C
	0xe0, 0x90, 0x90, 0x90, 0xe0, // D
	0xf0, 0x80, 0xf0, 0x80, 0xf0, // E
	0xf0, 0x80, 0xf0, 0x80, 0x80, // F
}

// Memory is the flat byte store. Every access is bounds checked, and
// fails with ErrAddress.
type Memory [MEMORY_SIZE]byte

// Reset zeros memory, then installs the font sprites.
func (mem *Memory) Reset() {
	clear(mem[:])
	copy(mem[FONT_BASE:], fontSprites[:])
}

// Read a byte.
func (mem *Memory) Read(addr uint16) (value uint8, err error) {
	if int(addr) >= len(mem) {
		err = ErrAddress(addr)
		return
	}

	value = mem[addr]
	return
}

// Write a byte.
func (mem *Memory) Write(addr uint16, value uint8) (err error) {
	if int(addr) >= len(mem) {
		err = ErrAddress(addr)
		return
	}

	mem[addr] = value
	return
}

// Fetch the big-endian instruction word at addr.
func (mem *Memory) Fetch(addr uint16) (word uint16, err error) {
	hi, err := mem.Read(addr)
	if err != nil {
		return
	}

	lo, err := mem.Read(addr + 1)
	if err != nil {
		return
	}

	word = (uint16(hi) << 8) | uint16(lo)
	return
}

// Slice returns a view of count bytes starting at addr. The view aliases
// memory, and must not be retained across instructions.
func (mem *Memory) Slice(addr uint16, count int) (data []byte, err error) {
	end := int(addr) + count
	switch {
	case int(addr) >= len(mem):
		err = ErrAddress(addr)
		return
	case end > len(mem):
		err = ErrAddress(len(mem))
		return
	}

	data = mem[addr:end]
	return
}

// Load copies a program image verbatim into memory at addr.
func (mem *Memory) Load(addr uint16, data []byte) (err error) {
	if int(addr)+len(data) > len(mem) {
		err = ErrAddress(len(mem))
		return
	}

	copy(mem[addr:], data)
	return
}
