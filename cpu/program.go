package cpu

import (
	"iter"
)

// Program is an assembled program listing.
type Program struct {
	Origin  uint16 // Load address of the first opcode.
	Opcodes []Opcode
}

// Debug locates an address within a program listing.
type Debug struct {
	*Opcode
	Index int // Byte offset of the address within the opcode.
}

// Debug returns the listing line that contains the address. The Opcode is
// nil if no line contains it.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(addr) >= op.Addr && int(addr) < op.Addr+op.Size() {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(addr) - op.Addr,
			}
			break
		}
	}

	return
}

// Binary returns the memory image of the program, to be loaded at Origin.
func (prog *Program) Binary() (image []byte) {
	for _, op := range prog.Opcodes {
		image = append(image, op.Bytes()...)
	}

	return
}

// Codes iterates over the address and code of every instruction in the
// listing. Data lines are skipped.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(addr uint16, code Code) bool) {
		for _, op := range prog.Opcodes {
			addr := uint16(op.Addr)
			for n, code := range op.Codes {
				if !yield(addr+uint16(2*n), code) {
					return
				}
			}
		}
	}
}

// Disassemble iterates over each whole big-endian word of a memory image
// loaded at origin. A trailing odd byte is not visited.
func Disassemble(image []byte, origin uint16) iter.Seq2[uint16, Code] {
	return func(yield func(addr uint16, code Code) bool) {
		for n := 0; n+1 < len(image); n += 2 {
			word := (uint16(image[n]) << 8) | uint16(image[n+1])
			if !yield(origin+uint16(n), NewCode(word)) {
				return
			}
		}
	}
}
