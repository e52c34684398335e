// Package cpu implements the CHIP-8 virtual machine core and its assembler.
//
// The machine has 4KiB of byte addressable memory, sixteen 8-bit
// general-purpose registers (V0-VF, with VF doubling as the carry, borrow,
// and collision flag), a 12-bit index register (I), delay and sound timer
// registers, a sixteen entry return stack, and a program counter (PC).
// Programs are loaded at PROGRAM_BASE, and every instruction is a single
// big-endian 16-bit word.
//
// Each Tick fetches the word at PC, decodes it against the opcode pattern
// table, advances PC by two, and executes the instruction.
//
// The assembler accepts the conventional CHIP-8 mnemonics, with labels,
// macros, equates, and compile-time expression evaluation.
package cpu
