package cpu

import (
	"fmt"
	"math/bits"
	"slices"
	"strings"
)

// Op is a decoded instruction.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_INVALID     = Op(0)  // invalid
	OP_CLS         = Op(1)  // cls
	OP_RET         = Op(2)  // ret
	OP_SYS         = Op(3)  // sys
	OP_JP          = Op(4)  // jp
	OP_CALL        = Op(5)  // call
	OP_SE_VX_BYTE  = Op(6)  // se.vx.byte
	OP_SNE_VX_BYTE = Op(7)  // sne.vx.byte
	OP_SE_VX_VY    = Op(8)  // se.vx.vy
	OP_LD_VX_BYTE  = Op(9)  // ld.vx.byte
	OP_ADD_VX_BYTE = Op(10) // add.vx.byte
	OP_LD_VX_VY    = Op(11) // ld.vx.vy
	OP_OR          = Op(12) // or
	OP_AND         = Op(13) // and
	OP_XOR         = Op(14) // xor
	OP_ADD_VX_VY   = Op(15) // add.vx.vy
	OP_SUB         = Op(16) // sub
	OP_SHR         = Op(17) // shr
	OP_SUBN        = Op(18) // subn
	OP_SHL         = Op(19) // shl
	OP_SNE_VX_VY   = Op(20) // sne.vx.vy
	OP_LD_I_ADDR   = Op(21) // ld.i.addr
	OP_JP_V0_ADDR  = Op(22) // jp.v0.addr
	OP_RND         = Op(23) // rnd
	OP_DRW         = Op(24) // drw
	OP_SKP         = Op(25) // skp
	OP_SKNP        = Op(26) // sknp
	OP_LD_VX_DT    = Op(27) // ld.vx.dt
	OP_LD_VX_K     = Op(28) // ld.vx.k
	OP_LD_DT_VX    = Op(29) // ld.dt.vx
	OP_LD_ST_VX    = Op(30) // ld.st.vx
	OP_ADD_I_VX    = Op(31) // add.i.vx
	OP_LD_F_VX     = Op(32) // ld.f.vx
	OP_LD_B_VX     = Op(33) // ld.b.vx
	OP_LD_I_VX     = Op(34) // ld.[i].vx
	OP_LD_VX_I     = Op(35) // ld.vx.[i]

	OP_COUNT = 36 // Number of Op values, including OP_INVALID.
)

// Operand argument kinds, used by both the assembler and disassembler.
// Anything else in a pattern's Args is a literal keyword.
const (
	ARG_VX     = "Vx"     // Register index in bits 8-11.
	ARG_VY     = "Vy"     // Register index in bits 4-7.
	ARG_BYTE   = "byte"   // Immediate in bits 0-7.
	ARG_NIBBLE = "nibble" // Immediate in bits 0-3.
	ARG_ADDR   = "addr"   // Address in bits 0-11.
)

// Pattern is an entry of the decode table. An opcode word matches when
// the word masked with Mask equals Fixed.
type Pattern struct {
	Op       Op
	Fixed    uint16   // Bits that identify the instruction.
	Mask     uint16   // Selector mask of the fixed bits.
	Mnemonic string   // Assembler mnemonic.
	Args     []string // Assembler operands.
}

// patterns in opcode order.
var patterns = []Pattern{
	{OP_CLS, 0x00e0, 0xffff, "CLS", nil},
	{OP_RET, 0x00ee, 0xffff, "RET", nil},
	{OP_SYS, 0x0000, 0xf000, "SYS", []string{ARG_ADDR}},
	{OP_JP, 0x1000, 0xf000, "JP", []string{ARG_ADDR}},
	{OP_CALL, 0x2000, 0xf000, "CALL", []string{ARG_ADDR}},
	{OP_SE_VX_BYTE, 0x3000, 0xf000, "SE", []string{ARG_VX, ARG_BYTE}},
	{OP_SNE_VX_BYTE, 0x4000, 0xf000, "SNE", []string{ARG_VX, ARG_BYTE}},
	{OP_SE_VX_VY, 0x5000, 0xf00f, "SE", []string{ARG_VX, ARG_VY}},
	{OP_LD_VX_BYTE, 0x6000, 0xf000, "LD", []string{ARG_VX, ARG_BYTE}},
	{OP_ADD_VX_BYTE, 0x7000, 0xf000, "ADD", []string{ARG_VX, ARG_BYTE}},
	{OP_LD_VX_VY, 0x8000, 0xf00f, "LD", []string{ARG_VX, ARG_VY}},
	{OP_OR, 0x8001, 0xf00f, "OR", []string{ARG_VX, ARG_VY}},
	{OP_AND, 0x8002, 0xf00f, "AND", []string{ARG_VX, ARG_VY}},
	{OP_XOR, 0x8003, 0xf00f, "XOR", []string{ARG_VX, ARG_VY}},
	{OP_ADD_VX_VY, 0x8004, 0xf00f, "ADD", []string{ARG_VX, ARG_VY}},
	{OP_SUB, 0x8005, 0xf00f, "SUB", []string{ARG_VX, ARG_VY}},
	{OP_SHR, 0x8006, 0xf00f, "SHR", []string{ARG_VX, ARG_VY}},
	{OP_SUBN, 0x8007, 0xf00f, "SUBN", []string{ARG_VX, ARG_VY}},
	{OP_SHL, 0x800e, 0xf00f, "SHL", []string{ARG_VX, ARG_VY}},
	{OP_SNE_VX_VY, 0x9000, 0xf00f, "SNE", []string{ARG_VX, ARG_VY}},
	{OP_LD_I_ADDR, 0xa000, 0xf000, "LD", []string{"I", ARG_ADDR}},
	{OP_JP_V0_ADDR, 0xb000, 0xf000, "JP", []string{"V0", ARG_ADDR}},
	{OP_RND, 0xc000, 0xf000, "RND", []string{ARG_VX, ARG_BYTE}},
	{OP_DRW, 0xd000, 0xf000, "DRW", []string{ARG_VX, ARG_VY, ARG_NIBBLE}},
	{OP_SKP, 0xe09e, 0xf0ff, "SKP", []string{ARG_VX}},
	{OP_SKNP, 0xe0a1, 0xf0ff, "SKNP", []string{ARG_VX}},
	{OP_LD_VX_DT, 0xf007, 0xf0ff, "LD", []string{ARG_VX, "DT"}},
	{OP_LD_VX_K, 0xf00a, 0xf0ff, "LD", []string{ARG_VX, "K"}},
	{OP_LD_DT_VX, 0xf015, 0xf0ff, "LD", []string{"DT", ARG_VX}},
	{OP_LD_ST_VX, 0xf018, 0xf0ff, "LD", []string{"ST", ARG_VX}},
	{OP_ADD_I_VX, 0xf01e, 0xf0ff, "ADD", []string{"I", ARG_VX}},
	{OP_LD_F_VX, 0xf029, 0xf0ff, "LD", []string{"F", ARG_VX}},
	{OP_LD_B_VX, 0xf033, 0xf0ff, "LD", []string{"B", ARG_VX}},
	{OP_LD_I_VX, 0xf055, 0xf0ff, "LD", []string{"[I]", ARG_VX}},
	{OP_LD_VX_I, 0xf065, 0xf0ff, "LD", []string{ARG_VX, "[I]"}},
}

// decodeTable is patterns ordered from the most specific selector mask to
// the least, so that a coarse pattern (SYS 0nnn) is only tried after the
// exact patterns it overlaps (CLS, RET). SYS is the only pattern that
// overlaps another.
var decodeTable = func() []Pattern {
	table := slices.Clone(patterns)
	slices.SortStableFunc(table, func(a, b Pattern) int {
		return bits.OnesCount16(b.Mask) - bits.OnesCount16(a.Mask)
	})
	return table
}()

// opPattern indexes patterns by Op.
var opPattern = func() (index [OP_COUNT]*Pattern) {
	for n := range patterns {
		index[patterns[n].Op] = &patterns[n]
	}
	return
}()

// Decode maps an opcode word to its instruction and operand bits. The
// operand is the word with the instruction's fixed selector bits cleared.
// Words that match no pattern decode to OP_INVALID with a zero operand.
func Decode(word uint16) (op Op, operand uint16) {
	for _, pat := range decodeTable {
		if word&pat.Mask == pat.Fixed {
			op = pat.Op
			operand = word &^ pat.Mask
			return
		}
	}

	op = OP_INVALID
	return
}

// Patterns returns the decode table, in decode order.
func Patterns() []Pattern {
	return slices.Clone(decodeTable)
}

// Pattern returns the decode table entry for the op.
func (op Op) Pattern() (pat Pattern, ok bool) {
	if op < 0 || op >= OP_COUNT || opPattern[op] == nil {
		return
	}

	return *opPattern[op], true
}

// Code is a decoded opcode word.
type Code struct {
	Word    uint16 // Raw opcode word.
	Op      Op     // Decoded instruction.
	Operand uint16 // Word with the selector bits cleared.
}

// NewCode decodes an opcode word.
func NewCode(word uint16) Code {
	op, operand := Decode(word)
	return Code{Word: word, Op: op, Operand: operand}
}

// MakeCode encodes an instruction. Operand bits that overlap the
// instruction's selector are discarded.
func MakeCode(op Op, operand uint16) Code {
	pat, ok := op.Pattern()
	if !ok {
		return Code{}
	}

	operand &^= pat.Mask
	return Code{Word: pat.Fixed | operand, Op: op, Operand: operand}
}

// OperandX packs a Vx operand.
func OperandX(x uint8) uint16 {
	return uint16(x&0xf) << 8
}

// OperandXY packs a Vx, Vy operand.
func OperandXY(x, y uint8) uint16 {
	return OperandX(x) | uint16(y&0xf)<<4
}

// OperandXYN packs a Vx, Vy, nibble operand.
func OperandXYN(x, y, n uint8) uint16 {
	return OperandXY(x, y) | uint16(n&0xf)
}

// OperandXKK packs a Vx, byte operand.
func OperandXKK(x, kk uint8) uint16 {
	return OperandX(x) | uint16(kk)
}

// Valid returns true if the word decoded to an instruction.
func (code Code) Valid() bool {
	return code.Op != OP_INVALID
}

// X returns the destination register index, bits 8-11.
func (code Code) X() uint8 {
	return uint8(code.Operand>>8) & 0xf
}

// Y returns the source register index, bits 4-7.
func (code Code) Y() uint8 {
	return uint8(code.Operand>>4) & 0xf
}

// N returns the size nibble, bits 0-3.
func (code Code) N() uint8 {
	return uint8(code.Operand) & 0xf
}

// Byte returns the immediate byte, bits 0-7.
func (code Code) Byte() uint8 {
	return uint8(code.Operand)
}

// Addr returns the address, bits 0-11.
func (code Code) Addr() uint16 {
	return code.Operand & ADDRESS_MASK
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	pat, ok := code.Op.Pattern()
	if !ok {
		return fmt.Sprintf(".word 0x%04x", code.Word)
	}

	if len(pat.Args) == 0 {
		return pat.Mnemonic
	}

	args := make([]string, len(pat.Args))
	for n, arg := range pat.Args {
		switch arg {
		case ARG_VX:
			args[n] = fmt.Sprintf("V%X", code.X())
		case ARG_VY:
			args[n] = fmt.Sprintf("V%X", code.Y())
		case ARG_BYTE:
			args[n] = fmt.Sprintf("0x%02x", code.Byte())
		case ARG_NIBBLE:
			args[n] = fmt.Sprintf("%d", code.N())
		case ARG_ADDR:
			args[n] = fmt.Sprintf("0x%03x", code.Addr())
		default:
			args[n] = arg
		}
	}

	return pat.Mnemonic + " " + strings.Join(args, ", ")
}

// Opcode represents a line of assembled code with its source location and
// generated instructions or data.
type Opcode struct {
	LineNo    int
	Addr      int
	Words     []string
	Codes     []Code
	Data      []byte
	LinkLabel string
}

// Size returns the number of bytes the line occupies in memory.
func (op *Opcode) Size() int {
	return 2*len(op.Codes) + len(op.Data)
}

// Bytes returns the memory image of the line.
func (op *Opcode) Bytes() (data []byte) {
	for _, code := range op.Codes {
		data = append(data, byte(code.Word>>8), byte(code.Word))
	}
	data = append(data, op.Data...)
	return
}
