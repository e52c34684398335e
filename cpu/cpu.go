package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"math/rand/v2"

	"github.com/ezrec/chip8/io"
)

// Display is the pixel surface device.
type Display io.Display

// Keypad is the key input device.
type Keypad io.Keypad

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("%#x", MEMORY_SIZE),
	"STACK_LIMIT":    fmt.Sprintf("%v", STACK_LIMIT),
	"FONT_HEIGHT":    fmt.Sprintf("%v", FONT_HEIGHT),
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
}

// Cpu is the simulation context for the CHIP-8 virtual machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.
	Strict  bool // Set to fail on undecodable opcodes, instead of skipping them.

	Registers        // Register file.
	Memory    Memory // Addressable memory.
	Stack     Stack  // Return address stack.

	Display Display      // Surface for CLS and DRW.
	Keypad  Keypad       // Input for SKP, SKNP, and LD Vx, K.
	Random  func() uint8 // Source for RND.

	Waiting bool // Set while LD Vx, K is waiting for a key press.
	Ticks   int  // Instructions executed. Polls of a pending key wait are not counted.
}

// NewCpu creates a new CPU with a Framebuffer display, an idle keypad,
// and a uniform random source.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Display: &io.Framebuffer{},
		Keypad:  &io.Keys{},
		Random:  func() uint8 { return uint8(rand.UintN(256)) },
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %03X\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %03X\n", "i", cpu.I)
	for n, val := range cpu.V {
		text += fmt.Sprintf("% 5s: %02X\n", fmt.Sprintf("v%x", n), val)
	}
	text += fmt.Sprintf("% 5s: %02X\n", "dt", cpu.Delay)
	text += fmt.Sprintf("% 5s: %02X\n", "st", cpu.Sound)
	text += fmt.Sprintf("% 5s: %d\n", "sp", cpu.Stack.Sp)

	top, ok := cpu.Stack.Peek()
	if ok {
		text += fmt.Sprintf("% 5s: %03X\n", "stack", top)
	} else {
		text += fmt.Sprintf("% 5s: ---\n", "stack")
	}

	return
}

// Reset the CPU state.
// - Clears the registers and stack.
// - Zeros memory, and installs the font sprites.
// - Clears the display.
// - Resets the keypad, dropping any key wait in progress.
// - Sets PC to PROGRAM_BASE.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers.Reset()
	cpu.Stack.Reset()
	cpu.Memory.Reset()
	if cpu.Display != nil {
		cpu.Display.Clear()
	}
	if cpu.Keypad != nil {
		cpu.Keypad.Reset()
	}

	cpu.Pc = PROGRAM_BASE
	cpu.Waiting = false
	cpu.Ticks = 0
}

// Load a program image at PROGRAM_BASE.
func (cpu *Cpu) Load(program []byte) (err error) {
	err = cpu.Memory.Load(PROGRAM_BASE, program)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes at 0x%03x", len(program), PROGRAM_BASE)
	}

	return
}

// FetchCode fetches and decodes the instruction at PC.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	word, err := cpu.Memory.Fetch(cpu.Pc)
	if err != nil {
		return
	}

	code = NewCode(word)
	return
}

// Tick executes a single CPU instruction cycle: fetch, decode, advance
// PC past the instruction, then execute.
func (cpu *Cpu) Tick() (err error) {
	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	cpu.Pc += 2

	err = cpu.Execute(code)
	if err != nil {
		return
	}

	if !cpu.Waiting {
		cpu.Ticks++
	}

	return
}

// skipIf skips the next instruction if cond is true.
func (cpu *Cpu) skipIf(cond bool) {
	if cond {
		cpu.Pc += 2
	}
}

// Execute executes a single decoded instruction. PC must already point
// past the instruction.
func (cpu *Cpu) Execute(code Code) (err error) {
	here := cpu.Pc - 2

	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode{Pc: here, Code: code}, err)
		}
	}()

	if cpu.Verbose {
		log.Printf("cpu: %03x: %v", here, code)
	}

	x := code.X()
	y := code.Y()

	switch code.Op {
	case OP_CLS:
		if cpu.Display == nil {
			err = ErrDisplayMissing
			return
		}
		cpu.Display.Clear()
	case OP_RET:
		addr, ok := cpu.Stack.Pop()
		if !ok {
			err = ErrStackEmpty
			return
		}
		cpu.Pc = addr
	case OP_SYS:
		err = ErrOpcodeSys
		return
	case OP_JP:
		cpu.Pc = code.Addr()
	case OP_CALL:
		if !cpu.Stack.Push(cpu.Pc) {
			err = ErrStackFull
			return
		}
		cpu.Pc = code.Addr()
	case OP_SE_VX_BYTE:
		cpu.skipIf(cpu.Get(x) == code.Byte())
	case OP_SNE_VX_BYTE:
		cpu.skipIf(cpu.Get(x) != code.Byte())
	case OP_SE_VX_VY:
		cpu.skipIf(cpu.Get(x) == cpu.Get(y))
	case OP_SNE_VX_VY:
		cpu.skipIf(cpu.Get(x) != cpu.Get(y))
	case OP_LD_VX_BYTE:
		cpu.Set(x, code.Byte())
	case OP_ADD_VX_BYTE:
		// No carry flag.
		cpu.Set(x, cpu.Get(x)+code.Byte())
	case OP_LD_VX_VY:
		cpu.Set(x, cpu.Get(y))
	case OP_OR:
		cpu.Set(x, cpu.Get(x)|cpu.Get(y))
	case OP_AND:
		cpu.Set(x, cpu.Get(x)&cpu.Get(y))
	case OP_XOR:
		cpu.Set(x, cpu.Get(x)^cpu.Get(y))
	case OP_ADD_VX_VY:
		sum := uint16(cpu.Get(x)) + uint16(cpu.Get(y))
		cpu.Set(x, uint8(sum))
		cpu.SetFlag(sum > 0xff)
	case OP_SUB:
		vx, vy := cpu.Get(x), cpu.Get(y)
		cpu.Set(x, vx-vy)
		cpu.SetFlag(vx > vy)
	case OP_SUBN:
		vx, vy := cpu.Get(x), cpu.Get(y)
		cpu.Set(x, vy-vx)
		cpu.SetFlag(vy > vx)
	case OP_SHR:
		vx := cpu.Get(x)
		cpu.Set(x, vx>>1)
		cpu.SetFlag((vx & 0x01) != 0)
	case OP_SHL:
		vx := cpu.Get(x)
		cpu.Set(x, vx<<1)
		cpu.SetFlag((vx & 0x80) != 0)
	case OP_LD_I_ADDR:
		cpu.I = code.Addr()
	case OP_JP_V0_ADDR:
		cpu.Pc = code.Addr() + uint16(cpu.Get(0))
	case OP_RND:
		cpu.Set(x, cpu.Random()&code.Byte())
	case OP_DRW:
		if cpu.Display == nil {
			err = ErrDisplayMissing
			return
		}
		var sprite []byte
		sprite, err = cpu.Memory.Slice(cpu.I, int(code.N()))
		if err != nil {
			return
		}
		collision := cpu.Display.Blit(int(cpu.Get(x)), int(cpu.Get(y)), sprite)
		cpu.SetFlag(collision)
	case OP_SKP, OP_SKNP:
		if cpu.Keypad == nil {
			err = ErrKeypadMissing
			return
		}
		pressed := cpu.Keypad.Pressed(cpu.Get(x) & 0xf)
		cpu.skipIf(pressed == (code.Op == OP_SKP))
	case OP_LD_VX_DT:
		cpu.Set(x, cpu.Delay)
	case OP_LD_VX_K:
		if cpu.Keypad == nil {
			err = ErrKeypadMissing
			return
		}
		key, ok := cpu.Keypad.Await()
		if !ok {
			// Don't advance to next PC.
			cpu.Pc = here
			cpu.Waiting = true
			return
		}
		cpu.Waiting = false
		cpu.Set(x, key)
	case OP_LD_DT_VX:
		cpu.Delay = cpu.Get(x)
	case OP_LD_ST_VX:
		cpu.Sound = cpu.Get(x)
	case OP_ADD_I_VX:
		cpu.I = (cpu.I + uint16(cpu.Get(x))) & ADDRESS_MASK
	case OP_LD_F_VX:
		cpu.I = FONT_BASE + uint16(cpu.Get(x)&0xf)*FONT_HEIGHT
	case OP_LD_B_VX:
		vx := cpu.Get(x)
		digits := [3]uint8{vx / 100, (vx / 10) % 10, vx % 10}
		for n, digit := range digits {
			err = cpu.Memory.Write(cpu.I+uint16(n), digit)
			if err != nil {
				return
			}
		}
	case OP_LD_I_VX:
		for n := range x + 1 {
			err = cpu.Memory.Write(cpu.I+uint16(n), cpu.Get(n))
			if err != nil {
				return
			}
		}
	case OP_LD_VX_I:
		for n := range x + 1 {
			var value uint8
			value, err = cpu.Memory.Read(cpu.I + uint16(n))
			if err != nil {
				return
			}
			cpu.Set(n, value)
		}
	case OP_INVALID:
		if cpu.Strict {
			err = ErrOpcodeInvalid
			return
		}
		log.Printf("cpu: %03x: invalid opcode 0x%04x skipped", here, code.Word)
	default:
		err = ErrOpcodeInvalid
		return
	}

	return
}
