// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/internal"
	"github.com/ezrec/chip8/io"
)

const (
	CYCLES_PER_FRAME = 10 // Default instructions executed per clock tick.
)

var _emulator_defines = map[string]string{
	"CYCLES_PER_FRAME": fmt.Sprintf("%v", CYCLES_PER_FRAME),
	"CLOCK_RATE":       fmt.Sprintf("%v", io.CLOCK_RATE),
}

// Emulator state. CPU + display + keypad + timers.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Framebuffer io.Framebuffer // Display surface.
	Keys        io.Keys        // Keypad state.
	Clock       io.Clock       // Delay and sound timer driver.
	Rom         io.Rom         // Image loaded on reset.

	CyclesPerFrame int  // Instructions per Frame.
	Tone           bool // Set while the sound timer is running.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:            cpu.NewCpu(),
		Program:        &cpu.Program{},
		CyclesPerFrame: CYCLES_PER_FRAME,
	}

	emu.Cpu.Display = &emu.Framebuffer
	emu.Cpu.Keypad = &emu.Keys

	return
}

// Defines returns an iterator over all of the defines, in name order.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Sorted(internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Framebuffer.Defines(),
		emu.Keys.Defines(),
	))
}

// Reset the machine, and load the program. An assembled Program replaces
// the Rom image; an empty Program runs the Rom as is.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	origin := uint16(cpu.PROGRAM_BASE)
	if len(emu.Program.Opcodes) != 0 {
		emu.Rom.Data = emu.Program.Binary()
		if emu.Program.Origin != 0 {
			origin = emu.Program.Origin
		}
	}

	if len(emu.Rom.Data) == 0 {
		err = io.ErrRomEmpty
		return
	}

	emu.Cpu.Reset()
	emu.Clock.Reset()
	emu.Tone = false

	err = emu.Cpu.Memory.Load(origin, emu.Rom.Data)
	if err != nil {
		return
	}

	emu.Cpu.Pc = origin

	if emu.Verbose {
		log.Printf("emulator: %d bytes at 0x%03x", len(emu.Rom.Data), origin)
	}

	return
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the instruction at the current PC.
func (emu *Emulator) Code() (code cpu.Code) {
	code, _ = emu.Cpu.FetchCode()
	return
}

// LineNo returns the current line number for the executing opcode, or
// zero when the PC is outside of the program listing.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction. A jump to itself ends the program.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	code, err := emu.Cpu.FetchCode()
	if err != nil {
		return
	}

	if code.Op == cpu.OP_JP && code.Addr() == pc {
		if emu.Verbose {
			log.Printf("emulator: 0x%03x: halted", pc)
		}
		done = true
		return
	}

	err = emu.Cpu.Tick()

	return
}

// Frame runs up to CyclesPerFrame instructions, then advances the timers
// by one clock tick. The frame ends early while waiting for a key.
func (emu *Emulator) Frame() (done bool, err error) {
	for range emu.CyclesPerFrame {
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
		if emu.Cpu.Waiting {
			break
		}
	}

	emu.Tone = emu.Clock.Tick(&emu.Cpu.Registers)

	return
}
