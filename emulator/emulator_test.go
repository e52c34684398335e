package emulator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/io"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.Equal(CYCLES_PER_FRAME, emu.CyclesPerFrame)
	assert.Equal(&emu.Framebuffer, emu.Cpu.Display)
	assert.Equal(&emu.Keys, emu.Cpu.Keypad)

	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}
	assert.Equal("10", defines["CYCLES_PER_FRAME"])
	assert.Equal("60", defines["CLOCK_RATE"])
	assert.Equal("0x1000", defines["MEMORY_SIZE"])
	assert.Equal("64", defines["SCREEN_WIDTH"])
	assert.Equal("16", defines["KEY_COUNT"])

	// Nothing to run.
	assert.ErrorIs(emu.Reset(), io.ErrRomEmpty)
}

func load(t *testing.T, emu *Emulator, program ...string) {
	asm := &cpu.Assembler{}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	emu.Program = prog

	err = emu.Reset()
	if err != nil {
		t.Fatal(err)
	}
}

func run(t *testing.T, emu *Emulator, limit int) {
	for range limit {
		done, err := emu.Tick()
		if err != nil {
			t.Log(emu.Cpu.String())
			t.Fatal(err)
		}
		if done {
			return
		}
	}

	t.Fatalf("not done after %d ticks", limit)
}

func TestEmulatorSingle(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	program := []string{
		"LD V0, 0x5",
		"LD V1, $(SCREEN_WIDTH - 4)",
		"LD V2, 0",
		"LD F, V0",
		"DRW V1, V2, 5",
		"halt: JP halt",
	}
	load(t, emu, program...)

	for _, op := range emu.Program.Opcodes {
		assert.Equal(op.LineNo, emu.LineNo())
		assert.Equal(op.Codes[0], emu.Code())
		done, err := emu.Tick()
		assert.NoError(err)
		if op.LineNo == len(program) {
			assert.True(done)
		} else {
			assert.False(done, program[op.LineNo-1])
		}
	}

	// Halted programs stay halted.
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(uint16(0x20a), emu.Pc)
	assert.Equal(5, emu.Ticks())

	// The '5' glyph, against the right edge.
	assert.Equal(14, emu.Framebuffer.Lit())
	assert.True(emu.Framebuffer.Pixel[0][60])
	assert.True(emu.Framebuffer.Pixel[3][63])
	assert.Equal(uint8(0), emu.V[cpu.REGISTER_FLAG])
}

func TestEmulatorSubroutine(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	load(t, emu,
		"LD V0, 0",
		"LD V1, 10",
		"loop: CALL add",
		"ADD V1, -1",
		"SE V1, 0",
		"JP loop",
		"halt: JP halt",
		"add: ADD V0, V1",
		"RET",
	)

	run(t, emu, 100)
	assert.Equal(uint8(55), emu.V[0])
	assert.Equal(uint8(0), emu.V[1])
	assert.True(emu.Stack.Empty())
}

func TestEmulatorMemory(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	load(t, emu,
		"LD V0, 234",
		"LD I, buffer",
		"LD B, V0",
		"LD V2, [I]",
		"halt: JP halt",
		"buffer: .byte 0 0 0",
	)

	run(t, emu, 10)
	assert.Equal([]uint8{2, 3, 4}, emu.V[:3])
	assert.Equal([]byte{2, 3, 4}, emu.Memory[0x20a:0x20d])
}

func TestEmulatorFrame(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	load(t, emu,
		"LD V0, 3",
		"LD DT, V0",
		"loop: LD V1, DT",
		"SE V1, 0",
		"JP loop",
		"halt: JP halt",
	)

	frames := 0
	for done := false; !done; frames++ {
		var err error
		done, err = emu.Frame()
		assert.NoError(err)
		if frames > 10 {
			t.Fatal("delay timer never expired")
		}
	}

	assert.Equal(4, frames)
	assert.Equal(3, emu.Clock.Ticks)
	assert.Equal(uint8(0), emu.Delay)
}

func TestEmulatorKeyWait(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	load(t, emu,
		"LD V0, 2",
		"LD ST, V0",
		"LD V1, K",
		"halt: JP halt",
	)

	done, err := emu.Frame()
	assert.NoError(err)
	assert.False(done)
	assert.True(emu.Waiting)
	assert.True(emu.Tone)
	assert.Equal(3, emu.LineNo())

	done, err = emu.Frame()
	assert.NoError(err)
	assert.False(done)
	assert.True(emu.Waiting)
	assert.False(emu.Tone)

	assert.NoError(emu.Keys.Press(0x4))

	done, err = emu.Frame()
	assert.NoError(err)
	assert.True(done)
	assert.False(emu.Waiting)
	assert.Equal(uint8(0x4), emu.V[1])
}

func TestEmulatorRom(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Rom.Data = []byte{0x60, 0x07, 0x12, 0x02}
	assert.NoError(emu.Reset())
	assert.Equal(0, emu.LineNo())

	run(t, emu, 10)
	assert.Equal(uint8(7), emu.V[0])
}

func TestEmulatorErrRuntime(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		strict  bool
		program []string
		pc      uint16
		line    int
		err     error
	}){
		{false, []string{"CLS", "RET"}, 0x202, 2, cpu.ErrStackEmpty},
		{false, []string{"LD I, 0xfff", "LD B, V0"}, 0x202, 2, cpu.ErrAddress(0)},
		{false, []string{"SYS 0x123"}, 0x200, 1, cpu.ErrOpcodeSys},
		{true, []string{"CLS", ".word 0x5af1"}, 0x202, 2, cpu.ErrOpcodeInvalid},
		{false, []string{"loop: CALL loop"}, 0x200, 1, cpu.ErrStackFull},
	}

	for _, entry := range table {
		emu := NewEmulator()
		emu.Cpu.Strict = entry.strict
		load(t, emu, entry.program...)

		var err error
		for range 100 {
			_, err = emu.Tick()
			if err != nil {
				break
			}
		}

		var runtime *ErrRuntime
		assert.True(errors.As(err, &runtime), entry.program)
		if runtime != nil {
			assert.Equal(entry.pc, runtime.Pc, entry.program)
			assert.Equal(entry.line, runtime.LineNo, entry.program)
		}
		assert.ErrorIs(err, entry.err, entry.program)
		assert.ErrorIs(err, cpu.ErrOpcode{}, entry.program)
	}
}
