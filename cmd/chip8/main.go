// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/io"
)

func main() {
	var compile string
	var rom string
	var output string
	var disassemble bool
	var frames int
	var keypad bool
	var strict bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".c8s file to assemble")
	flag.StringVar(&rom, "r", "", ".ch8 ROM image to load")
	flag.StringVar(&output, "o", "", "Write program image, do not execute")
	flag.BoolVar(&disassemble, "d", false, "Print disassembly listing, do not execute")
	flag.IntVar(&frames, "n", 0, "Frames to run; 0 runs until halted")
	flag.BoolVar(&keypad, "k", false, "Use the terminal as keypad and display")
	flag.BoolVar(&strict, "strict", false, "Fail on invalid opcodes")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Cpu.Strict = strict

	prog := &cpu.Program{}

	// Assemble a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			if verbose {
				log.Printf(".equ %v %v", key, value)
			}
			asm.Predefine(key, value)
		}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	} else if len(rom) != 0 {
		err := emu.Rom.ReadFile(os.DirFS(filepath.Dir(rom)), filepath.Base(rom))
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
	}

	emu.Program = prog

	image := emu.Rom.Data
	origin := uint16(cpu.PROGRAM_BASE)
	if len(prog.Opcodes) != 0 {
		image = prog.Binary()
		origin = prog.Origin
	}

	if len(output) != 0 {
		err := os.WriteFile(output, image, 0o644)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}

	if disassemble {
		for addr, code := range cpu.Disassemble(image, origin) {
			text := fmt.Sprintf("%03x: %04x  %v", addr, code.Word, code)
			if dbg := prog.Debug(addr); dbg.Opcode != nil {
				text = fmt.Sprintf("%-32s ; line %d", text, dbg.LineNo)
			}
			fmt.Println(text)
		}
	}

	if len(output) != 0 || disassemble {
		return
	}

	err := run(emu, frames, keypad)
	if err != nil {
		log.Fatal(err)
	}
}

// run executes frames until the program halts, faults, or frames are
// exhausted. With keypad set, the terminal is the keypad and display, and
// its mode is restored before returning.
func run(emu *emulator.Emulator, frames int, keypad bool) (err error) {
	err = emu.Reset()
	if err != nil {
		return
	}

	var term *termKeypad
	var display *screen
	var pace <-chan time.Time
	if keypad {
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			err = errors.New("keypad: stdin is not a terminal")
			return
		}
		term, err = openKeypad(os.Stdin)
		if err != nil {
			err = fmt.Errorf("keypad: %w", err)
			return
		}
		defer term.Close()

		display = newScreen(os.Stdout)

		ticker := time.NewTicker(time.Second / io.CLOCK_RATE)
		defer ticker.Stop()
		pace = ticker.C
	}

	for frame := 0; frames == 0 || frame < frames; frame++ {
		if term != nil {
			if term.Poll(&emu.Keys) {
				break
			}
		}

		var done bool
		done, err = emu.Frame()
		if err != nil {
			log.Print(emu.Cpu.String())
			return
		}

		if display != nil && emu.Framebuffer.Dirty {
			err = display.Draw(&emu.Framebuffer, emu.Tone)
			if err != nil {
				return
			}
			emu.Framebuffer.Dirty = false
		}

		if done {
			break
		}

		if pace != nil {
			<-pace
		}
	}

	if display == nil {
		fmt.Print(emu.Framebuffer.String())
	}

	if emu.Verbose {
		log.Printf("%d instructions, %d frames\n%v", emu.Ticks(), emu.Clock.Ticks, emu.Cpu.String())
	}

	return
}
