package main

import (
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/ezrec/chip8/io"
)

const (
	KEY_HOLD_FRAMES = 6    // Frames a key stays down after a stroke.
	KEY_QUIT        = 0x1b // ESC
)

// keyMap maps the left hand of a QWERTY keyboard to the hex keypad.
var keyMap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xc,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xd,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xe,
	'z': 0xa, 'x': 0x0, 'c': 0xb, 'v': 0xf,
}

// termKeypad feeds terminal key strokes into the keypad. Terminals do not
// report key releases, so each stroke holds its key down for a few frames.
type termKeypad struct {
	input *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios

	strokes chan byte
	held    [io.KEY_COUNT]int // Frames left before release.
}

// openKeypad puts the terminal in cbreak mode, and starts reading strokes.
func openKeypad(input *os.File) (tk *termKeypad, err error) {
	tk = &termKeypad{
		input:   input,
		strokes: make(chan byte, io.KEY_COUNT),
	}

	err = termios.Tcgetattr(input.Fd(), &tk.canAttr)
	if err != nil {
		return
	}

	tk.cbreakAttr = tk.canAttr
	termios.Cfmakecbreak(&tk.cbreakAttr)

	err = termios.Tcsetattr(input.Fd(), termios.TCIFLUSH, &tk.cbreakAttr)
	if err != nil {
		return
	}

	go tk.read()

	return
}

func (tk *termKeypad) read() {
	buf := make([]byte, 1)
	for {
		n, err := tk.input.Read(buf)
		if err != nil {
			close(tk.strokes)
			return
		}
		if n == 1 {
			tk.strokes <- buf[0]
		}
	}
}

// Poll releases expired keys and presses the keys of pending strokes. A
// stroke of a key that is still held releases and presses it again. It
// returns true when the user asked to quit.
func (tk *termKeypad) Poll(keys *io.Keys) (quit bool) {
	for n := range tk.held {
		if tk.held[n] == 0 {
			continue
		}
		tk.held[n]--
		if tk.held[n] == 0 {
			keys.Release(uint8(n))
		}
	}

	for {
		select {
		case stroke, ok := <-tk.strokes:
			if !ok || stroke == KEY_QUIT {
				quit = true
				return
			}
			// Upper case letters.
			key, ok := keyMap[stroke|0x20]
			if !ok {
				continue
			}
			if tk.held[key] != 0 {
				keys.Release(key)
			}
			keys.Press(key)
			tk.held[key] = KEY_HOLD_FRAMES
		default:
			return
		}
	}
}

// Close restores the terminal mode.
func (tk *termKeypad) Close() error {
	return termios.Tcsetattr(tk.input.Fd(), termios.TCIFLUSH, &tk.canAttr)
}
