package main

import (
	stdio "io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mgutz/ansi"

	"github.com/ezrec/chip8/io"
)

const (
	ANSI_HOME_CLEAR = "\033[H\033[2J"
)

// screen draws the framebuffer on an ANSI terminal, two columns per pixel.
type screen struct {
	out  stdio.Writer
	lit  string
	dark string
	tone string
}

func newScreen(out *os.File) *screen {
	return &screen{
		out:  colorable.NewColorable(out),
		lit:  ansi.Color("██", "green+h"),
		dark: "  ",
		tone: ansi.Color("♪", "yellow+b"),
	}
}

// Draw the framebuffer, and the tone indicator.
func (sc *screen) Draw(fb *io.Framebuffer, tone bool) (err error) {
	var text strings.Builder

	text.WriteString(ANSI_HOME_CLEAR)
	for _, row := range fb.Pixel {
		for _, on := range row {
			if on {
				text.WriteString(sc.lit)
			} else {
				text.WriteString(sc.dark)
			}
		}
		text.WriteString("\r\n")
	}
	if tone {
		text.WriteString(sc.tone)
	}
	text.WriteString("\r\n")

	_, err = stdio.WriteString(sc.out, text.String())
	return
}
