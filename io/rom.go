package io

import (
	"io"
	"io/fs"
)

const (
	ROM_SIZE_MAX = 0x1000 - 0x200 // Largest image that fits above the interpreter area.
)

// Rom is a raw program image.
type Rom struct {
	Data []byte
}

// ReadFrom reads an entire program image, rejecting empty or oversized
// images.
func (rc *Rom) ReadFrom(r io.Reader) (n int64, err error) {
	data, err := io.ReadAll(io.LimitReader(r, ROM_SIZE_MAX+1))
	n = int64(len(data))
	if err != nil {
		return
	}

	switch {
	case len(data) == 0:
		err = ErrRomEmpty
		return
	case len(data) > ROM_SIZE_MAX:
		err = ErrRomTooLarge
		return
	}

	rc.Data = data

	return
}

// ReadFile reads a program image from a file system.
func (rc *Rom) ReadFile(fsys fs.FS, name string) (err error) {
	inf, err := fsys.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	_, err = rc.ReadFrom(inf)

	return
}
