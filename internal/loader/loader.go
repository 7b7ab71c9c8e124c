// Package loader handles program image loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/machine"
)

// ErrEmptyProgram is returned for program images without any content.
var ErrEmptyProgram = errors.New("program image is empty")

// Load reads a program image from the file at the given path.
func Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	program, err := LoadReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading program %s: %w", path, err)
	}
	return program, nil
}

// LoadReader reads a program image from the reader. Images that do not fit
// into the memory above the program start address are rejected.
func LoadReader(r io.Reader) ([]byte, error) {
	// read one byte more than allowed to detect oversized images
	program, err := io.ReadAll(io.LimitReader(r, machine.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}

	switch {
	case len(program) == 0:
		return nil, ErrEmptyProgram
	case len(program) > machine.MaxProgramSize:
		return nil, fmt.Errorf("%w: more than %d bytes", machine.ErrProgramTooLarge, machine.MaxProgramSize)
	}
	return program, nil
}
