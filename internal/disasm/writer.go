package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/machine"
)

// dataBytesPerLine is the maximum number of bytes written in a single .byte line.
const dataBytesPerLine = 8

// Options controls the listing output.
type Options struct {
	HexComments bool // output opcode bytes as hex values in comments
	ZeroBytes   bool // output the trailing zero bytes of the program
}

// Write writes the listing as assembly source.
func (l *Listing) Write(w io.Writer, opts Options) error {
	if _, err := fmt.Fprintf(w, "; CHIP-8 ROM Disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, "; Program starts at $%03X in CHIP-8 memory space\n\n", machine.ProgramStart); err != nil {
		return fmt.Errorf("writing memory space comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, ".org $%03X\n\n", machine.ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	endIndex := l.endIndex(opts.ZeroBytes)
	var pending []byte // data bytes not written yet

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		err := writeData(w, pending)
		pending = pending[:0]
		return err
	}

	for i := range endIndex {
		offset := l.Offsets[i]
		address := uint16(machine.ProgramStart + i)

		if offset.Label != "" {
			if err := flush(); err != nil {
				return err
			}
			if err := writeLabel(w, offset, address); err != nil {
				return err
			}
		}

		switch {
		case offset.Type == CodeOffset && len(offset.Data) > 0:
			if err := flush(); err != nil {
				return err
			}
			if err := writeCode(w, offset, address, opts); err != nil {
				return err
			}

		case offset.Type == DataOffset:
			pending = append(pending, offset.Data...)
			if len(pending) == dataBytesPerLine {
				if err := flush(); err != nil {
					return err
				}
			}
		}
	}

	return flush()
}

// writeLabel writes a label. Labels inside of an instruction are written as
// address assignment as the instruction bytes can not be split.
func writeLabel(w io.Writer, offset Offset, address uint16) error {
	var err error
	if offset.Type == CodeOffset && len(offset.Data) == 0 {
		_, err = fmt.Fprintf(w, "%s = $%03X\n", offset.Label, address)
	} else {
		_, err = fmt.Fprintf(w, "%s:\n", offset.Label)
	}
	if err != nil {
		return fmt.Errorf("writing label %s: %w", offset.Label, err)
	}
	return nil
}

// writeCode writes a CHIP-8 instruction.
func writeCode(w io.Writer, offset Offset, address uint16, opts Options) error {
	line := "    " + offset.Code

	comment := offset.Comment
	if opts.HexComments {
		hex := fmt.Sprintf("$%03X %02X %02X", address, offset.Data[0], offset.Data[1])
		if comment == "" {
			comment = hex
		} else {
			comment = hex + " " + comment
		}
	}

	var err error
	if comment == "" {
		_, err = fmt.Fprintf(w, "%s\n", line)
	} else {
		_, err = fmt.Fprintf(w, "%-32s ; %s\n", line, comment)
	}
	if err != nil {
		return fmt.Errorf("writing code: %w", err)
	}
	return nil
}

// writeData writes raw data bytes.
func writeData(w io.Writer, data []byte) error {
	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("    .byte $%02X", data[0]))

	for _, b := range data[1:] {
		buf.WriteString(fmt.Sprintf(", $%02X", b))
	}

	if _, err := fmt.Fprintf(w, "%s\n", buf.String()); err != nil {
		return fmt.Errorf("writing data: %w", err)
	}
	return nil
}

// endIndex finds the index after the last meaningful byte of the program.
func (l *Listing) endIndex(zeroBytes bool) int {
	if zeroBytes {
		return len(l.Offsets)
	}

	for i := len(l.Offsets) - 1; i >= 0; i-- {
		offset := l.Offsets[i]
		if offset.Label != "" || offset.Type == CodeOffset {
			return i + 1
		}
		if len(offset.Data) > 0 && offset.Data[0] != 0 {
			return i + 1
		}
	}

	return 0
}
