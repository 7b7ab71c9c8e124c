// Package disasm provides CHIP-8 instruction formatting and program listings.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// lookupOpcode returns the opcode table entry matching the instruction word.
func lookupOpcode(word uint16) (chip8.Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value {
			return op, op.Instruction != nil
		}
	}
	return chip8.Opcode{}, false
}

// Instruction returns the instruction definition of a word, nil if the word
// is not part of the supported instruction set.
func Instruction(word uint16) *chip8.Instruction {
	if !machine.Known(word) {
		return nil
	}
	op, ok := lookupOpcode(word)
	if !ok {
		return nil
	}
	return op.Instruction
}

// Format returns the assembly representation of an instruction word.
// An empty string is returned for words that are not valid instructions.
func Format(word uint16) string {
	ins := Instruction(word)
	if ins == nil {
		return ""
	}
	if params := formatParams(ins, machine.Decode(word)); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// formatParams formats the operands of an instruction.
func formatParams(ins *chip8.Instruction, dec machine.Instruction) string {
	switch ins {
	case chip8.Cls, chip8.Ret:
		return "" // No parameters
	case chip8.Jp:
		return formatJump(dec)
	case chip8.Call:
		return fmt.Sprintf("$%03X", dec.NNN)
	case chip8.Se, chip8.Sne:
		return formatCompare(dec)
	case chip8.Ld:
		return formatLoad(dec)
	case chip8.Add:
		return formatAdd(dec)
	case chip8.Or, chip8.And, chip8.Xor, chip8.Sub, chip8.Subn:
		return fmt.Sprintf("V%X, V%X", dec.X, dec.Y)
	case chip8.Shr, chip8.Shl, chip8.Skp, chip8.Sknp:
		return fmt.Sprintf("V%X", dec.X)
	case chip8.Rnd:
		return fmt.Sprintf("V%X, $%02X", dec.X, dec.NN)
	case chip8.Drw:
		return fmt.Sprintf("V%X, V%X, $%X", dec.X, dec.Y, dec.N)
	}
	return ""
}

// formatJump formats jump instructions (JP addr, JP V0, addr).
func formatJump(dec machine.Instruction) string {
	if dec.Family() == 0xB {
		return fmt.Sprintf("V0, $%03X", dec.NNN)
	}
	return fmt.Sprintf("$%03X", dec.NNN)
}

// formatCompare formats comparison instructions (SE, SNE).
func formatCompare(dec machine.Instruction) string {
	switch dec.Family() {
	case 0x3, 0x4:
		return fmt.Sprintf("V%X, $%02X", dec.X, dec.NN)
	default:
		return fmt.Sprintf("V%X, V%X", dec.X, dec.Y)
	}
}

// formatLoad formats the load instruction variants.
func formatLoad(dec machine.Instruction) string {
	switch dec.Family() {
	case 0x6:
		return fmt.Sprintf("V%X, $%02X", dec.X, dec.NN)
	case 0x8:
		return fmt.Sprintf("V%X, V%X", dec.X, dec.Y)
	case 0xA:
		return fmt.Sprintf("I, $%03X", dec.NNN)
	}

	switch dec.NN {
	case 0x07:
		return fmt.Sprintf("V%X, DT", dec.X)
	case 0x0A:
		return fmt.Sprintf("V%X, K", dec.X)
	case 0x15:
		return fmt.Sprintf("DT, V%X", dec.X)
	case 0x18:
		return fmt.Sprintf("ST, V%X", dec.X)
	case 0x29:
		return fmt.Sprintf("F, V%X", dec.X)
	case 0x33:
		return fmt.Sprintf("B, V%X", dec.X)
	case 0x55:
		return fmt.Sprintf("[I], V%X", dec.X)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", dec.X)
	}
	return ""
}

// formatAdd formats add instructions (ADD Vx, byte / Vx, Vy / I, Vx).
func formatAdd(dec machine.Instruction) string {
	switch dec.Family() {
	case 0x7:
		return fmt.Sprintf("V%X, $%02X", dec.X, dec.NN)
	case 0x8:
		return fmt.Sprintf("V%X, V%X", dec.X, dec.Y)
	default:
		return fmt.Sprintf("I, V%X", dec.X)
	}
}
