package disasm

import (
	"fmt"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/set"
)

const (
	entryLabel  = "Start"
	funcNaming  = "_func_%03x"
	labelNaming = "_label_%03x"
	dataNaming  = "_data_%03x"
)

// OffsetType defines what a program offset was identified as.
type OffsetType uint8

// Offset types.
const (
	UnknownOffset OffsetType = iota
	CodeOffset
	DataOffset
)

// Offset contains the disassembly information of a single program byte.
type Offset struct {
	Type    OffsetType
	Data    []byte // opcode bytes for the first byte of an instruction, the data byte otherwise
	Label   string
	Code    string
	Comment string

	target    uint16 // referenced address of jump, call and index load instructions
	hasTarget bool
}

// Listing is the result of tracing a program.
type Listing struct {
	Offsets []Offset // indexed by address - machine.ProgramStart

	branchDestinations set.Set[uint16]
	callDestinations   set.Set[uint16]
	dataReferences     set.Set[uint16]
}

// Trace follows all reachable code paths of the program starting at the program
// start address. Bytes that are not reached are treated as data.
func Trace(program []byte) *Listing {
	l := &Listing{
		Offsets:            make([]Offset, len(program)),
		branchDestinations: set.New[uint16](),
		callDestinations:   set.New[uint16](),
		dataReferences:     set.New[uint16](),
	}

	parsed := set.New[uint16]()
	toParse := []uint16{machine.ProgramStart}

	for len(toParse) > 0 {
		address := toParse[0]
		toParse = toParse[1:]
		if parsed.Contains(address) || !l.contains(address, opcodeSize) {
			continue
		}
		parsed.Add(address)

		next := l.processOffset(program, address)
		for _, target := range next {
			if !parsed.Contains(target) {
				toParse = append(toParse, target)
			}
		}
	}

	l.markData(program)
	l.assignLabels()
	l.resolveReferences()
	return l
}

// contains returns whether n bytes starting at address are part of the program.
func (l *Listing) contains(address uint16, n int) bool {
	return address >= machine.ProgramStart &&
		int(address)-machine.ProgramStart+n <= len(l.Offsets)
}

func (l *Listing) offset(address uint16) *Offset {
	return &l.Offsets[address-machine.ProgramStart]
}

// processOffset disassembles the instruction at the address and returns the
// addresses that execution can continue at.
func (l *Listing) processOffset(program []byte, address uint16) []uint16 {
	index := address - machine.ProgramStart
	info := l.offset(address)
	second := l.offset(address + 1)
	if second.Type == CodeOffset || info.Type == CodeOffset {
		return nil // overlapping instruction, keep the first interpretation
	}

	word := uint16(program[index])<<8 | uint16(program[index+1])
	code := Format(word)
	if code == "" {
		// Consider an unknown instruction as start of data
		return nil
	}

	info.Type = CodeOffset
	info.Data = program[index : index+opcodeSize]
	info.Code = code
	second.Type = CodeOffset

	dec := machine.Decode(word)
	switch dec.Family() {
	case 0x1, 0x2, 0xA, 0xB:
		info.target = dec.NNN
		info.hasTarget = true
	}

	return l.handleControlFlow(address, dec)
}

// handleControlFlow records branch destinations and returns the follow up addresses.
func (l *Listing) handleControlFlow(address uint16, dec machine.Instruction) []uint16 {
	nextAddr := address + opcodeSize
	ins := Instruction(dec.Word)

	switch {
	case ins == chip8.Ret:
		return nil

	case ins == chip8.Jp && dec.Family() == 0x1:
		l.branchDestinations.Add(dec.NNN)
		return []uint16{dec.NNN}

	case ins == chip8.Jp:
		// JP V0, addr target depends on runtime state
		l.branchDestinations.Add(dec.NNN)
		return nil

	case ins == chip8.Call:
		l.branchDestinations.Add(dec.NNN)
		l.callDestinations.Add(dec.NNN)
		return []uint16{dec.NNN, nextAddr}

	case chip8.SkipInstructions.Contains(ins.Name):
		return []uint16{nextAddr, nextAddr + opcodeSize}

	case ins == chip8.Ld && dec.Family() == 0xA:
		if l.contains(dec.NNN, 1) {
			l.dataReferences.Add(dec.NNN)
		}
	}

	return []uint16{nextAddr}
}

// markData sets all bytes that were not identified as code to data.
func (l *Listing) markData(program []byte) {
	for i := range l.Offsets {
		info := &l.Offsets[i]
		if info.Type == CodeOffset {
			continue
		}
		info.Type = DataOffset
		info.Data = program[i : i+1]
	}
}

// assignLabels names all branch destinations and data references.
func (l *Listing) assignLabels() {
	if len(l.Offsets) == 0 {
		return
	}
	info := l.offset(machine.ProgramStart)
	info.Label = entryLabel

	for _, address := range sortedAddresses(l.branchDestinations) {
		if !l.contains(address, 1) {
			continue
		}
		info := l.offset(address)
		if info.Label != "" {
			continue
		}
		if l.callDestinations.Contains(address) {
			info.Label = fmt.Sprintf(funcNaming, address)
		} else {
			info.Label = fmt.Sprintf(labelNaming, address)
		}
	}

	for _, address := range sortedAddresses(l.dataReferences) {
		info := l.offset(address)
		if info.Label == "" {
			info.Label = fmt.Sprintf(dataNaming, address)
		}
	}
}

// resolveReferences replaces the target addresses of instructions by the
// label of the target if it has one.
func (l *Listing) resolveReferences() {
	for i := range l.Offsets {
		info := &l.Offsets[i]
		if !info.hasTarget {
			continue
		}
		label := l.Label(info.target)
		if label == "" {
			continue
		}
		info.Code = strings.Replace(info.Code, fmt.Sprintf("$%03X", info.target), label, 1)
		info.Comment = fmt.Sprintf("$%03X", info.target)
	}
}

// Label returns the label of an address or an empty string.
func (l *Listing) Label(address uint16) string {
	if !l.contains(address, 1) {
		return ""
	}
	return l.offset(address).Label
}

func sortedAddresses(s set.Set[uint16]) []uint16 {
	addresses := make([]uint16, 0, len(s))
	for address := range s {
		addresses = append(addresses, address)
	}
	slices.Sort(addresses)
	return addresses
}
