package machine

// Instruction is a decoded instruction word with all operand fields extracted.
type Instruction struct {
	Word uint16
	X    uint8  // register index from bits 8-11
	Y    uint8  // register index from bits 4-7
	N    uint8  // 4 bit constant from bits 0-3
	NN   uint8  // 8 bit constant from bits 0-7
	NNN  uint16 // 12 bit address from bits 0-11
}

// Family returns the top nibble of the instruction word.
func (i Instruction) Family() uint8 {
	return uint8(i.Word >> 12)
}

// Decode extracts the operand fields of an instruction word.
func Decode(word uint16) Instruction {
	return Instruction{
		Word: word,
		X:    uint8(word>>8) & 0xF,
		Y:    uint8(word>>4) & 0xF,
		N:    uint8(word) & 0xF,
		NN:   uint8(word),
		NNN:  word & 0xFFF,
	}
}

// fetch reads the instruction word at PC and advances PC past it.
func (m *Machine) fetch() (uint16, error) {
	pc := m.pc
	if !validPC(pc) {
		return 0, ErrOutOfBounds
	}
	m.pc += 2
	return uint16(m.memory[pc])<<8 | uint16(m.memory[pc+1]), nil
}
