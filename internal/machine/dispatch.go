package machine

// handler executes a decoded instruction.
type handler func(m *Machine, ins Instruction) (Result, error)

// families maps the top nibble of an instruction word to its handler.
// Families 0, 8, E and F are resolved through their sub tables.
var families = [16]handler{
	0x1: opJump,
	0x2: opCall,
	0x3: opSkipEqualByte,
	0x4: opSkipNotEqualByte,
	0x5: opSkipEqualRegister,
	0x6: opLoadByte,
	0x7: opAddByte,
	0x9: opSkipNotEqualRegister,
	0xA: opLoadIndex,
	0xB: opJumpOffset,
	0xC: opRandom,
	0xD: opDraw,
}

// systemOps contains the 00NN instructions keyed by NN.
var systemOps = map[uint8]handler{
	0xE0: opClearScreen,
	0xEE: opReturn,
}

// arithmeticOps contains the 8XYN instructions keyed by N.
var arithmeticOps = [16]handler{
	0x0: opLoadRegister,
	0x1: opOr,
	0x2: opAnd,
	0x3: opXor,
	0x4: opAdd,
	0x5: opSub,
	0x6: opShiftRight,
	0x7: opSubReverse,
	0xE: opShiftLeft,
}

// keyOps contains the EXNN instructions keyed by NN.
var keyOps = map[uint8]handler{
	0x9E: opSkipKeyPressed,
	0xA1: opSkipKeyNotPressed,
}

// miscOps contains the FXNN instructions keyed by NN.
var miscOps = map[uint8]handler{
	0x07: opLoadDelay,
	0x0A: opWaitKey,
	0x15: opSetDelay,
	0x18: opSetSound,
	0x1E: opAddIndex,
	0x29: opLoadGlyph,
	0x33: opStoreBCD,
	0x55: opStoreRegisters,
	0x65: opLoadRegisters,
}

// lookup returns the handler for the instruction or nil if the word is not
// a known instruction.
func lookup(ins Instruction) handler {
	switch ins.Family() {
	case 0x0:
		if ins.X != 0 {
			return nil // 0NNN machine code routines are not supported
		}
		return systemOps[ins.NN]
	case 0x5, 0x9:
		if ins.N != 0 {
			return nil
		}
	case 0x8:
		return arithmeticOps[ins.N]
	case 0xE:
		return keyOps[ins.NN]
	case 0xF:
		return miscOps[ins.NN]
	}
	return families[ins.Family()]
}

// Known returns whether the instruction word is part of the supported instruction set.
func Known(word uint16) bool {
	return lookup(Decode(word)) != nil
}
