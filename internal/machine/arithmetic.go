package machine

// setFlag stores the status flag in VF. It is always written after the
// result register so that VF as destination ends up holding the flag.
func (m *Machine) setFlag(set bool) {
	if set {
		m.registers[flagRegister] = 1
	} else {
		m.registers[flagRegister] = 0
	}
}

// opLoadByte implements 6XNN - LD Vx, byte.
func opLoadByte(m *Machine, ins Instruction) (Result, error) {
	m.registers[ins.X] = ins.NN
	return Result{}, nil
}

// opAddByte implements 7XNN - ADD Vx, byte. The result wraps and VF is not affected.
func opAddByte(m *Machine, ins Instruction) (Result, error) {
	m.registers[ins.X] += ins.NN
	return Result{}, nil
}

// opLoadRegister implements 8XY0 - LD Vx, Vy.
func opLoadRegister(m *Machine, ins Instruction) (Result, error) {
	m.registers[ins.X] = m.registers[ins.Y]
	return Result{}, nil
}

// opOr implements 8XY1 - OR Vx, Vy.
func opOr(m *Machine, ins Instruction) (Result, error) {
	m.registers[ins.X] |= m.registers[ins.Y]
	return Result{}, nil
}

// opAnd implements 8XY2 - AND Vx, Vy.
func opAnd(m *Machine, ins Instruction) (Result, error) {
	m.registers[ins.X] &= m.registers[ins.Y]
	return Result{}, nil
}

// opXor implements 8XY3 - XOR Vx, Vy.
func opXor(m *Machine, ins Instruction) (Result, error) {
	m.registers[ins.X] ^= m.registers[ins.Y]
	return Result{}, nil
}

// opAdd implements 8XY4 - ADD Vx, Vy.
// VF signals the carry, with inverted polarity when reference flags are selected.
func opAdd(m *Machine, ins Instruction) (Result, error) {
	sum := uint16(m.registers[ins.X]) + uint16(m.registers[ins.Y])
	m.registers[ins.X] = uint8(sum)
	carry := sum > 0xFF
	m.setFlag(carry != m.config.Quirks.ReferenceFlags)
	return Result{}, nil
}

// opSub implements 8XY5 - SUB Vx, Vy. VF is 1 if no borrow occurred.
func opSub(m *Machine, ins Instruction) (Result, error) {
	vx, vy := m.registers[ins.X], m.registers[ins.Y]
	m.registers[ins.X] = vx - vy
	m.setFlag(vx >= vy)
	return Result{}, nil
}

// opSubReverse implements 8XY7 - SUBN Vx, Vy. VF is 1 if no borrow occurred.
func opSubReverse(m *Machine, ins Instruction) (Result, error) {
	vx, vy := m.registers[ins.X], m.registers[ins.Y]
	m.registers[ins.X] = vy - vx
	m.setFlag(vy >= vx)
	return Result{}, nil
}

// shiftSource returns the value to shift for the shift instructions.
func (m *Machine) shiftSource(ins Instruction) uint8 {
	if m.config.Quirks.ShiftUsesVY {
		return m.registers[ins.Y]
	}
	return m.registers[ins.X]
}

// opShiftRight implements 8XY6 - SHR Vx. VF receives the shifted out bit.
func opShiftRight(m *Machine, ins Instruction) (Result, error) {
	value := m.shiftSource(ins)
	m.registers[ins.X] = value >> 1
	m.setFlag(value&0x01 != 0)
	return Result{}, nil
}

// opShiftLeft implements 8XYE - SHL Vx. VF receives the shifted out bit.
func opShiftLeft(m *Machine, ins Instruction) (Result, error) {
	value := m.shiftSource(ins)
	m.registers[ins.X] = value << 1
	m.setFlag(value&0x80 != 0)
	return Result{}, nil
}

// opRandom implements CXNN - RND Vx, byte.
func opRandom(m *Machine, ins Instruction) (Result, error) {
	m.registers[ins.X] = uint8(m.config.Random.Uint32()) & ins.NN
	return Result{}, nil
}
