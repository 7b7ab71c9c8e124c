package machine

// checkRange returns ErrOutOfBounds if n bytes starting at I reach past the
// last data address $FFE.
func (m *Machine) checkRange(n int) error {
	if int(m.index)+n > MaxAddress {
		return ErrOutOfBounds
	}
	return nil
}

// opLoadIndex implements ANNN - LD I, addr.
func opLoadIndex(m *Machine, ins Instruction) (Result, error) {
	m.index = ins.NNN
	return Result{}, nil
}

// opLoadDelay implements FX07 - LD Vx, DT.
func opLoadDelay(m *Machine, ins Instruction) (Result, error) {
	m.registers[ins.X] = m.delayTimer
	return Result{}, nil
}

// opSetDelay implements FX15 - LD DT, Vx.
func opSetDelay(m *Machine, ins Instruction) (Result, error) {
	m.delayTimer = m.registers[ins.X]
	return Result{}, nil
}

// opSetSound implements FX18 - LD ST, Vx.
func opSetSound(m *Machine, ins Instruction) (Result, error) {
	m.soundTimer = m.registers[ins.X]
	return Result{}, nil
}

// opAddIndex implements FX1E - ADD I, Vx. VF is set if the sum leaves the
// address space, I keeps the low 12 bits of the sum.
func opAddIndex(m *Machine, ins Instruction) (Result, error) {
	sum := m.index + uint16(m.registers[ins.X])
	m.index = sum & MaxAddress
	m.setFlag(sum > MaxAddress)
	return Result{}, nil
}

// opLoadGlyph implements FX29 - LD F, Vx.
func opLoadGlyph(m *Machine, ins Instruction) (Result, error) {
	digit := m.registers[ins.X]
	if digit > 0xF {
		return Result{}, ErrOutOfBounds
	}
	m.index = GlyphAddress(digit)
	return Result{}, nil
}

// opStoreBCD implements FX33 - LD B, Vx.
func opStoreBCD(m *Machine, ins Instruction) (Result, error) {
	if err := m.checkRange(3); err != nil {
		return Result{}, err
	}
	value := m.registers[ins.X]
	m.memory[m.index] = value / 100
	m.memory[m.index+1] = value / 10 % 10
	m.memory[m.index+2] = value % 10
	return Result{}, nil
}

// opStoreRegisters implements FX55 - LD [I], Vx.
func opStoreRegisters(m *Machine, ins Instruction) (Result, error) {
	count := int(ins.X) + 1
	if err := m.checkRange(count); err != nil {
		return Result{}, err
	}
	copy(m.memory[m.index:], m.registers[:count])
	m.advanceIndex(count)
	return Result{}, nil
}

// opLoadRegisters implements FX65 - LD Vx, [I].
func opLoadRegisters(m *Machine, ins Instruction) (Result, error) {
	count := int(ins.X) + 1
	if err := m.checkRange(count); err != nil {
		return Result{}, err
	}
	copy(m.registers[:count], m.memory[m.index:])
	m.advanceIndex(count)
	return Result{}, nil
}

func (m *Machine) advanceIndex(count int) {
	if m.config.Quirks.IncrementIndex {
		m.index = (m.index + uint16(count)) & MaxAddress
	}
}
