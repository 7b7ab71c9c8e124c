package machine

// skip advances the program counter past the next instruction if cond is set.
func (m *Machine) skip(cond bool) {
	if cond {
		m.pc += 2
	}
}

// validPC reports whether an instruction can be fetched from address. It has
// to be even and inside the program area with room for a complete word.
func validPC(address uint16) bool {
	return address&1 == 0 && address >= ProgramStart && address < MaxAddress
}

// jump redirects the program counter to target.
func (m *Machine) jump(target uint16) error {
	if !validPC(target) {
		return ErrOutOfBounds
	}
	m.pc = target
	return nil
}

// opClearScreen implements 00E0 - CLS.
func opClearScreen(m *Machine, _ Instruction) (Result, error) {
	m.framebuffer = Framebuffer{}
	return Result{Dirty: true}, nil
}

// opReturn implements 00EE - RET.
func opReturn(m *Machine, _ Instruction) (Result, error) {
	if len(m.stack) == 0 {
		return Result{}, ErrStackUnderflow
	}
	last := len(m.stack) - 1
	if err := m.jump(m.stack[last]); err != nil {
		return Result{}, err
	}
	m.stack = m.stack[:last]
	return Result{}, nil
}

// opJump implements 1NNN - JP addr.
func opJump(m *Machine, ins Instruction) (Result, error) {
	return Result{}, m.jump(ins.NNN)
}

// opCall implements 2NNN - CALL addr.
func opCall(m *Machine, ins Instruction) (Result, error) {
	if len(m.stack) >= m.config.StackDepth {
		return Result{}, ErrStackOverflow
	}
	returnAddress := m.pc
	if err := m.jump(ins.NNN); err != nil {
		return Result{}, err
	}
	m.stack = append(m.stack, returnAddress)
	return Result{}, nil
}

// opSkipEqualByte implements 3XNN - SE Vx, byte.
func opSkipEqualByte(m *Machine, ins Instruction) (Result, error) {
	m.skip(m.registers[ins.X] == ins.NN)
	return Result{}, nil
}

// opSkipNotEqualByte implements 4XNN - SNE Vx, byte.
func opSkipNotEqualByte(m *Machine, ins Instruction) (Result, error) {
	m.skip(m.registers[ins.X] != ins.NN)
	return Result{}, nil
}

// opSkipEqualRegister implements 5XY0 - SE Vx, Vy.
func opSkipEqualRegister(m *Machine, ins Instruction) (Result, error) {
	m.skip(m.registers[ins.X] == m.registers[ins.Y])
	return Result{}, nil
}

// opSkipNotEqualRegister implements 9XY0 - SNE Vx, Vy.
func opSkipNotEqualRegister(m *Machine, ins Instruction) (Result, error) {
	m.skip(m.registers[ins.X] != m.registers[ins.Y])
	return Result{}, nil
}

// opJumpOffset implements BNNN - JP V0, addr.
func opJumpOffset(m *Machine, ins Instruction) (Result, error) {
	return Result{}, m.jump(ins.NNN + uint16(m.registers[0]))
}

// opSkipKeyPressed implements EX9E - SKP Vx.
func opSkipKeyPressed(m *Machine, ins Instruction) (Result, error) {
	key := m.registers[ins.X]
	if key >= KeyCount {
		return Result{}, ErrOutOfBounds
	}
	m.skip(m.keys[key])
	return Result{}, nil
}

// opSkipKeyNotPressed implements EXA1 - SKNP Vx.
func opSkipKeyNotPressed(m *Machine, ins Instruction) (Result, error) {
	key := m.registers[ins.X]
	if key >= KeyCount {
		return Result{}, ErrOutOfBounds
	}
	m.skip(!m.keys[key])
	return Result{}, nil
}

// opWaitKey implements FX0A - LD Vx, K. Without a pressed key the program
// counter is rewound so that the instruction executes again on the next step.
func opWaitKey(m *Machine, ins Instruction) (Result, error) {
	for key, pressed := range m.keys {
		if pressed {
			m.registers[ins.X] = uint8(key)
			return Result{}, nil
		}
	}
	m.pc -= 2
	return Result{AwaitingKey: true}, nil
}
