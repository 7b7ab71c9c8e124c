package machine

import (
	"fmt"
)

// Memory layout constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000
	// MaxAddress is the address of the last memory byte. Instructions can
	// neither fetch from nor access data at it.
	MaxAddress = MemorySize - 1
	// ProgramStart is the address programs are loaded to and start executing at.
	ProgramStart = 0x200
	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart
	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16
	// KeyCount is the number of keys of the hexadecimal keypad.
	KeyCount = 16
)

const flagRegister = 0xF

// Result reports the observable side effects of a single step.
type Result struct {
	Dirty       bool // framebuffer changed and should be presented
	AwaitingKey bool // execution is blocked until a key is pressed
}

// Machine is the complete state of the virtual machine.
// It is not safe for concurrent use.
type Machine struct {
	config Config

	memory    [MemorySize]byte
	registers [RegisterCount]uint8
	index     uint16
	pc        uint16
	stack     []uint16

	framebuffer Framebuffer
	keys        [KeyCount]bool
	delayTimer  uint8
	soundTimer  uint8
}

// New returns a new machine with an empty program loaded.
func New(cfg Config) *Machine {
	cfg = cfg.normalized()
	m := &Machine{
		config: cfg,
		stack:  make([]uint16, 0, cfg.StackDepth),
	}
	m.clear()
	return m
}

// Reset clears the complete machine state and loads the given program.
// The machine is left unchanged if the program does not fit into memory.
func (m *Machine) Reset(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes exceed the maximum of %d bytes",
			ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	m.clear()
	copy(m.memory[ProgramStart:], program)
	return nil
}

func (m *Machine) clear() {
	m.memory = [MemorySize]byte{}
	copy(m.memory[FontAddress:], font[:])
	m.registers = [RegisterCount]uint8{}
	m.index = 0
	m.pc = ProgramStart
	m.stack = m.stack[:0]
	m.framebuffer = Framebuffer{}
	m.keys = [KeyCount]bool{}
	m.delayTimer = 0
	m.soundTimer = 0
}

// TickTimers decrements the delay and sound timers. Timers that are already
// zero stay at zero. The host calls it at a fixed rate of 60Hz.
func (m *Machine) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// SoundActive returns whether the tone should currently be played.
func (m *Machine) SoundActive() bool {
	return m.soundTimer > 0
}

// SetKey sets the pressed state of a single key.
func (m *Machine) SetKey(key int, pressed bool) error {
	if key < 0 || key >= KeyCount {
		return fmt.Errorf("%w: key %d", ErrOutOfBounds, key)
	}
	m.keys[key] = pressed
	return nil
}

// SetKeys replaces the pressed state of all keys.
func (m *Machine) SetKeys(keys [KeyCount]bool) {
	m.keys = keys
}

// Framebuffer returns a copy of the current display content.
func (m *Machine) Framebuffer() Framebuffer {
	return m.framebuffer
}

// Memory returns a copy of n bytes of memory starting at the given address.
func (m *Machine) Memory(address uint16, n int) ([]byte, error) {
	if n < 0 || int(address)+n > MemorySize {
		return nil, fmt.Errorf("%w: reading %d bytes at $%03X", ErrOutOfBounds, n, address)
	}
	b := make([]byte, n)
	copy(b, m.memory[address:])
	return b, nil
}

// PC returns the address of the next instruction.
func (m *Machine) PC() uint16 {
	return m.pc
}

// State is a read-only snapshot of the processor state.
type State struct {
	Registers  [RegisterCount]uint8
	Index      uint16
	PC         uint16
	Stack      []uint16
	Keys       [KeyCount]bool
	DelayTimer uint8
	SoundTimer uint8
}

// State returns a snapshot of the processor state.
func (m *Machine) State() State {
	stack := make([]uint16, len(m.stack))
	copy(stack, m.stack)
	return State{
		Registers:  m.registers,
		Index:      m.index,
		PC:         m.pc,
		Stack:      stack,
		Keys:       m.keys,
		DelayTimer: m.delayTimer,
		SoundTimer: m.soundTimer,
	}
}

// Step executes a single instruction.
// Errors are returned as *OpcodeError, use IsFatal to decide whether execution
// can continue. The program counter is already advanced past an invalid opcode.
func (m *Machine) Step() (Result, error) {
	address := m.pc
	word, err := m.fetch()
	if err != nil {
		return Result{}, &OpcodeError{Address: address, Err: err}
	}

	ins := Decode(word)
	execute := lookup(ins)
	if execute == nil {
		return Result{}, &OpcodeError{Address: address, Word: word, Err: ErrInvalidOpcode}
	}

	res, err := execute(m, ins)
	if err != nil {
		return res, &OpcodeError{Address: address, Word: word, Err: err}
	}
	return res, nil
}
