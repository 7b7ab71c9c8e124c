package machine

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// program converts instruction words to the big endian byte layout of a program image.
func program(words ...uint16) []byte {
	b := make([]byte, 0, len(words)*2)
	for _, w := range words {
		b = append(b, byte(w>>8), byte(w))
	}
	return b
}

func newTestMachine(t *testing.T, cfg Config, words ...uint16) *Machine {
	t.Helper()
	if cfg.Random == nil {
		cfg.Random = NewRandom(1)
	}
	m := New(cfg)
	assert.NoError(t, m.Reset(program(words...)))
	return m
}

func stepN(t *testing.T, m *Machine, n int) {
	t.Helper()
	for range n {
		_, err := m.Step()
		assert.NoError(t, err)
	}
}

func TestNew(t *testing.T) {
	m := New(Config{})

	assert.Equal(t, DefaultStackDepth, m.config.StackDepth)
	assert.NotNil(t, m.config.Random)
	st := m.State()
	assert.Equal(t, uint16(ProgramStart), st.PC)
	assert.Equal(t, uint16(0), st.Index)

	glyphs, err := m.Memory(FontAddress, len(font))
	assert.NoError(t, err)
	assert.Equal(t, font[:], glyphs)
}

func TestReset(t *testing.T) {
	m := newTestMachine(t, DefaultConfig(), 0x6A05, 0xA300, 0xF015, 0xF118)
	stepN(t, m, 4)
	assert.NoError(t, m.SetKey(3, true))

	assert.NoError(t, m.Reset(program(0x00E0)))

	st := m.State()
	assert.Equal(t, [RegisterCount]uint8{}, st.Registers)
	assert.Equal(t, uint16(0), st.Index)
	assert.Equal(t, uint16(ProgramStart), st.PC)
	assert.Equal(t, [KeyCount]bool{}, st.Keys)
	assert.Equal(t, uint8(0), st.DelayTimer)
	assert.Equal(t, uint8(0), st.SoundTimer)
	assert.Empty(t, st.Stack)

	// bytes of the previous, longer program must not survive
	mem, err := m.Memory(ProgramStart, 8)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xE0, 0, 0, 0, 0, 0, 0}, mem)
}

func TestResetProgramTooLarge(t *testing.T) {
	m := newTestMachine(t, DefaultConfig(), 0x6042)
	stepN(t, m, 1)

	err := m.Reset(make([]byte, MaxProgramSize+1))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrProgramTooLarge))

	// a failed load leaves the machine untouched
	st := m.State()
	assert.Equal(t, uint8(0x42), st.Registers[0])
	assert.Equal(t, uint16(ProgramStart+2), st.PC)

	assert.NoError(t, m.Reset(make([]byte, MaxProgramSize)))
}

func TestPC(t *testing.T) {
	m := newTestMachine(t, DefaultConfig(), 0x2206, 0x0000, 0x0000, 0x1208)
	assert.Equal(t, uint16(ProgramStart), m.PC())

	stepN(t, m, 1)
	assert.Equal(t, uint16(0x206), m.PC())
	assert.Equal(t, m.State().PC, m.PC())

	stepN(t, m, 1)
	assert.Equal(t, uint16(0x208), m.PC())
}

func TestSetThenJumpToSelf(t *testing.T) {
	m := newTestMachine(t, DefaultConfig(), 0x6042, 0x1202)

	stepN(t, m, 2)
	st := m.State()
	assert.Equal(t, uint8(0x42), st.Registers[0])
	assert.Equal(t, uint16(0x202), st.PC)

	stepN(t, m, 1)
	assert.Equal(t, uint16(0x202), m.State().PC)
}

func TestTickTimers(t *testing.T) {
	m := newTestMachine(t, DefaultConfig(), 0x6002, 0xF015, 0x6001, 0xF018)
	stepN(t, m, 4)
	assert.True(t, m.SoundActive())

	m.TickTimers()
	st := m.State()
	assert.Equal(t, uint8(1), st.DelayTimer)
	assert.Equal(t, uint8(0), st.SoundTimer)
	assert.False(t, m.SoundActive())

	for range 3 {
		m.TickTimers()
	}
	st = m.State()
	assert.Equal(t, uint8(0), st.DelayTimer)
	assert.Equal(t, uint8(0), st.SoundTimer)
}

func TestSetKey(t *testing.T) {
	m := New(DefaultConfig())

	assert.NoError(t, m.SetKey(0xF, true))
	assert.True(t, m.State().Keys[0xF])

	err := m.SetKey(KeyCount, true)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	err = m.SetKey(-1, true)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	var keys [KeyCount]bool
	keys[2] = true
	m.SetKeys(keys)
	assert.Equal(t, keys, m.State().Keys)
}

func TestFramebufferSnapshot(t *testing.T) {
	m := newTestMachine(t, DefaultConfig(), 0xA000, 0xD005)
	stepN(t, m, 2)

	fb := m.Framebuffer()
	assert.True(t, fb.Pixel(0, 0))
	fb[0] = 0

	// modifying the snapshot does not modify the machine
	current := m.Framebuffer()
	assert.True(t, current.Pixel(0, 0))
}

func TestMemoryOutOfBounds(t *testing.T) {
	m := New(DefaultConfig())

	_, err := m.Memory(MaxAddress, 2)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	b, err := m.Memory(MaxAddress, 1)
	assert.NoError(t, err)
	assert.Len(t, b, 1)
}

func TestStateStackIsCopy(t *testing.T) {
	m := newTestMachine(t, DefaultConfig(), 0x2204, 0x0000, 0x1204)
	stepN(t, m, 1)

	st := m.State()
	assert.Equal(t, []uint16{0x202}, st.Stack)
	st.Stack[0] = 0x300
	assert.Equal(t, []uint16{0x202}, m.State().Stack)
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{"nil", nil, false},
		{"invalid opcode", &OpcodeError{Err: ErrInvalidOpcode}, false},
		{"stack underflow", &OpcodeError{Err: ErrStackUnderflow}, true},
		{"stack overflow", &OpcodeError{Err: ErrStackOverflow}, true},
		{"out of bounds", &OpcodeError{Err: ErrOutOfBounds}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fatal, IsFatal(tt.err))
		})
	}
}

func TestOpcodeError(t *testing.T) {
	err := &OpcodeError{Address: 0x204, Word: 0x5121, Err: ErrInvalidOpcode}

	assert.Equal(t, "executing $5121 at $204: invalid opcode", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidOpcode))

	var opErr *OpcodeError
	assert.True(t, errors.As(error(err), &opErr))
	assert.Equal(t, uint16(0x204), opErr.Address)
}
