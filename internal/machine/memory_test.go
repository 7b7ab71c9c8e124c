package machine

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLoadIndex(t *testing.T) {
	m := newTestMachine(t, DefaultConfig(), 0xA123)
	stepN(t, m, 1)
	assert.Equal(t, uint16(0x123), m.State().Index)
}

func TestAddIndex(t *testing.T) {
	tests := []struct {
		name  string
		words []uint16
		index uint16
		flag  uint8
	}{
		{"in range", []uint16{0x6F07, 0xA100, 0x6002, 0xF01E}, 0x102, 0},
		{"overflow", []uint16{0xAFFF, 0x6002, 0xF01E}, 0x001, 1},
		{"highest address", []uint16{0xAFFE, 0x6001, 0xF01E}, 0xFFF, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, DefaultConfig(), tt.words...)
			stepN(t, m, len(tt.words))

			st := m.State()
			assert.Equal(t, tt.index, st.Index)
			assert.Equal(t, tt.flag, st.Registers[flagRegister])
		})
	}
}

func TestTimerRegisters(t *testing.T) {
	m := newTestMachine(t, DefaultConfig(), 0x6033, 0xF015, 0xF107, 0xF018)
	stepN(t, m, 4)

	st := m.State()
	assert.Equal(t, uint8(0x33), st.Registers[1])
	assert.Equal(t, uint8(0x33), st.DelayTimer)
	assert.Equal(t, uint8(0x33), st.SoundTimer)
}

func TestLoadGlyph(t *testing.T) {
	for digit := range uint16(16) {
		m := newTestMachine(t, DefaultConfig(), 0x6000|digit, 0xF029)
		stepN(t, m, 2)

		st := m.State()
		assert.Equal(t, FontAddress+digit*5, st.Index)

		glyph, err := m.Memory(st.Index, glyphHeight)
		assert.NoError(t, err)
		assert.Equal(t, font[digit*5:digit*5+5], glyph)
	}

	m := newTestMachine(t, DefaultConfig(), 0x6010, 0xF029)
	stepN(t, m, 1)
	_, err := m.Step()
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestStoreBCD(t *testing.T) {
	tests := []struct {
		value  uint16
		digits []byte
	}{
		{251, []byte{2, 5, 1}},
		{7, []byte{0, 0, 7}},
		{40, []byte{0, 4, 0}},
		{100, []byte{1, 0, 0}},
		{255, []byte{2, 5, 5}},
	}

	for _, tt := range tests {
		m := newTestMachine(t, DefaultConfig(), 0x6000|tt.value, 0xA300, 0xF033)
		stepN(t, m, 3)

		mem, err := m.Memory(0x300, 3)
		assert.NoError(t, err)
		assert.Equal(t, tt.digits, mem)
		assert.Equal(t, uint16(0x300), m.State().Index)
	}

	m := newTestMachine(t, DefaultConfig(), 0xAFFE, 0xF033)
	stepN(t, m, 1)
	_, err := m.Step()
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestStoreLoadRegisters(t *testing.T) {
	m := newTestMachine(t, DefaultConfig(),
		0x6001, 0x6102, 0x6203, 0x6304, 0x6499,
		0xA400, 0xF355, // store V0-V3
		0x6000, 0x6100, 0x6200, 0x6300,
		0xF365, // load V0-V3
	)
	stepN(t, m, 7)

	mem, err := m.Memory(0x400, 5)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 0}, mem)
	assert.Equal(t, uint16(0x400), m.State().Index)

	stepN(t, m, 5)
	st := m.State()
	assert.Equal(t, []uint8{1, 2, 3, 4, 0x99}, st.Registers[:5])
}

func TestStoreLoadRoundTrip(t *testing.T) {
	rnd := NewRandom(7)

	for x := range uint16(RegisterCount) {
		m := newTestMachine(t, DefaultConfig(), 0xA400, 0xF055|x<<8, 0xF065|x<<8)
		var values [RegisterCount]uint8
		for i := range values {
			values[i] = uint8(rnd.Uint32())
		}
		m.registers = values
		stepN(t, m, 2)

		m.registers = [RegisterCount]uint8{}
		stepN(t, m, 1)

		for i := range RegisterCount {
			if i <= int(x) {
				assert.Equal(t, values[i], m.registers[i])
			} else {
				assert.Equal(t, uint8(0), m.registers[i])
			}
		}
	}
}

func TestStoreLoadIncrementIndex(t *testing.T) {
	m := newTestMachine(t, Config{Quirks: Quirks{IncrementIndex: true}}, 0xA400, 0xF355, 0xF165)
	stepN(t, m, 2)
	assert.Equal(t, uint16(0x404), m.State().Index)

	stepN(t, m, 1)
	assert.Equal(t, uint16(0x406), m.State().Index)
}

func TestStoreRegistersOutOfBounds(t *testing.T) {
	m := newTestMachine(t, DefaultConfig(), 0xAFFE, 0xF255)
	stepN(t, m, 1)
	_, err := m.Step()
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	m = newTestMachine(t, DefaultConfig(), 0xAFFC, 0xF255, 0xF265)
	stepN(t, m, 3)
}

func TestLastAddressNotAccessible(t *testing.T) {
	tests := []struct {
		name  string
		words []uint16
	}{
		{"store", []uint16{0xAFFF, 0x60AB, 0xF055}},
		{"load", []uint16{0xAFFF, 0xF065}},
		{"bcd", []uint16{0xAFFD, 0xF033}},
		{"draw", []uint16{0xAFFE, 0xD002}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, DefaultConfig(), tt.words...)
			stepN(t, m, len(tt.words)-1)

			_, err := m.Step()
			assert.True(t, errors.Is(err, ErrOutOfBounds))

			mem, err := m.Memory(MaxAddress, 1)
			assert.NoError(t, err)
			assert.Equal(t, []byte{0}, mem)
		})
	}
}
