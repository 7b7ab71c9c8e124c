package machine

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		word uint16
		want Instruction
	}{
		{0x0000, Instruction{Word: 0x0000}},
		{0xD12F, Instruction{Word: 0xD12F, X: 0x1, Y: 0x2, N: 0xF, NN: 0x2F, NNN: 0x12F}},
		{0x8AB4, Instruction{Word: 0x8AB4, X: 0xA, Y: 0xB, N: 0x4, NN: 0xB4, NNN: 0xAB4}},
		{0xFFFF, Instruction{Word: 0xFFFF, X: 0xF, Y: 0xF, N: 0xF, NN: 0xFF, NNN: 0xFFF}},
		{0x1234, Instruction{Word: 0x1234, X: 0x2, Y: 0x3, N: 0x4, NN: 0x34, NNN: 0x234}},
	}

	for _, tt := range tests {
		ins := Decode(tt.word)
		assert.Equal(t, tt.want, ins)
		assert.Equal(t, uint8(tt.word>>12), ins.Family())
	}
}

func TestDecodeAllWords(t *testing.T) {
	for w := range 0x10000 {
		word := uint16(w)
		ins := Decode(word)
		if ins.X != uint8((word>>8)&0xF) || ins.Y != uint8((word>>4)&0xF) ||
			ins.N != uint8(word&0xF) || ins.NN != uint8(word&0xFF) || ins.NNN != word&0xFFF {

			t.Fatalf("wrong fields for word %04X: %+v", word, ins)
		}
	}
}

func TestKnown(t *testing.T) {
	tests := []struct {
		name  string
		word  uint16
		known bool
	}{
		{"CLS", 0x00E0, true},
		{"RET", 0x00EE, true},
		{"SYS", 0x0123, false},
		{"zero word", 0x0000, false},
		{"JP", 0x1ABC, true},
		{"SE Vx, Vy", 0x5120, true},
		{"SE Vx, Vy with non zero nibble", 0x5121, false},
		{"SNE Vx, Vy with non zero nibble", 0x9128, false},
		{"SHL", 0x812E, true},
		{"8XY8", 0x8128, false},
		{"SKP", 0xE19E, true},
		{"SKNP", 0xE1A1, true},
		{"EX00", 0xE100, false},
		{"LD Vx, [I]", 0xFF65, true},
		{"FX75", 0xF175, false},
		{"DRW", 0xD015, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.known, Known(tt.word))
		})
	}
}
