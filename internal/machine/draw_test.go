package machine

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDrawTwiceClears(t *testing.T) {
	tests := []struct {
		name          string
		quirks        Quirks
		firstFlag     uint8
		collisionFlag uint8
	}{
		{"default flags", Quirks{}, 1, 0},
		{"collision flag", Quirks{CollisionFlag: true}, 0, 1},
		{"reference flags keep draw polarity", Quirks{ReferenceFlags: true}, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, Config{Quirks: tt.quirks},
				0x600A, 0x610C, 0xA000, 0xD015, 0xD015)
			stepN(t, m, 3)

			res, err := m.Step()
			assert.NoError(t, err)
			assert.True(t, res.Dirty)
			assert.Equal(t, tt.firstFlag, m.State().Registers[flagRegister])

			fb := m.Framebuffer()
			assert.Equal(t, 14, fb.Lit()) // glyph 0 has 14 set pixels
			assert.True(t, fb.Pixel(10, 12))
			assert.True(t, fb.Pixel(13, 12))
			assert.False(t, fb.Pixel(14, 12))
			assert.False(t, fb.Pixel(11, 13))

			res, err = m.Step()
			assert.NoError(t, err)
			assert.True(t, res.Dirty)
			assert.Equal(t, tt.collisionFlag, m.State().Registers[flagRegister])

			fb = m.Framebuffer()
			assert.Equal(t, 0, fb.Lit())
		})
	}
}

func TestDrawEdges(t *testing.T) {
	// glyph 0 rows: F0 90 90 90 F0
	tests := []struct {
		name  string
		wrap  bool
		words []uint16
		set   [][2]int
		unset [][2]int
	}{
		{
			name:  "clip right edge",
			words: []uint16{0x603E, 0x6100, 0xA000, 0xD015},
			set:   [][2]int{{62, 0}, {63, 0}, {62, 1}},
			unset: [][2]int{{0, 0}, {1, 0}, {0, 1}},
		},
		{
			name:  "wrap right edge",
			wrap:  true,
			words: []uint16{0x603E, 0x6100, 0xA000, 0xD015},
			set:   [][2]int{{62, 0}, {63, 0}, {0, 0}, {1, 0}, {62, 1}, {1, 1}},
			unset: [][2]int{{0, 1}, {2, 0}},
		},
		{
			name:  "clip bottom edge",
			words: []uint16{0x6000, 0x611E, 0xA000, 0xD015},
			set:   [][2]int{{0, 30}, {3, 30}, {0, 31}},
			unset: [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 31}},
		},
		{
			name:  "wrap bottom edge",
			wrap:  true,
			words: []uint16{0x6000, 0x611E, 0xA000, 0xD015},
			set:   [][2]int{{0, 30}, {0, 31}, {0, 0}, {3, 1}, {1, 2}},
			unset: [][2]int{{1, 0}, {1, 1}, {0, 3}},
		},
		{
			name:  "origin wraps",
			words: []uint16{0x6043, 0x6122, 0xA000, 0xD011},
			set:   [][2]int{{3, 2}, {6, 2}},
			unset: [][2]int{{2, 2}, {7, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, Config{Quirks: Quirks{WrapSprites: tt.wrap}}, tt.words...)
			stepN(t, m, len(tt.words))

			fb := m.Framebuffer()
			for _, p := range tt.set {
				assert.True(t, fb.Pixel(p[0], p[1]), "pixel should be set")
			}
			for _, p := range tt.unset {
				assert.False(t, fb.Pixel(p[0], p[1]), "pixel should not be set")
			}
		})
	}
}

func TestDrawPartialCollision(t *testing.T) {
	// second sprite overlaps a single pixel of the first one
	m := newTestMachine(t, DefaultConfig(),
		0xA000, 0xD011, // F0 at 0,0
		0x6003, 0xA00F, // glyph 3 row 0: F0
		0xD011, // F0 at 3,0
	)
	stepN(t, m, 5)

	fb := m.Framebuffer()
	assert.Equal(t, uint8(0), m.State().Registers[flagRegister])
	assert.False(t, fb.Pixel(3, 0))
	assert.True(t, fb.Pixel(2, 0))
	assert.True(t, fb.Pixel(6, 0))
	assert.Equal(t, 6, fb.Lit())
}

func TestDrawZeroRows(t *testing.T) {
	m := newTestMachine(t, DefaultConfig(), 0x6F00, 0xA000, 0xD010)
	stepN(t, m, 3)

	fb := m.Framebuffer()
	assert.Equal(t, 0, fb.Lit())
	assert.Equal(t, uint8(1), m.State().Registers[flagRegister])
}

func TestDrawOutOfBounds(t *testing.T) {
	m := newTestMachine(t, DefaultConfig(), 0xAFFE, 0xD005)
	stepN(t, m, 1)

	_, err := m.Step()
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	fb := m.Framebuffer()
	assert.Equal(t, 0, fb.Lit())
}

func TestClearScreen(t *testing.T) {
	m := newTestMachine(t, DefaultConfig(), 0xA000, 0xD015, 0x00E0)
	stepN(t, m, 2)
	fb := m.Framebuffer()
	assert.True(t, fb.Lit() > 0)

	res, err := m.Step()
	assert.NoError(t, err)
	assert.True(t, res.Dirty)
	fb = m.Framebuffer()
	assert.Equal(t, 0, fb.Lit())
}

func TestFramebufferString(t *testing.T) {
	m := newTestMachine(t, DefaultConfig(), 0xA000, 0xD011)
	stepN(t, m, 2)

	fb := m.Framebuffer()
	s := fb.String()
	assert.Equal(t, Height*(Width+1), len(s))
	assert.Equal(t, "####....", s[:8])

	b := fb.Bytes()
	assert.Len(t, b, Height*8)
	assert.Equal(t, byte(0xF0), b[0])
	assert.Equal(t, byte(0x00), b[8])
}
