package machine

import (
	"math/bits"
	"strings"
)

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Framebuffer is the monochrome display. Each row is stored as a 64 bit value,
// pixel x of a row is bit 63-x.
type Framebuffer [Height]uint64

// Pixel returns whether the pixel at the given position is set.
// Positions outside of the display return false.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f[y]&(1<<(Width-1-x)) != 0
}

// Lit returns the number of set pixels.
func (f *Framebuffer) Lit() int {
	count := 0
	for _, row := range f {
		count += bits.OnesCount64(row)
	}
	return count
}

// Bytes returns the framebuffer as 8 bytes per row, most significant pixel first.
func (f *Framebuffer) Bytes() []byte {
	b := make([]byte, 0, Height*8)
	for _, row := range f {
		for shift := 56; shift >= 0; shift -= 8 {
			b = append(b, byte(row>>shift))
		}
	}
	return b
}

// String renders the framebuffer as text, '#' for set and '.' for unset pixels.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for y := range Height {
		for x := range Width {
			if f.Pixel(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// xorRow xors the sprite row data onto row y starting at column x and
// returns whether a set pixel was cleared.
func (f *Framebuffer) xorRow(x, y int, data byte, wrap bool) bool {
	line := uint64(data) << (Width - 8)
	if wrap {
		line = bits.RotateLeft64(line, -x)
	} else {
		line >>= uint(x)
	}
	collision := f[y]&line != 0
	f[y] ^= line
	return collision
}
