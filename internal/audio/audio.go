// Package audio provides the sound output of the interpreter. The machine only
// signals whether the sound timer is active, which is output as a single tone.
package audio

// Beeper outputs a tone while it is switched on.
type Beeper interface {
	SetTone(on bool)
	Close() error
}

// Nop is a beeper without any output.
type Nop struct{}

// SetTone does nothing.
func (Nop) SetTone(bool) {}

// Close does nothing.
func (Nop) Close() error { return nil }
