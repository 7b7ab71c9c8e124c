// Package display provides the output and keyboard input backends of the interpreter.
package display

import (
	"github.com/retroenv/retrochip8/internal/machine"
)

// Backend presents frames and reports the state of the keypad.
type Backend interface {
	// Render presents a frame.
	Render(fb machine.Framebuffer) error
	// Keys returns the pressed state of all 16 keypad keys.
	Keys() [machine.KeyCount]bool
	// Done is closed when the user requested to quit.
	Done() <-chan struct{}
	// Close releases all backend resources.
	Close() error
}

// Driver is implemented by backends that need to own the main loop.
// Drive calls frame at 60Hz until frame returns false or an error, or the
// backend is closed.
type Driver interface {
	Drive(frame func() (bool, error)) error
}
