//go:build headless

package display

import (
	"errors"

	"github.com/retroenv/retrochip8/internal/machine"
)

// DefaultScale is the default window size multiplier of the 64x32 display.
const DefaultScale = 10

// ErrNoWindowSupport is returned by NewWindow in headless builds.
var ErrNoWindowSupport = errors.New("window display is not supported in headless builds")

// Window stub for headless builds
type Window struct{}

// NewWindow returns an error as headless builds have no window support.
func NewWindow(_ string, _ int) (*Window, error) {
	return nil, ErrNoWindowSupport
}

func (w *Window) Drive(_ func() (bool, error)) error { return ErrNoWindowSupport }
func (w *Window) Render(_ machine.Framebuffer) error { return ErrNoWindowSupport }
func (w *Window) Keys() [machine.KeyCount]bool       { return [machine.KeyCount]bool{} }
func (w *Window) Done() <-chan struct{}              { return nil }
func (w *Window) Close() error                       { return nil }
