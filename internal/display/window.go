//go:build !headless

package display

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/machine"
)

// DefaultScale is the default window size multiplier of the 64x32 display.
const DefaultScale = 10

var (
	colorOn  = [4]byte{0xE8, 0xE8, 0xE8, 0xFF}
	colorOff = [4]byte{0x10, 0x10, 0x10, 0xFF}
)

// ebitenKeys maps the keypad keys to the keyboard keys.
var ebitenKeys = [machine.KeyCount]ebiten.Key{
	0x0: ebiten.KeyX,
	0x1: ebiten.Key1, 0x2: ebiten.Key2, 0x3: ebiten.Key3, 0xC: ebiten.Key4,
	0x4: ebiten.KeyQ, 0x5: ebiten.KeyW, 0x6: ebiten.KeyE, 0xD: ebiten.KeyR,
	0x7: ebiten.KeyA, 0x8: ebiten.KeyS, 0x9: ebiten.KeyD, 0xE: ebiten.KeyF,
	0xA: ebiten.KeyZ, 0xB: ebiten.KeyC, 0xF: ebiten.KeyV,
}

// Window renders frames in a desktop window using Ebitengine.
type Window struct {
	title string
	scale int

	mu     sync.Mutex
	pixels []byte // RGBA pixels of the last rendered frame
	keys   [machine.KeyCount]bool
	frame  func() (bool, error)

	done      chan struct{}
	closeOnce sync.Once
}

// NewWindow returns a window backend. The window is opened by Drive.
func NewWindow(title string, scale int) (*Window, error) {
	if scale <= 0 {
		scale = DefaultScale
	}
	w := &Window{
		title:  title,
		scale:  scale,
		pixels: make([]byte, machine.Width*machine.Height*4),
		done:   make(chan struct{}),
	}
	w.convert(machine.Framebuffer{})
	return w, nil
}

// Drive opens the window and runs the game loop, calling frame on every tick.
func (w *Window) Drive(frame func() (bool, error)) error {
	w.frame = frame

	ebiten.SetWindowSize(machine.Width*w.scale, machine.Height*w.scale)
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(w)
	w.closeOnce.Do(func() { close(w.done) })
	if err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.Update
func (w *Window) Update() error {
	select {
	case <-w.done:
		return ebiten.Termination
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	var keys [machine.KeyCount]bool
	for i, key := range ebitenKeys {
		keys[i] = ebiten.IsKeyPressed(key)
	}
	w.mu.Lock()
	w.keys = keys
	w.mu.Unlock()

	if w.frame == nil {
		return nil
	}
	running, err := w.frame()
	if err != nil {
		return err
	}
	if !running {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.Draw
func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	defer w.mu.Unlock()
	screen.WritePixels(w.pixels)
}

// Layout implements ebiten.Game.Layout, the screen is scaled by ebiten to the window size.
func (w *Window) Layout(_, _ int) (int, int) {
	return machine.Width, machine.Height
}

// Render converts the frame to the pixels that are drawn on the next screen update.
func (w *Window) Render(fb machine.Framebuffer) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.convert(fb)
	return nil
}

func (w *Window) convert(fb machine.Framebuffer) {
	for y := range machine.Height {
		for x := range machine.Width {
			c := colorOff
			if fb.Pixel(x, y) {
				c = colorOn
			}
			copy(w.pixels[(y*machine.Width+x)*4:], c[:])
		}
	}
}

// Keys returns the keypad state of the last window update.
func (w *Window) Keys() [machine.KeyCount]bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.keys
}

// Done returns a channel that is closed when the window was closed.
func (w *Window) Done() <-chan struct{} {
	return w.done
}

// Close stops the game loop.
func (w *Window) Close() error {
	w.closeOnce.Do(func() { close(w.done) })
	return nil
}
