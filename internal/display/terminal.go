package display

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/machine"
	"golang.org/x/term"
)

// keyHoldTime is how long a key counts as pressed after its last key press
// event, terminals do not report key release events.
const keyHoldTime = 150 * time.Millisecond

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// ErrNotTerminal is returned when the input of the terminal backend is not a terminal.
var ErrNotTerminal = errors.New("input is not a terminal")

// Terminal renders frames as text using half block characters, two pixel
// rows per text row, and reads the keypad state from the keyboard.
type Terminal struct {
	fd       int
	oldState *term.State
	out      *bufio.Writer
	keys     *keyState

	done      chan struct{}
	closeOnce sync.Once
}

// NewTerminal switches the input terminal to raw mode and starts reading keys.
func NewTerminal(in *os.File, out io.Writer) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting raw mode: %w", err)
	}

	t := &Terminal{
		fd:       fd,
		oldState: oldState,
		out:      bufio.NewWriter(out),
		keys:     newKeyState(time.Now),
		done:     make(chan struct{}),
	}

	// clear screen and hide cursor
	_, _ = t.out.WriteString("\x1b[2J\x1b[?25l")
	go t.readKeys(in)
	return t, nil
}

// readKeys runs until the input returns an error, a quit key is read or
// the terminal is closed. A read from stdin can not be interrupted, after
// Close the goroutine stays blocked until the next input arrives or the
// process exits.
func (t *Terminal) readKeys(in io.Reader) {
	buf := make([]byte, 16)
	for {
		n, err := in.Read(buf)

		select {
		case <-t.done:
			return
		default:
		}

		if t.keys.handleInput(buf[:n]) {
			t.closeOnce.Do(func() { close(t.done) })
			return
		}
		if err != nil {
			return
		}
	}
}

// Render draws the frame at the top left corner of the terminal.
func (t *Terminal) Render(fb machine.Framebuffer) error {
	if _, err := t.out.WriteString("\x1b[H" + renderHalfBlocks(fb)); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	if err := t.out.Flush(); err != nil {
		return fmt.Errorf("flushing frame: %w", err)
	}
	return nil
}

// Keys returns the keys that were pressed recently.
func (t *Terminal) Keys() [machine.KeyCount]bool {
	return t.keys.pressed()
}

// Done returns a channel that is closed when Ctrl+C or Escape was pressed.
func (t *Terminal) Done() <-chan struct{} {
	return t.done
}

// Close restores the terminal state.
func (t *Terminal) Close() error {
	t.closeOnce.Do(func() { close(t.done) })

	_, _ = t.out.WriteString("\x1b[?25h\r\n")
	_ = t.out.Flush()

	if t.oldState == nil {
		return nil
	}
	err := term.Restore(t.fd, t.oldState)
	t.oldState = nil
	if err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

// renderHalfBlocks converts the frame to text with each character covering
// two vertically adjacent pixels.
func renderHalfBlocks(fb machine.Framebuffer) string {
	var sb strings.Builder
	for y := 0; y < machine.Height; y += 2 {
		for x := range machine.Width {
			top := fb.Pixel(x, y)
			bottom := fb.Pixel(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}

// keyState tracks the time of the last press event of every key.
type keyState struct {
	mu          sync.Mutex
	now         func() time.Time
	lastPressed [machine.KeyCount]time.Time
}

func newKeyState(now func() time.Time) *keyState {
	return &keyState{now: now}
}

func (k *keyState) press(r rune) {
	key, ok := KeyForRune(r)
	if !ok {
		return
	}
	k.mu.Lock()
	k.lastPressed[key] = k.now()
	k.mu.Unlock()
}

// handleInput presses the keys of a chunk of raw input and returns whether it
// asks to quit. Ctrl+C quits, Escape only when it is the whole chunk. An
// Escape followed by more bytes starts an escape sequence such as an arrow
// key, the rest of the chunk is ignored.
func (k *keyState) handleInput(data []byte) bool {
	for _, b := range data {
		switch b {
		case keyCtrlC:
			return true
		case keyEscape:
			return len(data) == 1
		default:
			k.press(rune(b))
		}
	}
	return false
}

func (k *keyState) pressed() [machine.KeyCount]bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	var keys [machine.KeyCount]bool
	now := k.now()
	for i, t := range k.lastPressed {
		keys[i] = !t.IsZero() && now.Sub(t) < keyHoldTime
	}
	return keys
}
