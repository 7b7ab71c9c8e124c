package display

import (
	"crypto/sha1"
	"encoding/hex"
	"sync"

	"github.com/retroenv/retrochip8/internal/machine"
)

// Headless is a backend without any output. It keeps the last rendered
// frame and a digest of it, which allows comparing program runs.
type Headless struct {
	mu      sync.Mutex
	frame   machine.Framebuffer
	renders int

	done      chan struct{}
	closeOnce sync.Once
}

// NewHeadless returns a new headless backend.
func NewHeadless() *Headless {
	return &Headless{
		done: make(chan struct{}),
	}
}

// Render stores the frame.
func (h *Headless) Render(fb machine.Framebuffer) error {
	h.mu.Lock()
	h.frame = fb
	h.renders++
	h.mu.Unlock()
	return nil
}

// Keys returns no pressed keys, input is injected by scripts.
func (h *Headless) Keys() [machine.KeyCount]bool {
	return [machine.KeyCount]bool{}
}

// Done returns a channel that is closed once the backend is closed.
func (h *Headless) Done() <-chan struct{} {
	return h.done
}

// Close closes the backend.
func (h *Headless) Close() error {
	h.closeOnce.Do(func() { close(h.done) })
	return nil
}

// Frame returns the last rendered frame.
func (h *Headless) Frame() machine.Framebuffer {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frame
}

// Renders returns the number of rendered frames.
func (h *Headless) Renders() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.renders
}

// Digest returns the SHA-1 digest of the last rendered frame as hex string.
func (h *Headless) Digest() string {
	fb := h.Frame()
	sum := sha1.Sum(fb.Bytes())
	return hex.EncodeToString(sum[:])
}
