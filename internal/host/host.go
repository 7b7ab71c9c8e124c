// Package host drives a machine at real time speed and connects it to the
// display, keyboard, sound and automation collaborators.
package host

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// FrameRate is the number of frames per second, the timers of the machine
// are decremented once per frame.
const FrameRate = 60

// Config controls the execution of the machine.
type Config struct {
	CyclesPerFrame int      // instructions executed per frame
	FrameLimit     int      // stop after this many frames, 0 runs until quit
	Breakpoints    []uint16 // stop before executing an instruction at these addresses
	Strict         bool     // stop on invalid opcodes instead of skipping them
	Trace          bool     // log every executed instruction at debug level
	Unpaced        bool     // run frames as fast as possible
}

// Script is an automation script that is run at the start of every frame.
type Script interface {
	Frame(ctx context.Context) error
	Keys() [machine.KeyCount]bool
	Quit() bool
}

// Host runs a machine.
type Host struct {
	logger  *log.Logger
	machine *machine.Machine
	display display.Backend
	beeper  audio.Beeper
	script  Script
	cfg     Config

	breakpoints  set.Set[uint16]
	frames       int
	instructions int
	breakpoint   uint16
	breakHit     bool
}

// New returns a host for the machine with the given display backend.
func New(logger *log.Logger, m *machine.Machine, backend display.Backend, cfg Config) *Host {
	if cfg.CyclesPerFrame <= 0 {
		cfg.CyclesPerFrame = 10
	}

	breakpoints := set.New[uint16]()
	for _, address := range cfg.Breakpoints {
		breakpoints.Add(address)
	}

	return &Host{
		logger:      logger,
		machine:     m,
		display:     backend,
		beeper:      audio.Nop{},
		cfg:         cfg,
		breakpoints: breakpoints,
	}
}

// SetBeeper sets the sound output.
func (h *Host) SetBeeper(beeper audio.Beeper) {
	h.beeper = beeper
}

// SetScript sets the automation script.
func (h *Host) SetScript(script Script) {
	h.script = script
}

// Frames returns the number of completed frames.
func (h *Host) Frames() int {
	return h.frames
}

// Instructions returns the number of executed instructions.
func (h *Host) Instructions() int {
	return h.instructions
}

// Breakpoint returns the address of the breakpoint that stopped execution.
func (h *Host) Breakpoint() (uint16, bool) {
	return h.breakpoint, h.breakHit
}

// Run executes frames at the frame rate until the context is cancelled, the
// display is closed, the script quits, the frame limit or a breakpoint is
// reached, or a fatal error occurs.
func (h *Host) Run(ctx context.Context) error {
	if driver, ok := h.display.(display.Driver); ok {
		return driver.Drive(func() (bool, error) {
			if ctx.Err() != nil {
				return false, nil
			}
			return h.Frame(ctx)
		})
	}

	var tick <-chan time.Time
	if !h.cfg.Unpaced {
		ticker := time.NewTicker(time.Second / FrameRate)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-h.display.Done():
			return nil
		default:
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-h.display.Done():
				return nil
			case <-tick:
			}
		}

		running, err := h.Frame(ctx)
		if err != nil {
			return err
		}
		if !running {
			return nil
		}
	}
}

// Frame runs a single frame and returns whether execution should continue.
func (h *Host) Frame(ctx context.Context) (bool, error) {
	if err := h.updateInput(ctx); err != nil {
		return false, err
	}

	dirty, running, err := h.execute()
	if err != nil {
		return false, err
	}

	h.machine.TickTimers()
	h.beeper.SetTone(h.machine.SoundActive())

	if dirty {
		if err := h.display.Render(h.machine.Framebuffer()); err != nil {
			return false, fmt.Errorf("rendering frame: %w", err)
		}
	}

	h.frames++
	if !running {
		return false, nil
	}
	if h.cfg.FrameLimit > 0 && h.frames >= h.cfg.FrameLimit {
		h.logger.Debug("Frame limit reached", log.Int("frames", h.frames))
		return false, nil
	}
	if h.script != nil && h.script.Quit() {
		h.logger.Debug("Script requested quit", log.Int("frames", h.frames))
		return false, nil
	}
	return true, nil
}

// updateInput runs the script hook and passes the keys pressed on the
// keyboard or by the script to the machine.
func (h *Host) updateInput(ctx context.Context) error {
	keys := h.display.Keys()
	if h.script == nil {
		h.machine.SetKeys(keys)
		return nil
	}

	if err := h.script.Frame(ctx); err != nil {
		return fmt.Errorf("running script: %w", err)
	}
	for i, pressed := range h.script.Keys() {
		keys[i] = keys[i] || pressed
	}
	h.machine.SetKeys(keys)
	return nil
}

// execute runs the instructions of a frame. It returns whether the display
// changed and whether execution should continue.
func (h *Host) execute() (bool, bool, error) {
	dirty := false

	for range h.cfg.CyclesPerFrame {
		pc := h.machine.PC()
		if h.breakpoints.Contains(pc) {
			h.breakpoint = pc
			h.breakHit = true
			h.logger.Info("Breakpoint reached", log.Hex("address", pc))
			return dirty, false, nil
		}

		if h.cfg.Trace {
			h.traceInstruction(pc)
		}

		res, err := h.machine.Step()
		h.instructions++
		if err != nil {
			if machine.IsFatal(err) || h.cfg.Strict {
				return dirty, false, fmt.Errorf("executing instruction: %w", err)
			}
			h.logger.Warn("Skipping invalid instruction", log.Err(err))
			continue
		}

		dirty = dirty || res.Dirty
		if res.AwaitingKey {
			break
		}
	}

	return dirty, true, nil
}

func (h *Host) traceInstruction(pc uint16) {
	data, err := h.machine.Memory(pc, 2)
	if err != nil {
		return
	}
	word := uint16(data[0])<<8 | uint16(data[1])

	code := disasm.Format(word)
	if code == "" {
		code = "???"
	}
	h.logger.Debug("Executing",
		log.Hex("pc", pc),
		log.Hex("opcode", word),
		log.String("instruction", code),
	)
}
