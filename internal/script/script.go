// Package script runs Lua automation scripts that control the interpreter.
//
// A script is executed once when it is loaded. If it defines a global
// on_frame function, that function is called at the start of every frame,
// before any instruction of the frame is executed. The following functions
// are available to scripts:
//
//	press(key)    press a keypad key (0-15)
//	release(key)  release a keypad key
//	reg(x)        value of register Vx
//	index()       value of the index register
//	pc()          value of the program counter
//	pixel(x, y)   whether a display pixel is set
//	delay()       value of the delay timer
//	sound()       value of the sound timer
//	frame()       number of the current frame, starting at 1
//	quit()        stop the interpreter after the current frame
package script

import (
	"context"
	"fmt"

	"github.com/retroenv/retrochip8/internal/machine"
	lua "github.com/yuin/gopher-lua"
)

const frameHook = "on_frame"

// Machine is the interpreter state that scripts can inspect.
type Machine interface {
	State() machine.State
	Framebuffer() machine.Framebuffer
}

// Script is a loaded Lua script.
type Script struct {
	state   *lua.LState
	machine Machine
	onFrame *lua.LFunction

	keys  [machine.KeyCount]bool
	frame int
	quit  bool
}

// New returns a script environment for the machine.
func New(m Machine) *Script {
	s := &Script{
		state:   lua.NewState(),
		machine: m,
	}
	s.register()
	return s
}

// LoadFile executes the Lua file.
func (s *Script) LoadFile(path string) error {
	if err := s.state.DoFile(path); err != nil {
		return fmt.Errorf("running script %s: %w", path, err)
	}
	s.lookupHook()
	return nil
}

// LoadString executes the Lua source code.
func (s *Script) LoadString(source string) error {
	if err := s.state.DoString(source); err != nil {
		return fmt.Errorf("running script: %w", err)
	}
	s.lookupHook()
	return nil
}

func (s *Script) lookupHook() {
	if fn, ok := s.state.GetGlobal(frameHook).(*lua.LFunction); ok {
		s.onFrame = fn
	}
}

// Frame advances the frame counter and calls the frame hook of the script.
func (s *Script) Frame(ctx context.Context) error {
	s.frame++
	if s.onFrame == nil {
		return nil
	}

	s.state.SetContext(ctx)
	err := s.state.CallByParam(lua.P{
		Fn:      s.onFrame,
		NRet:    0,
		Protect: true,
	})
	s.state.RemoveContext()
	if err != nil {
		return fmt.Errorf("calling %s in frame %d: %w", frameHook, s.frame, err)
	}
	return nil
}

// Keys returns the keys pressed by the script.
func (s *Script) Keys() [machine.KeyCount]bool {
	return s.keys
}

// Quit returns whether the script requested to stop the interpreter.
func (s *Script) Quit() bool {
	return s.quit
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.state.Close()
}
