package script

import (
	"github.com/retroenv/retrochip8/internal/machine"
	lua "github.com/yuin/gopher-lua"
)

func (s *Script) register() {
	functions := map[string]lua.LGFunction{
		"press":   s.press,
		"release": s.release,
		"reg":     s.reg,
		"index":   s.index,
		"pc":      s.pc,
		"pixel":   s.pixel,
		"delay":   s.delay,
		"sound":   s.sound,
		"frame":   s.currentFrame,
		"quit":    s.requestQuit,
	}
	for name, fn := range functions {
		s.state.SetGlobal(name, s.state.NewFunction(fn))
	}
}

// checkRange returns the integer argument at position n, raising a Lua
// error if it is not in the range [0, limit).
func checkRange(L *lua.LState, n, limit int) int {
	v := L.CheckInt(n)
	if v < 0 || v >= limit {
		L.ArgError(n, "value out of range")
	}
	return v
}

func (s *Script) press(L *lua.LState) int {
	s.keys[checkRange(L, 1, machine.KeyCount)] = true
	return 0
}

func (s *Script) release(L *lua.LState) int {
	s.keys[checkRange(L, 1, machine.KeyCount)] = false
	return 0
}

func (s *Script) reg(L *lua.LState) int {
	x := checkRange(L, 1, machine.RegisterCount)
	L.Push(lua.LNumber(s.machine.State().Registers[x]))
	return 1
}

func (s *Script) index(L *lua.LState) int {
	L.Push(lua.LNumber(s.machine.State().Index))
	return 1
}

func (s *Script) pc(L *lua.LState) int {
	L.Push(lua.LNumber(s.machine.State().PC))
	return 1
}

func (s *Script) pixel(L *lua.LState) int {
	x := L.CheckInt(1)
	y := L.CheckInt(2)
	fb := s.machine.Framebuffer()
	L.Push(lua.LBool(fb.Pixel(x, y)))
	return 1
}

func (s *Script) delay(L *lua.LState) int {
	L.Push(lua.LNumber(s.machine.State().DelayTimer))
	return 1
}

func (s *Script) sound(L *lua.LState) int {
	L.Push(lua.LNumber(s.machine.State().SoundTimer))
	return 1
}

func (s *Script) currentFrame(L *lua.LState) int {
	L.Push(lua.LNumber(s.frame))
	return 1
}

func (s *Script) requestQuit(_ *lua.LState) int {
	s.quit = true
	return 0
}
