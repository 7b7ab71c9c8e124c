// Package options contains the program options.
package options

// Display backend names.
const (
	DisplayWindow   = "window"
	DisplayTerminal = "terminal"
	DisplayHeadless = "headless"
)

// DefaultCyclesPerFrame results in 600 instructions per second at 60 frames per second.
const DefaultCyclesPerFrame = 10

// Parameters contains file path options.
type Parameters struct {
	Input  string // program image to run or disassemble
	Output string // output .asm file for disassembly, stdout if empty
	Script string // Lua automation script
}

// Flags contains behavior options.
type Flags struct {
	Display        string // display backend: window, terminal, headless
	CyclesPerFrame int
	Frames         int    // stop after this many frames, 0 runs until quit
	Seed           uint64 // random seed, 0 uses a time based seed
	Breakpoints    []uint16
	Disassemble    bool
	Debug          bool
	Quiet          bool
	Trace          bool // log every executed instruction
	Strict         bool // stop on invalid opcodes
	Mute           bool
	Version        bool
}

// Quirks contains the interpreter behavior variants.
type Quirks struct {
	ReferenceFlags bool
	CollisionFlag  bool
	WrapSprites    bool
	ShiftUsesVY    bool
	IncrementIndex bool
}

// OutputFlags contains disassembly output formatting options.
type OutputFlags struct {
	NoHexComments bool
	ZeroBytes     bool
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	Quirks
	OutputFlags
}
