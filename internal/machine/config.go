package machine

import (
	"math/rand/v2"
	"time"
)

// DefaultStackDepth is the call stack depth used by most interpreters.
const DefaultStackDepth = 16

// RandomSource provides the random values for the random instruction.
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Uint32() uint32
}

// Quirks selects between known behavior variants of the instruction set.
// The zero value selects the conventional behavior.
type Quirks struct {
	// ReferenceFlags inverts the VF polarity of the add instruction:
	// VF=0 signals a carry, VF=1 signals none.
	ReferenceFlags bool
	// CollisionFlag sets VF to 1 when a sprite draw cleared a pixel and to 0
	// otherwise. By default VF is 1 only if no pixel was cleared.
	CollisionFlag bool
	// WrapSprites wraps sprite pixels around the screen edges instead of clipping them.
	WrapSprites bool
	// ShiftUsesVY shifts VY into VX instead of shifting VX in place.
	ShiftUsesVY bool
	// IncrementIndex advances I past the registers touched by register dump and load.
	IncrementIndex bool
}

// Config contains the settings of a machine.
type Config struct {
	Quirks     Quirks
	StackDepth int          // maximum call depth, DefaultStackDepth if 0
	Random     RandomSource // random number source, time seeded if nil
}

// DefaultConfig returns the default machine configuration.
func DefaultConfig() Config {
	return Config{
		StackDepth: DefaultStackDepth,
	}
}

// NewRandom returns a deterministic random source for the given seed.
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

func (c Config) normalized() Config {
	if c.StackDepth <= 0 {
		c.StackDepth = DefaultStackDepth
	}
	if c.Random == nil {
		c.Random = NewRandom(uint64(time.Now().UnixNano()))
	}
	return c
}
