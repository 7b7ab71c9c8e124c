// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// MachineConfig creates the machine configuration from the program options.
// A zero seed leaves the machine with a time seeded random source.
func MachineConfig(opts options.Program) machine.Config {
	cfg := machine.DefaultConfig()
	cfg.Quirks = machine.Quirks{
		ReferenceFlags: opts.ReferenceFlags,
		CollisionFlag:  opts.CollisionFlag,
		WrapSprites:    opts.WrapSprites,
		ShiftUsesVY:    opts.ShiftUsesVY,
		IncrementIndex: opts.IncrementIndex,
	}
	if opts.Seed != 0 {
		cfg.Random = machine.NewRandom(opts.Seed)
	}
	return cfg
}
