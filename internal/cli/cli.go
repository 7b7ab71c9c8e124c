// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
)

var errInvalidCycles = errors.New("cycles per frame must be positive")

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	if err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	if opts.Version {
		return opts, nil
	}

	args := flags.Args()
	if len(args) == 0 && opts.Input == "" {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	if len(args) > 0 {
		opts.Input = args[0]
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	if err := validateOptionCombinations(opts); err != nil {
		return opts, err
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: retrochip8 [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && len(arg) > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Display = strings.ToLower(opts.Display)

	validDisplays := []string{options.DisplayWindow, options.DisplayTerminal, options.DisplayHeadless}
	for _, valid := range validDisplays {
		if opts.Display == valid {
			return nil
		}
	}

	return fmt.Errorf("unsupported display: %s. Valid options: %s",
		opts.Display, strings.Join(validDisplays, ", "))
}

// validateOptionCombinations checks for options that can not be used together.
func validateOptionCombinations(opts options.Program) error {
	if opts.CyclesPerFrame <= 0 {
		return fmt.Errorf("%w: %d", errInvalidCycles, opts.CyclesPerFrame)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("invalid frame limit %d", opts.Frames)
	}
	if opts.Disassemble && opts.Script != "" {
		return errors.New("-script can not be used with -disasm")
	}
	return nil
}

// parseBreakpoints parses a comma separated list of hex addresses.
func parseBreakpoints(s string) ([]uint16, error) {
	var addresses []uint16
	for field := range strings.SplitSeq(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		field = strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(field), "0x"), "$")

		address, err := strconv.ParseUint(field, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("parsing breakpoint address '%s': %w", field, err)
		}
		if address > machine.MaxAddress {
			return nil, fmt.Errorf("breakpoint address $%X exceeds memory", address)
		}
		addresses = append(addresses, uint16(address))
	}
	return addresses, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input program file")
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file for -disasm, printed on console if no name given")
	flags.StringVar(&opts.Script, "script", "", "Lua script to run every frame for automation")
	flags.StringVar(&opts.Display, "display", options.DisplayWindow, "display backend (window/terminal/headless)")
	flags.IntVar(&opts.CyclesPerFrame, "cycles", options.DefaultCyclesPerFrame, "instructions executed per 60Hz frame")
	flags.IntVar(&opts.Frames, "frames", 0, "stop after the given number of frames, 0 runs until quit")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses a time based seed")
	flags.Func("break", "comma separated list of hex addresses to stop execution at", func(s string) error {
		addresses, err := parseBreakpoints(s)
		if err != nil {
			return err
		}
		opts.Breakpoints = append(opts.Breakpoints, addresses...)
		return nil
	})
	flags.BoolVar(&opts.Disassemble, "disasm", false, "disassemble the program instead of running it")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Strict, "strict", false, "stop execution on invalid opcodes")
	flags.BoolVar(&opts.Mute, "mute", false, "disable sound output")
	flags.BoolVar(&opts.Version, "v", false, "print version information and exit")

	flags.BoolVar(&opts.ReferenceFlags, "reference-flags", false, "use the inverted carry flag of the reference interpreter")
	flags.BoolVar(&opts.CollisionFlag, "collision-flag", false, "set VF to 1 on a sprite collision instead of 0")
	flags.BoolVar(&opts.WrapSprites, "wrap-sprites", false, "wrap sprite pixels around the screen edges instead of clipping")
	flags.BoolVar(&opts.ShiftUsesVY, "shift-vy", false, "shift instructions read from VY instead of VX")
	flags.BoolVar(&opts.IncrementIndex, "increment-index", false, "register dump and load advance the index register")

	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "output the trailing zero bytes of the program")
}
