// Package runner handles the program loading and execution workflow
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/script"
	"github.com/retroenv/retrogolib/log"
)

// Run loads the program and executes it until it is stopped.
func Run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	program, err := loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	m := machine.New(config.MachineConfig(opts))
	if err := m.Reset(program); err != nil {
		return fmt.Errorf("resetting machine: %w", err)
	}

	backend, err := createBackend(opts)
	if err != nil {
		return fmt.Errorf("creating display: %w", err)
	}
	defer func() { _ = backend.Close() }()

	h := host.New(logger, m, backend, host.Config{
		CyclesPerFrame: opts.CyclesPerFrame,
		FrameLimit:     opts.Frames,
		Breakpoints:    opts.Breakpoints,
		Strict:         opts.Strict,
		Trace:          opts.Trace,
		Unpaced:        opts.Display == options.DisplayHeadless,
	})

	beeper := createBeeper(logger, opts)
	defer func() { _ = beeper.Close() }()
	h.SetBeeper(beeper)

	if opts.Script != "" {
		s := script.New(m)
		defer s.Close()
		if err := s.LoadFile(opts.Script); err != nil {
			return fmt.Errorf("loading script: %w", err)
		}
		h.SetScript(s)
	}

	logger.Info("Running program",
		log.String("file", opts.Input),
		log.Int("size", len(program)),
		log.String("display", opts.Display),
	)

	if err := h.Run(ctx); err != nil {
		logState(logger, m)
		return fmt.Errorf("running program: %w", err)
	}

	if address, ok := h.Breakpoint(); ok {
		logger.Info("Stopped at breakpoint", log.Hex("address", address))
		logState(logger, m)
	}

	logger.Info("Execution finished",
		log.Int("frames", h.Frames()),
		log.Int("instructions", h.Instructions()),
	)
	if headless, ok := backend.(*display.Headless); ok {
		logger.Info("Final frame", log.String("digest", headless.Digest()))
	}
	return nil
}

// Disassemble loads the program and writes the assembly listing of it.
func Disassemble(logger *log.Logger, opts options.Program) error {
	program, err := loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
			_ = closer.Close()
		}
	}()

	listing := disasm.Trace(program)
	if err := listing.Write(writer, disasm.Options{
		HexComments: !opts.NoHexComments,
		ZeroBytes:   opts.ZeroBytes,
	}); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}

	if opts.Output != "" {
		logger.Info("Disassembly written", log.String("file", opts.Output))
	}
	return nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".asm"
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

func createBackend(opts options.Program) (display.Backend, error) {
	switch opts.Display {
	case options.DisplayHeadless:
		return display.NewHeadless(), nil
	case options.DisplayTerminal:
		return display.NewTerminal(os.Stdin, os.Stdout)
	default:
		return display.NewWindow("retrochip8 - "+filepath.Base(opts.Input), display.DefaultScale)
	}
}

// createBeeper returns the sound output, falling back to no sound output if
// the audio device can not be initialized.
func createBeeper(logger *log.Logger, opts options.Program) audio.Beeper {
	if opts.Mute || opts.Display == options.DisplayHeadless {
		return audio.Nop{}
	}

	beeper, err := audio.NewOto()
	if err != nil {
		logger.Warn("Sound output disabled", log.Err(err))
		return audio.Nop{}
	}
	return beeper
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

func logState(logger *log.Logger, m *machine.Machine) {
	st := m.State()
	logger.Info("Machine state",
		log.Hex("pc", st.PC),
		log.Hex("index", st.Index),
		log.String("registers", fmt.Sprintf("% X", st.Registers[:])),
		log.Int("stack_depth", len(st.Stack)),
	)
}
