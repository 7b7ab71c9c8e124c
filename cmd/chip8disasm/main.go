// Package main implements a standalone CHIP-8 program disassembler
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	opts, batch := readArguments()
	logger := config.CreateLogger(opts.Debug, opts.Quiet)

	files := []string{opts.Input}
	if batch != "" {
		var err error
		files, err = filepath.Glob(batch)
		if err != nil {
			logger.Error("Invalid batch pattern", log.Err(err))
			os.Exit(1)
		}
	}

	failed := false
	for _, file := range files {
		opts.Input = file
		if batch != "" {
			opts.Output = runner.GenerateOutputFilename(file)
		}

		if err := runner.Disassemble(logger, opts); err != nil {
			logger.Error("Disassembling failed", log.String("file", file), log.Err(err))
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func readArguments() (options.Program, string) {
	var opts options.Program
	var batch string
	flags := flag.NewFlagSet("chip8disasm", flag.ExitOnError)

	flags.StringVar(&batch, "batch", "", "process a batch of given path and file mask and automatically .asm file naming, for example *.ch8")
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "output the trailing zero bytes of the program")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	_ = flags.Parse(os.Args[1:])

	args := flags.Args()
	if batch != "" {
		return opts, batch
	}
	if len(args) != 1 {
		fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
		fmt.Printf("usage: chip8disasm [options] <file to disassemble>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}

	opts.Input = args[0]
	return opts, ""
}
