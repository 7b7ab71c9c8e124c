// Package main implements the main entry point for a CHIP-8 interpreter
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			runner.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("version: %s\n", buildinfo.Version(version, commit, date))
		return
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	runner.PrintBanner(logger, opts, version, commit, date)

	if opts.Disassemble {
		if err := runner.Disassemble(logger, opts); err != nil {
			logger.Error("Disassembling failed", log.Err(err))
			os.Exit(1)
		}
		return
	}

	if err := runner.Run(ctx, logger, opts); err != nil {
		logger.Error("Execution failed", log.Err(err))
		os.Exit(1)
	}
}
