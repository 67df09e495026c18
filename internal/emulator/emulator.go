// Package emulator handles the complete workflow of running a ROM file
package emulator

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/digest"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

// Run loads the ROM file of the options and either prints its listing to out
// or runs it on the selected frontend until it is closed. The display digest
// is written to out if enabled.
func Run(ctx context.Context, logger *log.Logger, opts options.Program, out io.Writer) error {
	data, err := loader.New(logger).Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if opts.Disasm {
		if err := disasm.Listing(out, data); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
		return nil
	}

	machine := chip8.New(config.CreateQuirks(opts), config.CreateMachineOptions(logger, opts)...)
	size := machine.Load(data)
	logger.Info("Running ROM",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.String("frontend", opts.Frontend))

	platform, err := config.CreatePlatform(logger, opts)
	if err != nil {
		return fmt.Errorf("creating platform: %w", err)
	}
	defer func() {
		if err := platform.Close(); err != nil {
			logger.Error("Closing platform failed", log.Err(err))
		}
	}()

	beeper, err := config.CreateBeeper(logger, opts)
	if err != nil {
		return fmt.Errorf("creating audio output: %w", err)
	}
	defer func() {
		if err := beeper.Close(); err != nil {
			logger.Error("Closing audio output failed", log.Err(err))
		}
	}()

	runnerOptions := []host.Option{host.WithBeeper(beeper)}
	var video *digest.Video
	if opts.Digest {
		video = digest.NewVideo()
		runnerOptions = append(runnerOptions, host.WithFrameSink(video))
	}

	runner := host.New(logger, machine, platform, config.CreateRunnerConfig(opts), runnerOptions...)
	if err := run(ctx, runner, platform); err != nil {
		return err
	}

	if unknown := machine.UnknownOpcodes(); unknown > 0 {
		logger.Warn("ROM contained unknown opcodes", log.Int("count", int(unknown)))
	}
	logger.Info("Emulation finished",
		log.Int("cycles", int(runner.TotalCycles())),
		log.Int("frames", int(runner.Frames())))

	if video != nil {
		if _, err := fmt.Fprintf(out, "digest: %s\n", video.Hash()); err != nil {
			return fmt.Errorf("writing digest: %w", err)
		}
	}
	return nil
}

// run executes the runner in its own goroutine while platforms that need the
// main goroutine run their loop on the calling goroutine.
func run(ctx context.Context, runner *host.Runner, platform host.Platform) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer cancel()
		return runner.Run(groupCtx)
	})

	if looper, ok := platform.(host.MainLooper); ok {
		if err := looper.RunMain(groupCtx); err != nil {
			cancel()
			_ = group.Wait()
			return fmt.Errorf("running frontend: %w", err)
		}
	}

	return group.Wait()
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
