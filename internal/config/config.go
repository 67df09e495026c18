// Package config handles application configuration and setup
package config

import (
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/frontend/window"
	"github.com/retroenv/retrochip8/internal/host"
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

// CreateProgramLogger creates the logger for an emulation run. The terminal
// frontend draws frames on stdout, so it only shows errors unless debug
// output is requested.
func CreateProgramLogger(opts options.Program) *log.Logger {
	return CreateLogger(opts.Debug, quietLogging(opts))
}

func quietLogging(opts options.Program) bool {
	return opts.Quiet || opts.Frontend == options.FrontendTerminal
}

// CreateQuirks returns the interpreter quirks selected by the options.
func CreateQuirks(opts options.Program) chip8.Quirks {
	return chip8.Quirks{
		ShiftVY: opts.ShiftVY,
	}
}

// CreateMachineOptions returns the machine options selected by the options.
func CreateMachineOptions(logger *log.Logger, opts options.Program) []chip8.Option {
	machineOptions := []chip8.Option{chip8.WithLogger(logger)}
	if opts.Seed != 0 {
		machineOptions = append(machineOptions, chip8.WithSeed(opts.Seed))
	}
	return machineOptions
}

// CreateRunnerConfig returns the frame loop configuration selected by the options.
func CreateRunnerConfig(opts options.Program) host.Config {
	return host.Config{
		CyclesPerSecond: opts.CyclesPerSecond,
		MaxCycles:       opts.Cycles,
		Trace:           opts.Trace,
		Unthrottled:     opts.Frontend == options.FrontendHeadless,
	}
}

// CreatePlatform creates the frontend selected by the options.
func CreatePlatform(logger *log.Logger, opts options.Program) (host.Platform, error) {
	switch opts.Frontend {
	case options.FrontendEbiten:
		platform, err := window.New(logger, window.Config{
			PixelSize: opts.PixelSize,
			Title:     "retrochip8 - " + opts.Input,
		})
		if err != nil {
			return nil, fmt.Errorf("creating window: %w", err)
		}
		return platform, nil

	case options.FrontendTerminal:
		platform, err := terminal.New(logger, os.Stdin, os.Stdout)
		if err != nil {
			return nil, fmt.Errorf("creating terminal: %w", err)
		}
		return platform, nil

	case options.FrontendHeadless:
		return host.NewHeadless(), nil

	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", opts.Frontend)
	}
}

// CreateBeeper creates the sound outputs selected by the options. A missing
// audio device is not fatal, the emulator runs silently in that case.
func CreateBeeper(logger *log.Logger, opts options.Program) (*audio.Multi, error) {
	var beepers []audio.Beeper

	switch opts.Frontend {
	case options.FrontendEbiten:
		speaker, err := audio.NewSpeaker()
		if err != nil {
			logger.Warn("Audio output not available", log.Err(err))
		} else {
			beepers = append(beepers, speaker)
		}

	case options.FrontendTerminal:
		beepers = append(beepers, terminal.NewBell(os.Stdout))
	}

	if opts.WavFile != "" {
		recorder, err := audio.NewWavRecorder(opts.WavFile)
		if err != nil {
			closeErr := audio.NewMulti(beepers...).Close()
			if closeErr != nil {
				logger.Error("Closing audio output failed", log.Err(closeErr))
			}
			return nil, fmt.Errorf("creating wav recorder: %w", err)
		}
		beepers = append(beepers, recorder)
	}

	return audio.NewMulti(beepers...), nil
}
