// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

// maxPixelSize limits the window scale to keep the window size sane.
const maxPixelSize = 64

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard) // usage is printed by UsageError.ShowUsage
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil {
		msg := err.Error()
		if errors.Is(err, flag.ErrHelp) {
			msg = ""
		}
		return opts, &UsageError{flags: flags, msg: msg}
	}
	if len(args) == 0 && opts.Input == "" {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
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
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	e.flags.SetOutput(os.Stdout)
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if opts.Frontend == "sdl" || opts.Frontend == "window" {
		opts.Frontend = options.FrontendEbiten
	}

	if opts.CyclesPerSecond < 1 {
		return fmt.Errorf("invalid cycles per second %d, must be at least 1", opts.CyclesPerSecond)
	}
	if opts.PixelSize < 1 || opts.PixelSize > maxPixelSize {
		return fmt.Errorf("invalid pixel size %d, must be between 1 and %d", opts.PixelSize, maxPixelSize)
	}

	for _, valid := range options.Frontends {
		if opts.Frontend == valid {
			return nil
		}
	}

	return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
		opts.Frontend, strings.Join(options.Frontends, ", "))
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.WavFile, "wav", "", "record the beeper output to the given .wav file")
	flags.StringVar(&opts.Frontend, "frontend", options.FrontendEbiten, "frontend to use (ebiten/terminal/headless)")
	flags.IntVar(&opts.CyclesPerSecond, "c", options.DefaultCyclesPerSecond, "target cycles per second")
	flags.IntVar(&opts.PixelSize, "p", options.DefaultPixelSize, "pixel size of the window frontend")
	flags.BoolVar(&opts.ShiftVY, "shift-vy", false, "shift instructions copy Vy into Vx before shifting")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number instruction, 0 uses a random seed")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop after the given amount of cycles, 0 runs until closed")
	flags.BoolVar(&opts.Digest, "digest", false, "print the display digest on exit")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a listing of the ROM and exit")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
