// Package options contains the program options.
package options

// Frontend names.
const (
	FrontendEbiten   = "ebiten"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Frontends lists all supported frontend names.
var Frontends = []string{FrontendEbiten, FrontendTerminal, FrontendHeadless}

// Default option values.
const (
	DefaultCyclesPerSecond = 1000
	DefaultPixelSize       = 20
)

// Parameters contains file path options.
type Parameters struct {
	Input   string // ROM file to run
	WavFile string // optional file to record the beeper output to
}

// Flags contains behavior options.
type Flags struct {
	Frontend string // ebiten, terminal or headless
	ShiftVY  bool   // enable the shift_vy quirk
	Seed     uint64 // seed for the random number instruction, 0 uses a random seed
	Cycles   uint64 // stop after this many cycles, 0 runs until closed
	Digest   bool   // print the display digest on exit
	Disasm   bool   // print a listing of the ROM and exit
	Trace    bool   // log every executed instruction
	Debug    bool
	Quiet    bool
}

// Display contains output options.
type Display struct {
	CyclesPerSecond int
	PixelSize       int
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Display
}
