package chip8

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 machine layout constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// MaxAddress is the highest valid memory address, all memory accesses
	// are masked with it.
	MaxAddress = 0xFFF

	// ProgramStart is the address programs are loaded to and where
	// execution starts.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	RegisterCount = 16
	StackSize     = 16
	KeyCount      = 16

	DisplayWidth  = 64
	DisplayHeight = 32
	DisplaySize   = DisplayWidth * DisplayHeight

	// opcodeSize is the size of CHIP-8 instructions in bytes.
	opcodeSize = 2

	// flagRegister is the register that receives carry, borrow and collision flags.
	flagRegister = 0xF
)

// Keys is the pressed state of the 16 keys of the hex keypad, indexed 0x0-0xF.
type Keys [KeyCount]bool

// Display is the monochrome framebuffer, one byte per pixel containing 0 or 1,
// stored row-major with index x + y*DisplayWidth.
type Display [DisplaySize]byte

// Pixel returns the pixel at the given coordinates, coordinates outside of
// the display return 0.
func (d *Display) Pixel(x, y int) byte {
	if x < 0 || y < 0 || x >= DisplayWidth || y >= DisplayHeight {
		return 0
	}
	return d[x+y*DisplayWidth]
}

// RandomSource provides the random numbers used by the Cxkk instruction.
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Uint32() uint32
}

// Option configures optional dependencies of a Machine.
type Option func(*Machine)

// WithLogger sets the logger that receives diagnostics like unknown opcodes.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithRandom sets the source of random numbers for the Cxkk instruction.
func WithRandom(source RandomSource) Option {
	return func(m *Machine) {
		m.random = source
	}
}

// WithSeed makes the random numbers of the Cxkk instruction reproducible.
func WithSeed(seed uint64) Option {
	return func(m *Machine) {
		m.random = rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	}
}

// Machine is the state of a single CHIP-8 system.
type Machine struct {
	memory [MemorySize]byte
	v      [RegisterCount]byte
	i      uint16 // index register
	pc     uint16 // program counter

	stack [StackSize]uint16
	sp    int // stack depth

	delayTimer byte
	soundTimer byte

	display Display
	quirks  Quirks

	logger         *log.Logger
	random         RandomSource
	unknownOpcodes uint64
}

// New returns a machine with cleared state, the font loaded into memory and
// the program counter pointing to ProgramStart.
func New(quirks Quirks, options ...Option) *Machine {
	m := &Machine{
		pc:     ProgramStart,
		quirks: quirks,
	}
	copy(m.memory[:], fontSet[:])

	for _, option := range options {
		option(m)
	}
	if m.random == nil {
		m.random = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return m
}

// Load copies a program image into memory starting at ProgramStart.
// Data that does not fit into memory is discarded. It returns the number of
// bytes that were copied.
func (m *Machine) Load(data []byte) int {
	return copy(m.memory[ProgramStart:], data)
}

// Step executes a single fetch/decode/execute cycle using the given key state.
func (m *Machine) Step(keys Keys) {
	opcode := m.fetch()
	m.execute(Decode(opcode), keys)
}

// TickTimers decrements the delay and sound timers if they are not zero.
func (m *Machine) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// fetch reads the big-endian instruction word at the program counter and
// advances the program counter past it.
func (m *Machine) fetch() uint16 {
	opcode := m.Opcode()
	m.pc += opcodeSize
	return opcode
}

// Opcode returns the instruction word at the program counter without
// executing it.
func (m *Machine) Opcode() uint16 {
	return uint16(m.read(m.pc))<<8 | uint16(m.read(m.pc+1))
}

func (m *Machine) read(address uint16) byte {
	return m.memory[address&MaxAddress]
}

func (m *Machine) write(address uint16, value byte) {
	m.memory[address&MaxAddress] = value
}

// ReadMemory returns the byte at the given address, the address is masked
// to the 4KB address space.
func (m *Machine) ReadMemory(address uint16) byte {
	return m.read(address)
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// Index returns the index register I.
func (m *Machine) Index() uint16 {
	return m.i
}

// Register returns the value of register Vx, x is masked to 0x0-0xF.
func (m *Machine) Register(x int) byte {
	return m.v[x&0x0F]
}

// Registers returns a copy of all general purpose registers.
func (m *Machine) Registers() [RegisterCount]byte {
	return m.v
}

// StackDepth returns the number of return addresses on the call stack.
func (m *Machine) StackDepth() int {
	return m.sp
}

// Stack returns a copy of the call stack, only the first StackDepth entries
// are in use.
func (m *Machine) Stack() [StackSize]uint16 {
	return m.stack
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() byte {
	return m.delayTimer
}

// SoundTimer returns the current sound timer value.
func (m *Machine) SoundTimer() byte {
	return m.soundTimer
}

// Sound returns whether the buzzer should be sounding.
func (m *Machine) Sound() bool {
	return m.soundTimer > 0
}

// Display returns a copy of the framebuffer.
func (m *Machine) Display() Display {
	return m.display
}

// Quirks returns the quirks the machine was created with.
func (m *Machine) Quirks() Quirks {
	return m.quirks
}

// UnknownOpcodes returns how many unknown instruction words were skipped.
func (m *Machine) UnknownOpcodes() uint64 {
	return m.unknownOpcodes
}

// State is a snapshot of the processor registers of a machine.
type State struct {
	V          [RegisterCount]byte
	I          uint16
	PC         uint16
	SP         int
	Stack      [StackSize]uint16
	DelayTimer byte
	SoundTimer byte
}

// State returns a snapshot of the processor registers.
func (m *Machine) State() State {
	return State{
		V:          m.v,
		I:          m.i,
		PC:         m.pc,
		SP:         m.sp,
		Stack:      m.stack,
		DelayTimer: m.delayTimer,
		SoundTimer: m.soundTimer,
	}
}

// String returns a multi line dump of the state.
func (s State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PC=%04X I=%04X SP=%d DT=%02X ST=%02X\n", s.PC, s.I, s.SP, s.DelayTimer, s.SoundTimer)
	for x, value := range s.V {
		fmt.Fprintf(&b, "V%X=%02X", x, value)
		if x%8 == 7 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	if s.SP > 0 {
		b.WriteString("stack:")
		for _, address := range s.Stack[:s.SP] {
			fmt.Fprintf(&b, " %04X", address)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
