package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// fixedRandom returns the same value for every random number request.
type fixedRandom uint32

func (f fixedRandom) Uint32() uint32 {
	return uint32(f)
}

func newTestMachine(t *testing.T, quirks Quirks) *Machine {
	t.Helper()
	return New(quirks, WithLogger(log.NewTestLogger(t)), WithRandom(fixedRandom(0xFF)))
}

// exec executes a single instruction word at the current program counter.
func exec(m *Machine, opcode uint16, keys Keys) {
	m.write(m.pc, byte(opcode>>8))
	m.write(m.pc+1, byte(opcode))
	m.Step(keys)
}

func TestNew(t *testing.T) {
	m := New(Quirks{})

	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, uint16(0), m.Index())
	assert.Equal(t, 0, m.StackDepth())
	assert.Equal(t, byte(0), m.DelayTimer())
	assert.Equal(t, byte(0), m.SoundTimer())
	assert.Equal(t, [RegisterCount]byte{}, m.Registers())
	assert.Equal(t, Display{}, m.Display())
	assert.False(t, m.Quirks().ShiftVY)

	for i, b := range fontSet {
		assert.Equal(t, b, m.ReadMemory(uint16(i)))
	}
	assert.Equal(t, byte(0), m.ReadMemory(0x050))
	assert.Equal(t, byte(0), m.ReadMemory(ProgramStart))
}

func TestNew_Quirks(t *testing.T) {
	m := New(Quirks{ShiftVY: true})
	assert.True(t, m.Quirks().ShiftVY)
}

func TestLoad(t *testing.T) {
	m := New(Quirks{})

	n := m.Load([]byte{0x60, 0x05, 0x70, 0x0A})
	assert.Equal(t, 4, n)
	assert.Equal(t, byte(0x60), m.ReadMemory(0x200))
	assert.Equal(t, byte(0x05), m.ReadMemory(0x201))
	assert.Equal(t, byte(0x70), m.ReadMemory(0x202))
	assert.Equal(t, byte(0x0A), m.ReadMemory(0x203))
	assert.Equal(t, uint16(ProgramStart), m.PC())
}

func TestLoad_Truncates(t *testing.T) {
	m := New(Quirks{})

	data := make([]byte, MaxProgramSize+100)
	for i := range data {
		data[i] = byte(i)
	}

	n := m.Load(data)
	assert.Equal(t, MaxProgramSize, n)
	assert.Equal(t, byte((MaxProgramSize-1)&0xFF), m.ReadMemory(MaxAddress))
	// font must not be overwritten by wrapping data
	assert.Equal(t, fontSet[0], m.ReadMemory(0))
}

func TestStep_Example(t *testing.T) {
	m := newTestMachine(t, Quirks{})
	m.Load([]byte{0x60, 0x05, 0x70, 0x0A})

	m.Step(Keys{})
	m.Step(Keys{})

	assert.Equal(t, byte(15), m.Register(0))
	assert.Equal(t, uint16(0x204), m.PC())
}

func TestStep_FetchAtEndOfMemory(t *testing.T) {
	tests := []struct {
		name   string
		pc     uint16
		wantPC uint16
	}{
		{"last word", 0xFFE, 0x1000},
		{"odd last byte", 0xFFF, 0x1001},
		{"beyond memory", 0x10FE, 0x1100},
		{"wrapping counter", 0xFFFF, 0x0001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, Quirks{})
			m.pc = tt.pc
			m.Step(Keys{})
			assert.Equal(t, tt.wantPC, m.PC())
		})
	}
}

func TestOpcode(t *testing.T) {
	m := New(Quirks{})
	m.Load([]byte{0xA2, 0x34})

	assert.Equal(t, uint16(0xA234), m.Opcode())
	assert.Equal(t, uint16(ProgramStart), m.PC())
}

func TestTickTimers(t *testing.T) {
	m := New(Quirks{})
	m.delayTimer = 2
	m.soundTimer = 1

	m.TickTimers()
	assert.Equal(t, byte(1), m.DelayTimer())
	assert.Equal(t, byte(0), m.SoundTimer())
	assert.False(t, m.Sound())

	m.TickTimers()
	assert.Equal(t, byte(0), m.DelayTimer())

	m.TickTimers()
	assert.Equal(t, byte(0), m.DelayTimer())
	assert.Equal(t, byte(0), m.SoundTimer())
}

func TestTickTimers_IndependentOfStep(t *testing.T) {
	m := newTestMachine(t, Quirks{})
	m.Load([]byte{0x60, 0x05, 0xF0, 0x15, 0xF0, 0x18}) // V0=5, DT=V0, ST=V0

	for range 3 {
		m.Step(Keys{})
	}
	assert.Equal(t, byte(5), m.DelayTimer())
	assert.Equal(t, byte(5), m.SoundTimer())
	assert.True(t, m.Sound())

	m.TickTimers()
	assert.Equal(t, byte(4), m.DelayTimer())
	assert.Equal(t, byte(4), m.SoundTimer())
}

func TestWithSeed(t *testing.T) {
	program := []byte{0xC0, 0xFF, 0xC1, 0xFF, 0xC2, 0xFF}

	run := func() [RegisterCount]byte {
		m := New(Quirks{}, WithSeed(1234))
		m.Load(program)
		for range 3 {
			m.Step(Keys{})
		}
		return m.Registers()
	}

	assert.Equal(t, run(), run())
}

func TestMachinesAreIndependent(t *testing.T) {
	m1 := newTestMachine(t, Quirks{})
	m2 := newTestMachine(t, Quirks{})

	exec(m1, 0x6042, Keys{})
	assert.Equal(t, byte(0x42), m1.Register(0))
	assert.Equal(t, byte(0), m2.Register(0))
}

func TestDisplay_Pixel(t *testing.T) {
	var d Display
	d[5+3*DisplayWidth] = 1

	assert.Equal(t, byte(1), d.Pixel(5, 3))
	assert.Equal(t, byte(0), d.Pixel(4, 3))
	assert.Equal(t, byte(0), d.Pixel(-1, 0))
	assert.Equal(t, byte(0), d.Pixel(DisplayWidth, 0))
	assert.Equal(t, byte(0), d.Pixel(0, DisplayHeight))
}

func TestState_String(t *testing.T) {
	m := newTestMachine(t, Quirks{})
	exec(m, 0x6A1F, Keys{})
	exec(m, 0x2300, Keys{})

	s := m.State()
	assert.Equal(t, uint16(0x300), s.PC)
	assert.Equal(t, 1, s.SP)
	assert.Equal(t, byte(0x1F), s.V[0xA])

	dump := s.String()
	assert.Contains(t, dump, "PC=0300")
	assert.Contains(t, dump, "VA=1F")
	assert.Contains(t, dump, "stack: 0204")
}
