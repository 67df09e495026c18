// Package host drives a CHIP-8 machine in real time and connects it to a
// frontend that provides input, video and sound.
package host

import (
	"context"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Platform is a frontend the runner reads input from and renders frames to.
type Platform interface {
	// ShouldClose returns whether the user requested to quit.
	ShouldClose() bool
	// ProcessInput returns the currently held keys and the UI actions
	// triggered since the last call.
	ProcessInput() (chip8.Keys, Actions)
	// Render presents a frame.
	Render(frame Frame) error
	// Close releases the resources of the platform.
	Close() error
}

// MainLooper is implemented by platforms that need to own the main goroutine,
// like windowing toolkits. RunMain blocks until the platform closes or the
// context is canceled.
type MainLooper interface {
	RunMain(ctx context.Context) error
}

// Beeper receives the buzzer state once per frame.
type Beeper interface {
	SetBeep(on bool)
}

// FrameSink receives every rendered display.
type FrameSink interface {
	AddFrame(display *chip8.Display)
}

// Actions are the UI actions a platform can trigger.
type Actions struct {
	ToggleCycles    bool // toggle the cycle statistics overlay
	ToggleRegisters bool // toggle the register overlay
	ToggleDisplay   bool // toggle drawing of the emulator display
	IncreaseSpeed   bool
	DecreaseSpeed   bool
}

// DebugInfo contains the runtime statistics and toggles shown by frontends.
type DebugInfo struct {
	ShowCycles    bool
	ShowRegisters bool
	ShowDisplay   bool

	TargetCyclesPerSecond int
	CyclesPerSecond       uint64 // cycles executed during the last emulated second
	TotalCycles           uint64
	Frames                uint64

	State chip8.State
}

// Frame is a single video frame passed to the platform.
type Frame struct {
	Display chip8.Display
	Debug   DebugInfo
}
