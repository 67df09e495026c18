// Package chip8 implements the CHIP-8 interpreter core.
//
// # Machine Layout
//
// A Machine owns the complete state of one CHIP-8 system:
//   - 4KB of memory (0x000-MaxAddress), the built-in font at 0x000-0x04F
//   - 16 general purpose 8-bit registers V0-VF, VF doubles as flag output
//   - the 16-bit index register I and the program counter
//   - a 16 level call stack
//   - the delay and sound timers
//   - a 64x32 monochrome display, one byte per pixel
//
// Programs are loaded at ProgramStart (0x200), which is also where execution
// starts.
//
// # Execution
//
// Step runs exactly one fetch/decode/execute cycle using the key snapshot
// that is passed in. TickTimers decrements both timers and is meant to be
// called at 60 Hz, independent of the instruction rate. Neither call blocks:
// the "wait for key" instruction rewinds the program counter so that it is
// executed again on the next Step until a key is pressed.
//
// The core has no fatal error conditions. Oversized programs are truncated,
// stack overflows and underflows are ignored, unknown opcodes are logged and
// skipped and sprite coordinates wrap around the display buffer.
//
// # Usage Example
//
//	m := chip8.New(chip8.Quirks{ShiftVY: false}, chip8.WithLogger(logger))
//	m.Load(rom)
//
//	var keys chip8.Keys
//	for {
//		m.Step(keys)
//	}
//
// A Machine is not safe for concurrent use, the caller has to serialize calls
// to Step and TickTimers.
package chip8
