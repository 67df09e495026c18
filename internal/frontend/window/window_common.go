// Package window implements a desktop window frontend using ebiten.
//
// The CHIP-8 keypad is mapped to the hexadecimal keys of the keyboard, 0-9
// and A-F. Additional keys:
//
//	F1          toggle cycle statistics
//	F2          toggle register overlay
//	F3          toggle the emulator display
//	F4          copy the machine state to the clipboard
//	PageUp/Down change the emulation speed
//	[ and ]     cycle the pixel color
package window

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/host"
)

// ErrUnavailable is returned when the binary was built without window support.
var ErrUnavailable = errors.New("window frontend not supported in this build")

// Config contains the window settings.
type Config struct {
	PixelSize int
	Title     string
}

var palette = []color.RGBA{
	{R: 230, G: 41, B: 55, A: 255},   // red
	{R: 0, G: 121, B: 241, A: 255},   // blue
	{R: 0, G: 228, B: 48, A: 255},    // green
	{R: 253, G: 249, B: 0, A: 255},   // yellow
	{R: 255, G: 161, B: 0, A: 255},   // orange
	{R: 200, G: 122, B: 255, A: 255}, // purple
	{R: 255, G: 109, B: 194, A: 255}, // pink
	{R: 255, G: 203, B: 0, A: 255},   // gold
	{R: 0, G: 158, B: 47, A: 255},    // lime
	{R: 190, G: 33, B: 55, A: 255},   // maroon
	{R: 0, G: 82, B: 172, A: 255},    // dark blue
	{R: 0, G: 117, B: 44, A: 255},    // dark green
	{R: 112, G: 31, B: 126, A: 255},  // dark purple
	{R: 80, G: 80, B: 80, A: 255},    // dark gray
	{R: 130, G: 130, B: 130, A: 255}, // gray
	{R: 0, G: 0, B: 0, A: 255},       // black
	{R: 255, G: 255, B: 255, A: 255}, // white
	{R: 245, G: 245, B: 245, A: 255}, // off-white
	{R: 255, G: 0, B: 255, A: 255},   // magenta
}

// cyclePalette moves the palette index by delta and wraps around at both ends.
func cyclePalette(index, delta int) int {
	n := len(palette)
	return ((index+delta)%n + n) % n
}

// fillPixels writes the display into an RGBA pixel buffer of the display size.
func fillPixels(pixels []byte, display *chip8.Display, on color.RGBA) {
	for i, pixel := range display {
		offset := i * 4
		if pixel == 0 {
			pixels[offset] = 0
			pixels[offset+1] = 0
			pixels[offset+2] = 0
			pixels[offset+3] = 0xFF
			continue
		}
		pixels[offset] = on.R
		pixels[offset+1] = on.G
		pixels[offset+2] = on.B
		pixels[offset+3] = on.A
	}
}

// cycleLines returns the lines of the cycle statistics overlay.
func cycleLines(debug host.DebugInfo) []string {
	return []string{
		fmt.Sprintf("Cycles per second: %d (target %d)", debug.CyclesPerSecond, debug.TargetCyclesPerSecond),
		fmt.Sprintf("Total cycles: %d", debug.TotalCycles),
	}
}

// registerLines returns the lines of the register overlay.
func registerLines(debug host.DebugInfo) []string {
	state := debug.State
	lines := make([]string, 0, chip8.RegisterCount+3)
	for x, value := range state.V {
		lines = append(lines, fmt.Sprintf("V%X: %02X", x, value))
	}
	lines = append(lines,
		fmt.Sprintf("I:  %03X", state.I),
		fmt.Sprintf("PC: %03X", state.PC),
		fmt.Sprintf("SP: %d", state.SP),
	)
	return lines
}
