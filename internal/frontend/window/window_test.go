package window

import (
	"image/color"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrogolib/assert"
)

func TestPalette(t *testing.T) {
	assert.Len(t, palette, 19)
}

func TestCyclePalette(t *testing.T) {
	assert.Equal(t, 1, cyclePalette(0, 1))
	assert.Equal(t, len(palette)-1, cyclePalette(0, -1))
	assert.Equal(t, 0, cyclePalette(len(palette)-1, 1))
	assert.Equal(t, 5, cyclePalette(5, len(palette)))
}

func TestFillPixels(t *testing.T) {
	var display chip8.Display
	display[1] = 1
	pixels := make([]byte, chip8.DisplaySize*4)
	on := color.RGBA{R: 1, G: 2, B: 3, A: 255}

	fillPixels(pixels, &display, on)
	assert.Equal(t, []byte{0, 0, 0, 0xFF}, pixels[0:4])
	assert.Equal(t, []byte{1, 2, 3, 255}, pixels[4:8])
}

func TestOverlayLines(t *testing.T) {
	debug := host.DebugInfo{
		TargetCyclesPerSecond: 1000,
		CyclesPerSecond:       998,
		TotalCycles:           12345,
	}
	debug.State.V[0xA] = 0x1F
	debug.State.PC = 0x234

	cycles := cycleLines(debug)
	assert.Equal(t, "Cycles per second: 998 (target 1000)", cycles[0])
	assert.Equal(t, "Total cycles: 12345", cycles[1])

	registers := registerLines(debug)
	assert.Len(t, registers, chip8.RegisterCount+3)
	assert.Equal(t, "VA: 1F", registers[0xA])
	assert.Equal(t, "PC: 234", registers[chip8.RegisterCount+1])
}

func TestNew_InvalidPixelSize(t *testing.T) {
	_, err := New(nil, Config{})
	assert.Error(t, err)
}
