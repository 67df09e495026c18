//go:build headless

package window

import (
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrogolib/log"
)

// Window is not available in headless builds.
type Window struct{}

// New returns ErrUnavailable in headless builds.
func New(_ *log.Logger, _ Config) (*Window, error) {
	return nil, ErrUnavailable
}

// ShouldClose always returns true.
func (w *Window) ShouldClose() bool {
	return true
}

// ProcessInput returns no input.
func (w *Window) ProcessInput() (chip8.Keys, host.Actions) {
	return chip8.Keys{}, host.Actions{}
}

// Render does nothing.
func (w *Window) Render(host.Frame) error {
	return nil
}

// Close does nothing.
func (w *Window) Close() error {
	return nil
}
