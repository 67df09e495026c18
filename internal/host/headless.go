package host

import (
	"github.com/retroenv/retrochip8/internal/chip8"
)

// KeyScript returns the keys held during the given frame.
type KeyScript func(frame uint64) chip8.Keys

// HeadlessOption configures a Headless platform.
type HeadlessOption func(*Headless)

// WithKeyScript sets the function that provides the input for every frame.
func WithKeyScript(script KeyScript) HeadlessOption {
	return func(h *Headless) {
		h.script = script
	}
}

// WithFrameLimit closes the platform after the given number of rendered frames.
func WithFrameLimit(frames uint64) HeadlessOption {
	return func(h *Headless) {
		h.frameLimit = frames
	}
}

// Headless is a platform without any input or output devices, it is used
// for automated runs and tests.
type Headless struct {
	script     KeyScript
	frameLimit uint64
	frames     uint64
	last       Frame
	closed     bool
}

// NewHeadless returns a headless platform.
func NewHeadless(options ...HeadlessOption) *Headless {
	h := &Headless{}
	for _, option := range options {
		option(h)
	}
	return h
}

// ShouldClose returns true once the frame limit is reached or Close was called.
func (h *Headless) ShouldClose() bool {
	if h.closed {
		return true
	}
	return h.frameLimit > 0 && h.frames >= h.frameLimit
}

// ProcessInput returns the scripted keys of the current frame.
func (h *Headless) ProcessInput() (chip8.Keys, Actions) {
	if h.script == nil {
		return chip8.Keys{}, Actions{}
	}
	return h.script(h.frames), Actions{}
}

// Render stores the frame.
func (h *Headless) Render(frame Frame) error {
	h.last = frame
	h.frames++
	return nil
}

// Close marks the platform as closed.
func (h *Headless) Close() error {
	h.closed = true
	return nil
}

// Frames returns the number of rendered frames.
func (h *Headless) Frames() uint64 {
	return h.frames
}

// LastFrame returns the most recently rendered frame.
func (h *Headless) LastFrame() Frame {
	return h.last
}
