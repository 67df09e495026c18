package host

import (
	"errors"

	"github.com/retroenv/retrochip8/internal/chip8"
)

var errRender = errors.New("render failed")

// mockPlatform returns queued actions and records rendered frames.
type mockPlatform struct {
	keys      chip8.Keys
	actions   []Actions
	frames    []Frame
	closeAt   int // close after this many frames, 0 never closes
	renderErr error
}

func (m *mockPlatform) ShouldClose() bool {
	return m.closeAt > 0 && len(m.frames) >= m.closeAt
}

func (m *mockPlatform) ProcessInput() (chip8.Keys, Actions) {
	if len(m.actions) == 0 {
		return m.keys, Actions{}
	}
	actions := m.actions[0]
	m.actions = m.actions[1:]
	return m.keys, actions
}

func (m *mockPlatform) Render(frame Frame) error {
	if m.renderErr != nil {
		return m.renderErr
	}
	m.frames = append(m.frames, frame)
	return nil
}

func (m *mockPlatform) Close() error {
	return nil
}

// mockBeeper records every buzzer update.
type mockBeeper struct {
	states []bool
}

func (m *mockBeeper) SetBeep(on bool) {
	m.states = append(m.states, on)
}

// mockSink counts the received frames.
type mockSink struct {
	frames int
	last   chip8.Display
}

func (m *mockSink) AddFrame(display *chip8.Display) {
	m.frames++
	m.last = *display
}
