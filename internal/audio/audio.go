// Package audio implements the outputs for the CHIP-8 buzzer, a speaker
// playing a square wave tone and a recorder writing the tone to a WAV file.
package audio

import (
	"errors"
)

const (
	// SampleRate is the sample rate of all generated audio.
	SampleRate = 44100

	// ToneFrequency is the frequency of the buzzer tone in Hz.
	ToneFrequency = 440

	// samplesPerFrame is the number of samples covering one 60 Hz frame.
	samplesPerFrame = SampleRate / 60
)

// ErrNoAudioDevice is returned when the binary was built without audio support.
var ErrNoAudioDevice = errors.New("audio output not supported in this build")

// Beeper is an output for the buzzer state.
type Beeper interface {
	SetBeep(on bool)
	Close() error
}

// squareWave generates a square wave with values of -1 and 1.
type squareWave struct {
	period   int // samples per period
	position int
}

func newSquareWave(sampleRate, frequency int) *squareWave {
	return &squareWave{
		period: max(sampleRate/frequency, 2),
	}
}

func (s *squareWave) next() float32 {
	value := float32(1)
	if s.position >= s.period/2 {
		value = -1
	}
	s.position = (s.position + 1) % s.period
	return value
}

// Multi forwards the buzzer state to multiple beepers.
type Multi struct {
	beepers []Beeper
}

// NewMulti returns a beeper that forwards to all given beepers.
func NewMulti(beepers ...Beeper) *Multi {
	return &Multi{
		beepers: beepers,
	}
}

// SetBeep forwards the buzzer state.
func (m *Multi) SetBeep(on bool) {
	for _, beeper := range m.beepers {
		beeper.SetBeep(on)
	}
}

// Close closes all beepers and returns all errors that occurred.
func (m *Multi) Close() error {
	var errs []error
	for _, beeper := range m.beepers {
		if err := beeper.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of beepers.
func (m *Multi) Len() int {
	return len(m.beepers)
}
