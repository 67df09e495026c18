//go:build !headless

package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

// speakerVolume is the amplitude of the generated tone.
const speakerVolume = 0.2

// Speaker plays the buzzer tone on the default audio device.
type Speaker struct {
	ctx    *oto.Context
	player *oto.Player
	wave   *squareWave
	on     atomic.Bool
	mutex  sync.Mutex // only for setup and close
}

// NewSpeaker opens the default audio device and starts the playback of
// silence until the buzzer is enabled.
func NewSpeaker() (*Speaker, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	s := &Speaker{
		ctx:  ctx,
		wave: newSquareWave(SampleRate, ToneFrequency),
	}
	s.player = ctx.NewPlayer(s)
	s.player.Play()
	return s, nil
}

// SetBeep enables or disables the tone.
func (s *Speaker) SetBeep(on bool) {
	s.on.Store(on)
}

// Read implements io.Reader for the audio player. It is called from the
// audio goroutine.
func (s *Speaker) Read(p []byte) (int, error) {
	on := s.on.Load()
	samples := len(p) / 4

	for i := range samples {
		var value float32
		if on {
			value = s.wave.next() * speakerVolume
		}
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(value))
	}
	return samples * 4, nil
}

// Close stops the playback.
func (s *Speaker) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.player == nil {
		return nil
	}
	err := s.player.Close()
	s.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
