//go:build headless

package audio

// Speaker is not available in headless builds.
type Speaker struct{}

// NewSpeaker returns ErrNoAudioDevice in headless builds.
func NewSpeaker() (*Speaker, error) {
	return nil, ErrNoAudioDevice
}

// SetBeep does nothing.
func (s *Speaker) SetBeep(bool) {}

// Close does nothing.
func (s *Speaker) Close() error {
	return nil
}
