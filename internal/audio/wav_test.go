package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/retroenv/retrogolib/assert"
)

func TestWavRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beep.wav")

	recorder, err := NewWavRecorder(path)
	assert.NoError(t, err)

	recorder.SetBeep(true)
	recorder.SetBeep(true)
	recorder.SetBeep(false)
	assert.NoError(t, recorder.Close())

	file, err := os.Open(path)
	assert.NoError(t, err)
	defer func() { _ = file.Close() }()

	decoder := wav.NewDecoder(file)
	assert.True(t, decoder.IsValidFile())

	buf, err := decoder.FullPCMBuffer()
	assert.NoError(t, err)
	assert.Equal(t, uint32(SampleRate), decoder.SampleRate)
	assert.Equal(t, uint16(wavBitDepth), decoder.BitDepth)
	assert.Equal(t, uint16(1), decoder.NumChans)
	assert.Len(t, buf.Data, 3*samplesPerFrame)

	assert.Equal(t, wavAmplitude, buf.Data[0])
	assert.Equal(t, -wavAmplitude, buf.Data[SampleRate/ToneFrequency/2])
	for _, sample := range buf.Data[2*samplesPerFrame:] {
		assert.Equal(t, 0, sample)
	}
}

func TestWavRecorder_InvalidPath(t *testing.T) {
	_, err := NewWavRecorder(filepath.Join(t.TempDir(), "missing", "beep.wav"))
	assert.Error(t, err)
}
