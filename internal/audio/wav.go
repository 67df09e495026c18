package audio

import (
	"errors"
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavBitDepth  = 16
	wavFormatPCM = 1
	wavAmplitude = 8000
)

// WavRecorder writes the buzzer tone to a WAV file, one frame of samples per
// buzzer update.
type WavRecorder struct {
	file    *os.File
	encoder *wav.Encoder
	wave    *squareWave
	buf     *goaudio.IntBuffer
	err     error // first write error, returned by Close
}

// NewWavRecorder creates the WAV file at the given path.
func NewWavRecorder(path string) (*WavRecorder, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating wav file %s: %w", path, err)
	}

	return &WavRecorder{
		file:    file,
		encoder: wav.NewEncoder(file, SampleRate, wavBitDepth, 1, wavFormatPCM),
		wave:    newSquareWave(SampleRate, ToneFrequency),
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: 1,
				SampleRate:  SampleRate,
			},
			Data:           make([]int, samplesPerFrame),
			SourceBitDepth: wavBitDepth,
		},
	}, nil
}

// SetBeep appends one frame of the tone or of silence to the file.
func (w *WavRecorder) SetBeep(on bool) {
	if w.err != nil {
		return
	}

	for i := range w.buf.Data {
		if on {
			w.buf.Data[i] = int(w.wave.next() * wavAmplitude)
		} else {
			w.buf.Data[i] = 0
		}
	}

	if err := w.encoder.Write(w.buf); err != nil {
		w.err = fmt.Errorf("writing wav samples: %w", err)
	}
}

// Close finalizes the WAV header and closes the file.
func (w *WavRecorder) Close() error {
	errs := []error{w.err}
	if err := w.encoder.Close(); err != nil {
		errs = append(errs, fmt.Errorf("finalizing wav file: %w", err))
	}
	if err := w.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing wav file: %w", err))
	}
	return errors.Join(errs...)
}
