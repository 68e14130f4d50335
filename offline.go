package fouriersynth

import (
	"errors"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/audpbx/utils"

	"github.com/cbegin/fourier-synth-go/internal/frame"
	"github.com/cbegin/fourier-synth-go/internal/synth"
)

var ErrInvalidDuration = errors.New("duration must be positive")

// Render computes the waveform and frame for c without an engine.
func Render(c Coefficients) (Waveform, Frame) {
	w := synth.Synthesize(c)
	return w, frame.Build(w)
}

// RenderLoop decodes f and repeats it for the given number of seconds at
// SampleRate, the way the playback device hears it.
func RenderLoop(f Frame, seconds float64) ([]float32, error) {
	if !(seconds > 0) || math.IsInf(seconds, 0) {
		return nil, ErrInvalidDuration
	}
	period := f.Decode(nil)
	n := int(math.Round(seconds * SampleRate))
	if n == 0 {
		n = 1
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = period[i%len(period)]
	}
	return out, nil
}

// ExportWAV writes seconds of the looped frame as 16-bit mono PCM.
func ExportWAV(w io.WriteSeeker, f Frame, seconds float64) error {
	samples, err := RenderLoop(f, seconds)
	if err != nil {
		return err
	}
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(utils.Float32ToInt16(s))
	}
	enc := wav.NewEncoder(w, SampleRate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  SampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("export wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("export wav: %w", err)
	}
	return nil
}

// ExportWAV writes the engine's current frame; see the package function.
func (e *Engine) ExportWAV(w io.WriteSeeker, seconds float64) error {
	return ExportWAV(w, e.AudioFrame(), seconds)
}
