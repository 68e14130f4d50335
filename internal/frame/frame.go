package frame

import (
	"math"

	"github.com/cbegin/fourier-synth-go/internal/mulaw"
	"github.com/cbegin/fourier-synth-go/internal/synth"
)

const (
	// Size is half the waveform length; only odd samples are kept.
	Size = synth.Samples / 2
	// SampleRate of the encoded frame in Hz.
	SampleRate = 8000
	// Gain scales a waveform sample before encoding.
	Gain = 100
)

// Frame is one mu-law encoded period, looped by the playback device.
type Frame [Size]byte

// Build encodes the odd-indexed samples of w.
func Build(w synth.Waveform) Frame {
	var f Frame
	BuildInto(&f, w)
	return f
}

// BuildInto overwrites dst in place. Callers sharing dst with a playback
// device must stop the device first.
func BuildInto(dst *Frame, w synth.Waveform) {
	for n := range dst {
		dst[n] = mulaw.Encode(Quantize(w[2*n+1]))
	}
}

// Quantize scales a waveform sample to the integer domain of the encoder.
func Quantize(sample float64) int {
	return int(math.Round(sample * Gain))
}

// Decode expands f into linear samples in [-1, 1].
func (f *Frame) Decode(dst []float32) []float32 {
	if cap(dst) < Size {
		dst = make([]float32, Size)
	} else {
		dst = dst[:Size]
	}
	for i, b := range f {
		dst[i] = float32(mulaw.Decode(b)) / mulaw.Saturate
	}
	return dst
}
