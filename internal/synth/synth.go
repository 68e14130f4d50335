package synth

import (
	"math"

	"github.com/cbegin/fourier-synth-go/internal/coeffs"
)

// Samples is the length of one period of the fundamental.
const Samples = 80

// step is the phase advance of the fundamental per sample.
const step = 2 * math.Pi / Samples

// Waveform holds one full period.
type Waveform [Samples]float64

// Synthesize sums the cosine and sine terms of every harmonic. The constant
// term carries half weight. The result depends only on c.
func Synthesize(c coeffs.Set) Waveform {
	var w Waveform
	dc := float64(c.A[0]) / (2 * coeffs.Scale)
	for i := range w {
		y := dc
		for k := 1; k < coeffs.Harmonics; k++ {
			phase := float64(k*i) * step
			y += float64(c.A[k]) / coeffs.Scale * math.Cos(phase)
			y += float64(c.B[k]) / coeffs.Scale * math.Sin(phase)
		}
		w[i] = y
	}
	return w
}

// Peak returns the smallest and largest sample.
func (w Waveform) Peak() (lo, hi float64) {
	lo, hi = w[0], w[0]
	for _, v := range w[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// Tile repeats the period for display. periods < 1 is treated as 1.
func (w Waveform) Tile(periods int) []float64 {
	if periods < 1 {
		periods = 1
	}
	out := make([]float64, 0, periods*Samples)
	for p := 0; p < periods; p++ {
		out = append(out, w[:]...)
	}
	return out
}
