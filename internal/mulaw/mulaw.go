// Package mulaw implements the 8-segment companding law used for the
// looped audio frame. Each segment carries 4 mantissa bits; small
// magnitudes get the finest steps.
package mulaw

import "math"

// segment covers magnitudes in [offset, limit) with steps of divisor.
type segment struct {
	limit   int
	base    byte
	divisor int
	offset  int
}

// segments is evaluated top to bottom; the first matching limit wins.
var segments = [...]segment{
	{limit: 32, base: 0xF0, divisor: 2, offset: 0},
	{limit: 96, base: 0xE0, divisor: 4, offset: 32},
	{limit: 224, base: 0xD0, divisor: 8, offset: 96},
	{limit: 480, base: 0xC0, divisor: 16, offset: 224},
	{limit: 992, base: 0xB0, divisor: 32, offset: 480},
	{limit: 2016, base: 0xA0, divisor: 64, offset: 992},
	{limit: 4064, base: 0x90, divisor: 128, offset: 2016},
	{limit: 8160, base: 0x80, divisor: 256, offset: 4064},
}

const (
	// Saturate is the smallest magnitude that clips.
	Saturate = 8160

	saturated    byte = 0x80
	positiveMask byte = 0xFF
	negativeMask byte = 0x7F
)

// Encode compresses one linear sample into a byte. Every int maps to a
// defined byte; magnitudes >= Saturate clip.
func Encode(sample int) byte {
	mask := positiveMask
	ch := sample
	if ch < 0 {
		ch = -ch
		mask = negativeMask
		if ch < 0 { // math.MinInt
			ch = math.MaxInt
		}
	}
	return mask & compress(ch)
}

func compress(ch int) byte {
	for _, s := range segments {
		if ch < s.limit {
			return s.base | byte(15-(ch-s.offset)/s.divisor)
		}
	}
	return saturated
}

// EncodeAll appends the encoding of samples to dst[:0], reusing its
// capacity when possible.
func EncodeAll(dst []byte, samples []int) []byte {
	if cap(dst) < len(samples) {
		dst = make([]byte, len(samples))
	} else {
		dst = dst[:len(samples)]
	}
	for i, s := range samples {
		dst[i] = Encode(s)
	}
	return dst
}

// Decode expands b to the lower edge of its quantisation step.
// Decode(Encode(x)) is within one step below x for |x| < Saturate.
func Decode(b byte) int {
	v := b | 0x80
	seg := segments[(0xF0-(v&0xF0))>>4]
	mag := seg.offset + int(15-(v&0x0F))*seg.divisor
	if b&0x80 == 0 {
		return -mag
	}
	return mag
}

// Step returns the quantisation step of the segment that holds b.
func Step(b byte) int {
	v := b | 0x80
	return segments[(0xF0-(v&0xF0))>>4].divisor
}
