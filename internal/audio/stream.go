package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	pbx "github.com/ik5/audpbx/audio"

	"github.com/cbegin/fourier-synth-go/internal/frame"
	"github.com/cbegin/fourier-synth-go/internal/mulaw"
)

// LoopSource repeats a mu-law frame forever as mono float32 at
// frame.SampleRate. It reads buf on every call, so buf must not be
// rewritten while a player is pulling from it.
type LoopSource struct {
	buf []byte
	pos int
}

func NewLoopSource(buf []byte) (*LoopSource, error) {
	if len(buf) == 0 {
		return nil, ErrEmptyFrame
	}
	return &LoopSource{buf: buf}, nil
}

func (s *LoopSource) SampleRate() int { return frame.SampleRate }
func (s *LoopSource) Channels() int   { return 1 }
func (s *LoopSource) BufSize() int    { return len(s.buf) }
func (s *LoopSource) Close() error    { return nil }

// ReadSamples never reports io.EOF; the loop wraps seamlessly.
func (s *LoopSource) ReadSamples(dst []float32) (int, error) {
	for i := range dst {
		dst[i] = float32(mulaw.Decode(s.buf[s.pos])) / mulaw.Saturate
		s.pos++
		if s.pos == len(s.buf) {
			s.pos = 0
		}
	}
	return len(dst), nil
}

// StreamReader pulls mono samples from a Source and writes them as
// float32LE, duplicated across channels.
type StreamReader struct {
	mu       sync.Mutex
	source   pbx.Source
	channels int
	buf      []float32
}

func NewStreamReader(source pbx.Source, channels int) *StreamReader {
	if channels < 1 {
		channels = 1
	}
	return &StreamReader{source: source, channels: channels}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stride := 4 * r.channels
	frames := len(p) / stride
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buf) < frames {
		r.buf = make([]float32, frames)
	}
	r.buf = r.buf[:frames]
	n, err := r.source.ReadSamples(r.buf)
	for i := 0; i < n; i++ {
		u := math.Float32bits(r.buf[i])
		for ch := 0; ch < r.channels; ch++ {
			binary.LittleEndian.PutUint32(p[i*stride+ch*4:], u)
		}
	}
	if err != nil {
		return n * stride, fmt.Errorf("audio: read: %w", err)
	}
	return n * stride, nil
}

func (r *StreamReader) Close() error { return r.source.Close() }

// newLoopStream builds the frame -> resampler -> byte stream chain for a
// device running at sampleRate.
func newLoopStream(buf []byte, sampleRate, channels int) (*StreamReader, error) {
	src, err := NewLoopSource(buf)
	if err != nil {
		return nil, err
	}
	var s pbx.Source = src
	if sampleRate != frame.SampleRate {
		s = pbx.NewResampler(src, sampleRate)
	}
	return NewStreamReader(s, channels), nil
}
