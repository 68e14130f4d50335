package audio

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cbegin/fourier-synth-go/internal/playback"
)

// NullDevice accepts the frame without producing sound. Used headless.
type NullDevice struct {
	mu      sync.Mutex
	playing bool
	starts  int
}

func NewNullDevice() *NullDevice { return &NullDevice{} }

func (d *NullDevice) Start(buf []byte) error {
	if len(buf) == 0 {
		return ErrEmptyFrame
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.playing = true
	d.starts++
	return nil
}

func (d *NullDevice) Stop() error {
	d.mu.Lock()
	d.playing = false
	d.mu.Unlock()
	return nil
}

func (d *NullDevice) IsPlaying() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.playing
}

// Starts counts successful Start calls.
func (d *NullDevice) Starts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.starts
}

// Backends lists the names accepted by Open.
var Backends = []string{"ebiten", "oto", "null"}

// Open returns the device registered under name.
func Open(name string, sampleRate int) (playback.Device, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ebiten":
		d, err := NewEbitenDevice(sampleRate)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "oto":
		d, err := NewOtoDevice(sampleRate)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "null", "none":
		return NewNullDevice(), nil
	default:
		return nil, fmt.Errorf("%w %q (expected %s)", ErrUnknownBackend, name, strings.Join(Backends, "|"))
	}
}
