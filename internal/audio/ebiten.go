package audio

import (
	"fmt"
	"sync"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// DefaultSampleRate is the output rate of the desktop backends.
const DefaultSampleRate = 48000

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

// sharedAudioContext returns the process-wide ebiten context. ebiten allows
// only one, so a second rate is an error.
func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		if c := ebitaudio.CurrentContext(); c != nil {
			audioContext = c
			audioSampleRate = c.SampleRate()
			return
		}
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("%w: %d Hz (requested %d Hz)", ErrContextRate, audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

// EbitenDevice loops the frame through an ebiten audio player.
type EbitenDevice struct {
	mu         sync.Mutex
	sampleRate int
	player     *ebitaudio.Player
	reader     *StreamReader
}

func NewEbitenDevice(sampleRate int) (*EbitenDevice, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if _, err := sharedAudioContext(sampleRate); err != nil {
		return nil, err
	}
	return &EbitenDevice{sampleRate: sampleRate}, nil
}

func (d *EbitenDevice) Start(buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.player != nil {
		return nil
	}
	ctx, err := sharedAudioContext(d.sampleRate)
	if err != nil {
		return err
	}
	reader, err := newLoopStream(buf, d.sampleRate, 2)
	if err != nil {
		return err
	}
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return err
	}
	d.player = pl
	d.reader = reader
	d.player.Play()
	return nil
}

// Stop returns only once the player has been closed, so the frame is no
// longer read afterwards.
func (d *EbitenDevice) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.player == nil {
		return nil
	}
	d.player.Pause()
	err := d.player.Close()
	d.player = nil
	if cerr := d.reader.Close(); err == nil {
		err = cerr
	}
	d.reader = nil
	return err
}

func (d *EbitenDevice) IsPlaying() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.player != nil && d.player.IsPlaying()
}
