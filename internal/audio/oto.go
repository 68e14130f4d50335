package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

var (
	otoContextOnce sync.Once
	otoContext     *oto.Context
	otoContextErr  error
	otoSampleRate  int
)

func sharedOtoContext(sampleRate int) (*oto.Context, error) {
	otoContextOnce.Do(func() {
		otoSampleRate = sampleRate
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			otoContextErr = err
			return
		}
		<-ready
		otoContext = ctx
	})
	if otoContextErr != nil {
		return nil, otoContextErr
	}
	if otoSampleRate != sampleRate {
		return nil, fmt.Errorf("%w: %d Hz (requested %d Hz)", ErrContextRate, otoSampleRate, sampleRate)
	}
	return otoContext, nil
}

// OtoDevice drives oto directly, without the ebiten audio mixer. It cannot
// share a process with EbitenDevice; oto allows a single context.
type OtoDevice struct {
	mu         sync.Mutex
	sampleRate int
	player     *oto.Player
	reader     *StreamReader
}

func NewOtoDevice(sampleRate int) (*OtoDevice, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if _, err := sharedOtoContext(sampleRate); err != nil {
		return nil, err
	}
	return &OtoDevice{sampleRate: sampleRate}, nil
}

func (d *OtoDevice) Start(buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.player != nil {
		return nil
	}
	ctx, err := sharedOtoContext(d.sampleRate)
	if err != nil {
		return err
	}
	reader, err := newLoopStream(buf, d.sampleRate, 1)
	if err != nil {
		return err
	}
	d.reader = reader
	d.player = ctx.NewPlayer(reader)
	d.player.Play()
	return nil
}

func (d *OtoDevice) Stop() error {
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
