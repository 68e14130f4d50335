package fouriersynth

import (
	"errors"
	"io"
	"log"
	"sync"

	intaudio "github.com/cbegin/fourier-synth-go/internal/audio"
	"github.com/cbegin/fourier-synth-go/internal/coeffs"
	"github.com/cbegin/fourier-synth-go/internal/frame"
	"github.com/cbegin/fourier-synth-go/internal/playback"
	"github.com/cbegin/fourier-synth-go/internal/synth"
)

type (
	Kind         = coeffs.Kind
	Coefficients = coeffs.Set
	Entry        = coeffs.Entry
	Waveform     = synth.Waveform
	Frame        = frame.Frame
	State        = playback.State
	Device       = playback.Device
)

const (
	Cosine = coeffs.Cosine
	Sine   = coeffs.Sine

	Stopped = playback.Stopped
	Playing = playback.Playing

	Harmonics  = coeffs.Harmonics
	MaxValue   = coeffs.MaxValue
	Samples    = synth.Samples
	FrameSize  = frame.Size
	SampleRate = frame.SampleRate
)

var ErrUnknownCommand = errors.New("unknown command")

// Event is delivered on the Watch channel.
type Event struct {
	Kind int // EventRecomputed, EventPlaybackStarted or EventPlaybackStopped
}

const (
	EventRecomputed int = iota
	EventPlaybackStarted
	EventPlaybackStopped
)

type Option func(*engineConfig)

type engineConfig struct {
	device    Device
	labels    Labels
	logger    *log.Logger
	autoStart bool
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		labels: NewLabels("", ""),
		logger: log.New(io.Discard, "", 0),
	}
}

// WithDevice sets the audio device the frame is looped on. Without it the
// engine plays into a silent null device.
func WithDevice(d Device) Option {
	return func(cfg *engineConfig) {
		cfg.device = d
	}
}

// WithLabels sets the column captions; see NewLabels.
func WithLabels(cosine, sine string) Option {
	return func(cfg *engineConfig) {
		cfg.labels = NewLabels(cosine, sine)
	}
}

// WithLogger receives status lines such as "audio on".
func WithLogger(l *log.Logger) Option {
	return func(cfg *engineConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithAutoStart starts playback as soon as the engine is built.
func WithAutoStart(enabled bool) Option {
	return func(cfg *engineConfig) {
		cfg.autoStart = enabled
	}
}

// Engine owns the coefficients and the two artifacts derived from them:
// the sampled waveform and the encoded audio frame. Both are recomputed
// together on every coefficient change. The frame array is shared with the
// playback device and only rewritten while the device is stopped.
type Engine struct {
	mu       sync.Mutex
	store    *coeffs.Store
	samples  synth.Waveform
	frame    frame.Frame
	playback *playback.Controller
	labels   Labels
	logger   *log.Logger

	eventCh   chan Event
	eventChMu sync.Mutex
}

func New(opts ...Option) (*Engine, error) {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.device == nil {
		cfg.device = intaudio.NewNullDevice()
	}
	e := &Engine{
		store:    coeffs.NewStore(),
		playback: playback.NewController(cfg.device),
		labels:   cfg.labels,
		logger:   cfg.logger,
	}
	e.samples = synth.Synthesize(e.store.Snapshot())
	frame.BuildInto(&e.frame, e.samples)
	if cfg.autoStart {
		if err := e.Start(); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// SetCoefficient clamps value into [-50, 50], stores it and recomputes the
// waveform and frame. The sine slot of harmonic 0 and unknown indices are
// ignored. The only errors come from restarting the audio device.
func (e *Engine) SetCoefficient(index int, kind Kind, value int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.store.Set(index, kind, value) {
		return nil
	}
	return e.recomputeLocked()
}

// Reset zeros every coefficient and recomputes.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.Reset()
	return e.recomputeLocked()
}

func (e *Engine) recomputeLocked() error {
	samples := synth.Synthesize(e.store.Snapshot())
	err := e.playback.Restart(e.frame[:], func() {
		e.samples = samples
		frame.BuildInto(&e.frame, samples)
	})
	e.sendEvent(Event{Kind: EventRecomputed})
	return err
}

func (e *Engine) Coefficients() Coefficients {
	return e.store.Snapshot()
}

// Entries lists the coefficients for display: a0, a1, b1, ... a6, b6.
func (e *Engine) Entries() []Entry {
	return e.store.Snapshot().Entries()
}

// Samples returns a copy of the current period.
func (e *Engine) Samples() Waveform {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.samples
}

// AudioFrame returns a copy of the current encoded frame.
func (e *Engine) AudioFrame() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame
}

func (e *Engine) Labels() Labels { return e.labels }

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playback.State()
}

// Start loops the current frame. Calling it while playing is a no-op.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startLocked()
}

// Stop halts playback. Safe to call at any time.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stopLocked()
}

// TogglePlayback flips between playing and stopped.
func (e *Engine) TogglePlayback() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.playback.Playing() {
		return e.stopLocked()
	}
	return e.startLocked()
}

func (e *Engine) startLocked() error {
	if e.playback.Playing() {
		return nil
	}
	if err := e.playback.Start(e.frame[:]); err != nil {
		return err
	}
	e.logger.Print("audio on")
	e.sendEvent(Event{Kind: EventPlaybackStarted})
	return nil
}

func (e *Engine) stopLocked() error {
	if !e.playback.Playing() {
		return nil
	}
	err := e.playback.Stop()
	e.logger.Print("audio off")
	e.sendEvent(Event{Kind: EventPlaybackStopped})
	return err
}

// Close stops playback. The engine stays usable.
func (e *Engine) Close() error {
	return e.Stop()
}

// Watch returns a channel that receives engine events. The channel is
// buffered (cap 8) and events are dropped when it is full. Only the most
// recent Watch channel receives events.
func (e *Engine) Watch() <-chan Event {
	ch := make(chan Event, 8)
	e.eventChMu.Lock()
	e.eventCh = ch
	e.eventChMu.Unlock()
	return ch
}

func (e *Engine) sendEvent(ev Event) {
	e.eventChMu.Lock()
	ch := e.eventCh
	e.eventChMu.Unlock()
	if ch != nil {
		select {
		case ch <- ev:
		default:
			// Channel full; drop event
		}
	}
}
