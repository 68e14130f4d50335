package fouriersynth

import (
	"bytes"
	"errors"
	"log"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/cbegin/fourier-synth-go/internal/audiotest"
	"github.com/cbegin/fourier-synth-go/internal/mulaw"
)

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *audiotest.Device) {
	t.Helper()
	dev := audiotest.NewDevice()
	e, err := New(append([]Option{WithDevice(dev)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e, dev
}

func TestEngineInitialState(t *testing.T) {
	e, dev := newTestEngine(t)
	if e.State() != Stopped {
		t.Fatalf("state = %v, want stopped", e.State())
	}
	for i, v := range e.Samples() {
		if v != 0 {
			t.Fatalf("samples[%d] = %v, want 0", i, v)
		}
	}
	f := e.AudioFrame()
	if !bytes.Equal(f[:], bytes.Repeat([]byte{0xFF}, FrameSize)) {
		t.Fatalf("initial frame = %x", f)
	}
	if len(dev.Events()) != 0 {
		t.Fatalf("device touched during construction: %v", dev.Events())
	}
}

func TestEngineSetCoefficientRecomputes(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.SetCoefficient(0, Cosine, 20); err != nil {
		t.Fatal(err)
	}
	for i, v := range e.Samples() {
		if math.Abs(v-1) > 1e-9 {
			t.Fatalf("samples[%d] = %v, want 1", i, v)
		}
	}
	f := e.AudioFrame()
	want := mulaw.Encode(100)
	for n, b := range f {
		if b != want {
			t.Fatalf("frame[%d] = %#02x, want %#02x", n, b, want)
		}
	}
}

func TestEngineClampsCoefficients(t *testing.T) {
	e, _ := newTestEngine(t)
	_ = e.SetCoefficient(4, Cosine, 1000)
	_ = e.SetCoefficient(5, Cosine, -1000)
	c := e.Coefficients()
	if c.A[4] != 50 || c.A[5] != -50 {
		t.Fatalf("a4=%d a5=%d, want 50 and -50", c.A[4], c.A[5])
	}
}

func TestEngineIgnoresSineZero(t *testing.T) {
	e, _ := newTestEngine(t)
	ch := e.Watch()
	if err := e.SetCoefficient(0, Sine, 30); err != nil {
		t.Fatal(err)
	}
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %+v for a no-op write", ev)
	default:
	}
}

func TestEngineRestartsPlaybackAroundMutation(t *testing.T) {
	e, dev := newTestEngine(t)
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	dev.Reset()

	if err := e.SetCoefficient(1, Cosine, 10); err != nil {
		t.Fatal(err)
	}
	want := []string{"stop", "start"}
	if got := dev.Events(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	if err := dev.Err(); err != nil {
		t.Fatalf("frame rewritten while the device was reading it: %v", err)
	}
	f := e.AudioFrame()
	if !bytes.Equal(dev.Contents(), f[:]) {
		t.Fatal("device does not loop the recomputed frame")
	}
	if e.State() != Playing {
		t.Fatalf("state = %v, want playing", e.State())
	}
}

func TestEngineRestartsEvenWhenUnchanged(t *testing.T) {
	e, dev := newTestEngine(t)
	_ = e.Start()
	_ = e.SetCoefficient(2, Sine, 10)
	dev.Reset()
	if err := e.SetCoefficient(2, Sine, 10); err != nil {
		t.Fatal(err)
	}
	want := []string{"stop", "start"}
	if got := dev.Events(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestEngineDoesNotTouchDeviceWhenStopped(t *testing.T) {
	e, dev := newTestEngine(t)
	for k := 0; k < Harmonics; k++ {
		_ = e.SetCoefficient(k, Cosine, k*7)
	}
	if len(dev.Events()) != 0 {
		t.Fatalf("device events while stopped: %v", dev.Events())
	}
}

func TestEngineToggleAndIdempotence(t *testing.T) {
	var logBuf bytes.Buffer
	e, dev := newTestEngine(t, WithLogger(log.New(&logBuf, "", 0)))

	if err := e.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := e.TogglePlayback(); err != nil || e.State() != Playing {
		t.Fatalf("toggle on: state=%v err=%v", e.State(), err)
	}
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	if err := e.TogglePlayback(); err != nil || e.State() != Stopped {
		t.Fatalf("toggle off: state=%v err=%v", e.State(), err)
	}
	want := []string{"start", "stop"}
	if got := dev.Events(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	if got := logBuf.String(); !strings.Contains(got, "audio on") || !strings.Contains(got, "audio off") {
		t.Fatalf("log = %q", got)
	}
}

func TestEngineAutoStart(t *testing.T) {
	e, dev := newTestEngine(t, WithAutoStart(true))
	if e.State() != Playing || !dev.Playing() {
		t.Fatal("auto start did not start playback")
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if dev.Playing() {
		t.Fatal("Close left the device playing")
	}
}

func TestEngineAutoStartError(t *testing.T) {
	boom := errors.New("no device")
	dev := audiotest.NewDevice()
	dev.StartErr = boom
	if _, err := New(WithDevice(dev), WithAutoStart(true)); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestEngineReset(t *testing.T) {
	e, _ := newTestEngine(t)
	_ = e.SetCoefficient(3, Cosine, 20)
	_ = e.SetCoefficient(3, Sine, -20)
	if err := e.Reset(); err != nil {
		t.Fatal(err)
	}
	if e.Coefficients() != (Coefficients{}) {
		t.Fatalf("coefficients after reset = %+v", e.Coefficients())
	}
	if e.Samples() != (Waveform{}) {
		t.Fatal("samples not recomputed after reset")
	}
}

func TestEngineEvents(t *testing.T) {
	e, _ := newTestEngine(t)
	ch := e.Watch()
	_ = e.Start()
	_ = e.SetCoefficient(1, Sine, 5)
	_ = e.Stop()
	want := []int{EventPlaybackStarted, EventRecomputed, EventPlaybackStopped}
	for _, w := range want {
		select {
		case ev := <-ch:
			if ev.Kind != w {
				t.Fatalf("event = %d, want %d", ev.Kind, w)
			}
		default:
			t.Fatalf("missing event %d", w)
		}
	}
}

func TestEngineSamplesAreCopies(t *testing.T) {
	e, _ := newTestEngine(t)
	_ = e.SetCoefficient(1, Cosine, 10)
	s := e.Samples()
	s[0] = 99
	f := e.AudioFrame()
	f[0] = 0
	if e.Samples()[0] == 99 || e.AudioFrame()[0] == 0 {
		t.Fatal("accessors leak internal buffers")
	}
}

func TestEngineEntries(t *testing.T) {
	e, _ := newTestEngine(t)
	_ = e.SetCoefficient(6, Sine, -35)
	entries := e.Entries()
	last := entries[len(entries)-1]
	if last.String() != "b6: -3.5" {
		t.Fatalf("last entry = %q", last.String())
	}
}

func TestEngineDefaultDevice(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := e.TogglePlayback(); err != nil {
		t.Fatal(err)
	}
	if e.State() != Playing {
		t.Fatal("null device should accept playback")
	}
}
