package playback

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cbegin/fourier-synth-go/internal/audiotest"
)

func TestControllerStartsStopped(t *testing.T) {
	t.Parallel()

	c := NewController(audiotest.NewDevice())
	if c.State() != Stopped || c.Playing() {
		t.Fatalf("initial state = %v, want stopped", c.State())
	}
}

func TestStartStopIdempotent(t *testing.T) {
	t.Parallel()

	dev := audiotest.NewDevice()
	c := NewController(dev)
	buf := make([]byte, 40)

	if err := c.Stop(); err != nil {
		t.Fatalf("stop while stopped: %v", err)
	}
	if err := c.Start(buf); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := c.Start(buf); err != nil {
		t.Fatalf("second start: %v", err)
	}
	if err := c.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := c.Stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}
	want := []string{"start", "stop"}
	if got := dev.Events(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestToggle(t *testing.T) {
	t.Parallel()

	dev := audiotest.NewDevice()
	c := NewController(dev)
	buf := make([]byte, 40)
	if err := c.Toggle(buf); err != nil || c.State() != Playing {
		t.Fatalf("toggle from stopped: state=%v err=%v", c.State(), err)
	}
	if err := c.Toggle(buf); err != nil || c.State() != Stopped {
		t.Fatalf("toggle from playing: state=%v err=%v", c.State(), err)
	}
	if dev.Playing() {
		t.Fatal("device still playing after toggle off")
	}
}

func TestRestartOrdersStopMutateStart(t *testing.T) {
	t.Parallel()

	dev := audiotest.NewDevice()
	c := NewController(dev)
	buf := make([]byte, 40)
	if err := c.Start(buf); err != nil {
		t.Fatal(err)
	}
	dev.Reset()

	err := c.Restart(buf, func() {
		dev.Mark("mutate")
		for i := range buf {
			buf[i] = byte(i)
		}
	})
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	want := []string{"stop", "mutate", "start"}
	if got := dev.Events(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	if err := dev.Err(); err != nil {
		t.Fatalf("device saw a mutation while playing: %v", err)
	}
	if c.State() != Playing {
		t.Fatalf("state = %v, want playing", c.State())
	}
}

func TestRestartWithUnchangedBufferStillRestarts(t *testing.T) {
	t.Parallel()

	dev := audiotest.NewDevice()
	c := NewController(dev)
	buf := make([]byte, 40)
	_ = c.Start(buf)
	dev.Reset()
	if err := c.Restart(buf, func() {}); err != nil {
		t.Fatal(err)
	}
	want := []string{"stop", "start"}
	if got := dev.Events(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestRestartWhileStoppedOnlyMutates(t *testing.T) {
	t.Parallel()

	dev := audiotest.NewDevice()
	c := NewController(dev)
	called := false
	if err := c.Restart(nil, func() { called = true }); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("mutate not called")
	}
	if len(dev.Events()) != 0 {
		t.Fatalf("device touched while stopped: %v", dev.Events())
	}
}

func TestDetectsMutationWithoutStop(t *testing.T) {
	t.Parallel()

	dev := audiotest.NewDevice()
	c := NewController(dev)
	buf := make([]byte, 40)
	_ = c.Start(buf)
	buf[0] = 1
	if !errors.Is(dev.Err(), audiotest.ErrMutatedWhilePlaying) {
		t.Fatal("recording device should flag in-place writes while playing")
	}
}

func TestStartErrorLeavesStopped(t *testing.T) {
	t.Parallel()

	boom := errors.New("no audio")
	dev := audiotest.NewDevice()
	dev.StartErr = boom
	c := NewController(dev)
	err := c.Start(make([]byte, 40))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if c.State() != Stopped {
		t.Fatalf("state = %v, want stopped", c.State())
	}
}

func TestRestartStopErrorStillMutates(t *testing.T) {
	t.Parallel()

	boom := errors.New("stuck")
	dev := audiotest.NewDevice()
	c := NewController(dev)
	_ = c.Start(make([]byte, 40))
	dev.StopErr = boom
	called := false
	err := c.Restart(make([]byte, 40), func() { called = true })
	if !errors.Is(err, boom) || !called {
		t.Fatalf("err = %v called = %v", err, called)
	}
	if c.State() != Stopped {
		t.Fatalf("state = %v, want stopped", c.State())
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()

	if Stopped.String() != "stopped" || Playing.String() != "playing" {
		t.Fatal("unexpected state names")
	}
	if State(9).String() != "State(9)" {
		t.Fatalf("State(9) = %q", State(9).String())
	}
}
