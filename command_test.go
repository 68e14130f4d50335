package fouriersynth

import (
	"errors"
	"testing"
)

type bogusCommand struct{ Command }

func TestDispatch(t *testing.T) {
	e, dev := newTestEngine(t)

	if err := e.Dispatch(SetCoefficient{Index: 2, Kind: Cosine, Value: 70}); err != nil {
		t.Fatal(err)
	}
	if got := e.Coefficients().A[2]; got != 50 {
		t.Fatalf("a2 = %d, want 50", got)
	}
	if err := e.Dispatch(&SetCoefficient{Index: 2, Kind: Sine, Value: -3}); err != nil {
		t.Fatal(err)
	}
	if got := e.Coefficients().B[2]; got != -3 {
		t.Fatalf("b2 = %d, want -3", got)
	}

	if err := e.Dispatch(TogglePlayback{}); err != nil || !dev.Playing() {
		t.Fatalf("toggle: err=%v playing=%v", err, dev.Playing())
	}
	if err := e.Dispatch(Reset{}); err != nil {
		t.Fatal(err)
	}
	if e.Coefficients() != (Coefficients{}) {
		t.Fatal("reset command did not clear coefficients")
	}
	if e.State() != Playing {
		t.Fatal("reset must not change the playback state")
	}
	if err := e.Dispatch(TogglePlayback{}); err != nil || dev.Playing() {
		t.Fatalf("toggle off: err=%v playing=%v", err, dev.Playing())
	}
}

func TestDispatchUnknown(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.Dispatch(bogusCommand{}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("err = %v, want ErrUnknownCommand", err)
	}
	if err := e.Dispatch(nil); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("nil command: err = %v, want ErrUnknownCommand", err)
	}
}
