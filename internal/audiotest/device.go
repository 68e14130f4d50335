// Package audiotest provides a recording playback device for tests.
package audiotest

import (
	"bytes"
	"errors"
	"sync"
)

// ErrMutatedWhilePlaying is recorded when the buffer handed to Start changed
// before the matching Stop.
var ErrMutatedWhilePlaying = errors.New("buffer mutated while playing")

// Device records every call and checks that the buffer it was started with
// is left untouched until it is stopped.
// It satisfies playback.Device.
type Device struct {
	mu        sync.Mutex
	events    []string
	buf       []byte
	snapshot  []byte
	started   bool
	violation error

	// StartErr and StopErr, when set, are returned by the next calls.
	StartErr error
	StopErr  error
}

func NewDevice() *Device {
	return &Device{}
}

func (d *Device) Start(buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, "start")
	if d.StartErr != nil {
		return d.StartErr
	}
	d.buf = buf
	d.snapshot = bytes.Clone(buf)
	d.started = true
	return nil
}

func (d *Device) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, "stop")
	d.checkLocked()
	d.started = false
	d.buf = nil
	if d.StopErr != nil {
		return d.StopErr
	}
	return nil
}

// Mark appends a caller-defined event, e.g. "mutate", to the log. When the
// device is started it also checks the buffer has not been touched yet.
func (d *Device) Mark(event string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	d.checkLocked()
}

func (d *Device) checkLocked() {
	if d.started && d.violation == nil && !bytes.Equal(d.buf, d.snapshot) {
		d.violation = ErrMutatedWhilePlaying
	}
}

// Events returns a copy of the call log.
func (d *Device) Events() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

// Playing reports whether Start was the last successful call.
func (d *Device) Playing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.started
}

// Contents returns what the device would currently loop.
func (d *Device) Contents() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return bytes.Clone(d.buf)
}

// Err reports the first ordering violation seen.
func (d *Device) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.checkLocked()
	return d.violation
}

// Reset clears the call log.
func (d *Device) Reset() {
	d.mu.Lock()
	d.events = nil
	d.mu.Unlock()
}
