package playback

import "fmt"

// State of the playback loop.
type State int

const (
	Stopped State = iota
	Playing
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Device loops buf until stopped. It may read buf from another goroutine
// for as long as it is started.
type Device interface {
	Start(buf []byte) error
	Stop() error
}

// Controller drives a Device through the Stopped/Playing state machine.
// It is not safe for concurrent use; the engine serialises access.
type Controller struct {
	device Device
	state  State
}

func NewController(device Device) *Controller {
	return &Controller{device: device}
}

func (c *Controller) State() State  { return c.state }
func (c *Controller) Playing() bool { return c.state == Playing }

// Start begins looping buf. Starting while playing is a no-op.
func (c *Controller) Start(buf []byte) error {
	if c.state == Playing {
		return nil
	}
	if err := c.device.Start(buf); err != nil {
		return fmt.Errorf("playback: start: %w", err)
	}
	c.state = Playing
	return nil
}

// Stop halts the loop. Stopping while stopped is a no-op.
func (c *Controller) Stop() error {
	if c.state == Stopped {
		return nil
	}
	c.state = Stopped
	if err := c.device.Stop(); err != nil {
		return fmt.Errorf("playback: stop: %w", err)
	}
	return nil
}

// Toggle flips the state.
func (c *Controller) Toggle(buf []byte) error {
	if c.state == Playing {
		return c.Stop()
	}
	return c.Start(buf)
}

// Restart runs mutate while the device is guaranteed not to be reading buf.
// When playing, the device is stopped before mutate and started again after
// it, even if mutate leaves buf unchanged. mutate always runs; if the device
// fails to stop, the loop stays stopped and the error is returned.
func (c *Controller) Restart(buf []byte, mutate func()) error {
	if c.state == Stopped {
		mutate()
		return nil
	}
	if err := c.Stop(); err != nil {
		mutate()
		return err
	}
	mutate()
	return c.Start(buf)
}
