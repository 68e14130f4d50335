package fouriersynth

import "fmt"

// Command is an input from the UI layer, applied with Engine.Dispatch.
type Command interface {
	command()
}

// SetCoefficient moves one slider.
type SetCoefficient struct {
	Index int
	Kind  Kind
	Value int
}

// TogglePlayback switches audio on or off.
type TogglePlayback struct{}

// Reset zeros all coefficients.
type Reset struct{}

func (SetCoefficient) command() {}
func (TogglePlayback) command() {}
func (Reset) command()          {}

// Dispatch applies cmd synchronously.
func (e *Engine) Dispatch(cmd Command) error {
	switch c := cmd.(type) {
	case SetCoefficient:
		return e.SetCoefficient(c.Index, c.Kind, c.Value)
	case *SetCoefficient:
		return e.SetCoefficient(c.Index, c.Kind, c.Value)
	case TogglePlayback, *TogglePlayback:
		return e.TogglePlayback()
	case Reset, *Reset:
		return e.Reset()
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}
