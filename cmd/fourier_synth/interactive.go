package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	fouriersynth "github.com/cbegin/fourier-synth-go"
)

const interactiveHelp = "0-6 harmonic  a/b column  +/- step 1  ]/[ step 10  space audio  r reset  q quit"

// cursor is the coefficient being edited.
type cursor struct {
	index int
	kind  fouriersynth.Kind
}

// handleKey maps one key press to a command. quit is set for q and Ctrl-C.
func (c *cursor) handleKey(b byte, current fouriersynth.Coefficients) (cmd fouriersynth.Command, quit bool) {
	switch {
	case b >= '0' && b < '0'+fouriersynth.Harmonics:
		c.index = int(b - '0')
		if c.index == 0 {
			c.kind = fouriersynth.Cosine
		}
	case b == 'a' || b == 'c':
		c.kind = fouriersynth.Cosine
	case (b == 'b' || b == 's') && c.index > 0:
		c.kind = fouriersynth.Sine
	case b == '+' || b == '=':
		return c.nudge(current, 1), false
	case b == '-' || b == '_':
		return c.nudge(current, -1), false
	case b == ']':
		return c.nudge(current, 10), false
	case b == '[':
		return c.nudge(current, -10), false
	case b == ' ':
		return fouriersynth.TogglePlayback{}, false
	case b == 'r':
		return fouriersynth.Reset{}, false
	case b == 'q' || b == 0x03:
		return nil, true
	}
	return nil, false
}

func (c *cursor) nudge(current fouriersynth.Coefficients, delta int) fouriersynth.Command {
	v := current.A[c.index]
	if c.kind == fouriersynth.Sine {
		v = current.B[c.index]
	}
	return fouriersynth.SetCoefficient{Index: c.index, Kind: c.kind, Value: v + delta}
}

func (c *cursor) String() string {
	return fmt.Sprintf("editing %s%d", c.kind, c.index)
}

// runInteractive puts the terminal in raw mode and redraws after every key.
func runInteractive(eng *fouriersynth.Engine) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("-interactive needs a terminal on stdin")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	cur := &cursor{index: 1, kind: fouriersynth.Cosine}
	status := ""
	buf := make([]byte, 1)
	for {
		screen := "\x1b[H\x1b[2J" + render(eng) + cur.String() + "  " + status + "\n" + interactiveHelp + "\n"
		// Raw mode does not translate LF.
		fmt.Print(strings.ReplaceAll(screen, "\n", "\r\n"))

		n, err := os.Stdin.Read(buf)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		cmd, quit := cur.handleKey(buf[0], eng.Coefficients())
		if quit {
			fmt.Print("\r\n")
			return nil
		}
		status = ""
		if cmd == nil {
			continue
		}
		if err := eng.Dispatch(cmd); err != nil {
			status = "error: " + err.Error()
		}
	}
}
