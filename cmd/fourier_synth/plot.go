package main

import (
	"fmt"
	"math"
	"strings"

	fouriersynth "github.com/cbegin/fourier-synth-go"
)

const plotRows = 15

// render draws the coefficient table, one period of the waveform and the
// encoded frame.
func render(eng *fouriersynth.Engine) string {
	var sb strings.Builder
	writeTable(&sb, eng.Labels(), eng.Entries())
	sb.WriteByte('\n')
	writePlot(&sb, eng.Samples())
	f := eng.AudioFrame()
	fmt.Fprintf(&sb, "frame (%d Hz mu-law): % x\n", fouriersynth.SampleRate, f[:])
	fmt.Fprintf(&sb, "audio: %s\n", eng.State())
	return sb.String()
}

func writeTable(sb *strings.Builder, labels fouriersynth.Labels, entries []fouriersynth.Entry) {
	fmt.Fprintf(sb, "%-22s%s\n", labels.Cosine, labels.Sine)
	for i := 0; i < len(entries); {
		e := entries[i]
		i++
		if e.Index == 0 {
			fmt.Fprintf(sb, "%-22s\n", e.String())
			continue
		}
		right := ""
		if i < len(entries) && entries[i].Index == e.Index {
			right = entries[i].String()
			i++
		}
		fmt.Fprintf(sb, "%-22s%s\n", e.String(), right)
	}
}

// writePlot draws one sample per column. The vertical scale is symmetric
// around zero and never smaller than +/-1.
func writePlot(sb *strings.Builder, w fouriersynth.Waveform) {
	lo, hi := w.Peak()
	span := math.Max(1, math.Max(math.Abs(lo), math.Abs(hi)))
	mid := plotRows / 2
	grid := make([][]byte, plotRows)
	for r := range grid {
		fill := byte(' ')
		if r == mid {
			fill = '-'
		}
		grid[r] = []byte(strings.Repeat(string(fill), len(w)))
	}
	for i, y := range w {
		r := mid - int(math.Round(y/span*float64(mid)))
		grid[r][i] = '*'
	}
	fmt.Fprintf(sb, "%+6.2f |%s\n", span, grid[0])
	for r := 1; r < plotRows-1; r++ {
		fmt.Fprintf(sb, "       |%s\n", grid[r])
	}
	fmt.Fprintf(sb, "%+6.2f |%s\n", -span, grid[plotRows-1])
}
