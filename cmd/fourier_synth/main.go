package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	fouriersynth "github.com/cbegin/fourier-synth-go"
	intaudio "github.com/cbegin/fourier-synth-go/internal/audio"
)

func main() {
	var (
		backend     = flag.String("backend", "ebiten", "audio backend: "+strings.Join(intaudio.Backends, "|"))
		cosList     = flag.String("a", "", "comma separated cosine coefficients a0..a6 in [-50,50] (tenths)")
		sinList     = flag.String("b", "", "comma separated sine coefficients b1..b6 in [-50,50] (tenths)")
		cosLabel    = flag.String("cos-label", "", "caption of the cosine column (default \"Cosinus:\")")
		sinLabel    = flag.String("sin-label", "", "caption of the sine column (default \"Sinus:\")")
		exportPath  = flag.String("export", "", "write the looped frame to this WAV file")
		seconds     = flag.Float64("seconds", 3, "playback / export length in seconds")
		play        = flag.Bool("play", false, "play the loop for -seconds")
		interactive = flag.Bool("interactive", false, "edit coefficients from the keyboard")
		verbose     = flag.Bool("v", false, "log playback status to stderr")
	)
	flag.Parse()

	a, err := parseCoefficients(*cosList, fouriersynth.Harmonics)
	if err != nil {
		log.Fatalf("-a: %v", err)
	}
	b, err := parseCoefficients(*sinList, fouriersynth.Harmonics-1)
	if err != nil {
		log.Fatalf("-b: %v", err)
	}

	backendName := *backend
	if !*play && !*interactive {
		backendName = "null"
	}
	dev, err := intaudio.Open(backendName, intaudio.DefaultSampleRate)
	if err != nil {
		log.Fatal(err)
	}
	opts := []fouriersynth.Option{
		fouriersynth.WithDevice(dev),
		fouriersynth.WithLabels(*cosLabel, *sinLabel),
	}
	if *verbose {
		opts = append(opts, fouriersynth.WithLogger(log.New(os.Stderr, "fourier_synth: ", 0)))
	}
	eng, err := fouriersynth.New(opts...)
	if err != nil {
		log.Fatal(err)
	}
	defer eng.Close()

	if err := applyCoefficients(eng, a, b); err != nil {
		log.Fatal(err)
	}

	if *exportPath != "" {
		if err := exportWAV(eng, *exportPath, *seconds); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %s (%.2fs at %d Hz)\n", *exportPath, *seconds, fouriersynth.SampleRate)
	}

	switch {
	case *interactive:
		if err := runInteractive(eng); err != nil {
			log.Fatal(err)
		}
	case *play:
		fmt.Print(render(eng))
		if err := eng.Start(); err != nil {
			log.Fatal(err)
		}
		time.Sleep(time.Duration(*seconds * float64(time.Second)))
		if err := eng.Stop(); err != nil {
			log.Fatal(err)
		}
	default:
		fmt.Print(render(eng))
	}
}

// parseCoefficients reads up to limit comma separated integers. Values are
// passed through unclamped; the engine bounds them.
func parseCoefficients(list string, limit int) ([]int, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return nil, nil
	}
	parts := strings.Split(list, ",")
	if len(parts) > limit {
		return nil, fmt.Errorf("got %d values, at most %d allowed", len(parts), limit)
	}
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// applyCoefficients loads a as a0.. and b as b1.. into the engine.
func applyCoefficients(eng *fouriersynth.Engine, a, b []int) error {
	for k, v := range a {
		if err := eng.Dispatch(fouriersynth.SetCoefficient{Index: k, Kind: fouriersynth.Cosine, Value: v}); err != nil {
			return err
		}
	}
	for k, v := range b {
		if err := eng.Dispatch(fouriersynth.SetCoefficient{Index: k + 1, Kind: fouriersynth.Sine, Value: v}); err != nil {
			return err
		}
	}
	return nil
}

func exportWAV(eng *fouriersynth.Engine, path string, seconds float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := eng.ExportWAV(f, seconds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
