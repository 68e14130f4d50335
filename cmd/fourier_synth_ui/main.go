package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	fouriersynth "github.com/cbegin/fourier-synth-go"
	intaudio "github.com/cbegin/fourier-synth-go/internal/audio"
	"github.com/cbegin/fourier-synth-go/internal/frame"
	"github.com/cbegin/fourier-synth-go/internal/mulaw"
)

const (
	windowW = 640
	windowH = 520

	plotW       = 400
	plotH       = 200
	plotPeriods = plotW / fouriersynth.Samples
	// Vertical pixels per waveform unit.
	plotGain = 20

	sliderH   = 22
	sliderGap = 6
	columnW   = 290
)

var (
	bgColor         = color.RGBA{192, 192, 192, 255}
	panelColor      = color.RGBA{192, 192, 192, 255}
	borderColor     = color.RGBA{128, 128, 128, 255}
	textColor       = color.RGBA{0, 0, 0, 255}
	plotBgColor     = color.RGBA{255, 255, 255, 255}
	axisColor       = color.RGBA{160, 160, 160, 255}
	waveColor       = color.RGBA{200, 0, 0, 255}
	frameColor      = color.RGBA{0, 0, 200, 255}
	bevelLight      = color.RGBA{255, 255, 255, 255}
	bevelDarker     = color.RGBA{64, 64, 64, 255}
	sliderFillColor = color.RGBA{0, 0, 128, 255}
)

// slider edits one coefficient.
type slider struct {
	index int
	kind  fouriersynth.Kind
	rect  image.Rectangle
}

type game struct {
	engine  *fouriersynth.Engine
	events  <-chan fouriersynth.Event
	sliders []slider

	dragging int // slider index, -1 when idle

	status    string
	statusErr bool
}

func newGame(eng *fouriersynth.Engine) *game {
	g := &game{
		engine:   eng,
		events:   eng.Watch(),
		dragging: -1,
		status:   "Click the plot to toggle audio",
	}
	g.sliders = layoutSliders()
	return g
}

// layoutSliders places the cosine column on the left and the sine column on
// the right, with a1 level with b1.
func layoutSliders() []slider {
	top := 20 + plotH + 40
	var out []slider
	for k := 0; k < fouriersynth.Harmonics; k++ {
		y := top + k*(sliderH+sliderGap)
		out = append(out, slider{
			index: k,
			kind:  fouriersynth.Cosine,
			rect:  image.Rect(20, y, 20+columnW, y+sliderH),
		})
		if k == 0 {
			continue
		}
		out = append(out, slider{
			index: k,
			kind:  fouriersynth.Sine,
			rect:  image.Rect(330, y, 330+columnW, y+sliderH),
		})
	}
	return out
}

func plotRect() image.Rectangle {
	x := (windowW - plotW) / 2
	return image.Rect(x, 20, x+plotW, 20+plotH)
}

func (g *game) Update() error {
	g.pollEvents()
	g.handleMouse()
	g.handleKeys()
	return nil
}

func (g *game) pollEvents() {
	for {
		select {
		case ev, ok := <-g.events:
			if !ok {
				return
			}
			switch ev.Kind {
			case fouriersynth.EventPlaybackStarted:
				g.setStatus("Audio on")
			case fouriersynth.EventPlaybackStopped:
				g.setStatus("Audio off")
			}
		default:
			return
		}
	}
}

func (g *game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if pointInRect(mx, my, plotRect()) {
			g.dispatch(fouriersynth.TogglePlayback{})
			return
		}
		for i, s := range g.sliders {
			if pointInRect(mx, my, trackRect(s.rect)) {
				g.dragging = i
				break
			}
		}
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = -1
		return
	}
	if g.dragging < 0 {
		return
	}
	s := g.sliders[g.dragging]
	v := sliderValue(mx, trackRect(s.rect))
	if v != g.currentValue(s) {
		g.dispatch(fouriersynth.SetCoefficient{Index: s.index, Kind: s.kind, Value: v})
	}
}

func (g *game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.dispatch(fouriersynth.TogglePlayback{})
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.dispatch(fouriersynth.Reset{})
	}
}

func (g *game) dispatch(cmd fouriersynth.Command) {
	if err := g.engine.Dispatch(cmd); err != nil {
		g.setError(err.Error())
	}
}

func (g *game) currentValue(s slider) int {
	c := g.engine.Coefficients()
	if s.kind == fouriersynth.Sine {
		return c.B[s.index]
	}
	return c.A[s.index]
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)
	g.drawPlot(screen, plotRect())

	labels := g.engine.Labels()
	g.drawText(screen, labels.Cosine, 20, 20+plotH+30)
	g.drawText(screen, labels.Sine, 330, 20+plotH+30)

	entries := g.engine.Entries()
	for i, s := range g.sliders {
		g.drawSlider(screen, s, entries[i], i == g.dragging)
	}

	statusY := windowH - 12
	msg := "Status: " + g.status
	if g.statusErr {
		msg = "Status: ERROR - " + g.status
	}
	g.drawText(screen, msg, 20, statusY)
	g.drawText(screen, "space: audio  r: reset", windowW-170, statusY)
}

// drawPlot tiles the synthesized period across the plot with the decoded
// frame overlaid, so the quantisation the listener hears is visible.
func (g *game) drawPlot(screen *ebiten.Image, rect image.Rectangle) {
	ebitenutil.DrawRect(screen, float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()), plotBgColor)
	drawSunkenBorder(screen, rect)

	midY := float64(rect.Min.Y + rect.Dy()/2)
	ebitenutil.DrawRect(screen, float64(rect.Min.X), midY, float64(rect.Dx()), 1, axisColor)
	for p := 1; p < plotPeriods; p++ {
		x := float64(rect.Min.X + p*fouriersynth.Samples)
		ebitenutil.DrawRect(screen, x, float64(rect.Min.Y), 1, float64(rect.Dy()), axisColor)
	}

	w := g.engine.Samples()
	tiled := w.Tile(plotPeriods)
	for i := 1; i < len(tiled); i++ {
		x0 := float64(rect.Min.X + i - 1)
		y0 := clamp(midY-tiled[i-1]*plotGain, float64(rect.Min.Y), float64(rect.Max.Y-1))
		y1 := clamp(midY-tiled[i]*plotGain, float64(rect.Min.Y), float64(rect.Max.Y-1))
		ebitenutil.DrawLine(screen, x0, y0, x0+1, y1, waveColor)
	}

	// Frame byte n holds sample 2n+1.
	f := g.engine.AudioFrame()
	decoded := f.Decode(nil)
	for p := 0; p < plotPeriods; p++ {
		for i, v := range decoded {
			x := float64(rect.Min.X + p*fouriersynth.Samples + 2*i + 1)
			amp := float64(v) * frameScale
			y := clamp(midY-amp*plotGain, float64(rect.Min.Y), float64(rect.Max.Y-1))
			ebitenutil.DrawRect(screen, x, y, 1, 1, frameColor)
		}
	}

	state := g.engine.State()
	g.drawText(screen, fmt.Sprintf("audio %s", state), rect.Min.X+4, rect.Max.Y-4)
}

// frameScale maps a decoded frame sample back to waveform units.
const frameScale = float64(mulaw.Saturate) / frame.Gain

func (g *game) drawSlider(screen *ebiten.Image, s slider, e fouriersynth.Entry, active bool) {
	rect := s.rect
	g.drawText(screen, e.String(), rect.Min.X, rect.Min.Y+15)

	track := trackRect(rect)
	ebitenutil.DrawRect(screen, float64(track.Min.X), float64(track.Min.Y), float64(track.Dx()), 8, bevelDarker)
	ebitenutil.DrawRect(screen, float64(track.Min.X), float64(track.Min.Y), float64(track.Dx()-1), 1, borderColor)
	centre := track.Min.X + track.Dx()/2
	ebitenutil.DrawRect(screen, float64(centre), float64(track.Min.Y-2), 1, 12, bevelLight)

	knobX := sliderX(e.Value, track)
	lo, hi := centre, knobX
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi-lo > 1 {
		ebitenutil.DrawRect(screen, float64(lo), float64(track.Min.Y+1), float64(hi-lo), 6, sliderFillColor)
	}
	knob := image.Rect(knobX-5, track.Min.Y-4, knobX+5, track.Min.Y+12)
	ebitenutil.DrawRect(screen, float64(knob.Min.X), float64(knob.Min.Y), float64(knob.Dx()), float64(knob.Dy()), panelColor)
	if active {
		drawSunkenBorder(screen, knob)
	} else {
		drawBorder(screen, knob)
	}
}

// trackRect is the draggable part of a slider, right of its caption.
func trackRect(rect image.Rectangle) image.Rectangle {
	const captionW = 80
	y := rect.Min.Y + rect.Dy()/2 - 4
	return image.Rect(rect.Min.X+captionW, y, rect.Max.X-8, y+8)
}

// sliderValue maps a cursor x onto [-MaxValue, MaxValue].
func sliderValue(mx int, track image.Rectangle) int {
	if track.Dx() <= 0 {
		return 0
	}
	t := clamp(float64(mx-track.Min.X)/float64(track.Dx()), 0, 1)
	return int(t*2*fouriersynth.MaxValue+0.5) - fouriersynth.MaxValue
}

func sliderX(v int, track image.Rectangle) int {
	t := float64(v+fouriersynth.MaxValue) / (2 * fouriersynth.MaxValue)
	return track.Min.X + int(t*float64(track.Dx())+0.5)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	return windowW, windowH
}

func (g *game) setError(msg string) {
	g.status = msg
	g.statusErr = true
}

func (g *game) setStatus(msg string) {
	g.status = msg
	g.statusErr = false
}

// drawBorder draws a raised 3D bevel (highlight top/left, shadow bottom/right).
func drawBorder(screen *ebiten.Image, rect image.Rectangle) {
	x := float64(rect.Min.X)
	y := float64(rect.Min.Y)
	w := float64(rect.Dx())
	h := float64(rect.Dy())
	ebitenutil.DrawRect(screen, x, y, w-1, 1, bevelLight)
	ebitenutil.DrawRect(screen, x, y+1, 1, h-2, bevelLight)
	ebitenutil.DrawRect(screen, x, y+h-1, w, 1, bevelDarker)
	ebitenutil.DrawRect(screen, x+w-1, y, 1, h, bevelDarker)
}

// drawSunkenBorder draws a sunken 3D bevel (shadow top/left, highlight bottom/right).
func drawSunkenBorder(screen *ebiten.Image, rect image.Rectangle) {
	x := float64(rect.Min.X)
	y := float64(rect.Min.Y)
	w := float64(rect.Dx())
	h := float64(rect.Dy())
	ebitenutil.DrawRect(screen, x, y, w-1, 1, borderColor)
	ebitenutil.DrawRect(screen, x, y+1, 1, h-2, borderColor)
	ebitenutil.DrawRect(screen, x, y+h-1, w, 1, bevelLight)
	ebitenutil.DrawRect(screen, x+w-1, y, 1, h, bevelLight)
}

// drawText draws msg with its baseline at y.
func (g *game) drawText(screen *ebiten.Image, msg string, x int, y int) {
	if msg == "" {
		return
	}
	text.Draw(screen, msg, basicfont.Face7x13, x, y, textColor)
}

func clamp(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

func main() {
	var (
		cosLabel = flag.String("cos-label", "", "caption of the cosine column")
		sinLabel = flag.String("sin-label", "", "caption of the sine column")
		autoPlay = flag.Bool("play", false, "start audio immediately")
		verbose  = flag.Bool("v", false, "log playback status to stderr")
	)
	flag.Parse()

	dev, err := intaudio.NewEbitenDevice(intaudio.DefaultSampleRate)
	if err != nil {
		log.Fatal(err)
	}
	opts := []fouriersynth.Option{
		fouriersynth.WithDevice(dev),
		fouriersynth.WithLabels(*cosLabel, *sinLabel),
		fouriersynth.WithAutoStart(*autoPlay),
	}
	if *verbose {
		opts = append(opts, fouriersynth.WithLogger(log.New(os.Stderr, "fourier_synth_ui: ", 0)))
	}
	eng, err := fouriersynth.New(opts...)
	if err != nil {
		log.Fatal(err)
	}
	defer eng.Close()

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowTitle("Fourier synthesis")
	if err := ebiten.RunGame(newGame(eng)); err != nil {
		log.Fatal(err)
	}
}
