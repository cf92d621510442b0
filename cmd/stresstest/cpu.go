package main

import (
	"errors"
	"fmt"
	"image/color"

	"arcadelab/internal/bench"
	"arcadelab/internal/config"
	"arcadelab/internal/logging"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	background = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	graphLine  = color.RGBA{G: 0xff, A: 0xff}
	graphFrame = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
)

const GRAPH_WIDTH = 400

// cpuPage runs the CPU benchmark on an ebiten window, one HeavyWork batch per
// frame, and graphs the frame rate.
type cpuPage struct {
	test   *bench.CPUTest
	load   *bench.ProcessLoad
	face   text.Face
	width  int
	height int

	proc, system float64
}

func (p *cpuPage) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		p.test.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		p.test.Adjust(bench.CPU_STEP)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		p.test.Adjust(-bench.CPU_STEP)
	}
	if fps, ok := p.test.Frame(); ok {
		p.sample()
		logging.LogDebug("CPU test: %d fps, intensity %d, process %.1f%%", fps, p.test.Intensity, p.proc)
	}
	return nil
}

func (p *cpuPage) sample() {
	if p.load == nil {
		return
	}
	proc, system, err := p.load.Sample()
	if err != nil {
		logging.LogWarn("CPU sample: %v", err)
		return
	}
	p.proc, p.system = proc, system
}

func (p *cpuPage) print(screen *ebiten.Image, s string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, s, p.face, op)
}

func (p *cpuPage) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	t := p.test

	state := "stopped"
	if t.Running {
		state = "running"
	}
	p.print(screen, fmt.Sprintf("CPU test %s (Space)", state), 20, 20)
	p.print(screen, fmt.Sprintf("Intensity: %d (Up/Down)", t.Intensity), 20, 40)
	p.print(screen, fmt.Sprintf("FPS: %d", t.Counter.FPS), 20, 60)
	load := fmt.Sprintf("Process CPU: %.1f%%", p.proc)
	if p.system >= 0 {
		load += fmt.Sprintf("  System CPU: %.1f%%", p.system)
	}
	p.print(screen, load, 20, 80)

	gx, gy := float32(20), float32(110)
	gh := float32(t.History.Height)
	vector.StrokeRect(screen, gx, gy, GRAPH_WIDTH, gh, 1, graphFrame, false)
	pts := t.History.Points(GRAPH_WIDTH)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		vector.StrokeLine(screen, gx+float32(a[0]), gy+float32(a[1]), gx+float32(b[0]), gy+float32(b[1]), 2, graphLine, true)
	}
}

func (p *cpuPage) Layout(_, _ int) (int, int) {
	return p.width, p.height
}

func runCPU(cfg *config.Config) error {
	page := &cpuPage{
		test:   bench.NewCPUTest(cfg.Stress.CPUIntensity, cfg.Stress.GraphHeight, nil),
		face:   text.NewGoXFace(basicfont.Face7x13),
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
		system: -1,
	}
	load, err := bench.NewProcessLoad()
	if err != nil {
		logging.LogWarn("CPU load unavailable: %v", err)
	} else {
		page.load = load
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("Stress Test: CPU")
	ebiten.SetVsyncEnabled(cfg.Window.Vsync)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	if err := ebiten.RunGame(page); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run cpu test: %w", err)
	}
	return nil
}
