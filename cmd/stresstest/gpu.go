package main

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"arcadelab/internal/bench"
	"arcadelab/internal/config"
	"arcadelab/internal/logging"
	"arcadelab/internal/render"
	"arcadelab/internal/window"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	black = mgl32.Vec3{0, 0, 0}
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func runGPU(ctx context.Context, cfg *config.Config) error {
	start := time.Now()
	field, err := bench.NewCubeField(ctx, cfg.Voxel.Seed, cfg.Stress.MaxCubes)
	if err != nil {
		return err
	}
	logging.LogInfo("Prepared %d cube offsets in %v", field.Len(), time.Since(start).Round(time.Millisecond))

	terminate, err := window.Init()
	if err != nil {
		return err
	}
	defer terminate()

	win, err := window.New("Stress Test: GPU", cfg.Window.Width, cfg.Window.Height, cfg.Window.Vsync, nil)
	if err != nil {
		return fmt.Errorf("gpu test needs OpenGL 4.1: %w", err)
	}
	defer win.Close()

	flood, err := render.NewFlood()
	if err != nil {
		return err
	}
	defer flood.Delete()

	font, err := render.LoadFont("")
	if err != nil {
		return err
	}
	w, h := win.Size()
	overlay, err := render.NewTextRenderer(font, w, h)
	if err != nil {
		return err
	}
	defer overlay.Delete()

	test := bench.NewGPUTest(field, cfg.Stress.GPUIntensity, nil)
	load, err := bench.NewProcessLoad()
	if err != nil {
		logging.LogWarn("CPU load unavailable: %v", err)
	}
	proc := 0.0

	for !win.ShouldClose() {
		if ctx.Err() != nil {
			return nil
		}
		win.Poll()
		for _, k := range win.Presses() {
			switch k {
			case glfw.KeySpace:
				test.Toggle()
			case glfw.KeyUp:
				test.Adjust(bench.GPU_STEP)
			case glfw.KeyDown:
				test.Adjust(-bench.GPU_STEP)
			}
		}

		render.Clear(black)
		if test.Running {
			flood.Draw(field.Offsets, test.Count(), test.Angle)
		}
		if fps, ok := test.Frame(); ok {
			if load != nil {
				if p, _, err := load.Sample(); err == nil {
					proc = p
				}
			}
			logging.LogDebug("GPU test: %d fps, %d cubes", fps, test.Count())
		}

		state := "stopped"
		if test.Running {
			state = "running"
		}
		w, h := win.Size()
		overlay.Resize(w, h)
		overlay.Draw([]render.Line{
			{Text: fmt.Sprintf("GPU test %s (Space)", state), X: 20, Y: 30, Size: 18, Color: white},
			{Text: fmt.Sprintf("Cubes: %d (Up/Down)", test.Count()), X: 20, Y: 55, Size: 18, Color: white},
			{Text: fmt.Sprintf("FPS: %d  Process CPU: %.1f%%", test.Counter.FPS, proc), X: 20, Y: 80, Size: 18, Color: white},
		})
		win.Swap()
	}
	return nil
}
