package client

import (
	"fmt"
	"image/color"

	"arcadelab/internal/hud"
	"arcadelab/internal/render"
)

var (
	white  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	red    = color.RGBA{R: 0xff, G: 0x44, B: 0x44, A: 0xff}
	yellow = color.RGBA{R: 0xff, G: 0xe0, B: 0x40, A: 0xff}
)

const (
	TEXT_SIZE   = 18
	NOTICE_STEP = 28
)

// Overlay lays out the voxel HUD for a width by height framebuffer.
func Overlay(st hud.State, width, height int) []render.Line {
	lines := []render.Line{
		{Text: "+", X: width/2 - 6, Y: height/2 + 8, Size: 24, Color: white, Shadow: true},
		{Text: fmt.Sprintf("FPS: %d", st.FPS), X: 10, Y: 24, Size: TEXT_SIZE, Color: white, Shadow: true},
	}
	if st.Hearts != "" {
		lines = append(lines, render.Line{Text: st.Hearts, X: 10, Y: height - 40, Size: TEXT_SIZE + 4, Color: red, Shadow: true})
	}
	if st.FallMode != "" {
		lines = append(lines, render.Line{Text: st.FallMode, X: 10, Y: height - 14, Size: TEXT_SIZE, Color: white, Shadow: true})
	}
	for i, n := range st.Notices {
		lines = append(lines, render.Line{Text: n, X: width/2 - 140, Y: 80 + i*NOTICE_STEP, Size: TEXT_SIZE + 2, Color: yellow, Shadow: true})
	}
	return lines
}
