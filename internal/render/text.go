package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"

	"arcadelab/internal/logging"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gomono"
)

// LoadFont parses a TrueType file. An empty path or a broken file falls back
// to the bundled Go Mono face.
func LoadFont(path string) (*truetype.Font, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			f, perr := freetype.ParseFont(data)
			if perr == nil {
				return f, nil
			}
			err = perr
		}
		logging.LogWarn("Font %s unusable, falling back to Go Mono: %v", path, err)
	}
	f, err := freetype.ParseFont(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse fallback font: %w", err)
	}
	return f, nil
}

// HasGlyph reports whether f maps r to a real glyph rather than .notdef.
func HasGlyph(f *truetype.Font, r rune) bool {
	return f.Index(r) != 0
}

// Line is one string placed on the overlay at a baseline position in pixels.
type Line struct {
	Text   string
	X, Y   int
	Size   float64
	Color  color.RGBA
	Shadow bool
}

// TextRenderer rasterises HUD lines into a screen-sized texture with freetype
// and draws it as one quad. The texture is only rebuilt when the lines change.
type TextRenderer struct {
	program *Program
	vao     uint32
	vbo     uint32
	texture uint32
	ctx     *freetype.Context
	dst     *image.RGBA
	last    string
	width   int
	height  int
}

func NewTextRenderer(font *truetype.Font, width, height int) (*TextRenderer, error) {
	prog, err := NewProgram("text.vert", "text.frag")
	if err != nil {
		return nil, err
	}
	t := &TextRenderer{program: prog}

	vertices := []float32{
		0, 1, 0, 0, 1,
		0, 0, 0, 0, 0,
		1, 0, 0, 1, 0,

		0, 1, 0, 0, 1,
		1, 0, 0, 1, 0,
		1, 1, 0, 1, 1,
	}
	gl.GenVertexArrays(1, &t.vao)
	gl.BindVertexArray(t.vao)
	gl.GenBuffers(1, &t.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 5*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 5*4, 3*4)
	gl.BindVertexArray(0)

	t.ctx = freetype.NewContext()
	t.ctx.SetFont(font)
	t.ctx.SetDPI(72)
	t.ctx.SetHinting(2)
	t.Resize(width, height)
	return t, nil
}

// Resize reallocates the canvas for a new framebuffer size.
func (t *TextRenderer) Resize(width, height int) {
	if width == t.width && height == t.height {
		return
	}
	if t.texture != 0 {
		gl.DeleteTextures(1, &t.texture)
	}
	t.width, t.height = width, height
	t.dst = image.NewRGBA(image.Rect(0, 0, width, height))
	t.ctx.SetDst(t.dst)
	t.ctx.SetClip(t.dst.Bounds())
	t.texture = UploadTexture(t.dst, gl.CLAMP_TO_EDGE)
	t.last = ""
}

func key(lines []Line) string {
	var sb strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&sb, "%s|%d|%d|%.1f|%v|%v\n", l.Text, l.X, l.Y, l.Size, l.Color, l.Shadow)
	}
	return sb.String()
}

func (t *TextRenderer) rasterise(lines []Line) {
	draw.Draw(t.dst, t.dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	for _, l := range lines {
		t.ctx.SetFontSize(l.Size)
		if l.Shadow {
			t.ctx.SetSrc(image.NewUniform(color.RGBA{A: 0xc0}))
			if _, err := t.ctx.DrawString(l.Text, freetype.Pt(l.X+2, l.Y+2)); err != nil {
				logging.LogWarn("Draw text %q: %v", l.Text, err)
				continue
			}
		}
		t.ctx.SetSrc(image.NewUniform(l.Color))
		if _, err := t.ctx.DrawString(l.Text, freetype.Pt(l.X, l.Y)); err != nil {
			logging.LogWarn("Draw text %q: %v", l.Text, err)
		}
	}
	gl.BindTexture(gl.TEXTURE_2D, t.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(t.width), int32(t.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(t.dst.Pix))
}

// Draw overlays the lines on the current frame.
func (t *TextRenderer) Draw(lines []Line) {
	if k := key(lines); k != t.last {
		t.rasterise(lines)
		t.last = k
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	p := t.program
	p.Use()
	p.SetMat4("projection", mgl32.Ortho(0, float32(t.width), float32(t.height), 0, -1, 1))
	p.SetMat4("model", mgl32.Scale3D(float32(t.width), float32(t.height), 1))
	p.SetInt("TexCoord", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.texture)
	gl.BindVertexArray(t.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
}

func (t *TextRenderer) Delete() {
	gl.DeleteTextures(1, &t.texture)
	gl.DeleteBuffers(1, &t.vbo)
	gl.DeleteVertexArrays(1, &t.vao)
	t.program.Delete()
}
