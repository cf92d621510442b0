package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// floodVertices are the eight corners of a 0.1 cube drawn as one fan.
var floodVertices = []float32{
	-0.05, -0.05, -0.05, 0.05, -0.05, -0.05, 0.05, 0.05, -0.05, -0.05, 0.05, -0.05,
	-0.05, -0.05, 0.05, 0.05, -0.05, 0.05, 0.05, 0.05, 0.05, -0.05, 0.05, 0.05,
}

// Flood issues one draw call per cube with no instancing, to load the driver.
type Flood struct {
	program *Program
	vao     uint32
	vbo     uint32
}

func NewFlood() (*Flood, error) {
	prog, err := NewProgram("flood.vert", "flood.frag")
	if err != nil {
		return nil, err
	}
	f := &Flood{program: prog}
	gl.GenVertexArrays(1, &f.vao)
	gl.BindVertexArray(f.vao)
	gl.GenBuffers(1, &f.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, f.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(floodVertices)*4, gl.Ptr(floodVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 0, 0)
	gl.BindVertexArray(0)
	return f, nil
}

func (f *Flood) Draw(offsets []mgl32.Vec3, count int, angle float32) {
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	p := f.program
	p.Use()
	gl.BindVertexArray(f.vao)
	for i := 0; i < count && i < len(offsets); i++ {
		p.SetVec3("offset", offsets[i])
		p.SetFloat("angle", angle)
		gl.DrawArrays(gl.TRIANGLE_FAN, 0, int32(len(floodVertices)/3))
	}
	gl.BindVertexArray(0)
}

func (f *Flood) Delete() {
	gl.DeleteBuffers(1, &f.vbo)
	gl.DeleteVertexArrays(1, &f.vao)
	f.program.Delete()
}
