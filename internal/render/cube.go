package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	faceSide   = 0
	faceTop    = 1
	faceBottom = 2

	// position, normal, uv, face
	cubeStride = 9
)

type cubeFace struct {
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3 // bottom-left, bottom-right, top-right, top-left seen from outside
	kind    float32
}

var cubeFaces = [6]cubeFace{
	{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}, faceSide},
	{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}, faceSide},
	{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}, faceSide},
	{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}, faceSide},
	{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}, faceTop},
	{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}, faceBottom},
}

// Image rows start at the top, so the bottom edge samples v=1.
var cornerUVs = [4]mgl32.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

// cubeVertices expands the faces into 36 counter-clockwise vertices.
func cubeVertices() []float32 {
	out := make([]float32, 0, 36*cubeStride)
	for _, f := range cubeFaces {
		for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
			c, uv := f.corners[i], cornerUVs[i]
			out = append(out, c[0], c[1], c[2], f.normal[0], f.normal[1], f.normal[2], uv[0], uv[1], f.kind)
		}
	}
	return out
}

func newCubeVBO() uint32 {
	verts := cubeVertices()
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	return vbo
}

// instanceBatch draws the shared cube once per offset in a single call.
type instanceBatch struct {
	vao, vbo uint32
	count    int32
	capacity int
}

func newInstanceBatch(cubeVBO uint32) *instanceBatch {
	b := &instanceBatch{}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, cubeVBO)
	stride := int32(cubeStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointerWithOffset(3, 1, gl.FLOAT, false, stride, 8*4)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.EnableVertexAttribArray(4)
	gl.VertexAttribPointerWithOffset(4, 3, gl.FLOAT, false, 3*4, 0)
	gl.VertexAttribDivisor(4, 1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b
}

// upload replaces the instance offsets, growing the buffer when needed.
func (b *instanceBatch) upload(offsets []mgl32.Vec3) {
	b.count = int32(len(offsets))
	if len(offsets) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	size := len(offsets) * 3 * 4
	if len(offsets) > b.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(&offsets[0][0]), gl.DYNAMIC_DRAW)
		b.capacity = len(offsets)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(&offsets[0][0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *instanceBatch) draw() {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArraysInstanced(gl.TRIANGLES, 0, 36, b.count)
	gl.BindVertexArray(0)
}

func (b *instanceBatch) delete() {
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
}
