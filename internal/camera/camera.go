package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	NEAR      = 0.1
	FAR       = 1000
	MAX_PITCH = 89.0
)

var Up = mgl32.Vec3{0, 1, 0}

// Look turns mouse motion into yaw and pitch in degrees. Yaw -90 faces -Z.
type Look struct {
	Yaw, Pitch  float64
	Sensitivity float64

	lastX, lastY float64
	primed       bool
}

func NewLook(sensitivity float64) *Look {
	return &Look{Yaw: -90, Sensitivity: sensitivity}
}

// Reprime drops the last cursor position so the next move does not jump,
// used when the cursor is captured again.
func (l *Look) Reprime() {
	l.primed = false
}

// Cursor feeds an absolute cursor position.
func (l *Look) Cursor(x, y float64) {
	if !l.primed {
		l.lastX, l.lastY = x, y
		l.primed = true
	}
	dx := x - l.lastX
	dy := l.lastY - y
	l.lastX, l.lastY = x, y
	l.Turn(dx, dy)
}

// Turn applies a cursor delta; positive dy looks up.
func (l *Look) Turn(dx, dy float64) {
	l.Yaw += dx * l.Sensitivity
	l.Pitch += dy * l.Sensitivity
	if l.Pitch > MAX_PITCH {
		l.Pitch = MAX_PITCH
	}
	if l.Pitch < -MAX_PITCH {
		l.Pitch = -MAX_PITCH
	}
}

func (l *Look) Front() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(float32(l.Yaw)))
	pitch := float64(mgl32.DegToRad(float32(l.Pitch)))
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

func Projection(fov float32, width, height int) mgl32.Mat4 {
	if height <= 0 {
		height = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(fov), float32(width)/float32(height), NEAR, FAR)
}

func View(eye, front mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, eye.Add(front), Up)
}

func Lerp(a, b mgl32.Vec3, alpha float32) mgl32.Vec3 {
	return b.Sub(a).Mul(alpha).Add(a)
}
