package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDefaultLookFacesNegativeZ(t *testing.T) {
	l := NewLook(0.3)
	f := l.Front()
	assert.InDelta(t, 0, f.X(), 1e-6)
	assert.InDelta(t, 0, f.Y(), 1e-6)
	assert.InDelta(t, -1, f.Z(), 1e-6)
}

func TestCursorFirstMoveIsIgnored(t *testing.T) {
	l := NewLook(0.5)
	l.Cursor(800, 450)
	assert.Equal(t, -90.0, l.Yaw)
	l.Cursor(820, 440)
	assert.Equal(t, -80.0, l.Yaw)
	assert.Equal(t, 5.0, l.Pitch)

	l.Reprime()
	l.Cursor(0, 0)
	assert.Equal(t, -80.0, l.Yaw)
}

func TestPitchClamped(t *testing.T) {
	l := NewLook(1)
	l.Turn(0, 500)
	assert.Equal(t, MAX_PITCH, l.Pitch)
	l.Turn(0, -1000)
	assert.Equal(t, -MAX_PITCH, l.Pitch)
}

func TestLerp(t *testing.T) {
	got := Lerp(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 4, -2}, 0.5)
	assert.Equal(t, mgl32.Vec3{1, 2, -1}, got)
}

func TestTickerAccumulates(t *testing.T) {
	tk := NewTicker()
	n, alpha := tk.Advance(TICK_RATE / 2)
	assert.Equal(t, 0, n)
	assert.InDelta(t, 0.5, alpha, 1e-4)

	n, alpha = tk.Advance(TICK_RATE * 2)
	assert.Equal(t, 2, n)
	assert.InDelta(t, 0.5, alpha, 1e-4)

	n, alpha = tk.Advance(5)
	assert.Equal(t, MAX_CATCHUP, n)
	assert.Equal(t, float32(0), alpha)
}
