package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Per-tick constants, tuned for 60 ticks per second.
const (
	EYE_HEIGHT = 1.7
	RADIUS     = 0.3
	SPEED      = 0.19
	GRAVITY    = -0.015
	JUMP       = 0.29
	// second probe above the feet, roughly knee to chest
	BODY_PROBE = 0.9
	WIDTH      = 0.6
)

// Solids answers whether the cell containing a point is occupied.
type Solids interface {
	Solid(x, y, z float64) bool
}

// Body is the player's collision body. Position is the centre of the feet so
// that snapping lands on exact block tops.
type Body struct {
	Position     mgl64.Vec3
	VelocityY    float64
	Grounded     bool
	FallDistance float64
}

func NewBody(eye mgl64.Vec3) *Body {
	b := &Body{}
	b.SetEye(eye)
	return b
}

func (b *Body) SetEye(eye mgl64.Vec3) {
	b.Position = mgl64.Vec3{eye[0], eye[1] - EYE_HEIGHT, eye[2]}
	b.VelocityY = 0
	b.Grounded = false
	b.FallDistance = 0
}

func (b *Body) Eye() mgl32.Vec3 {
	return mgl32.Vec3{float32(b.Position[0]), float32(b.Position[1] + EYE_HEIGHT), float32(b.Position[2])}
}

// Box is the body's AABB in world space.
func (b *Body) Box() (min, max mgl32.Vec3) {
	half := float32(WIDTH / 2)
	p := mgl32.Vec3{float32(b.Position[0]), float32(b.Position[1]), float32(b.Position[2])}
	return p.Sub(mgl32.Vec3{half, 0, half}), p.Add(mgl32.Vec3{half, EYE_HEIGHT + 0.1, half})
}

func (b *Body) Jump() bool {
	if !b.Grounded {
		return false
	}
	b.VelocityY = JUMP
	b.Grounded = false
	return true
}

func collides(w Solids, x, y, z float64) bool {
	return w.Solid(x, y, z) || w.Solid(x, y+BODY_PROBE, z)
}

func sign(x float64) float64 {
	if x > 0 {
		return 1
	} else if x < 0 {
		return -1
	}
	return 0
}

// Landing is reported on the tick the body touches ground after being airborne.
type Landing struct {
	Landed   bool
	Distance float64
}

// Step advances one tick. move is the horizontal displacement for this tick.
// Each horizontal axis is tested separately against the radius-extended probe;
// vertically the feet snap to the top of a solid cell.
func (b *Body) Step(w Solids, move mgl64.Vec2) Landing {
	px, py, pz := b.Position[0], b.Position[1], b.Position[2]
	dx, dz := move[0], move[1]

	if dx != 0 && !collides(w, px+dx+sign(dx)*RADIUS, py, pz) {
		b.Position[0] += dx
	}
	if dz != 0 && !collides(w, px, py, pz+dz+sign(dz)*RADIUS) {
		b.Position[2] += dz
	}

	b.VelocityY += GRAVITY
	// every airborne tick counts, rising or falling
	if !b.Grounded {
		b.FallDistance += math.Abs(b.VelocityY)
	}

	var landing Landing
	ny := b.Position[1] + b.VelocityY
	if w.Solid(b.Position[0], ny, b.Position[2]) {
		b.Position[1] = math.Floor(ny) + 1
		if !b.Grounded {
			landing = Landing{Landed: true, Distance: b.FallDistance}
		}
		b.Grounded = true
		b.FallDistance = 0
		b.VelocityY = 0
	} else {
		b.Position[1] = ny
		b.Grounded = false
	}
	return landing
}

// MoveVector turns WASD state and the look direction into this tick's
// horizontal displacement, normalised to SPEED.
func MoveVector(front mgl32.Vec3, forward, back, left, right bool) mgl64.Vec2 {
	fx, fz := float64(front[0]), float64(front[2])
	var dx, dz float64
	if forward {
		dx += fx
		dz += fz
	}
	if back {
		dx -= fx
		dz -= fz
	}
	if left {
		dx += fz
		dz -= fx
	}
	if right {
		dx -= fz
		dz += fx
	}
	l := math.Hypot(dx, dz)
	if l == 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{dx / l * SPEED, dz / l * SPEED}
}
