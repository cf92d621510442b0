package voxel

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Hit struct {
	Block BlockPos
	// Prev is the empty cell the ray crossed just before Block, i.e. the cell
	// on the hit face. Placement goes there.
	Prev     BlockPos
	Distance float32
}

// Raycast walks the grid cells along dir from origin and returns the first
// solid cell within reach.
func Raycast(w *World, origin, dir mgl32.Vec3, reach float32) (Hit, bool) {
	if dir.Len() == 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()

	cell := CellAt(float64(origin[0]), float64(origin[1]), float64(origin[2]))
	prev := cell
	if w.Has(cell) {
		return Hit{Block: cell, Prev: cell}, true
	}

	var step [3]int
	var tMax, tDelta [3]float64
	pos := [3]float64{float64(origin[0]), float64(origin[1]), float64(origin[2])}
	c := [3]int{cell.X, cell.Y, cell.Z}
	for i := 0; i < 3; i++ {
		d := float64(dir[i])
		switch {
		case d > 0:
			step[i] = 1
			tDelta[i] = 1 / d
			tMax[i] = (float64(c[i]+1) - pos[i]) / d
		case d < 0:
			step[i] = -1
			tDelta[i] = -1 / d
			tMax[i] = (pos[i] - float64(c[i])) / -d
		default:
			tDelta[i] = math.Inf(1)
			tMax[i] = math.Inf(1)
		}
	}

	for {
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		t := tMax[axis]
		if t > float64(reach) {
			return Hit{}, false
		}
		c[axis] += step[axis]
		tMax[axis] += tDelta[axis]

		next := BlockPos{c[0], c[1], c[2]}
		if w.Has(next) {
			return Hit{Block: next, Prev: prev, Distance: float32(t)}, true
		}
		prev = next
	}
}

// RayBox intersects a ray with an axis-aligned box and returns the entry
// distance.
func RayBox(origin, dir mgl32.Vec3, box AABB) (float32, bool) {
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < box.Min[i] || origin[i] > box.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (box.Min[i] - origin[i]) * inv
		t2 := (box.Max[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}

type AABB struct {
	Min, Max mgl32.Vec3
}

// BoxAround builds a box centred on c with the given full size.
func BoxAround(c, size mgl32.Vec3) AABB {
	half := size.Mul(0.5)
	return AABB{Min: c.Sub(half), Max: c.Add(half)}
}

func BlockBox(p BlockPos) AABB {
	min := mgl32.Vec3{float32(p.X), float32(p.Y), float32(p.Z)}
	return AABB{Min: min, Max: min.Add(mgl32.Vec3{1, 1, 1})}
}

// Intersects excludes touching faces so a block can be placed flush against
// the player.
func Intersects(a, b AABB) bool {
	return (a.Min.X() < b.Max.X() && a.Max.X() > b.Min.X()) &&
		(a.Min.Y() < b.Max.Y() && a.Max.Y() > b.Min.Y()) &&
		(a.Min.Z() < b.Max.Z() && a.Max.Z() > b.Min.Z())
}
