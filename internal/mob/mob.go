package mob

import (
	"math"
	"math/rand"

	"arcadelab/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	HEALTH         = 10
	SPEED          = 0.02
	SPAWN_SPREAD   = 20
	CHASE_STOP     = 0.6
	MELEE_RANGE    = 1.2
	MELEE_DAMAGE   = 1
	MELEE_COOLDOWN = 40
	HIT_DAMAGE     = 5
	DEFAULT_MAX    = 5
)

// Size of a mob's box; Pos is its centre.
var Size = mgl32.Vec3{0.8, 1.2, 0.8}

type Mob struct {
	Pos      mgl32.Vec3
	Health   int
	Speed    float32
	Cooldown int
}

func (m *Mob) Box() voxel.AABB {
	return voxel.BoxAround(m.Pos, Size)
}

// Herd holds the live mobs and keeps them standing on the terrain surface.
type Herd struct {
	Mobs    []*Mob
	Max     int
	terrain voxel.Terrain
}

func NewHerd(t voxel.Terrain, max int) *Herd {
	if max < 0 {
		max = DEFAULT_MAX
	}
	return &Herd{Max: max, terrain: t}
}

func (h *Herd) Len() int {
	return len(h.Mobs)
}

func (h *Herd) surfaceY(x, z float32) float32 {
	top := h.terrain.Height(int(math.Floor(float64(x))), int(math.Floor(float64(z))))
	return float32(top) + 1 + Size.Y()/2
}

// Spawn adds one mob within SPAWN_SPREAD of around while below Max. It reports
// whether a mob was added.
func (h *Herd) Spawn(rng *rand.Rand, around mgl32.Vec3) bool {
	if len(h.Mobs) >= h.Max {
		return false
	}
	x := around.X() + rng.Float32()*2*SPAWN_SPREAD - SPAWN_SPREAD
	z := around.Z() + rng.Float32()*2*SPAWN_SPREAD - SPAWN_SPREAD
	h.Mobs = append(h.Mobs, &Mob{
		Pos:    mgl32.Vec3{x, h.surfaceY(x, z), z},
		Health: HEALTH,
		Speed:  SPEED,
	})
	return true
}

// Update moves every mob toward the player and returns the melee damage dealt
// this tick. Mobs only attack in survival.
func (h *Herd) Update(player mgl32.Vec3, survival bool) int {
	damage := 0
	for _, m := range h.Mobs {
		dx := player.X() - m.Pos.X()
		dz := player.Z() - m.Pos.Z()
		dist := float32(math.Hypot(float64(dx), float64(dz)))

		if dist > CHASE_STOP {
			m.Pos[0] += dx / dist * m.Speed
			m.Pos[2] += dz / dist * m.Speed
			m.Pos[1] = h.surfaceY(m.Pos[0], m.Pos[2])
		}
		if dist < MELEE_RANGE && m.Cooldown <= 0 && survival {
			damage += MELEE_DAMAGE
			m.Cooldown = MELEE_COOLDOWN
		}
		m.Cooldown--
	}
	return damage
}

// Hit damages mob i and removes it once its health is gone. It reports
// whether the mob died.
func (h *Herd) Hit(i, dmg int) bool {
	if i < 0 || i >= len(h.Mobs) {
		return false
	}
	m := h.Mobs[i]
	m.Health -= dmg
	if m.Health > 0 {
		return false
	}
	h.Mobs = append(h.Mobs[:i], h.Mobs[i+1:]...)
	return true
}

// Pick returns the index of the nearest mob the ray hits within reach.
func (h *Herd) Pick(origin, dir mgl32.Vec3, reach float32) (int, float32, bool) {
	best, bestDist := -1, reach
	for i, m := range h.Mobs {
		d, ok := voxel.RayBox(origin, dir, m.Box())
		if ok && d <= bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return -1, 0, false
	}
	return best, bestDist, true
}

func (h *Herd) Clear() {
	h.Mobs = nil
}
