package mob

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flat int

func (f flat) Height(x, z int) int { return int(f) }

func TestSpawnStopsAtMax(t *testing.T) {
	h := NewHerd(flat(10), DEFAULT_MAX)
	rng := rand.New(rand.NewSource(1))
	around := mgl32.Vec3{100, 30, -50}
	for i := 0; i < 8; i++ {
		h.Spawn(rng, around)
	}
	require.Equal(t, 5, h.Len())
	for _, m := range h.Mobs {
		assert.InDelta(t, 100, m.Pos.X(), SPAWN_SPREAD)
		assert.InDelta(t, -50, m.Pos.Z(), SPAWN_SPREAD)
		// standing on the block at y=10
		assert.InDelta(t, 11.6, m.Pos.Y(), 1e-5)
		assert.Equal(t, HEALTH, m.Health)
	}
}

func TestUpdatePursuesAndAttacks(t *testing.T) {
	h := NewHerd(flat(0), 1)
	h.Mobs = []*Mob{{Pos: mgl32.Vec3{5, 1.6, 0}, Health: HEALTH, Speed: SPEED}}

	dmg := h.Update(mgl32.Vec3{0, 2, 0}, true)
	assert.Zero(t, dmg)
	assert.InDelta(t, 5-SPEED, h.Mobs[0].Pos.X(), 1e-5)
	assert.Equal(t, -1, h.Mobs[0].Cooldown)

	h.Mobs[0].Pos = mgl32.Vec3{1, 1.6, 0}
	assert.Equal(t, 1, h.Update(mgl32.Vec3{0, 2, 0}, true))
	assert.Equal(t, MELEE_COOLDOWN-1, h.Mobs[0].Cooldown)

	total := 0
	for i := 0; i < MELEE_COOLDOWN; i++ {
		h.Mobs[0].Pos = mgl32.Vec3{1, 1.6, 0}
		total += h.Update(mgl32.Vec3{0, 2, 0}, true)
	}
	assert.Equal(t, 1, total)
}

func TestCreativeMobsDoNotAttack(t *testing.T) {
	h := NewHerd(flat(0), 1)
	h.Mobs = []*Mob{{Pos: mgl32.Vec3{0.5, 1.6, 0}, Health: HEALTH, Speed: SPEED}}
	for i := 0; i < 100; i++ {
		assert.Zero(t, h.Update(mgl32.Vec3{0, 2, 0}, false))
	}
	// inside the stop radius it holds position
	assert.Equal(t, float32(0.5), h.Mobs[0].Pos.X())
}

func TestHitRemovesAtZero(t *testing.T) {
	h := NewHerd(flat(0), 2)
	h.Mobs = []*Mob{{Health: HEALTH}, {Health: HEALTH}}
	assert.False(t, h.Hit(1, HIT_DAMAGE))
	assert.True(t, h.Hit(1, HIT_DAMAGE))
	assert.Equal(t, 1, h.Len())
	assert.False(t, h.Hit(5, HIT_DAMAGE))
}

func TestPickNearest(t *testing.T) {
	h := NewHerd(flat(0), 3)
	h.Mobs = []*Mob{
		{Pos: mgl32.Vec3{0, 0, -8}},
		{Pos: mgl32.Vec3{0, 0, -4}},
		{Pos: mgl32.Vec3{3, 0, -2}},
	}
	i, d, ok := h.Pick(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, 10)
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.InDelta(t, 3.6, d, 1e-5)

	_, _, ok = h.Pick(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, 3)
	assert.False(t, ok)
}
