package sandbox

import (
	"context"
	"testing"

	"arcadelab/internal/combat"
	"arcadelab/internal/hud"
	"arcadelab/internal/mob"
	"arcadelab/internal/physics"
	"arcadelab/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flat int

func (f flat) Height(x, z int) int { return int(f) }

func newSession(t *testing.T, opts Options) *Session {
	t.Helper()
	if opts.BaseHeight == 0 {
		opts.BaseHeight = 10
	}
	s, err := New(context.Background(), flat(10), opts)
	require.NoError(t, err)
	return s
}

func land(s *Session) {
	for i := 0; i < 120; i++ {
		s.Tick(Input{})
	}
}

func TestFixedRadiusDoesNotStream(t *testing.T) {
	s := newSession(t, Options{FixedRadius: 1})
	assert.Equal(t, 9, s.Meshes.Len())

	s.Body.SetEye(mgl64.Vec3{40, 16, 0})
	s.Tick(Input{})
	assert.Equal(t, 9, s.Meshes.Len())
}

func TestStreamingRebuildsBorderNeighbours(t *testing.T) {
	s := newSession(t, Options{Streaming: true, SimDistance: 1})
	require.Equal(t, 9, s.Meshes.Len())
	edge, _ := s.Meshes.Mesh(voxel.ChunkCoord{X: 1, Z: 0})
	far, _ := s.Meshes.Mesh(voxel.ChunkCoord{X: -1, Z: 0})
	edgeVersion, farVersion := edge.Version, far.Version

	s.Body.SetEye(mgl64.Vec3{40, 16, 0})
	s.Tick(Input{})
	assert.Equal(t, 15, s.Meshes.Len())

	edge, _ = s.Meshes.Mesh(voxel.ChunkCoord{X: 1, Z: 0})
	far, _ = s.Meshes.Mesh(voxel.ChunkCoord{X: -1, Z: 0})
	assert.Greater(t, edge.Version, edgeVersion)
	assert.Equal(t, farVersion, far.Version)
}

func TestJumpOnFlatGroundHurtsInMinecraftMode(t *testing.T) {
	s := newSession(t, Options{FixedRadius: 1, Combat: true, FallMode: combat.Minecraft})
	land(s)
	require.Equal(t, combat.MAX_HEALTH, s.Health.Current)
	require.True(t, s.Body.Grounded)

	s.Tick(Input{Jump: true})
	land(s)
	// rise and fall add up to about 5.4 blocks
	assert.Equal(t, combat.MAX_HEALTH-2, s.Health.Current)
}

func TestVoidReturnsToSpawnWithoutDeath(t *testing.T) {
	s := newSession(t, Options{FixedRadius: 1, Combat: true, FallMode: combat.Hardcore})
	s.Body.SetEye(mgl64.Vec3{3, VOID_Y - 6, 3})
	s.Tick(Input{})

	spawn := s.SpawnPoint()
	assert.InDelta(t, spawn[0], s.Body.Position[0], 1e-9)
	assert.InDelta(t, spawn[1]-physics.EYE_HEIGHT, s.Body.Position[1], 1e-9)
	assert.InDelta(t, spawn[2], s.Body.Position[2], 1e-9)
	assert.Zero(t, s.Body.VelocityY)
	assert.Equal(t, 0, s.Deaths)
	assert.Equal(t, combat.MAX_HEALTH, s.Health.Current)
}

func TestFallDamageAndDeath(t *testing.T) {
	s := newSession(t, Options{FixedRadius: 1, Combat: true, FallMode: combat.Hardcore})
	land(s)
	// feet fall from 14.3 to 11, about 3.5 blocks at x1.5
	assert.Equal(t, 15, s.Health.Current)
	assert.Equal(t, 0, s.Deaths)

	s.Health.Current = 1
	s.Body.SetEye(s.SpawnPoint())
	for i := 0; i < 120 && s.Deaths == 0; i++ {
		s.Tick(Input{})
	}
	assert.Equal(t, 1, s.Deaths)
	assert.Equal(t, combat.MAX_HEALTH, s.Health.Current)
	assert.Contains(t, s.HUD().Notices, hud.DEATH_NOTICE)
}

func TestCreativeIgnoresFalls(t *testing.T) {
	s := newSession(t, Options{FixedRadius: 1, Combat: true, FallMode: combat.Hardcore, GameMode: combat.Creative})
	land(s)
	assert.Equal(t, combat.MAX_HEALTH, s.Health.Current)
}

func TestBreakAndPlace(t *testing.T) {
	s := newSession(t, Options{FixedRadius: 1})
	land(s)
	s.Meshes.Dirty()

	assert.Equal(t, PlaceBlocked, s.Click(RightButton, mgl32.Vec3{0, -1, 0}))
	assert.Equal(t, Broke, s.Click(LeftButton, mgl32.Vec3{0, -1, 0}))
	assert.False(t, s.World.Has(voxel.BlockPos{X: 0, Y: 10, Z: 0}))
	assert.NotEmpty(t, s.Meshes.Dirty())

	s.World.Set(voxel.BlockPos{X: 3, Y: 12, Z: 0}, voxel.Stone)
	assert.Equal(t, Placed, s.Click(RightButton, mgl32.Vec3{1, 0, 0}))
	assert.Equal(t, voxel.Grass, s.World.Get(voxel.BlockPos{X: 2, Y: 12, Z: 0}))

	assert.Equal(t, NoAction, s.Click(LeftButton, mgl32.Vec3{0, 1, 0}))
	assert.Equal(t, NoAction, s.Click(LeftButton, mgl32.Vec3{}))
}

func TestMobTakesHitBeforeBlock(t *testing.T) {
	s := newSession(t, Options{FixedRadius: 1, Mobs: true, MaxMobs: 1, Combat: true})
	land(s)
	s.Herd.Clear()
	eye := s.Eye()
	s.Herd.Mobs = []*mob.Mob{{Pos: mgl32.Vec3{eye.X(), eye.Y(), eye.Z() - 2}, Health: mob.HEALTH}}
	s.World.Set(voxel.BlockPos{X: 0, Y: 12, Z: -5}, voxel.Stone)

	assert.Equal(t, HitMob, s.Click(LeftButton, mgl32.Vec3{0, 0, -1}))
	assert.Equal(t, KilledMob, s.Click(RightButton, mgl32.Vec3{0, 0, -1}))
	assert.Zero(t, s.Herd.Len())
	assert.True(t, s.World.Has(voxel.BlockPos{X: 0, Y: 12, Z: -5}))
}

func TestModeTogglesPushNotices(t *testing.T) {
	s := newSession(t, Options{FixedRadius: 0, Combat: true})
	assert.Equal(t, combat.Creative, s.ToggleGameMode())
	assert.Equal(t, combat.Soft, s.CycleFallMode())

	st := s.HUD()
	assert.Equal(t, []string{"Mode: CREATIVE", "Fall Damage Mode: SOFT"}, st.Notices)
	assert.Equal(t, "Fall Mode: SOFT", st.FallMode)
	assert.Contains(t, st.Hearts, "❤ Health: ")

	s.Hearts = hud.PLAIN_HEARTS
	assert.Contains(t, s.HUD().Hearts, "♥ Health: ")
}

func TestNoCombatHUD(t *testing.T) {
	s := newSession(t, Options{FixedRadius: 0})
	st := s.HUD()
	assert.Empty(t, st.Hearts)
	assert.Empty(t, st.FallMode)
}
