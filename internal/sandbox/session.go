package sandbox

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"arcadelab/internal/combat"
	"arcadelab/internal/hud"
	"arcadelab/internal/logging"
	"arcadelab/internal/mob"
	"arcadelab/internal/physics"
	"arcadelab/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	SPAWN_ABOVE = 6
	// bodies below this are returned to spawn
	VOID_Y = -64
)

// Options selects which features a session runs with. Sandbox A streams
// chunks and has mobs and combat; sandbox B builds a fixed radius once.
type Options struct {
	Streaming   bool
	SimDistance int
	FixedRadius int
	Mobs        bool
	MaxMobs     int
	Combat      bool
	BaseHeight  int
	Reach       float32
	GameMode    combat.GameMode
	FallMode    combat.FallMode
	Seed        int64
}

type Input struct {
	Forward, Back, Left, Right bool
	Jump                       bool
	// Front is the camera look direction.
	Front mgl32.Vec3
}

type Button int

const (
	LeftButton Button = iota
	RightButton
)

type Action int

const (
	NoAction Action = iota
	Broke
	Placed
	PlaceBlocked
	HitMob
	KilledMob
)

func (a Action) String() string {
	switch a {
	case Broke:
		return "break"
	case Placed:
		return "place"
	case PlaceBlocked:
		return "place-blocked"
	case HitMob:
		return "hit"
	case KilledMob:
		return "kill"
	}
	return "none"
}

type Session struct {
	opts    Options
	World   *voxel.World
	Gen     *voxel.Generator
	Meshes  *voxel.Registry
	Body    *physics.Body
	Health  combat.Health
	Game    combat.GameMode
	Fall    combat.FallMode
	Herd    *mob.Herd
	Notices hud.Notices
	// Hearts draws the health bar; the client swaps in plain glyphs when its
	// font lacks the defaults.
	Hearts hud.Glyphs

	rng    *rand.Rand
	Deaths int
}

// New builds the world around the spawn point. Fixed-radius sessions generate
// every chunk up front; streaming sessions only the first SimDistance ring.
func New(ctx context.Context, t voxel.Terrain, opts Options) (*Session, error) {
	if opts.Reach <= 0 {
		opts.Reach = 6
	}
	w := voxel.NewWorld()
	s := &Session{
		opts:   opts,
		World:  w,
		Gen:    voxel.NewGenerator(w, t),
		Meshes: voxel.NewRegistry(w),
		Health: combat.NewHealth(),
		Game:   opts.GameMode,
		Fall:   opts.FallMode,
		Hearts: hud.HEARTS,
		rng:    rand.New(rand.NewSource(opts.Seed)),
	}
	if opts.Mobs {
		s.Herd = mob.NewHerd(t, opts.MaxMobs)
	}
	s.Body = physics.NewBody(s.SpawnPoint())

	if opts.Streaming {
		s.stream()
	} else {
		made, err := s.Gen.GenerateRadius(ctx, voxel.ChunkCoord{}, opts.FixedRadius)
		if err != nil {
			return nil, fmt.Errorf("generate world: %w", err)
		}
		for _, c := range made {
			s.Meshes.Rebuild(c)
		}
	}
	logging.LogInfo("World ready: %d blocks in %d chunks", w.Len(), s.Meshes.Len())
	return s, nil
}

func (s *Session) Options() Options {
	return s.opts
}

func (s *Session) SpawnPoint() mgl64.Vec3 {
	return mgl64.Vec3{0, float64(s.opts.BaseHeight + SPAWN_ABOVE), 0}
}

func (s *Session) Eye() mgl32.Vec3 {
	return s.Body.Eye()
}

// stream generates every missing chunk within SimDistance of the player and
// rebuilds the new chunks plus any built neighbour whose border they cover.
func (s *Session) stream() []voxel.ChunkCoord {
	p := s.Body.Position
	center := voxel.ChunkOf(int(math.Floor(p[0])), int(math.Floor(p[2])))
	r := s.opts.SimDistance

	var made []voxel.ChunkCoord
	for x := -r; x <= r; x++ {
		for z := -r; z <= r; z++ {
			c := voxel.ChunkCoord{X: center.X + x, Z: center.Z + z}
			if s.Gen.GenerateChunk(c) {
				made = append(made, c)
			}
		}
	}
	if len(made) == 0 {
		return nil
	}

	rebuild := make(map[voxel.ChunkCoord]struct{}, len(made)*2)
	for _, c := range made {
		rebuild[c] = struct{}{}
		for _, n := range [4]voxel.ChunkCoord{{X: c.X + 1, Z: c.Z}, {X: c.X - 1, Z: c.Z}, {X: c.X, Z: c.Z + 1}, {X: c.X, Z: c.Z - 1}} {
			if _, ok := s.Meshes.Mesh(n); ok {
				rebuild[n] = struct{}{}
			}
		}
	}
	for c := range rebuild {
		s.Meshes.Rebuild(c)
	}
	logging.LogDebug("Streamed %d chunks around %s", len(made), center)
	return made
}

// Tick advances the session by one fixed step.
func (s *Session) Tick(in Input) {
	if in.Jump {
		s.Body.Jump()
	}
	move := physics.MoveVector(in.Front, in.Forward, in.Back, in.Left, in.Right)
	landing := s.Body.Step(s.World, move)

	if landing.Landed && s.opts.Combat {
		if dmg := combat.FallDamage(s.Fall, s.Game, landing.Distance); dmg > 0 {
			s.Health.Damage(dmg)
			logging.LogDebug("Fell %.2f blocks for %d damage (%s)", landing.Distance, dmg, s.Fall)
		}
	}

	if s.opts.Streaming {
		s.stream()
	}

	if s.Herd != nil {
		eye := s.Body.Eye()
		s.Herd.Spawn(s.rng, eye)
		if dmg := s.Herd.Update(eye, s.Game == combat.Survival); dmg > 0 && s.opts.Combat {
			s.Health.Damage(dmg)
		}
	}

	if s.opts.Combat && s.Health.Dead() {
		s.die()
	} else if s.Body.Position[1] < VOID_Y {
		logging.LogWarn("Fell out of the world at %.1f, %.1f", s.Body.Position[0], s.Body.Position[2])
		s.Body.SetEye(s.SpawnPoint())
	}

	s.Notices.Tick()
}

func (s *Session) die() {
	s.Deaths++
	s.Health.Reset()
	s.Body.SetEye(s.SpawnPoint())
	s.Notices.Push(hud.DEATH_NOTICE)
	logging.LogInfo("Player died (%d deaths)", s.Deaths)
}

// Click applies a mouse button along the look direction. A mob nearer than the
// first block along the ray takes the hit regardless of button.
func (s *Session) Click(b Button, front mgl32.Vec3) Action {
	if front.Len() == 0 {
		return NoAction
	}
	dir := front.Normalize()
	eye := s.Body.Eye()
	hit, blockOK := voxel.Raycast(s.World, eye, dir, s.opts.Reach)

	if s.Herd != nil {
		if i, d, ok := s.Herd.Pick(eye, dir, s.opts.Reach); ok && (!blockOK || d <= hit.Distance) {
			if s.Herd.Hit(i, mob.HIT_DAMAGE) {
				logging.LogDebug("Mob killed, %d left", s.Herd.Len())
				return KilledMob
			}
			return HitMob
		}
	}
	if !blockOK {
		return NoAction
	}

	switch b {
	case LeftButton:
		s.World.Remove(hit.Block)
		s.Meshes.RebuildAround(hit.Block)
		return Broke
	case RightButton:
		if s.World.Has(hit.Prev) {
			return NoAction
		}
		min, max := s.Body.Box()
		if voxel.Intersects(voxel.AABB{Min: min, Max: max}, voxel.BlockBox(hit.Prev)) {
			return PlaceBlocked
		}
		s.World.Set(hit.Prev, voxel.Grass)
		s.Meshes.RebuildAround(hit.Prev)
		return Placed
	}
	return NoAction
}

func (s *Session) ToggleGameMode() combat.GameMode {
	s.Game = s.Game.Toggle()
	s.Notices.Push("%s", hud.GameModeNotice(s.Game))
	logging.LogInfo("Game mode: %s", s.Game)
	return s.Game
}

func (s *Session) CycleFallMode() combat.FallMode {
	s.Fall = s.Fall.Next()
	s.Notices.Push("%s", hud.FallModeNotice(s.Fall))
	logging.LogInfo("Fall damage mode: %s", s.Fall)
	return s.Fall
}

// HUD snapshots what the overlay shows. Sessions without combat carry only
// notices.
func (s *Session) HUD() hud.State {
	st := hud.State{Notices: s.Notices.Active()}
	if s.opts.Combat {
		st.Hearts = hud.HeartBar(s.Health, s.Hearts)
		st.FallMode = hud.FallLabel(s.Fall)
	}
	return st
}
