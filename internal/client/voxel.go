package client

import (
	"context"
	"fmt"
	"time"

	"arcadelab/internal/assets"
	"arcadelab/internal/bench"
	"arcadelab/internal/camera"
	"arcadelab/internal/combat"
	"arcadelab/internal/config"
	"arcadelab/internal/hud"
	"arcadelab/internal/logging"
	"arcadelab/internal/mob"
	"arcadelab/internal/render"
	"arcadelab/internal/sandbox"
	"arcadelab/internal/voxel"
	"arcadelab/internal/window"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// VoxelGame ties a sandbox session to a window and the GL renderers.
type VoxelGame struct {
	cfg     *config.Config
	Session *sandbox.Session
	win     *window.Window
	look    *camera.Look
	ticker  *camera.Ticker
	fps     *bench.FrameCounter
	env     render.Environment

	world *render.WorldRenderer
	sky   *render.Sky
	text  *render.TextRenderer

	prevEye mgl32.Vec3
}

// SessionOptions maps the voxel section of the config onto a session.
// streaming selects sandbox A behaviour; otherwise the fixed-radius build.
func SessionOptions(c config.VoxelConfig, streaming bool) (sandbox.Options, error) {
	opts := sandbox.Options{
		Streaming:   streaming,
		SimDistance: c.SimDistance,
		FixedRadius: c.FixedRadius,
		Mobs:        streaming,
		MaxMobs:     c.MaxMobs,
		Combat:      streaming,
		BaseHeight:  c.BaseHeight,
		Reach:       c.Reach,
		Seed:        c.Seed,
	}
	if !streaming {
		return opts, nil
	}
	game, err := combat.ParseGameMode(c.GameMode)
	if err != nil {
		return opts, err
	}
	fall, err := combat.ParseFallMode(c.FallMode)
	if err != nil {
		return opts, err
	}
	opts.GameMode, opts.FallMode = game, fall
	return opts, nil
}

// NewVoxelGame generates the world, opens the window and loads GPU resources.
// Anything created before a failure is released.
func NewVoxelGame(ctx context.Context, cfg *config.Config, title string, opts sandbox.Options) (_ *VoxelGame, err error) {
	terrain, err := voxel.NewTerrain(cfg.Voxel.Terrain, cfg.Voxel.BaseHeight, cfg.Voxel.Seed)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	sess, err := sandbox.New(ctx, terrain, opts)
	if err != nil {
		return nil, err
	}
	logging.LogInfo("Generated %s terrain in %v", cfg.Voxel.Terrain, time.Since(start).Round(time.Millisecond))

	g := &VoxelGame{
		cfg:     cfg,
		Session: sess,
		look:    camera.NewLook(cfg.Voxel.MouseSensitivity),
		ticker:  camera.NewTicker(),
		fps:     bench.NewFrameCounter(nil),
		env:     render.DefaultEnvironment(),
	}
	defer func() {
		if err != nil {
			g.Close()
		}
	}()
	g.win, err = window.New(title, cfg.Window.Width, cfg.Window.Height, cfg.Window.Vsync, g.look)
	if err != nil {
		return nil, err
	}

	textures, missing := assets.LoadBlockTextures(cfg.Voxel.TextureDir)
	if missing > 0 {
		logging.LogWarn("%d block textures missing in %s", missing, cfg.Voxel.TextureDir)
	}
	if g.world, err = render.NewWorldRenderer(textures); err != nil {
		return nil, fmt.Errorf("world renderer: %w", err)
	}
	if g.sky, err = render.NewSky(); err != nil {
		return nil, fmt.Errorf("sky renderer: %w", err)
	}
	font, err := render.LoadFont(cfg.Voxel.FontPath)
	if err != nil {
		return nil, err
	}
	sess.Hearts = hud.PickGlyphs(func(r rune) bool { return render.HasGlyph(font, r) })
	if sess.Hearts != hud.HEARTS {
		logging.LogDebug("Font lacks %s%s, drawing plain hearts", hud.HEARTS.Full, hud.HEARTS.Empty)
	}
	w, h := g.win.Size()
	if g.text, err = render.NewTextRenderer(font, w, h); err != nil {
		return nil, fmt.Errorf("text renderer: %w", err)
	}
	g.prevEye = sess.Eye()
	return g, nil
}

func (g *VoxelGame) input() sandbox.Input {
	return sandbox.Input{
		Forward: g.win.Down(glfw.KeyW),
		Back:    g.win.Down(glfw.KeyS),
		Left:    g.win.Down(glfw.KeyA),
		Right:   g.win.Down(glfw.KeyD),
		Jump:    g.win.Down(glfw.KeySpace),
		Front:   g.look.Front(),
	}
}

func (g *VoxelGame) handleEvents() {
	combatOn := g.Session.Options().Combat
	for _, k := range g.win.Presses() {
		switch k {
		case glfw.KeyG:
			if combatOn {
				g.Session.ToggleGameMode()
			}
		case glfw.KeyF:
			if combatOn {
				g.Session.CycleFallMode()
			}
		}
	}
	for _, b := range g.win.Clicks() {
		var btn sandbox.Button
		switch b {
		case glfw.MouseButtonLeft:
			btn = sandbox.LeftButton
		case glfw.MouseButtonRight:
			btn = sandbox.RightButton
		default:
			continue
		}
		if act := g.Session.Click(btn, g.look.Front()); act != sandbox.NoAction {
			logging.LogTrace("Click %d: %s", btn, act)
		}
	}
}

func (g *VoxelGame) draw(alpha float32) {
	eye := camera.Lerp(g.prevEye, g.Session.Eye(), alpha)
	w, h := g.win.Size()
	proj := camera.Projection(g.cfg.Window.FOV, w, h)
	view := camera.View(eye, g.look.Front())

	if n := g.world.Sync(g.Session.Meshes); n > 0 {
		logging.LogTrace("Uploaded %d chunk meshes", n)
	}

	render.Clear(g.env.Sky)
	g.sky.Draw(proj, view, g.env)
	g.world.Draw(proj, view, g.env)
	if herd := g.Session.Herd; herd != nil && herd.Len() > 0 {
		centres := make([]mgl32.Vec3, 0, herd.Len())
		for _, m := range herd.Mobs {
			centres = append(centres, m.Pos)
		}
		g.world.DrawBoxes(proj, view, g.env, mob.Size, centres)
	}

	st := g.Session.HUD()
	st.FPS = g.fps.FPS
	g.text.Resize(w, h)
	g.text.Draw(Overlay(st, w, h))
}

// Run drives the window until it is closed or ctx is cancelled.
func (g *VoxelGame) Run(ctx context.Context) error {
	last := time.Now()
	for !g.win.ShouldClose() {
		if err := ctx.Err(); err != nil {
			logging.LogInfo("Shutting down: %v", err)
			return nil
		}
		g.win.Poll()
		g.handleEvents()

		now := time.Now()
		ticks, alpha := g.ticker.Advance(now.Sub(last).Seconds())
		last = now
		for i := 0; i < ticks; i++ {
			g.prevEye = g.Session.Eye()
			g.Session.Tick(g.input())
		}

		g.draw(alpha)
		g.win.Swap()
		if fps, ok := g.fps.Frame(); ok {
			logging.LogTrace("FPS %d, %d chunks drawn", fps, g.world.ChunkCount())
		}
	}
	return nil
}

func (g *VoxelGame) Close() {
	if g.text != nil {
		g.text.Delete()
	}
	if g.sky != nil {
		g.sky.Delete()
	}
	if g.world != nil {
		g.world.Delete()
	}
	if g.win != nil {
		g.win.Close()
	}
}
