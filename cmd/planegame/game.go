package main

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strconv"

	"arcadelab/internal/assets"
	"arcadelab/internal/config"
	"arcadelab/internal/flight"
	"arcadelab/internal/logging"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	skyTop     = color.RGBA{R: 0x6e, G: 0xc6, B: 0xff, A: 0xff}
	skyBottom  = color.RGBA{R: 0xe3, G: 0xf2, B: 0xfd, A: 0xff}
	grassColor = color.RGBA{G: 0x80, A: 0xff}
	earthColor = color.RGBA{R: 0x4e, G: 0x34, B: 0x2e, A: 0xff}
	towerColor = color.RGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
	lightColor = color.RGBA{R: 0xff, G: 0xff, A: 0xff}
	panelColor = color.RGBA{A: 0x80}
	limeColor  = color.RGBA{G: 0xff, A: 0xff}
	fuelColor  = color.RGBA{R: 0xff, G: 0xa5, A: 0xff}
	emptyColor = color.RGBA{R: 0xff, A: 0xff}
	planeColor = color.RGBA{R: 0xd0, G: 0xd0, B: 0xd8, A: 0xff}
)

const ALT_STEP = 100

var planeKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

type Game struct {
	flight    *flight.Flight
	width     int
	height    int
	spriteDir string

	sky      *ebiten.Image
	sprites  map[string]*ebiten.Image
	face     text.Face
	kinds    []string
	selected int
	altInput string
	hideInfo bool
}

func NewGame(cfg *config.Config, f *flight.Flight) *Game {
	g := &Game{
		flight:    f,
		width:     cfg.Window.Width,
		height:    cfg.Window.Height,
		spriteDir: cfg.Plane.SpriteDir,
		sprites:   map[string]*ebiten.Image{},
		face:      text.NewGoXFace(basicfont.Face7x13),
		kinds:     flight.Kinds(),
		altInput:  cfg.Plane.StartAltitude,
	}
	for i, k := range g.kinds {
		if k == f.Settings.Plane {
			g.selected = i
		}
	}
	g.sky = gradient(g.width, g.height, skyTop, skyBottom)
	return g
}

func gradient(w, h int, top, bottom color.RGBA) *ebiten.Image {
	img := image.NewRGBA(image.Rect(0, 0, 1, h))
	for y := 0; y < h; y++ {
		t := float64(y) / float64(h-1)
		mix := func(a, b uint8) uint8 { return uint8(float64(a) + (float64(b)-float64(a))*t) }
		img.SetRGBA(0, y, color.RGBA{R: mix(top.R, bottom.R), G: mix(top.G, bottom.G), B: mix(top.B, bottom.B), A: 0xff})
	}
	out := ebiten.NewImageFromImage(img)
	scaled := ebiten.NewImage(w, h)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), 1)
	scaled.DrawImage(out, op)
	return scaled
}

// sprite loads a plane image once. Missing files fall back to a flat box.
func (g *Game) sprite(k flight.Kind) *ebiten.Image {
	if img, ok := g.sprites[k.Name]; ok {
		return img
	}
	var img *ebiten.Image
	src, err := assets.LoadImage(filepath.Join(g.spriteDir, k.Sprite))
	if err != nil {
		logging.LogWarn("Sprite for %s unavailable, drawing a box: %v", k.Name, err)
		img = ebiten.NewImageFromImage(assets.Solid(planeColor, 4))
	} else {
		img = ebiten.NewImageFromImage(src)
	}
	g.sprites[k.Name] = img
	return img
}

func (g *Game) Update() error {
	f := g.flight
	switch f.State {
	case flight.Startup:
		g.updateStartup()
	case flight.Crashed:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			if err := f.Reset(); err != nil {
				return err
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyS) {
			f.Spectate()
			logging.LogInfo("Spectating")
		}
	case flight.Spectating:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			if err := f.Reset(); err != nil {
				return err
			}
		}
	}
	if f.State != flight.Startup {
		if err := g.updateOptions(); err != nil {
			return err
		}
	}

	f.Update(flight.Controls{
		RollLeft:  ebiten.IsKeyPressed(ebiten.KeyA),
		RollRight: ebiten.IsKeyPressed(ebiten.KeyD),
		Throttle:  ebiten.IsKeyPressed(ebiten.KeyW),
	})
	return nil
}

func (g *Game) updateStartup() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.selected = (g.selected + len(g.kinds) - 1) % len(g.kinds)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.selected = (g.selected + 1) % len(g.kinds)
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if (r >= '0' && r <= '9') || (r == '-' && g.altInput == "") {
			g.altInput += string(r)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && g.altInput != "" {
		g.altInput = g.altInput[:len(g.altInput)-1]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if err := g.flight.Start(g.kinds[g.selected], g.altInput); err != nil {
			logging.LogError("Start flight: %v", err)
		}
	}
}

func (g *Game) updateOptions() error {
	f := g.flight
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		logging.LogInfo("Unlimited fuel: %v", f.ToggleUnlimitedFuel())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		f.Settings.Autopilot = !f.Settings.Autopilot
		logging.LogInfo("Autopilot: %v", f.Settings.Autopilot)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		f.Settings.NoCrash = !f.Settings.NoCrash
		logging.LogInfo("No crash: %v", f.Settings.NoCrash)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hideInfo = !g.hideInfo
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) || inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		alt := flight.ParseAltitude(f.Settings.AutopilotAlt, flight.DEFAULT_TARGET)
		if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
			alt += ALT_STEP
		} else if alt > ALT_STEP {
			alt -= ALT_STEP
		}
		f.Settings.AutopilotAlt = strconv.Itoa(alt)
	}
	for i, k := range g.kinds {
		if i < len(planeKeys) && inpututil.IsKeyJustPressed(planeKeys[i]) {
			if err := f.SwitchPlane(k); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	f := g.flight
	screen.DrawImage(g.sky, nil)

	camX, camY := float32(f.CameraX), float32(f.CameraY)
	ground := float32(f.GroundY())
	w := float32(g.width)
	vector.DrawFilledRect(screen, 0, ground-10-camY, w, 10, grassColor, false)
	vector.DrawFilledRect(screen, 0, ground-camY, w, float32(flight.GROUND_MARGIN), earthColor, false)

	for _, b := range f.City.Buildings {
		bx := float32(b.X) - camX
		if bx+float32(b.W) < 0 || bx > w {
			continue
		}
		by := float32(b.Y-b.H) - camY
		vector.DrawFilledRect(screen, bx, by, float32(b.W), float32(b.H), towerColor, false)
		b.Windows(func(dx, dy float64) {
			vector.DrawFilledRect(screen, bx+float32(dx), by+float32(dy), flight.WINDOW_W, flight.WINDOW_H, lightColor, false)
		})
	}

	g.drawPlane(screen)
	g.drawPanel(screen)

	switch f.State {
	case flight.Startup:
		g.drawStartup(screen)
	case flight.Crashed:
		g.popup(screen, "You crashed!", "R: reset flight   S: spectate")
	}
}

func (g *Game) drawPlane(screen *ebiten.Image) {
	p := g.flight.Plane
	img := g.sprite(p.Kind)
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(p.W/float64(b.Dx()), p.H/float64(b.Dy()))
	op.GeoM.Translate(-p.W/2, -p.H/2)
	op.GeoM.Rotate(p.Angle)
	op.GeoM.Translate(p.X-g.flight.CameraX, p.Y-g.flight.CameraY)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func (g *Game) print(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, g.face, op)
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	f := g.flight
	w, h := float32(g.width), float32(g.height)

	vector.DrawFilledRect(screen, w-220, h-100, 200, 100, panelColor, false)
	g.print(screen, "Throttle", float64(w-200), float64(h-90), color.White)
	vector.StrokeRect(screen, w-200, h-70, 160, 10, 1, color.White, false)
	vector.DrawFilledRect(screen, w-200, h-70, 160*float32(f.Throttle), 10, limeColor, false)
	g.print(screen, "Fuel", float64(w-200), float64(h-55), color.White)
	vector.StrokeRect(screen, w-200, h-35, 160, 10, 1, color.White, false)
	fc := fuelColor
	if f.Plane.Fuel <= 0 {
		fc = emptyColor
	}
	vector.DrawFilledRect(screen, w-200, h-35, 160*float32(f.Plane.Fuel), 10, fc, false)

	t := f.Telemetry()
	g.print(screen, fmt.Sprintf("Speed: %.0f MPH", t.SpeedMPH), 20, 20, color.White)
	g.print(screen, fmt.Sprintf("VS: %.0f FPM", t.VerticalFPM), 20, 40, color.White)
	g.print(screen, fmt.Sprintf("Alt: %.0f ft", t.AltitudeFt), 20, 60, color.White)
	g.print(screen, fmt.Sprintf("Rated: %.0f MPH", t.RatedMPH), 20, 80, color.White)

	if g.hideInfo {
		return
	}
	s := f.Settings
	lines := []string{
		fmt.Sprintf("Plane: %s (1-%d to switch)", s.Plane, len(g.kinds)),
		fmt.Sprintf("Autopilot [P]: %v  target %s ft [PgUp/PgDn]", s.Autopilot, s.AutopilotAlt),
		fmt.Sprintf("Unlimited fuel [F]: %v", s.UnlimitedFuel),
		fmt.Sprintf("No crash [N]: %v", s.NoCrash),
		"W throttle, A/D roll, H hides this box",
	}
	vector.DrawFilledRect(screen, w-360, 10, 350, float32(len(lines)*18+12), panelColor, false)
	for i, l := range lines {
		g.print(screen, l, float64(w-350), float64(16+i*18), color.White)
	}
}

func (g *Game) popup(screen *ebiten.Image, title, hint string) {
	w, h := float32(g.width), float32(g.height)
	vector.DrawFilledRect(screen, w/2-180, h/2-50, 360, 100, panelColor, false)
	g.print(screen, title, float64(w/2-160), float64(h/2-35), color.White)
	g.print(screen, hint, float64(w/2-160), float64(h/2+5), color.White)
}

func (g *Game) drawStartup(screen *ebiten.Image) {
	g.popup(screen,
		fmt.Sprintf("Plane: < %s >   Start altitude: %s_ ft", g.kinds[g.selected], g.altInput),
		"Left/Right choose plane, type altitude, Enter to fly")
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
