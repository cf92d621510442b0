package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"arcadelab/internal/client"
	"arcadelab/internal/config"
	"arcadelab/internal/flight"
	"arcadelab/internal/logging"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	plane := flag.String("plane", "", "starting plane: jet or fighter")
	alt := flag.String("alt", "", "starting altitude in feet")
	flag.Parse()

	cfg, closeLog, err := client.Boot("planegame", *configPath, func(c *config.Config) {
		if *plane != "" {
			c.Plane.Plane = *plane
		}
		if *alt != "" {
			c.Plane.StartAltitude = *alt
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "planegame: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		logging.LogError("%v", err)
		closeLog()
		os.Exit(1)
	}
	closeLog()
}

func run(cfg *config.Config) error {
	if _, err := flight.LookupKind(cfg.Plane.Plane); err != nil {
		logging.LogWarn("%v, using jet", err)
		cfg.Plane.Plane = "jet"
	}
	f, err := flight.New(flight.Settings{
		Plane:         cfg.Plane.Plane,
		StartAltitude: cfg.Plane.StartAltitude,
		AutopilotAlt:  cfg.Plane.AutopilotAlt,
		Autopilot:     cfg.Plane.Autopilot,
		UnlimitedFuel: cfg.Plane.UnlimitedFuel,
		NoCrash:       cfg.Plane.NoCrash,
		ScreenW:       float64(cfg.Window.Width),
		ScreenH:       float64(cfg.Window.Height),
	}, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("Plane Game")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(cfg.Window.Vsync)
	ebiten.SetTPS(60)
	logging.LogInfo("Plane game ready, %d buildings generated", len(f.City.Buildings))
	if err := ebiten.RunGame(NewGame(cfg, f)); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
