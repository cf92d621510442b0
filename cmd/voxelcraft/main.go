package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"arcadelab/internal/client"
	"arcadelab/internal/config"
	"arcadelab/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	terrain := flag.String("terrain", "", "terrain generator: sine, simplex or perlin")
	fall := flag.String("fall", "", "starting fall damage mode: minecraft, soft, realistic or hardcore")
	flag.Parse()

	cfg, closeLog, err := client.Boot("voxelcraft", *configPath, func(c *config.Config) {
		if *terrain != "" {
			c.Voxel.Terrain = *terrain
		}
		if *fall != "" {
			c.Voxel.FallMode = *fall
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "voxelcraft: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		logging.LogError("%v", err)
		closeLog()
		os.Exit(1)
	}
	closeLog()
}
