package main

import (
	"context"

	"arcadelab/internal/client"
	"arcadelab/internal/config"
	"arcadelab/internal/logging"
	"arcadelab/internal/window"
)

func run(ctx context.Context, cfg *config.Config) error {
	opts, err := client.SessionOptions(cfg.Voxel, false)
	if err != nil {
		return err
	}
	terminate, err := window.Init()
	if err != nil {
		return err
	}
	defer terminate()

	game, err := client.NewVoxelGame(ctx, cfg, "Voxel Sandbox", opts)
	if err != nil {
		return err
	}
	defer game.Close()
	logging.LogInfo("Left click breaks, right click places, click to capture the mouse")
	return game.Run(ctx)
}
