package main

import (
	"context"

	"arcadelab/internal/client"
	"arcadelab/internal/config"
	"arcadelab/internal/logging"
	"arcadelab/internal/window"
)

func run(ctx context.Context, cfg *config.Config) error {
	opts, err := client.SessionOptions(cfg.Voxel, true)
	if err != nil {
		return err
	}
	terminate, err := window.Init()
	if err != nil {
		return err
	}
	defer terminate()

	game, err := client.NewVoxelGame(ctx, cfg, "VoxelCraft", opts)
	if err != nil {
		return err
	}
	defer game.Close()
	logging.LogInfo("G toggles game mode, F cycles fall damage, click to capture the mouse")
	return game.Run(ctx)
}
