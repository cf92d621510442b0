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
	mode := flag.String("mode", "cpu", "benchmark to run: cpu or gpu")
	intensity := flag.Int("intensity", -1, "starting intensity for the chosen mode")
	flag.Parse()

	cfg, closeLog, err := client.Boot("stresstest", *configPath, func(c *config.Config) {
		if *intensity < 0 {
			return
		}
		if *mode == "gpu" {
			c.Stress.GPUIntensity = *intensity
		} else {
			c.Stress.CPUIntensity = *intensity
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "stresstest: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	switch *mode {
	case "cpu":
		err = runCPU(cfg)
	case "gpu":
		err = runGPU(ctx, cfg)
	default:
		err = fmt.Errorf("unknown mode %q, want cpu or gpu", *mode)
	}
	stop()
	if err != nil {
		logging.LogError("%v", err)
		closeLog()
		os.Exit(1)
	}
	closeLog()
}
