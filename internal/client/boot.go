package client

import (
	"fmt"

	"arcadelab/internal/config"
	"arcadelab/internal/logging"
)

// Boot loads the configuration, applies command line overrides, starts the
// logger for program and logs every value Validate had to correct. The
// returned function closes the log file.
func Boot(program, path string, overrides ...func(*config.Config)) (*config.Config, func(), error) {
	cfg, used, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	for _, o := range overrides {
		o(cfg)
	}
	// unknown names fall back to defaults, so the level parses after this
	fixes := cfg.Validate()
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	if err := logging.InitLogger(logging.Options{Program: program, Level: level, Dir: cfg.Log.Dir}); err != nil {
		return nil, nil, err
	}
	if used != "" {
		logging.LogInfo("Config loaded from %s", used)
	} else {
		logging.LogDebug("No config file, using defaults")
	}
	for _, fix := range fixes {
		logging.LogWarn("Config: %s", fix)
	}
	return cfg, logging.CloseLogger, nil
}
