package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"arcadelab/internal/combat"
	"arcadelab/internal/logging"

	"gopkg.in/yaml.v3"
)

// Config is the root of the YAML file shared by every program. Each binary
// reads only the sections it needs.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Log    LogConfig    `yaml:"log"`
	Voxel  VoxelConfig  `yaml:"voxel"`
	Plane  PlaneConfig  `yaml:"plane"`
	Stress StressConfig `yaml:"stress"`
}

type WindowConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Vsync  bool    `yaml:"vsync"`
	FOV    float32 `yaml:"fov"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

type VoxelConfig struct {
	Terrain          string  `yaml:"terrain"`
	Seed             int64   `yaml:"seed"`
	BaseHeight       int     `yaml:"base_height"`
	SimDistance      int     `yaml:"sim_distance"`
	FixedRadius      int     `yaml:"fixed_radius"`
	Reach            float32 `yaml:"reach"`
	MaxMobs          int     `yaml:"max_mobs"`
	FallMode         string  `yaml:"fall_mode"`
	GameMode         string  `yaml:"game_mode"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
	TextureDir       string  `yaml:"texture_dir"`
	FontPath         string  `yaml:"font_path"`
}

type PlaneConfig struct {
	Plane         string `yaml:"plane"`
	StartAltitude string `yaml:"start_altitude"`
	AutopilotAlt  string `yaml:"autopilot_altitude"`
	Autopilot     bool   `yaml:"autopilot"`
	UnlimitedFuel bool   `yaml:"unlimited_fuel"`
	NoCrash       bool   `yaml:"no_crash"`
	SpriteDir     string `yaml:"sprite_dir"`
}

type StressConfig struct {
	CPUIntensity int `yaml:"cpu_intensity"`
	GPUIntensity int `yaml:"gpu_intensity"`
	MaxCubes     int `yaml:"max_cubes"`
	GraphHeight  int `yaml:"graph_height"`
}

// Default returns the values the programs run with when no file is given.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Width: 1600, Height: 900, Vsync: true, FOV: 75},
		Log:    LogConfig{Level: "info"},
		Voxel: VoxelConfig{
			Terrain:          "sine",
			Seed:             12,
			BaseHeight:       10,
			SimDistance:      2,
			FixedRadius:      3,
			Reach:            6,
			MaxMobs:          5,
			FallMode:         "minecraft",
			GameMode:         "survival",
			MouseSensitivity: 0.3,
			TextureDir:       "assets/textures",
		},
		Plane: PlaneConfig{
			Plane:         "jet",
			StartAltitude: "1200",
			AutopilotAlt:  "2000",
			SpriteDir:     "assets/img",
		},
		Stress: StressConfig{
			CPUIntensity: 50,
			GPUIntensity: 1000,
			MaxCubes:     200000,
			GraphHeight:  150,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path falls back
// to ARCADE_CONFIG; when that is unset too, defaults are returned.
func Load(path string) (*Config, string, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("ARCADE_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, "", fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	return cfg, path, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ARCADE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ARCADE_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Voxel.Seed = seed
		}
	}
}

// Validate replaces unusable values with defaults and reports each fix so the
// caller can log it.
func (c *Config) Validate() []string {
	d := Default()
	var fixes []string
	fix := func(name string, got, want interface{}) {
		fixes = append(fixes, fmt.Sprintf("%s=%v out of range, using %v", name, got, want))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		fix("window.size", fmt.Sprintf("%dx%d", c.Window.Width, c.Window.Height), fmt.Sprintf("%dx%d", d.Window.Width, d.Window.Height))
		c.Window.Width, c.Window.Height = d.Window.Width, d.Window.Height
	}
	if c.Window.FOV < 10 || c.Window.FOV > 150 {
		fix("window.fov", c.Window.FOV, d.Window.FOV)
		c.Window.FOV = d.Window.FOV
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		fix("log.level", c.Log.Level, d.Log.Level)
		c.Log.Level = d.Log.Level
	}
	if _, err := combat.ParseFallMode(c.Voxel.FallMode); err != nil {
		fix("voxel.fall_mode", c.Voxel.FallMode, d.Voxel.FallMode)
		c.Voxel.FallMode = d.Voxel.FallMode
	}
	if _, err := combat.ParseGameMode(c.Voxel.GameMode); err != nil {
		fix("voxel.game_mode", c.Voxel.GameMode, d.Voxel.GameMode)
		c.Voxel.GameMode = d.Voxel.GameMode
	}
	switch strings.ToLower(c.Voxel.Terrain) {
	case "sine", "simplex", "perlin":
		c.Voxel.Terrain = strings.ToLower(c.Voxel.Terrain)
	default:
		fix("voxel.terrain", c.Voxel.Terrain, d.Voxel.Terrain)
		c.Voxel.Terrain = d.Voxel.Terrain
	}
	if c.Voxel.BaseHeight < 1 || c.Voxel.BaseHeight > 200 {
		fix("voxel.base_height", c.Voxel.BaseHeight, d.Voxel.BaseHeight)
		c.Voxel.BaseHeight = d.Voxel.BaseHeight
	}
	if c.Voxel.SimDistance < 0 || c.Voxel.SimDistance > 16 {
		fix("voxel.sim_distance", c.Voxel.SimDistance, d.Voxel.SimDistance)
		c.Voxel.SimDistance = d.Voxel.SimDistance
	}
	if c.Voxel.FixedRadius < 0 || c.Voxel.FixedRadius > 32 {
		fix("voxel.fixed_radius", c.Voxel.FixedRadius, d.Voxel.FixedRadius)
		c.Voxel.FixedRadius = d.Voxel.FixedRadius
	}
	if c.Voxel.Reach <= 0 {
		fix("voxel.reach", c.Voxel.Reach, d.Voxel.Reach)
		c.Voxel.Reach = d.Voxel.Reach
	}
	if c.Voxel.MaxMobs < 0 {
		fix("voxel.max_mobs", c.Voxel.MaxMobs, d.Voxel.MaxMobs)
		c.Voxel.MaxMobs = d.Voxel.MaxMobs
	}
	if c.Voxel.MouseSensitivity <= 0 {
		fix("voxel.mouse_sensitivity", c.Voxel.MouseSensitivity, d.Voxel.MouseSensitivity)
		c.Voxel.MouseSensitivity = d.Voxel.MouseSensitivity
	}
	if c.Stress.CPUIntensity < 0 {
		fix("stress.cpu_intensity", c.Stress.CPUIntensity, d.Stress.CPUIntensity)
		c.Stress.CPUIntensity = d.Stress.CPUIntensity
	}
	if c.Stress.GPUIntensity < 0 {
		fix("stress.gpu_intensity", c.Stress.GPUIntensity, d.Stress.GPUIntensity)
		c.Stress.GPUIntensity = d.Stress.GPUIntensity
	}
	if c.Stress.MaxCubes <= 0 {
		fix("stress.max_cubes", c.Stress.MaxCubes, d.Stress.MaxCubes)
		c.Stress.MaxCubes = d.Stress.MaxCubes
	}
	if c.Stress.GraphHeight <= 0 {
		fix("stress.graph_height", c.Stress.GraphHeight, d.Stress.GraphHeight)
		c.Stress.GraphHeight = d.Stress.GraphHeight
	}
	return fixes
}
