package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	t.Setenv("ARCADE_CONFIG", "")
	cfg, path, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arcade.yaml")
	require.NoError(t, os.WriteFile(path, []byte("voxel:\n  terrain: perlin\n  seed: 99\nplane:\n  plane: fighter\n"), 0644))

	cfg, used, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "perlin", cfg.Voxel.Terrain)
	assert.Equal(t, int64(99), cfg.Voxel.Seed)
	assert.Equal(t, "fighter", cfg.Plane.Plane)
	assert.Equal(t, 10, cfg.Voxel.BaseHeight)
	assert.Equal(t, 1600, cfg.Window.Width)
}

func TestLoadReadsEnvPathAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0644))
	t.Setenv("ARCADE_CONFIG", path)
	t.Setenv("ARCADE_LOG_LEVEL", "warn")
	t.Setenv("ARCADE_SEED", "42")

	cfg, used, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, int64(42), cfg.Voxel.Seed)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("voxel: [unclosed"), 0644))
	_, _, err := Load(path)
	assert.Error(t, err)
}

func TestValidateFixesOutOfRange(t *testing.T) {
	cfg := Default()
	cfg.Voxel.Terrain = "Fractal"
	cfg.Voxel.Reach = -1
	cfg.Stress.MaxCubes = 0
	cfg.Window.Width = 0

	fixes := cfg.Validate()
	assert.Len(t, fixes, 4)
	assert.Equal(t, "sine", cfg.Voxel.Terrain)
	assert.Equal(t, float32(6), cfg.Voxel.Reach)
	assert.Equal(t, 200000, cfg.Stress.MaxCubes)
	assert.Equal(t, 1600, cfg.Window.Width)

	assert.Empty(t, Default().Validate())
}

func TestValidateResetsUnknownNames(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "verbose"
	cfg.Voxel.FallMode = "extreme"
	cfg.Voxel.GameMode = "hardmode"

	fixes := cfg.Validate()
	require.Len(t, fixes, 3)
	assert.Equal(t, "log.level=verbose out of range, using info", fixes[0])
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "minecraft", cfg.Voxel.FallMode)
	assert.Equal(t, "survival", cfg.Voxel.GameMode)
}

func TestValidateKeepsKnownNamesAnyCase(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "WARNING"
	cfg.Voxel.FallMode = "Hardcore"
	cfg.Voxel.GameMode = "CREATIVE"
	assert.Empty(t, cfg.Validate())
	assert.Equal(t, "Hardcore", cfg.Voxel.FallMode)
}

func TestValidateNormalisesTerrainCase(t *testing.T) {
	cfg := Default()
	cfg.Voxel.Terrain = "SIMPLEX"
	assert.Empty(t, cfg.Validate())
	assert.Equal(t, "simplex", cfg.Voxel.Terrain)
}

func TestExampleConfigIsValid(t *testing.T) {
	t.Setenv("ARCADE_LOG_LEVEL", "")
	t.Setenv("ARCADE_SEED", "")
	cfg, used, err := Load("../../config.example.yaml")
	require.NoError(t, err)
	assert.Equal(t, "../../config.example.yaml", used)
	assert.Empty(t, cfg.Validate())
	assert.Equal(t, "simplex", cfg.Voxel.Terrain)
	assert.Equal(t, "2000", cfg.Plane.AutopilotAlt)
}
