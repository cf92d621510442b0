package client

import (
	"testing"

	"arcadelab/internal/combat"
	"arcadelab/internal/config"
	"arcadelab/internal/hud"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionOptionsStreaming(t *testing.T) {
	c := config.Default().Voxel
	c.FallMode = "Hardcore"
	c.GameMode = "creative"
	opts, err := SessionOptions(c, true)
	require.NoError(t, err)
	assert.True(t, opts.Streaming)
	assert.True(t, opts.Mobs)
	assert.True(t, opts.Combat)
	assert.Equal(t, combat.Hardcore, opts.FallMode)
	assert.Equal(t, combat.Creative, opts.GameMode)
	assert.Equal(t, c.SimDistance, opts.SimDistance)
}

func TestSessionOptionsFixed(t *testing.T) {
	c := config.Default().Voxel
	c.FallMode = "bogus"
	opts, err := SessionOptions(c, false)
	require.NoError(t, err)
	assert.False(t, opts.Mobs)
	assert.False(t, opts.Combat)
	assert.Equal(t, c.FixedRadius, opts.FixedRadius)
}

func TestSessionOptionsBadFallModeFallsBack(t *testing.T) {
	cfg := config.Default()
	cfg.Voxel.FallMode = "bogus"
	cfg.Voxel.GameMode = "nope"
	require.Len(t, cfg.Validate(), 2)
	opts, err := SessionOptions(cfg.Voxel, true)
	require.NoError(t, err)
	assert.Equal(t, combat.Minecraft, opts.FallMode)
	assert.Equal(t, combat.Survival, opts.GameMode)
}

func TestBootResetsUnknownLogLevel(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ARCADE_CONFIG", "")
	t.Setenv("ARCADE_LOG_LEVEL", "")
	cfg, closeLog, err := Boot("boottest", "", func(c *config.Config) {
		c.Log.Level = "verbose"
		c.Log.Dir = dir
	})
	require.NoError(t, err)
	defer closeLog()
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestOverlayWithoutCombat(t *testing.T) {
	lines := Overlay(hud.State{FPS: 58}, 800, 600)
	require.Len(t, lines, 2)
	assert.Equal(t, "+", lines[0].Text)
	assert.Equal(t, 394, lines[0].X)
	assert.Equal(t, "FPS: 58", lines[1].Text)
}

func TestOverlayWithCombatAndNotices(t *testing.T) {
	st := hud.State{
		Hearts:   "❤ Health: ❤♡",
		FallMode: "Fall Mode: Soft",
		Notices:  []string{"a", "b"},
	}
	lines := Overlay(st, 800, 600)
	require.Len(t, lines, 6)
	assert.Equal(t, st.Hearts, lines[2].Text)
	assert.Equal(t, 560, lines[2].Y)
	assert.Equal(t, st.FallMode, lines[3].Text)
	assert.Equal(t, 80, lines[4].Y)
	assert.Equal(t, 80+NOTICE_STEP, lines[5].Y)
}
