package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zammelRocks/whale-spectrogram/render"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, *render.DefaultConfig(), cfg.Render)
	assert.Equal(t, "spectrograms", cfg.Output.Dir)
	assert.True(t, cfg.Output.Legend)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "specrender.yaml", `
render:
  block_scale: 4
  db_floor: -100
  margins:
    left: 70
output:
  dir: out
  methods: [original, method-b]
  legend: false
  zoom: 2
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Render.BlockScale)
	assert.Equal(t, -100.0, cfg.Render.DBFloor)
	assert.Equal(t, 0.0, cfg.Render.DBCeiling, "unset keys keep defaults")
	assert.Equal(t, 70, cfg.Render.Margins.Left)
	assert.Equal(t, 40, cfg.Render.Margins.Bottom)
	assert.Equal(t, 5, cfg.Render.TickCount)
	assert.Equal(t, []string{"original", "method-b"}, cfg.Output.Methods)
	assert.False(t, cfg.Output.Legend)
	assert.Equal(t, 2, cfg.Output.Zoom)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	_, err := Load(writeFile(t, "bad.yaml", "render:\n  db_floor: 5\n"))
	assert.ErrorIs(t, err, render.ErrInvalidConfig)

	_, err = Load(writeFile(t, "broken.yaml", "render: [\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "level.yaml", "logging:\n  level: chatty\n"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SPECRENDER_BLOCK_SCALE":   "2",
		"SPECRENDER_DB_FLOOR":      "-90.5",
		"SPECRENDER_MARGIN_BOTTOM": "48",
		"SPECRENDER_LEGEND":        "false",
		"SPECRENDER_METHODS":       "original, method-c,",
		"SPECRENDER_OUT_DIR":       "/tmp/specs",
		"SPECRENDER_LOG_LEVEL":     "warn",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))

	assert.Equal(t, 2, cfg.Render.BlockScale)
	assert.Equal(t, -90.5, cfg.Render.DBFloor)
	assert.Equal(t, 48, cfg.Render.Margins.Bottom)
	assert.False(t, cfg.Output.Legend)
	assert.Equal(t, []string{"original", "method-c"}, cfg.Output.Methods)
	assert.Equal(t, "/tmp/specs", cfg.Output.Dir)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestApplyEnvBadValue(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) (string, bool) {
		if k == "SPECRENDER_TICK_COUNT" {
			return "many", true
		}
		return "", false
	})
	assert.Error(t, err)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("SPECRENDER_BLOCK_SCALE", "6")
	cfg, err := Load(writeFile(t, "c.yaml", "render:\n  block_scale: 4\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Render.BlockScale)
}

func TestValidateZoom(t *testing.T) {
	cfg := Default()
	cfg.Output.Zoom = 0
	assert.Error(t, cfg.Validate())
}
