package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CRAFTBOT_CALIBRATION_FILE",
	"CRAFTBOT_LOG_LEVEL",
	"CRAFTBOT_GAME_WINDOW",
	"CRAFTBOT_KILLSWITCH_KEY",
	"CRAFTBOT_ACTION_DELAY",
	"CRAFTBOT_COPY_DELAY",
	"CRAFTBOT_CAPTURE_RETRIES",
	"CRAFTBOT_DEBUG_DUMP",
	"CRAFTBOT_DEBUG_DIR",
	"CRAFTBOT_DISPLAY",
}

// clearEnv isolates tests from the developer's shell and any .env file.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "userconfig.json", cfg.CalibrationFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "PathOfExile", cfg.GameWindow)
	assert.Equal(t, "+", cfg.KillswitchKey)
	assert.Equal(t, 100*time.Millisecond, cfg.ActionDelay)
	assert.Equal(t, 3, cfg.CaptureRetries)
	assert.False(t, cfg.DebugDump)
	assert.False(t, cfg.Debug())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CRAFTBOT_LOG_LEVEL", "DEBUG")
	t.Setenv("CRAFTBOT_ACTION_DELAY", "250ms")
	t.Setenv("CRAFTBOT_CAPTURE_RETRIES", "5")
	t.Setenv("CRAFTBOT_DEBUG_DUMP", "true")
	t.Setenv("CRAFTBOT_KILLSWITCH_KEY", "-")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Debug())
	assert.Equal(t, 250*time.Millisecond, cfg.ActionDelay)
	assert.Equal(t, 5, cfg.CaptureRetries)
	assert.True(t, cfg.DebugDump)
	assert.Equal(t, "-", cfg.KillswitchKey)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("CRAFTBOT_GAME_WINDOW=PathOfExileSteam\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("CRAFTBOT_GAME_WINDOW") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "PathOfExileSteam", cfg.GameWindow)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad duration", "CRAFTBOT_ACTION_DELAY", "soon"},
		{"bad retries", "CRAFTBOT_CAPTURE_RETRIES", "three"},
		{"negative retries", "CRAFTBOT_CAPTURE_RETRIES", "-1"},
		{"bad level", "CRAFTBOT_LOG_LEVEL", "trace"},
		{"long key", "CRAFTBOT_KILLSWITCH_KEY", "f12"},
		{"bad bool", "CRAFTBOT_DEBUG_DUMP", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}
