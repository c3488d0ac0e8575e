package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ConserveLee/craftbot/internal/constants"
)

// ErrInvalid is returned when an environment value cannot be used
var ErrInvalid = errors.New("invalid configuration")

// Config holds the application configuration
type Config struct {
	CalibrationFile string
	LogLevel        string
	GameWindow      string // Process name used to focus the game before copying
	KillswitchKey   string
	ActionDelay     time.Duration
	CopyDelay       time.Duration
	CaptureRetries  int
	DebugDump       bool
	DebugDir        string
	DisplayID       int
}

// Load loads the configuration from a .env file (if present) and the environment
func Load() (*Config, error) {
	// Missing .env is fine, real env vars take over
	_ = godotenv.Load()

	cfg := &Config{
		CalibrationFile: getEnv("CRAFTBOT_CALIBRATION_FILE", constants.DefaultCalibrationFile),
		LogLevel:        strings.ToLower(getEnv("CRAFTBOT_LOG_LEVEL", constants.DefaultLogLevel)),
		GameWindow:      getEnv("CRAFTBOT_GAME_WINDOW", constants.DefaultGameWindow),
		KillswitchKey:   getEnv("CRAFTBOT_KILLSWITCH_KEY", constants.DefaultKillswitchKey),
		DebugDir:        getEnv("CRAFTBOT_DEBUG_DIR", constants.DefaultDebugDir),
	}

	var err error
	if cfg.ActionDelay, err = getDuration("CRAFTBOT_ACTION_DELAY", constants.WaitAfterAction); err != nil {
		return nil, err
	}
	if cfg.CopyDelay, err = getDuration("CRAFTBOT_COPY_DELAY", constants.WaitAfterCopy); err != nil {
		return nil, err
	}
	if cfg.CaptureRetries, err = getInt("CRAFTBOT_CAPTURE_RETRIES", constants.CaptureRetries); err != nil {
		return nil, err
	}
	if cfg.DisplayID, err = getInt("CRAFTBOT_DISPLAY", 0); err != nil {
		return nil, err
	}
	if cfg.DebugDump, err = getBool("CRAFTBOT_DEBUG_DUMP", constants.DebugDump); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that the parsers alone cannot catch
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "info", "debug":
	default:
		return fmt.Errorf("%w: CRAFTBOT_LOG_LEVEL must be info or debug, got %q", ErrInvalid, c.LogLevel)
	}
	if c.CalibrationFile == "" {
		return fmt.Errorf("%w: CRAFTBOT_CALIBRATION_FILE is empty", ErrInvalid)
	}
	if len([]rune(c.KillswitchKey)) != 1 {
		return fmt.Errorf("%w: CRAFTBOT_KILLSWITCH_KEY must be a single character, got %q", ErrInvalid, c.KillswitchKey)
	}
	if c.CaptureRetries < 0 {
		return fmt.Errorf("%w: CRAFTBOT_CAPTURE_RETRIES must not be negative", ErrInvalid)
	}
	if c.ActionDelay < 0 || c.CopyDelay < 0 {
		return fmt.Errorf("%w: delays must not be negative", ErrInvalid)
	}
	return nil
}

// Debug reports whether debug logging is requested
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
	}
	return v, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
	}
	return v, nil
}
