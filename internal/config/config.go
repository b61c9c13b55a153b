// Package config loads environment configuration for xmouse.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultListenAddr     = "127.0.0.1:8722"
	defaultDataDir        = "./data"
	defaultMonitorIdx     = 1
	defaultInputEnabled   = true
	defaultMoveThrottleMs = 16
	defaultMoveMinDelta   = 2
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr     string
	UIPassword     string
	DataDir        string
	ProfilePath    string
	Display        string
	MonitorIndex   int
	InputEnabled   bool
	MoveThrottleMs int
	MoveMinDelta   int
}

// Load reads configuration from ./data/.env and environment variables.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:     defaultListenAddr,
		DataDir:        defaultDataDir,
		ProfilePath:    filepath.Join(defaultDataDir, "profile.yaml"),
		MonitorIndex:   defaultMonitorIdx,
		InputEnabled:   defaultInputEnabled,
		MoveThrottleMs: defaultMoveThrottleMs,
		MoveMinDelta:   defaultMoveMinDelta,
	}

	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	cfg.ProfilePath = envString("PROFILE_PATH", filepath.Join(cfg.DataDir, "profile.yaml"))
	cfg.Display = envString("XMOUSE_DISPLAY", cfg.Display)
	cfg.UIPassword = strings.TrimSpace(os.Getenv("UI_PASSWORD"))

	monitorIdx, err := envInt("MONITOR_INDEX", cfg.MonitorIndex)
	if err != nil {
		return Config{}, err
	}
	if monitorIdx < 1 {
		return Config{}, fmt.Errorf("MONITOR_INDEX must be >= 1")
	}
	cfg.MonitorIndex = monitorIdx

	cfg.InputEnabled = envBool("INPUT_ENABLED", cfg.InputEnabled)

	throttle, err := envInt("MOVE_THROTTLE_MS", cfg.MoveThrottleMs)
	if err != nil {
		return Config{}, err
	}
	if throttle < 0 {
		return Config{}, fmt.Errorf("MOVE_THROTTLE_MS must be >= 0")
	}
	cfg.MoveThrottleMs = throttle

	minDelta, err := envInt("MOVE_MIN_DELTA", cfg.MoveMinDelta)
	if err != nil {
		return Config{}, err
	}
	if minDelta < 0 {
		return Config{}, fmt.Errorf("MOVE_MIN_DELTA must be >= 0")
	}
	cfg.MoveMinDelta = minDelta

	if cfg.UIPassword == "" {
		return Config{}, errors.New("UI_PASSWORD is required")
	}

	return cfg, nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// loadEnvFile loads KEY=VALUE pairs from a .env file.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	if strings.HasPrefix(line, "export ") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	}
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", false
	}
	value = strings.Trim(value, `"'`)
	return key, value, true
}
