// Package config loads fbwin settings from YAML.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Backend values accepted by the backend field.
const (
	BackendAuto     = "auto"
	BackendX11      = "x11"
	BackendWin32    = "win32"
	BackendHeadless = "headless"
)

// DefaultClassName is the WM_CLASS hint given to windows.
const DefaultClassName = "Fluffkiosk"

// Config is the effective configuration.
type Config struct {
	Display        string         `yaml:"display,omitempty"`
	XAuthority     string         `yaml:"xauthority,omitempty"`
	Backend        string         `yaml:"backend"`
	ClassName      string         `yaml:"class_name"`
	PollIntervalMs int            `yaml:"poll_interval_ms"`
	SharedMemory   bool           `yaml:"shared_memory"`
	LogLevel       string         `yaml:"log_level"`
	Headless       HeadlessConfig `yaml:"headless"`
}

// HeadlessConfig sizes the simulated screen of the headless backend.
type HeadlessConfig struct {
	ScreenWidth  int `yaml:"screen_width"`
	ScreenHeight int `yaml:"screen_height"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:        BackendAuto,
		ClassName:      DefaultClassName,
		PollIntervalMs: 8,
		SharedMemory:   true,
		LogLevel:       "info",
		Headless: HeadlessConfig{
			ScreenWidth:  1920,
			ScreenHeight: 1080,
		},
	}
}

// PollInterval returns the dispatcher tick as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// Level maps log_level to a slog level. Unknown values map to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendX11, BackendWin32, BackendHeadless:
	default:
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: auto, x11, win32, headless")}
	}
	if strings.TrimSpace(c.ClassName) == "" {
		return &ValidationError{Path: "class_name", Err: fmt.Errorf("class_name must not be empty")}
	}
	if c.PollIntervalMs <= 0 {
		return &ValidationError{Path: "poll_interval_ms", Err: fmt.Errorf("poll_interval_ms must be > 0")}
	}
	if c.PollIntervalMs > 1000 {
		return &ValidationError{Path: "poll_interval_ms", Err: fmt.Errorf("poll_interval_ms must be <= 1000")}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.Headless.ScreenWidth <= 0 {
		return &ValidationError{Path: "headless.screen_width", Err: fmt.Errorf("screen_width must be > 0")}
	}
	if c.Headless.ScreenHeight <= 0 {
		return &ValidationError{Path: "headless.screen_height", Err: fmt.Errorf("screen_height must be > 0")}
	}
	return nil
}
