package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.ClassName != DefaultClassName {
		t.Fatalf("class_name = %q", cfg.ClassName)
	}
	if cfg.PollInterval() != 8*time.Millisecond {
		t.Fatalf("poll interval = %v", cfg.PollInterval())
	}
	if !cfg.SharedMemory {
		t.Fatal("expected shared memory on by default")
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Backend != BackendAuto {
		t.Fatalf("backend = %q", res.Config.Backend)
	}
	if len(res.Files) != 0 {
		t.Fatalf("files = %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.PollIntervalMs != 8 {
		t.Fatalf("poll_interval_ms = %d", res.Config.PollIntervalMs)
	}
}

func TestLoadFromPath_Overrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", strings.Join([]string{
		`display: ":1"`,
		`xauthority: /tmp/test-xauth`,
		`backend: headless`,
		`class_name: Kiosk`,
		`poll_interval_ms: 16`,
		`shared_memory: false`,
		`log_level: debug`,
		`headless:`,
		`  screen_width: 320`,
		``,
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Display != ":1" || cfg.XAuthority != "/tmp/test-xauth" {
		t.Fatalf("display/xauthority = %q %q", cfg.Display, cfg.XAuthority)
	}
	if cfg.Backend != BackendHeadless || cfg.ClassName != "Kiosk" {
		t.Fatalf("backend/class = %q %q", cfg.Backend, cfg.ClassName)
	}
	if cfg.PollInterval() != 16*time.Millisecond || cfg.SharedMemory {
		t.Fatalf("poll/shm = %v %v", cfg.PollInterval(), cfg.SharedMemory)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Fatalf("level = %v", cfg.Level())
	}
	if cfg.Headless.ScreenWidth != 320 || cfg.Headless.ScreenHeight != 1080 {
		t.Fatalf("headless = %+v", cfg.Headless)
	}
}

func TestLoadFromPath_UnknownFieldRejected(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "hotkey: Mod4-t\n")
	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected unknown field to fail")
	}
}

func TestLoadFromPath_ValidationErrorHasSource(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "log_level: info\nbackend: wayland\n")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "backend" {
		t.Fatalf("path = %q", verr.Path)
	}
	if verr.Source.Line != 2 {
		t.Fatalf("line = %d", verr.Source.Line)
	}
	if !strings.Contains(err.Error(), ":2:") {
		t.Fatalf("error lacks position: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"backend", func(c *Config) { c.Backend = "cocoa" }, "backend"},
		{"class", func(c *Config) { c.ClassName = "  " }, "class_name"},
		{"zero interval", func(c *Config) { c.PollIntervalMs = 0 }, "poll_interval_ms"},
		{"huge interval", func(c *Config) { c.PollIntervalMs = 5000 }, "poll_interval_ms"},
		{"level", func(c *Config) { c.LogLevel = "trace" }, "log_level"},
		{"screen width", func(c *Config) { c.Headless.ScreenWidth = 0 }, "headless.screen_width"},
		{"screen height", func(c *Config) { c.Headless.ScreenHeight = -1 }, "headless.screen_height"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			var verr *ValidationError
			if err := cfg.Validate(); !errors.As(err, &verr) || verr.Path != tt.path {
				t.Fatalf("Validate() = %v, want error at %s", err, tt.path)
			}
		})
	}
}

func TestLoadFromPath_Include(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir), "base.yaml", "class_name: Base\npoll_interval_ms: 20\n")
	path := writeFile(t, dir, "config.yaml", "include: base.yaml\npoll_interval_ms: 4\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.ClassName != "Base" {
		t.Fatalf("class_name = %q", res.Config.ClassName)
	}
	if res.Config.PollIntervalMs != 4 {
		t.Fatalf("including file should win, got %d", res.Config.PollIntervalMs)
	}
	if len(res.Files) != 2 {
		t.Fatalf("files = %v", res.Files)
	}
}

func TestLoadFromPath_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "include: b.yaml\n")
	writeFile(t, dir, "b.yaml", "include: a.yaml\n")

	_, err := LoadFromPath(filepath.Join(dir, "a.yaml"))
	if err == nil || !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestDefaultConfigPath_Env(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/fbwin-test.yaml")
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath: %v", err)
	}
	if path != "/tmp/fbwin-test.yaml" {
		t.Fatalf("path = %q", path)
	}
}

func TestExplain(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "backend: headless\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	value, src, err := Explain(res, "backend")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if value != BackendHeadless || src.Kind != SourceFile || src.Line != 1 {
		t.Fatalf("backend = %v from %+v", value, src)
	}

	value, src, err = Explain(res, "poll_interval_ms")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if value != 8 || src.Kind != SourceDefault {
		t.Fatalf("poll_interval_ms = %v from %+v", value, src)
	}

	if _, _, err := Explain(res, "layouts"); err == nil {
		t.Fatal("expected unknown path error")
	}
}
