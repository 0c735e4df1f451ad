package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig applies the fields set in raw over the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.XAuthority != nil {
		cfg.XAuthority = *raw.XAuthority
	}
	if raw.Backend != nil {
		cfg.Backend = *raw.Backend
	}
	if raw.ClassName != nil {
		cfg.ClassName = *raw.ClassName
	}
	if raw.PollIntervalMs != nil {
		cfg.PollIntervalMs = *raw.PollIntervalMs
	}
	if raw.SharedMemory != nil {
		cfg.SharedMemory = *raw.SharedMemory
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.Headless != nil {
		if raw.Headless.ScreenWidth != nil {
			cfg.Headless.ScreenWidth = *raw.Headless.ScreenWidth
		}
		if raw.Headless.ScreenHeight != nil {
			cfg.Headless.ScreenHeight = *raw.Headless.ScreenHeight
		}
	}
	return cfg
}
