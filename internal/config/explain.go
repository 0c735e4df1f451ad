package config

import "fmt"

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths:
//
//	display
//	xauthority
//	backend
//	class_name
//	poll_interval_ms
//	shared_memory
//	log_level
//	headless.screen_width
//	headless.screen_height
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	switch path {
	case "display":
		return cfg.Display, nil
	case "xauthority":
		return cfg.XAuthority, nil
	case "backend":
		return cfg.Backend, nil
	case "class_name":
		return cfg.ClassName, nil
	case "poll_interval_ms":
		return cfg.PollIntervalMs, nil
	case "shared_memory":
		return cfg.SharedMemory, nil
	case "log_level":
		return cfg.LogLevel, nil
	case "headless":
		return cfg.Headless, nil
	case "headless.screen_width":
		return cfg.Headless.ScreenWidth, nil
	case "headless.screen_height":
		return cfg.Headless.ScreenHeight, nil
	}
	return nil, fmt.Errorf("unknown config path %q", path)
}
