package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// RawConfig mirrors Config with every field optional so files can be layered.
type RawConfig struct {
	Include IncludeList `yaml:"include"`

	Display        *string            `yaml:"display"`
	XAuthority     *string            `yaml:"xauthority"`
	Backend        *string            `yaml:"backend"`
	ClassName      *string            `yaml:"class_name"`
	PollIntervalMs *int               `yaml:"poll_interval_ms"`
	SharedMemory   *bool              `yaml:"shared_memory"`
	LogLevel       *string            `yaml:"log_level"`
	Headless       *RawHeadlessConfig `yaml:"headless"`
}

type RawHeadlessConfig struct {
	ScreenWidth  *int `yaml:"screen_width"`
	ScreenHeight *int `yaml:"screen_height"`
}

// merge returns base with every field set in over applied on top.
func (base RawConfig) merge(over RawConfig) RawConfig {
	out := base
	out.Include = nil
	if over.Display != nil {
		out.Display = over.Display
	}
	if over.XAuthority != nil {
		out.XAuthority = over.XAuthority
	}
	if over.Backend != nil {
		out.Backend = over.Backend
	}
	if over.ClassName != nil {
		out.ClassName = over.ClassName
	}
	if over.PollIntervalMs != nil {
		out.PollIntervalMs = over.PollIntervalMs
	}
	if over.SharedMemory != nil {
		out.SharedMemory = over.SharedMemory
	}
	if over.LogLevel != nil {
		out.LogLevel = over.LogLevel
	}
	if over.Headless != nil {
		h := RawHeadlessConfig{}
		if base.Headless != nil {
			h = *base.Headless
		}
		if over.Headless.ScreenWidth != nil {
			h.ScreenWidth = over.Headless.ScreenWidth
		}
		if over.Headless.ScreenHeight != nil {
			h.ScreenHeight = over.Headless.ScreenHeight
		}
		out.Headless = &h
	}
	return out
}
