package config

import (
	"fmt"
	"time"
)

// Duration wraps time.Duration so it can be written in config.yaml as a
// string ("5s", "1m30s") instead of a raw integer nanosecond count.
type Duration time.Duration

// UnmarshalYAML accepts either a duration string or a bare integer
// (interpreted as nanoseconds, matching time.Duration's own zero value).
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case int:
		*d = Duration(time.Duration(v))
	default:
		return fmt.Errorf("unsupported duration value %v (%T)", raw, raw)
	}
	return nil
}

// MarshalYAML renders the duration the way time.Duration.String() does
// ("5s", "1m30s"), so a saved config.yaml round-trips as a string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// HostConfig is the top-level configuration for the plugin host.
type HostConfig struct {
	Health  HealthConfig  `yaml:"health"`
	Plugins PluginsConfig `yaml:"plugins"`
	Log     LogConfig     `yaml:"log"`
}

// HealthConfig controls the health monitor's tick period and failure
// classification threshold.
type HealthConfig struct {
	CheckInterval    Duration `yaml:"checkInterval,omitempty"`
	FailureThreshold int      `yaml:"failureThreshold,omitempty"`
}

// PluginsConfig controls where the host looks for plugins and whether it
// watches that location for changes.
type PluginsConfig struct {
	Directory   string `yaml:"directory,omitempty"`
	WatchReload bool   `yaml:"watchReload,omitempty"`
}

// LogConfig controls the leveled logger's minimum severity.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Default returns the configuration used when no config.yaml is present
// or when a loaded config leaves a field at its zero value.
func Default() HostConfig {
	return HostConfig{
		Health: HealthConfig{
			CheckInterval:    Duration(5 * time.Second),
			FailureThreshold: 3,
		},
		Plugins: PluginsConfig{
			Directory:   "./plugins",
			WatchReload: false,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// applyDefaults fills any zero-valued field in cfg from Default().
func applyDefaults(cfg *HostConfig) {
	def := Default()
	if cfg.Health.CheckInterval <= 0 {
		cfg.Health.CheckInterval = def.Health.CheckInterval
	}
	if cfg.Health.FailureThreshold <= 0 {
		cfg.Health.FailureThreshold = def.Health.FailureThreshold
	}
	if cfg.Plugins.Directory == "" {
		cfg.Plugins.Directory = def.Plugins.Directory
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
}
