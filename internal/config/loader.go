package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pluginhost/pluginhost/pkg/logging"
)

const configFileName = "config.yaml"

// DefaultConfigDir returns $HOME/.config/pluginhost, the directory Load
// looks in when no explicit path is given.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(home, ".config", "pluginhost"), nil
}

// Load reads config.yaml from configDir, applying defaults for any field
// left unset. A missing file is not an error: Load returns Default()
// with a log line, matching the host's "sane defaults out of the box"
// posture.
func Load(configDir string) (HostConfig, error) {
	path := filepath.Join(configDir, configFileName)

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "no config.yaml at %s, using defaults", path)
			return cfg, nil
		}
		return HostConfig{}, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return HostConfig{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	applyDefaults(&cfg)

	logging.Info("ConfigLoader", "loaded configuration from %s", path)
	return cfg, nil
}

// Save writes cfg to configDir/config.yaml, creating configDir if needed.
func Save(configDir string, cfg HostConfig) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", configDir, err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(configDir, configFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
