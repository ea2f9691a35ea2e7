package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the config file name looked up in each search directory.
const ConfigFile = "crush.yaml"

// LoadCrush loads Crush configuration.
// Search order: customPath -> ~/.crush/configs/crush.yaml -> ./configs/crush.yaml -> embedded default
// Keys missing from a file keep their default values. The result is normalized.
func LoadCrush(customPath string) (CrushConfig, error) {
	cfg, _, err := LoadCrushWithSource(customPath)
	cfg.Normalize()
	return cfg, err
}

// LoadCrushWithSource is LoadCrush that also reports which file was used.
// The source is "embedded" or "default" when no file on disk was read.
// The result is not normalized, so callers can Validate it first.
func LoadCrushWithSource(customPath string) (CrushConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultCrushConfig(), "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultCrushConfig(), "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, userCfgPath, nil
			}
		}
	}

	// Try local configs directory
	localPath := filepath.Join("configs", ConfigFile)
	if data, err := os.ReadFile(localPath); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, localPath, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultCrushYAML)
	if err != nil {
		return DefaultCrushConfig(), "default", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

// parse decodes YAML over the defaults.
func parse(data []byte) (CrushConfig, error) {
	cfg := DefaultCrushConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultCrushConfig(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".crush", "configs", filename)
}
