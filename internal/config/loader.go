package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "lightpath.yaml"

// LoadLightpath loads lightpath configuration.
// Search order: customPath -> ~/.lightpath/configs/lightpath.yaml -> ./configs/lightpath.yaml -> embedded default
// Files only need the keys they change; everything else keeps its default.
func LoadLightpath(customPath string) (LightpathConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultLightpathConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultLightpathConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultLightpathYAML)
	if err != nil {
		return DefaultLightpathConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse overlays data on the defaults and validates the result.
func parse(data []byte) (LightpathConfig, error) {
	cfg := DefaultLightpathConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultLightpathYAML
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lightpath", "configs", filename)
}
