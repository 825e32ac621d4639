package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCatch loads the kitty catch configuration.
// Search order: customPath -> ~/.birthday/configs/catch.yaml -> ./configs/catch.yaml -> embedded default
func LoadCatch(customPath string) (CatchConfig, error) {
	cfg := DefaultCatchConfig()
	if err := load(customPath, "catch.yaml", defaultCatchYAML, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadServer loads the session API server configuration.
// Search order: customPath -> ~/.birthday/configs/server.yaml -> ./configs/server.yaml -> embedded default
func LoadServer(customPath string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if err := load(customPath, "server.yaml", defaultServerYAML, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// load decodes the first readable source over out. out must already hold the
// hardcoded defaults so partial files only override what they mention.
func load(customPath, filename string, embedded []byte, out any) error {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	// Use embedded default YAML; the hardcoded defaults already in out remain
	// if the embed fails to parse.
	//nolint:errcheck // Fallback to hardcoded defaults
	yaml.Unmarshal(embedded, out)
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".birthday", "configs", filename)
}
