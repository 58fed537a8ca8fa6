package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/config.yaml
var defaultYAML []byte

// Environment variables that override file settings.
const (
	EnvLogLevel = "IMAGE_MAP_MCP_LOG_LEVEL"
	EnvBaseDir  = "IMAGE_MAP_MCP_BASE_DIR"
)

// LocalConfigFile is looked up in the working directory.
const LocalConfigFile = "image-map-mcp.yaml"

// Load reads the server configuration.
// Search order: customPath -> ~/.image-map-mcp/config.yaml -> ./image-map-mcp.yaml -> embedded default
//
// A custom path that cannot be read or parsed is an error. Unreadable or
// malformed files on the other paths are skipped. Keys missing from a file
// keep their default value. Environment overrides are applied last, then
// the result is validated.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvBaseDir); v != "" {
		cfg.BaseDir = v
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", describe(cfg.Source), err)
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		cfg := Default()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Source = customPath
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(), LocalConfigFile} {
		if path == "" {
			continue
		}
		cfg := Default()
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				cfg.Source = path
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".image-map-mcp", "config.yaml")
}

func describe(source string) string {
	if source == "" {
		return "(defaults)"
	}
	return source
}
