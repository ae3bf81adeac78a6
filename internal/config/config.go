package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DestinationRoot is where extraction datasets are created.
	DestinationRoot string `yaml:"destination_root"`
	// MaxLineCountBytes caps content analysis: files larger than this are
	// reported by size only (no line count, no JSON shape). 0 means no cap.
	MaxLineCountBytes int64 `yaml:"max_linecount_bytes"`
}

// DefaultMaxLineCountBytes avoids scanning huge binaries line by line (100 MiB).
const DefaultMaxLineCountBytes = 100 * 1024 * 1024

func DefaultConfig() *Config {
	return &Config{
		DestinationRoot:   "./extracted",
		MaxLineCountBytes: DefaultMaxLineCountBytes,
	}
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".exportscan", "config.yaml")
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path // Return unexpanded if home unavailable
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
