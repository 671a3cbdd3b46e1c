package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigName is looked up in the working directory and the user's
// home directory when no --config flag is given.
const DefaultConfigName = ".cursor-export.yaml"

// Config holds optional run defaults loaded from a YAML file.
type Config struct {
	// Verbose enables debug output, same as the --verbose flag.
	Verbose bool `yaml:"verbose"`

	// HTMLTitle overrides the fallback <title> of generated HTML documents.
	HTMLTitle string `yaml:"htmlTitle"`

	// SkipDirs are extra workspace-storage subdirectory names to ignore
	// during directory traversal.
	SkipDirs []string `yaml:"skipDirs"`
}

// LoadConfig reads a config file from an explicit path. Unlike
// LoadDefaultConfig, a missing or malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, &StorageError{Path: path, Op: "read", Err: err}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDefaultConfig returns the config from the first default location that
// holds a readable file, or a zero config when none does. Malformed default
// configs are ignored rather than failing the run.
func LoadDefaultConfig() *Config {
	candidates := []string{DefaultConfigName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigName))
	}

	for _, path := range candidates {
		cfg, err := LoadConfig(path)
		if err == nil {
			return cfg
		}
	}
	return &Config{}
}
