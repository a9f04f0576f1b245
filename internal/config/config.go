// Package config loads the optional YAML build configuration. Every field
// mirrors a build flag; file values act as defaults and explicit flags win.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds file-supplied defaults for the build command.
type Config struct {
	DataDir      string `yaml:"data_dir"`
	StoresDir    string `yaml:"stores_dir"`
	OutputDir    string `yaml:"output_dir"`
	Version      string `yaml:"version"`
	BaseURL      string `yaml:"base_url"`
	AssetURLMode string `yaml:"asset_url_mode"`

	SkipJSON   bool `yaml:"skip_json"`
	SkipSQLite bool `yaml:"skip_sqlite"`
	SkipCSV    bool `yaml:"skip_csv"`
	SkipAPI    bool `yaml:"skip_api"`
}

// Load reads and parses a YAML config file. An empty path yields a zero
// Config without touching the filesystem.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
