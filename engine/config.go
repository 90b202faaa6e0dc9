package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds run-wide settings loaded from a YAML file.
type Config struct {
	// OutputDir is where rendered PNGs are written.
	OutputDir string `yaml:"output_dir"`
	// LogLevel overrides the default log level (trace, debug, info,
	// warn, error).
	LogLevel string `yaml:"log_level"`
	// Seed fixes the random source for point scattering; 0 means seed
	// from the clock.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{OutputDir: "."}
}

// LoadConfig reads settings from a YAML file, filling unset fields with
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return cfg, nil
}
