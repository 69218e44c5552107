// Package config loads the ucircuit configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/ucircuit/cpu"
	"github.com/ezrec/ucircuit/internal/logging"
)

// Config is the configuration of the ucircuit tools.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Cpu     CpuConfig     `yaml:"cpu"`
	Levels  LevelsConfig  `yaml:"levels"`
}

// LoggingConfig controls the log output.
type LoggingConfig struct {
	// Level is one of "info", "debug" or "trace", in any case.
	Level string `yaml:"level"`
}

// CpuConfig controls the microcontroller.
type CpuConfig struct {
	// StepLimit is the instruction budget of a single run.
	StepLimit int `yaml:"step_limit"`
}

// LevelsConfig selects the level catalog.
type LevelsConfig struct {
	// Catalog is an HCL level catalog. Empty selects the built-in levels.
	Catalog string `yaml:"catalog,omitempty"`
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Cpu: CpuConfig{
			StepLimit: cpu.STEP_LIMIT,
		},
	}
}

// Load loads configuration from the default location and the environment.
// Order: defaults -> ~/.ucircuit/config.yaml -> environment variables
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".ucircuit", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			config, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			return config, nil
		}
	}

	config := Default()
	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a YAML file, then applies
// environment variable overrides.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if len(config.Levels.Catalog) != 0 && !filepath.IsAbs(config.Levels.Catalog) {
		config.Levels.Catalog = filepath.Join(filepath.Dir(path), config.Levels.Catalog)
	}

	applyEnvOverrides(config)

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Logging.Level != "" && !slices.Contains(logging.Levels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	if c.Cpu.StepLimit <= 0 {
		return fmt.Errorf("step_limit must be positive, got %d", c.Cpu.StepLimit)
	}

	if len(c.Levels.Catalog) != 0 {
		if _, err := os.Stat(c.Levels.Catalog); err != nil {
			return fmt.Errorf("level catalog: %w", err)
		}
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("UCIRCUIT_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("UCIRCUIT_STEP_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Cpu.StepLimit = n
		}
	}

	if v := os.Getenv("UCIRCUIT_LEVELS"); v != "" {
		config.Levels.Catalog = v
	}
}
