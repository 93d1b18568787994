package dreamtalk

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Config represents the DreamTalk configuration
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	// StrategyFile points to an optional YAML file with extra
	// property → write-strategy entries, merged into the built-in table.
	StrategyFile string `yaml:"strategy_file"`
}

// GenerationConfig represents procedure generation settings
type GenerationConfig struct {
	// Indent is the number of spaces per indentation level in generated Python.
	Indent int `yaml:"indent"`
	// StrokeFallback controls whether compiled procedures end with the
	// camera-facing stroke pass instead of a bare return.
	StrokeFallback bool `yaml:"stroke_fallback"`
	// Helpers controls whether the helper preamble is prepended to the
	// installed procedure. Disabled only when the host injects its own.
	Helpers bool `yaml:"helpers"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			Indent:         4,
			StrokeFallback: true,
			Helpers:        true,
		},
	}
}

// LoadConfig loads configuration from the given YAML file. A `.env` file next
// to the working directory is applied first so the config may reference
// environment variables. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	// Ignore a missing .env; it is optional
	_ = godotenv.Load()

	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}

		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.StrategyFile = os.ExpandEnv(config.StrategyFile)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for values the generators cannot honor.
func (c *Config) Validate() error {
	if c.Generation.Indent < 1 {
		return fmt.Errorf("%w: generation.indent must be at least 1", ErrConfigValidation)
	}

	return nil
}
