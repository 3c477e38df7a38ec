package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default returns the configuration assumed for fields the config file
// leaves unset.
func Default() *Config {
	cfg := &Config{
		Version: "1",
		Stream:  "go-fundamentals",
	}
	cfg.Diff.Original.Branch = "main"
	cfg.Diff.AllowList = []string{"tasks/"}
	return cfg
}

// Load reads the course config from path on top of Default and validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the fields the grading tools cannot work without.
func (c *Config) Validate() error {
	if c.Stream == "" {
		return errors.New("stream must be set")
	}
	if len(c.Diff.AllowList) == 0 {
		return errors.New("diff.allow_list must not be empty")
	}
	return nil
}
