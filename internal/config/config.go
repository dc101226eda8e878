// Package config loads the forcelab CLI configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the forcelab CLI configuration.
type Config struct {
	LogLevel string `toml:"log_level"` // zerolog level name, default "info"
	DataDir  string `toml:"data_dir"`  // overrides the embedded data tree when set
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{LogLevel: "info"}
}

// Load reads a TOML config file, fills defaults, and validates it.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations that cannot work.
func Validate(cfg Config) error {
	if cfg.DataDir != "" {
		info, err := os.Stat(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("data_dir %q: %w", cfg.DataDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("data_dir %q is not a directory", cfg.DataDir)
		}
	}
	switch cfg.LogLevel {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
		return nil
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
}
