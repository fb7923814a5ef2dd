// Package config loads the optional TOML configuration of the command-line
// tool.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/OpenTraceLab/svf2csvf/internal/logging"
	"github.com/OpenTraceLab/svf2csvf/pkg/buffer"
	"github.com/OpenTraceLab/svf2csvf/pkg/svf"
)

// Config holds the converter settings.
type Config struct {
	LogLevel        string `toml:"log_level"`
	Lenient         bool   `toml:"lenient"`
	MaxBufferBytes  int    `toml:"max_buffer_bytes"`
	InitialCapacity int    `toml:"initial_capacity"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		LogLevel:        "info",
		MaxBufferBytes:  buffer.MaxCapacity,
		InitialCapacity: svf.DefaultInitialCapacity,
	}
}

// Load reads path and fills unset keys from Default. An empty path returns
// Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func Validate(cfg Config) error {
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	if cfg.MaxBufferBytes <= 0 || cfg.MaxBufferBytes > buffer.MaxCapacity {
		return fmt.Errorf("max_buffer_bytes must be in (0, %d], got %d", buffer.MaxCapacity, cfg.MaxBufferBytes)
	}
	if cfg.InitialCapacity < 0 || cfg.InitialCapacity > cfg.MaxBufferBytes {
		return fmt.Errorf("initial_capacity must be in [0, max_buffer_bytes], got %d", cfg.InitialCapacity)
	}
	return nil
}

// ContextOptions returns the register buffer options for svf.NewContext.
func (c Config) ContextOptions() svf.Options {
	return svf.Options{
		InitialCapacity: c.InitialCapacity,
		MaxBufferBytes:  c.MaxBufferBytes,
	}
}
