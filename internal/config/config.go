// Package config loads logq settings from a TOML file.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// DefaultPath is the file read when no --config flag is given.
const DefaultPath = "logq.toml"

// Config holds every setting the CLI reads.
type Config struct {
	DefaultFilePath   string      `toml:"default_file_path"`
	SeverityThreshold int         `toml:"severity_threshold"`
	SeverityField     string      `toml:"severity_field"`
	IDField           string      `toml:"id_field"`
	Dedupe            bool        `toml:"dedupe"`
	Pooling           string      `toml:"pooling"`
	Format            string      `toml:"format"`
	SavedLimit        int         `toml:"saved_limit"`
	Store             StoreConfig `toml:"store"`
	Log               LogConfig   `toml:"log"`
}

// StoreConfig selects where matched records are persisted.
type StoreConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
}

// LogConfig sets the logger. Flags win over these values.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		SeverityThreshold: 3,
		SeverityField:     "severity",
		IDField:           "externalId",
		Pooling:           "incremental",
		Format:            "json",
		SavedLimit:        3,
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   "logq.db",
		},
	}
}

// Load decodes r over the defaults and validates the result.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := toml.NewDecoder(r).Strict(true).Decode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads the config at path. When explicit is false a missing
// file yields the defaults.
func LoadFile(path string, explicit bool) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, errors.Wrapf(err, "failed to load config from %s", path)
	}
	defer func() { _ = f.Close() }()

	cfg, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate rejects values the CLI cannot act on.
func (c *Config) Validate() error {
	switch c.Pooling {
	case "incremental", "all":
	default:
		return fmt.Errorf("unknown pooling policy %q", c.Pooling)
	}
	switch c.Format {
	case "json", "jsonl", "csv", "table":
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	switch c.Store.Driver {
	case "sqlite", "bolt":
		if c.Store.Path == "" {
			return fmt.Errorf("store driver %s needs a path", c.Store.Driver)
		}
	case "none":
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.SavedLimit < 0 {
		return fmt.Errorf("saved_limit must not be negative, got %d", c.SavedLimit)
	}
	if c.SeverityField == "" || c.IDField == "" {
		return errors.New("severity_field and id_field must not be empty")
	}
	return nil
}
