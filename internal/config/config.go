// Package config loads caseforge settings from defaults, an optional TOML
// file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/meur/caseforge/internal/economics"
	"github.com/meur/caseforge/internal/models"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Currency  string        `toml:"currency" env:"CASEFORGE_CURRENCY"`
	Purchases int64         `toml:"purchases" env:"CASEFORGE_PURCHASES"`
	ReportDir string        `toml:"report_dir" env:"CASEFORGE_REPORT_DIR"`
	Layout    models.Layout `toml:"layout"`
	Server    ServerConfig  `toml:"server"`
	Log       LogConfig     `toml:"log"`
}

type ServerConfig struct {
	Port           string   `toml:"port" env:"PORT"`
	AllowedOrigins []string `toml:"allowed_origins" env:"CASEFORGE_ALLOWED_ORIGINS" envSeparator:","`
	MaxBodyBytes   int64    `toml:"max_body_bytes" env:"CASEFORGE_MAX_BODY_BYTES"`
}

type LogConfig struct {
	Verbose     bool `toml:"verbose" env:"CASEFORGE_VERBOSE"`
	Development bool `toml:"development" env:"CASEFORGE_LOG_DEVELOPMENT"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Currency:  "$",
		Purchases: economics.DefaultPurchases,
		ReportDir: ".",
		Layout:    models.DefaultLayout(),
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"http://localhost:*"},
			MaxBodyBytes:   10 << 20,
		},
	}
}

// Load builds a Config from defaults, the TOML file at path (skipped when
// path is empty) and environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to open config: %w", err)
		}
		defer file.Close()

		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the pipeline cannot recover from
func (c Config) Validate() error {
	var errs []error
	if c.Currency == "" {
		errs = append(errs, errors.New("currency must be set"))
	}
	if c.Purchases <= 0 {
		errs = append(errs, fmt.Errorf("purchases must be positive, got %d", c.Purchases))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("server.max_body_bytes must be positive"))
	}
	l := c.Layout
	for _, f := range []struct{ name, value string }{
		{"title", l.Title}, {"price", l.Price}, {"group", l.Group},
		{"name", l.Name}, {"row", l.Row}, {"cell", l.Cell},
	} {
		if f.value == "" {
			errs = append(errs, fmt.Errorf("layout.%s must be set", f.name))
		}
	}
	return errors.Join(errs...)
}
