// Package config loads kensho CLI settings from defaults, an optional YAML
// file and KENSHO_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/reoring/kensho"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "KENSHO_"

// Config holds the settings shared by the CLI commands.
type Config struct {
	Lang          string `yaml:"lang" env:"LANG"`
	LogLevel      string `yaml:"log_level" env:"LOG_LEVEL"`
	// zero selects the kensho default limit
	MaxBytes      int64  `yaml:"max_bytes" env:"MAX_BYTES"`
	MaxDepth      int    `yaml:"max_depth" env:"MAX_DEPTH"`
	DuplicateKeys string `yaml:"duplicate_keys" env:"DUPLICATE_KEYS"`
	FailFast      bool   `yaml:"fail_fast" env:"FAIL_FAST"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Lang:          "en",
		LogLevel:      "info",
		MaxBytes:      1 << 20,
		MaxDepth:      32,
		DuplicateKeys: "error",
	}
}

// Load applies the YAML file at path (skipped when empty) and then the
// environment over Default. A nil environ reads the process environment.
func Load(path string, environ map[string]string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := decodeYAML(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(b []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks every field holds a supported value.
func (c Config) Validate() error {
	var errs []error
	switch c.Lang {
	case "en", "ja":
	default:
		errs = append(errs, fmt.Errorf("lang %q: want en or ja", c.Lang))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if _, ok := kensho.ParseSeverity(c.DuplicateKeys); !ok {
		errs = append(errs, fmt.Errorf("duplicate_keys %q: want ignore, warn or error", c.DuplicateKeys))
	}
	if c.MaxBytes < 0 {
		errs = append(errs, fmt.Errorf("max_bytes %d: must not be negative", c.MaxBytes))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth %d: must not be negative", c.MaxDepth))
	}
	return errors.Join(errs...)
}

// ParseOpt converts the settings into parse options.
func (c Config) ParseOpt() kensho.ParseOpt {
	sev, _ := kensho.ParseSeverity(c.DuplicateKeys)
	return kensho.ParseOpt{
		Strictness: kensho.Strictness{OnDuplicateKey: sev},
		MaxBytes:   c.MaxBytes,
		MaxDepth:   c.MaxDepth,
		FailFast:   c.FailFast,
	}
}
