// Package config holds the server configuration: defaults, an optional TOML
// file, FLAMES_* environment variables and command-line flags, applied in
// that order.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/baditaflorin/go_flames/internal/core/domain"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "FLAMES_"

// Config holds all server settings.
type Config struct {
	Port           int           `toml:"port" env:"PORT"`
	ReadTimeout    time.Duration `toml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout   time.Duration `toml:"write_timeout" env:"WRITE_TIMEOUT"`
	MaxRequestSize int           `toml:"max_request_size" env:"MAX_REQUEST_SIZE"`
	Concurrency    int           `toml:"concurrency" env:"CONCURRENCY"` // 0 means fasthttp's default
	RequestTimeout time.Duration `toml:"request_timeout" env:"REQUEST_TIMEOUT"`

	// Sequence is the category order, e.g. "FLAMES".
	Sequence       string `toml:"sequence" env:"SEQUENCE"`
	WarmUp         bool   `toml:"warm_up" env:"WARM_UP"`
	FastNormalizer bool   `toml:"fast_normalizer" env:"FAST_NORMALIZER"`

	LogFile  string `toml:"log_file" env:"LOG_FILE"` // empty means stdout
	JSONLogs bool   `toml:"json_logs" env:"JSON_LOGS"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:           8080,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxRequestSize: 1024 * 1024, // 1MB
		Concurrency:    0,
		RequestTimeout: 5 * time.Second,
		Sequence:       domain.FLAMES.String(),
		WarmUp:         true,
		JSONLogs:       true,
	}
}

// Load starts from Default, applies the TOML file at path when path is not
// empty, then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// ParsedSequence returns the configured category order.
func (c *Config) ParsedSequence() (domain.Sequence, error) {
	return domain.ParseSequence(c.Sequence)
}

// Validate checks that every field is in range.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535, got %d", c.Port))
	}
	if c.ReadTimeout <= 0 {
		errs = append(errs, errors.New("read timeout must be positive"))
	}
	if c.WriteTimeout <= 0 {
		errs = append(errs, errors.New("write timeout must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.MaxRequestSize <= 0 {
		errs = append(errs, errors.New("max request size must be positive"))
	}
	if c.Concurrency < 0 {
		errs = append(errs, errors.New("concurrency must not be negative"))
	}
	if _, err := c.ParsedSequence(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Address returns the listen address for Port.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}
