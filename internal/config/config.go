// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Audit backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the full set of econsim settings.
type Config struct {
	Port int `env:"ECONSIM_PORT" envDefault:"8080"`

	AuditBackend string `env:"ECONSIM_AUDIT_BACKEND" envDefault:"file"`
	AuditLogPath string `env:"ECONSIM_AUDIT_LOG_PATH" envDefault:"game_log.txt"`
	AuditDBPath  string `env:"ECONSIM_AUDIT_DB_PATH" envDefault:"data/audit.db"`

	// Seed fixes the random sequence. Zero draws a fresh seed at startup.
	Seed int64 `env:"ECONSIM_SEED" envDefault:"0"`
	// MaxMagnitude bounds lever magnitudes. Zero leaves them unbounded.
	MaxMagnitude      int     `env:"ECONSIM_MAX_MAGNITUDE" envDefault:"0"`
	ShockProbability  float64 `env:"ECONSIM_SHOCK_PROBABILITY" envDefault:"0.10"`
	PolicyProbability float64 `env:"ECONSIM_POLICY_PROBABILITY" envDefault:"0.10"`

	LogLevel string `env:"ECONSIM_LOG_LEVEL" envDefault:"info"`
	// RateLimit caps POST requests per client per minute.
	RateLimit int `env:"ECONSIM_RATE_LIMIT" envDefault:"120"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges env tags cannot express.
func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	switch c.AuditBackend {
	case BackendFile, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown audit backend %q", c.AuditBackend))
	}
	if c.MaxMagnitude < 0 {
		errs = append(errs, fmt.Errorf("max magnitude %d must not be negative", c.MaxMagnitude))
	}
	for name, p := range map[string]float64{"shock": c.ShockProbability, "policy": c.PolicyProbability} {
		if p < 0 || p > 1 {
			errs = append(errs, fmt.Errorf("%s probability %v outside [0, 1]", name, p))
		}
	}
	if c.RateLimit <= 0 {
		errs = append(errs, fmt.Errorf("rate limit %d must be positive", c.RateLimit))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
