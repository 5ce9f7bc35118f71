package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config represents the global ~/.pairchat/config.toml.
type Config struct {
	DefaultProfile string  `toml:"default_profile"`
	Daemon         Daemon  `toml:"daemon"`
	Storage        Storage `toml:"storage"`
	Auth           Auth    `toml:"auth"`
	Limits         Limits  `toml:"limits"`
}

// Daemon holds process-level settings for pairchatd.
type Daemon struct {
	// Listen is empty for the profile's unix socket, or tcp://host:port.
	Listen    string `toml:"listen"`
	LogLevel  string `toml:"log_level"`
	SentryDSN string `toml:"sentry_dsn"`
}

// Storage selects the persistence backend.
type Storage struct {
	Driver string `toml:"driver"`
	// DSN is a file path override for sqlite, a connection URL for postgres.
	DSN string `toml:"dsn"`
}

// Auth configures bearer tokens.
type Auth struct {
	TokenTTL time.Duration `toml:"token_ttl"`
}

// Limits configures per-user request rate limiting. Zero disables it.
type Limits struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Daemon: Daemon{
			LogLevel: "info",
		},
		Storage: Storage{
			Driver: DriverSQLite,
		},
		Auth: Auth{
			TokenTTL: 24 * time.Hour,
		},
		Limits: Limits{
			RequestsPerSecond: 20,
			Burst:             40,
		},
	}
}

// Load reads config from the given path on top of Default. Returns error if file missing.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return errors.New("storage.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	if c.Daemon.Listen != "" && !strings.HasPrefix(c.Daemon.Listen, "tcp://") {
		return fmt.Errorf("daemon.listen must be empty or tcp://host:port, got %q", c.Daemon.Listen)
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	if c.Limits.RequestsPerSecond < 0 || c.Limits.Burst < 0 {
		return errors.New("limits must not be negative")
	}
	return nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
