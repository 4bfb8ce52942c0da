// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Database drivers accepted in DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	DatabaseDriver string `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseDSN    string `env:"DATABASE_URL" envDefault:"host=localhost user=postgres password=password dbname=jobtracker port=5432 sslmode=disable"`

	SnapshotTTL     time.Duration `env:"SIGNUP_SNAPSHOT_TTL" envDefault:"1h"`
	JanitorInterval time.Duration `env:"SIGNUP_JANITOR_INTERVAL" envDefault:"15m"`
	MaxResumeBytes  int64         `env:"SIGNUP_MAX_RESUME_BYTES" envDefault:"5242880"`

	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	SecureCookies  bool     `env:"SECURE_COOKIES" envDefault:"false"`
}

// Load reads an optional .env file into the environment and parses Config.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return Parse()
}

// Parse builds Config from the current environment.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("invalid DB_DRIVER %q", c.DatabaseDriver)
	}
	if c.SnapshotTTL <= 0 {
		return fmt.Errorf("SIGNUP_SNAPSHOT_TTL must be positive")
	}
	if c.MaxResumeBytes <= 0 {
		return fmt.Errorf("SIGNUP_MAX_RESUME_BYTES must be positive")
	}
	return nil
}
