// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/mmynk/campsite/internal/booking"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds every setting of the campsite server.
type Config struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	StorageDriver   string        `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	DBPath          string        `env:"DB_PATH" envDefault:"./data/campsite.db"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	Timezone        string        `env:"CAMPSITE_TIMEZONE" envDefault:"UTC"`
	MinLeadDays     int           `env:"MIN_LEAD_DAYS" envDefault:"1"`
	MaxLeadDays     int           `env:"MAX_LEAD_DAYS" envDefault:"30"`
	MaxStayDays     int           `env:"MAX_STAY_DAYS" envDefault:"3"`
	MetricsPath     string        `env:"METRICS_PATH" envDefault:"/metrics"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if err := c.Policy().Validate(); err != nil {
		return fmt.Errorf("booking policy: %w", err)
	}
	return nil
}

// Location returns the time zone in which the campsite's "today" is observed.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("CAMPSITE_TIMEZONE: %w", err)
	}
	return loc, nil
}

// Policy returns the booking rules described by the config.
func (c Config) Policy() booking.Policy {
	return booking.Policy{
		MinLeadDays: c.MinLeadDays,
		MaxLeadDays: c.MaxLeadDays,
		MaxStayDays: c.MaxStayDays,
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
