package config

import (
	"testing"
	"time"

	"github.com/mmynk/campsite/internal/booking"
)

// clearEnv blanks every variable Config reads; blank values fall back to defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "STORAGE_DRIVER", "DB_PATH", "DATABASE_URL", "CAMPSITE_TIMEZONE",
		"MIN_LEAD_DAYS", "MAX_LEAD_DAYS", "MAX_STAY_DAYS", "METRICS_PATH",
		"SHUTDOWN_TIMEOUT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port: expected 8080, got %d", cfg.Port)
	}
	if cfg.StorageDriver != DriverSQLite {
		t.Errorf("StorageDriver: expected sqlite, got %s", cfg.StorageDriver)
	}
	if cfg.DBPath != "./data/campsite.db" {
		t.Errorf("DBPath: got %s", cfg.DBPath)
	}
	if cfg.MetricsPath != "/metrics" {
		t.Errorf("MetricsPath: got %s", cfg.MetricsPath)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout: got %v", cfg.ShutdownTimeout)
	}
	if cfg.Policy() != booking.DefaultPolicy() {
		t.Errorf("Policy: expected default, got %+v", cfg.Policy())
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr: got %s", cfg.Addr())
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://campsite@localhost/campsite")
	t.Setenv("CAMPSITE_TIMEZONE", "America/Argentina/Buenos_Aires")
	t.Setenv("MAX_STAY_DAYS", "5")
	t.Setenv("SHUTDOWN_TIMEOUT", "10s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 9090 || cfg.StorageDriver != DriverPostgres {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Policy().MaxStayDays != 5 {
		t.Errorf("MaxStayDays: expected 5, got %d", cfg.Policy().MaxStayDays)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout: got %v", cfg.ShutdownTimeout)
	}

	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location failed: %v", err)
	}
	if loc.String() != "America/Argentina/Buenos_Aires" {
		t.Errorf("Location: got %s", loc)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "mysql"}},
		{"postgres without url", map[string]string{"STORAGE_DRIVER": "postgres"}},
		{"bad timezone", map[string]string{"CAMPSITE_TIMEZONE": "Mars/Olympus"}},
		{"zero stay", map[string]string{"MAX_STAY_DAYS": "0"}},
		{"lead window inverted", map[string]string{"MIN_LEAD_DAYS": "10", "MAX_LEAD_DAYS": "5"}},
		{"port not a number", map[string]string{"PORT": "http"}},
		{"port out of range", map[string]string{"PORT": "70000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
