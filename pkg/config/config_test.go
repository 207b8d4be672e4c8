package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.API.BaseURL != "http://localhost:8000" {
		t.Fatalf("unexpected base url %q", c.API.BaseURL)
	}
	if c.API.Timeout != 10*time.Second {
		t.Fatalf("unexpected timeout %v", c.API.Timeout)
	}
	if c.Refresh.Interval != 30*time.Second {
		t.Fatalf("unexpected interval %v", c.Refresh.Interval)
	}
	if c.Refresh.StaleAfter != 5*time.Minute {
		t.Fatalf("unexpected stale_after %v", c.Refresh.StaleAfter)
	}
	if c.Snapshots.Backend != "sqlite" {
		t.Fatalf("unexpected backend %q", c.Snapshots.Backend)
	}
	if c.Refresh.PredictionLimit != 20 {
		t.Fatalf("unexpected prediction limit %d", c.Refresh.PredictionLimit)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: production
api:
  base_url: https://api.example.com
refresh:
  prediction_limit: 50
snapshots:
  backend: memory
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Environment != "production" {
		t.Fatalf("unexpected environment %q", c.Environment)
	}
	if c.API.BaseURL != "https://api.example.com" {
		t.Fatalf("unexpected base url %q", c.API.BaseURL)
	}
	if c.Refresh.PredictionLimit != 50 {
		t.Fatalf("unexpected prediction limit %d", c.Refresh.PredictionLimit)
	}
	if c.Snapshots.Backend != "memory" {
		t.Fatalf("unexpected backend %q", c.Snapshots.Backend)
	}
	// Untouched keys keep their defaults.
	if c.Server.Port != 8090 {
		t.Fatalf("unexpected port %d", c.Server.Port)
	}
}

func TestLoadExpandsEnvInFile(t *testing.T) {
	t.Setenv("TEST_UPSTREAM", "https://btc.example.com")
	path := writeConfig(t, "api:\n  base_url: ${TEST_UPSTREAM}\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.API.BaseURL != "https://btc.example.com" {
		t.Fatalf("unexpected base url %q", c.API.BaseURL)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "snapshots:\n  backend: mongo\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("BITSENSE_API_URL", "http://10.0.0.5:8000")
	t.Setenv("BITSENSE_REFRESH_INTERVAL", "90s")
	t.Setenv("BITSENSE_SNAPSHOT_BACKEND", "memory")

	c, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if c.API.BaseURL != "http://10.0.0.5:8000" {
		t.Fatalf("unexpected base url %q", c.API.BaseURL)
	}
	if c.Refresh.Interval != 90*time.Second {
		t.Fatalf("unexpected interval %v", c.Refresh.Interval)
	}
	if c.Snapshots.Backend != "memory" {
		t.Fatalf("unexpected backend %q", c.Snapshots.Backend)
	}
}

func TestLoadWithEnvRejectsBadValues(t *testing.T) {
	t.Setenv("BITSENSE_SNAPSHOT_BACKEND", "bogus")
	if _, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestSnapshotPathExplicit(t *testing.T) {
	var c Config
	c.Snapshots.Path = "/tmp/custom.db"
	if got := c.SnapshotPath(); got != "/tmp/custom.db" {
		t.Fatalf("unexpected path %q", got)
	}
}
