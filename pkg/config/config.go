package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"oneof=development staging production"`
	API         struct {
		BaseURL string        `yaml:"base_url" default:"http://localhost:8000" validate:"required,url"`
		Timeout time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"api"`
	Refresh struct {
		Symbol          string        `yaml:"symbol" default:"BTC" validate:"required"`
		Interval        time.Duration `yaml:"interval" default:"30s"`
		StaleAfter      time.Duration `yaml:"stale_after" default:"5m"`
		PriceHours      int           `yaml:"price_hours" default:"24" validate:"gt=0"`
		PriceLimit      int           `yaml:"price_limit" default:"500" validate:"gt=0"`
		SentimentHours  int           `yaml:"sentiment_hours" default:"24" validate:"gt=0"`
		PredictionLimit int           `yaml:"prediction_limit" default:"20" validate:"gt=0"`
		TimelineHours   int           `yaml:"timeline_hours" default:"24" validate:"gt=0"`
	} `yaml:"refresh"`
	Snapshots struct {
		Backend string `yaml:"backend" default:"sqlite" validate:"oneof=memory sqlite redis"`
		Layered bool   `yaml:"layered" default:"true"`
		Path    string `yaml:"path"`
		Redis   struct {
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"snapshots"`
	Server struct {
		Enabled         bool          `yaml:"enabled"`
		Host            string        `yaml:"host" default:"127.0.0.1"`
		Port            int           `yaml:"port" default:"8090" validate:"gt=0,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error fatal panic"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stderr"`
	} `yaml:"logging"`
}

// Load parses a YAML configuration file on top of the defaults. A missing
// file is fine: everything has a default and the interesting knobs have
// environment overrides.
func Load(path string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	b, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(b) > 0 {
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(b))), &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("BITSENSE_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("BITSENSE_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("BITSENSE_API_TIMEOUT: %w", err)
		}
		c.API.Timeout = d
	}
	if v := os.Getenv("BITSENSE_REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("BITSENSE_REFRESH_INTERVAL: %w", err)
		}
		c.Refresh.Interval = d
	}
	if v := os.Getenv("BITSENSE_SNAPSHOT_BACKEND"); v != "" {
		c.Snapshots.Backend = v
	}
	if v := os.Getenv("BITSENSE_SNAPSHOT_PATH"); v != "" {
		c.Snapshots.Path = v
	}
	if v := os.Getenv("BITSENSE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	// Env values bypass the tag pass above, so re-check.
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.Refresh.Interval < time.Second {
		return fmt.Errorf("refresh.interval must be at least 1s")
	}
	if c.Refresh.StaleAfter <= 0 {
		return fmt.Errorf("refresh.stale_after must be positive")
	}
	return nil
}

// SnapshotPath resolves the sqlite snapshot file location. An explicit path
// wins; otherwise it lands in the user cache dir, falling back to the
// working directory when the OS reports none.
func (c *Config) SnapshotPath() string {
	if c.Snapshots.Path != "" {
		return c.Snapshots.Path
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "bitsense-snapshots.db"
	}
	return filepath.Join(base, "bitsense", "snapshots.db")
}
