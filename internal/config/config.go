package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the inventory app.
// Values come from an optional config.yaml in the data directory with
// environment variable overrides; everything has a sensible default so
// a fresh install needs no config file at all.
type Config struct {
	// DataDir is where the database and exports live. Defaults to
	// ~/.local/share/inventory when empty.
	DataDir string `yaml:"data_dir" env:"INVENTORY_DATA_DIR" env-default:""`

	// DefaultType is the inventory type used on first launch, before
	// a choice has been persisted.
	DefaultType string `yaml:"default_type" env:"INVENTORY_DEFAULT_TYPE" env-default:"warehouse"`

	// WatchDir, when set, is watched for datasheet files which are
	// imported automatically.
	WatchDir string `yaml:"watch_dir" env:"INVENTORY_WATCH_DIR" env-default:""`

	// CronExpr, when set together with WatchDir, additionally sweeps
	// the watch folder on this schedule.
	CronExpr string `yaml:"cron_expr" env:"INVENTORY_CRON_EXPR" env-default:""`

	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"INVENTORY_LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from <dataDir>/config.yaml if present, then
// applies environment variable overrides.
func Load() (*Config, error) {
	cfg := &Config{}

	if cfg.DataDir = os.Getenv("INVENTORY_DATA_DIR"); cfg.DataDir == "" {
		homeDir, _ := os.UserHomeDir()
		cfg.DataDir = filepath.Join(homeDir, ".local", "share", "inventory")
	}

	path := filepath.Join(cfg.DataDir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, err
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, err
		}
	} else {
		return nil, err
	}

	return cfg, nil
}

// DBPath returns the sqlite database location under the data dir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "inventory.db")
}
