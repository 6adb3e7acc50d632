package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"inventory/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("INVENTORY_DATA_DIR", dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.DefaultType != "warehouse" {
		t.Errorf("DefaultType = %q", cfg.DefaultType)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.DBPath() != filepath.Join(dir, "inventory.db") {
		t.Errorf("DBPath = %q", cfg.DBPath())
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("INVENTORY_DATA_DIR", dir)

	yaml := "default_type: library\nlog_level: debug\ncron_expr: \"0 * * * *\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultType != "library" {
		t.Errorf("DefaultType = %q", cfg.DefaultType)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.CronExpr != "0 * * * *" {
		t.Errorf("CronExpr = %q", cfg.CronExpr)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("INVENTORY_DATA_DIR", dir)
	t.Setenv("INVENTORY_DEFAULT_TYPE", "retail")

	yaml := "default_type: library\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultType != "retail" {
		t.Errorf("env must override yaml, got %q", cfg.DefaultType)
	}
}
