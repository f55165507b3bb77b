package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Daemon.ScanFrequency != "weekly" {
		t.Errorf("default scan frequency = %q, want weekly", cfg.Daemon.ScanFrequency)
	}
	if cfg.Daemon.LogLevel != "info" {
		t.Errorf("default log level = %q, want info", cfg.Daemon.LogLevel)
	}
	if len(cfg.Libraries.Paths) != 0 {
		t.Errorf("default library paths = %v, want none", cfg.Libraries.Paths)
	}
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `[libraries]
paths = ["/mnt/anime"]

[daemon]
scan_frequency = "daily"

[parser]
file_checksum = false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if len(cfg.Libraries.Paths) != 1 || cfg.Libraries.Paths[0] != "/mnt/anime" {
		t.Errorf("library paths = %v", cfg.Libraries.Paths)
	}
	if cfg.Daemon.ScanFrequency != "daily" {
		t.Errorf("scan frequency = %q, want daily", cfg.Daemon.ScanFrequency)
	}
	if cfg.Daemon.LogLevel != "info" {
		t.Errorf("log level default not applied: %q", cfg.Daemon.LogLevel)
	}

	opts := cfg.Parser.Options()
	if opts.FileChecksum {
		t.Error("file_checksum = false not applied to options")
	}
	if !opts.Episode || !opts.Title {
		t.Error("unset parser toggles should stay enabled")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadFrom() on missing file should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad frequency", func(c *Config) { c.Daemon.ScanFrequency = "hourly" }, true},
		{"relative path", func(c *Config) { c.Libraries.Paths = []string{"anime"} }, true},
		{"absolute path", func(c *Config) { c.Libraries.Paths = []string{"/mnt/anime"} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
