package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/Nomadcxx/aniparse"
)

// Config holds all aniparse configuration
type Config struct {
	Libraries LibraryConfig `toml:"libraries"`
	Daemon    DaemonConfig  `toml:"daemon"`
	Parser    ParserConfig  `toml:"parser"`
}

// LibraryConfig defines media library paths to scan
type LibraryConfig struct {
	Paths []string `toml:"paths"`
}

// DaemonConfig holds daemon scheduling and behavior settings
type DaemonConfig struct {
	ScanFrequency string `toml:"scan_frequency"` // daily, weekly, biweekly
	LogLevel      string `toml:"log_level"`      // debug, info, warn, error
}

// ParserConfig toggles individual parser rules. A rule is enabled when its
// field is left unset in the config file.
type ParserConfig struct {
	Episode         *bool `toml:"episode"`
	EpisodeTitle    *bool `toml:"episode_title"`
	FileChecksum    *bool `toml:"file_checksum"`
	FileExtension   *bool `toml:"file_extension"`
	ReleaseGroup    *bool `toml:"release_group"`
	Season          *bool `toml:"season"`
	Title           *bool `toml:"title"`
	VideoResolution *bool `toml:"video_resolution"`
	Year            *bool `toml:"year"`
}

// Options converts the parser section to aniparse options
func (p ParserConfig) Options() aniparse.Options {
	opts := aniparse.DefaultOptions()
	apply := func(dst, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&opts.Episode, p.Episode)
	apply(&opts.EpisodeTitle, p.EpisodeTitle)
	apply(&opts.FileChecksum, p.FileChecksum)
	apply(&opts.FileExtension, p.FileExtension)
	apply(&opts.ReleaseGroup, p.ReleaseGroup)
	apply(&opts.Season, p.Season)
	apply(&opts.Title, p.Title)
	apply(&opts.VideoResolution, p.VideoResolution)
	apply(&opts.Year, p.Year)
	return opts
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Libraries: LibraryConfig{
			Paths: []string{},
		},
		Daemon: DaemonConfig{
			ScanFrequency: "weekly",
			LogLevel:      "info",
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}

	return filepath.Join(configDir, "aniparse", "config.toml"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configFile, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}

// Load reads the config file, creating it with defaults if it doesn't exist
func Load() (*Config, error) {
	configFile, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if err := EnsureConfigDir(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := Save(cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	return LoadFrom(configFile)
}

// LoadFrom reads a config file from a specific path
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Daemon.ScanFrequency == "" {
		cfg.Daemon.ScanFrequency = "weekly"
	}
	if cfg.Daemon.LogLevel == "" {
		cfg.Daemon.LogLevel = "info"
	}

	return &cfg, nil
}

// Save writes the config to disk
func Save(cfg *Config) error {
	configFile, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := EnsureConfigDir(); err != nil {
		return err
	}

	f, err := os.Create(configFile)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks the configuration for common problems
func (c *Config) Validate() error {
	switch c.Daemon.ScanFrequency {
	case "daily", "weekly", "biweekly":
	default:
		return fmt.Errorf("invalid scan_frequency: %s (expected daily, weekly or biweekly)", c.Daemon.ScanFrequency)
	}

	for _, path := range c.Libraries.Paths {
		if !filepath.IsAbs(path) {
			return fmt.Errorf("library path must be absolute: %s", path)
		}
	}

	return nil
}
