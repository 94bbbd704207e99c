// Package config loads and persists banctl's user configuration.
//
// The config lives at the XDG config home as YAML. A .env file in the
// working directory and BANCTL_* environment variables override individual
// fields, matching how the surrounding deployment passes settings in.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"banctl/internal/logging"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "banctl" // application name used for config directory

// Config holds user configuration for banctl.
type Config struct {
	// DBPath is the SQLite database holding the user directory and the
	// violation store.
	DBPath string `yaml:"db_path"`
	// BanDuration is the default expiry applied by the ban operation,
	// in time.ParseDuration syntax. Empty or "0" means permanent.
	BanDuration string `yaml:"ban_duration"`
	Version     string `yaml:"version"`
	InitTime    int64  `yaml:"init_time"` // Unix timestamp of first setup
}

// ConfigPath returns the standard config file path for the current platform
func ConfigPath() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, APP_NAME)
	configPath := filepath.Join(configDir, "config.yaml")

	logging.Debug("Determined config path", "path", configPath)
	return configPath, nil
}

// Load loads the config from the standard location, creating the default
// config on first run, then applies .env and environment overrides.
func Load() (*Config, error) {
	configPath, exists := FindConfigFile()
	logging.Debug("Loading config from", "path", configPath)
	if !exists {
		cfg := DefaultConfig()
		if err := cfg.SaveTo(configPath); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
		logging.Info("Created default configuration", "path", configPath)
		cfg.applyEnvOverrides()
		return &cfg, nil
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// LoadFrom loads config from a specific path
func LoadFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// FindConfigFile returns the path to an existing config file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get config path", "error", err)
		return "", false
	}

	if _, err := os.Stat(primary); err == nil {
		logging.Debug("Config found at primary path", "path", primary)
		return primary, true
	}

	return primary, false
}

// IsFirstRun checks if this is the first time the application is run
func IsFirstRun() bool {
	_, exists := FindConfigFile()
	return !exists
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DBPath:      filepath.Join(xdg.DataHome, APP_NAME, "banctl.db"),
		BanDuration: "2h",
		Version:     "1.0",
		InitTime:    0, // Will be set during first save
	}
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	configPath, _ := FindConfigFile()
	return c.SaveTo(configPath)
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	// Set init time if this is the first save
	if c.InitTime == 0 {
		c.InitTime = time.Now().Unix()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Restrictive permissions: the file names the abuse-control database
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ParseBanDuration returns the default ban expiry as a duration. Empty and
// "0" both mean permanent (zero duration).
func (c *Config) ParseBanDuration() (time.Duration, error) {
	if c.BanDuration == "" || c.BanDuration == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.BanDuration)
	if err != nil {
		return 0, fmt.Errorf("invalid ban_duration %q: %w", c.BanDuration, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("ban_duration %q must not be negative", c.BanDuration)
	}
	return d, nil
}

// applyEnvOverrides layers a local .env file and BANCTL_* variables over
// the file-based config. Missing .env is fine.
func (c *Config) applyEnvOverrides() {
	if err := godotenv.Load(); err == nil {
		logging.Debug("Loaded .env overrides")
	}

	if v := os.Getenv("BANCTL_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("BANCTL_BAN_DURATION"); v != "" {
		c.BanDuration = v
	}
}
