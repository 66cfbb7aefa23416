// Package config provides configuration management for dsforge.
//
// Configuration is layered: built-in defaults, then an optional YAML config
// file, then DSFORGE_* environment variables. Later layers win.
//
// Config file locations (priority order):
//  1. $DSFORGE_CONFIG, used as-is so a bad path errors instead of being skipped
//  2. ./dsforge.yaml
//  3. dsforge/config.yaml under os.UserConfigDir ($XDG_CONFIG_HOME or
//     ~/.config on Linux)
//  4. /etc/dsforge/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"dsforge/internal/domain"
)

// Config is the root configuration structure
type Config struct {
	Version int `yaml:"version" ignored:"true"`

	// OutputDir is where generated projects land when a run does not name one.
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	// TemplatesDir holds user template packs that shadow the built-ins.
	TemplatesDir string `yaml:"templates_dir" envconfig:"TEMPLATES_DIR"`

	Author         string `yaml:"author" envconfig:"AUTHOR"`
	DefaultLicense string `yaml:"default_license" envconfig:"DEFAULT_LICENSE"`

	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig configures the project registry
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig configures logging output
type LogConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

// Load finds and loads the config file, or returns defaults if none found.
// Environment variables are applied on top either way.
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		cfg := DefaultConfig()
		if err := cfg.applyEnv(); err != nil {
			return nil, "", err
		}
		return cfg, "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, path, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version:        1,
		OutputDir:      ".",
		DefaultLicense: string(domain.LicenseNone),
		Database:       DatabaseConfig{Path: "./dsforge.db"},
		Server:         ServerConfig{Addr: ":8468"},
		Log:            LogConfig{Level: "info"},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.DefaultLicense == "" {
		c.DefaultLicense = string(domain.LicenseNone)
	}
	if c.Database.Path == "" {
		c.Database.Path = "./dsforge.db"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8468"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// applyEnv overlays DSFORGE_* environment variables
func (c *Config) applyEnv() error {
	if err := envconfig.Process("dsforge", c); err != nil {
		return fmt.Errorf("process environment: %w", err)
	}
	return nil
}

// Validate rejects values the rest of the system cannot work with
func (c *Config) Validate() error {
	switch c.DefaultLicense {
	case string(domain.LicenseMIT), string(domain.LicenseBSD3), string(domain.LicenseNone):
	default:
		return fmt.Errorf("default_license: %q: %w", c.DefaultLicense, domain.ErrInvalidValue)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	return nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Output: %s, License: %s\n", c.OutputDir, c.DefaultLicense)
	summary += fmt.Sprintf("Registry: %s, Listen: %s, Log: %s", c.Database.Path, c.Server.Addr, c.Log.Level)
	if c.TemplatesDir != "" {
		summary += fmt.Sprintf("\nTemplates: %s", c.TemplatesDir)
	}
	return summary
}

const (
	// EnvConfigPath names an explicit config file, short-circuiting the search
	EnvConfigPath = "DSFORGE_CONFIG"
	// ConfigFileName is the file looked for in the working directory
	ConfigFileName = "dsforge.yaml"
	// ConfigDirName is the per-user and system config directory name
	ConfigDirName = "dsforge"
)

// searchPaths lists the candidate config files in priority order.
func searchPaths() []string {
	paths := []string{ConfigFileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, ConfigDirName, "config.yaml"))
	}
	return append(paths, filepath.Join("/etc", ConfigDirName, "config.yaml"))
}

// FindConfigPath resolves the config file to load. An explicit
// $DSFORGE_CONFIG is returned without checking for existence, so a typo
// there surfaces as a read error rather than a silently ignored setting.
// Returns "" when no candidate exists.
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}
	return ""
}

// DefaultConfigPath is where a new config file is written when none exists
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ConfigFileName
	}
	return filepath.Join(dir, ConfigDirName, "config.yaml")
}

// EnsureConfigDir creates the directory that will hold the config file
func EnsureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}
