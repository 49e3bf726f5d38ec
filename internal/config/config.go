// Package config provides configuration management for sheetboard.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	boarderrors "github.com/randalmurphal/sheetboard/internal/errors"
	"github.com/randalmurphal/sheetboard/internal/remote"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
	// SheetboardDir is the sheetboard configuration directory, used
	// both under the user home and at the project root.
	SheetboardDir = ".sheetboard"
)

// AuthConfig carries the credential for the spreadsheet web API. The
// remote adapter never reads these; the CLI turns them into an
// authenticated HTTP session at startup and hands that to the store.
type AuthConfig struct {
	// Token is the bearer token, inline. Prefer TokenFile or the
	// SHEETBOARD_TOKEN environment variable for anything that gets
	// committed or shared.
	Token string `yaml:"token,omitempty"`

	// TokenFile is a path to a file holding the token.
	TokenFile string `yaml:"token_file,omitempty"`
}

// ResolveToken returns the effective token: the inline value when set,
// otherwise the trimmed contents of TokenFile. Both empty is not an
// error; the memory store needs no credential.
func (a AuthConfig) ResolveToken() (string, error) {
	if a.Token != "" {
		return a.Token, nil
	}
	if a.TokenFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(a.TokenFile)
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Config represents the sheetboard configuration.
type Config struct {
	// Version is the config file version.
	Version int `yaml:"version"`

	// Remote selects and addresses the backing store.
	Remote remote.Config `yaml:"remote"`

	// Auth is the credential for network-backed stores.
	Auth AuthConfig `yaml:"auth,omitempty"`

	// RefreshInterval is how often the background refresher polls the
	// remote while watching.
	RefreshInterval time.Duration `yaml:"refresh_interval"`

	// ViewerEmail identifies the local member for visibility
	// filtering. Empty shows public tasks only.
	ViewerEmail string `yaml:"viewer_email,omitempty"`

	// CachePath overrides where the offline snapshot lives. Empty
	// uses ~/.sheetboard/cache.db.
	CachePath string `yaml:"cache_path,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: 1,
		Remote: remote.Config{
			Kind: remote.KindSheets,
		},
		RefreshInterval: 30 * time.Second,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Remote.Kind != remote.KindSheets && c.Remote.Kind != remote.KindMemory {
		return boarderrors.ErrConfigInvalid("remote.kind", fmt.Sprintf("unknown store kind %q", c.Remote.Kind))
	}
	if c.Remote.Kind == remote.KindSheets {
		if c.Remote.BaseURL == "" {
			return boarderrors.ErrConfigMissing("remote.base_url")
		}
		if c.Remote.SheetID == "" {
			return boarderrors.ErrConfigMissing("remote.sheet_id")
		}
	}
	if c.RefreshInterval <= 0 {
		return boarderrors.ErrConfigInvalid("refresh_interval", "must be positive")
	}
	return nil
}

// ResolvedCachePath returns the snapshot database path, defaulting to
// ~/.sheetboard/cache.db.
func (c *Config) ResolvedCachePath() (string, error) {
	if c.CachePath != "" {
		return c.CachePath, nil
	}
	dir, err := UserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache.db"), nil
}

// UserDir returns the user-level sheetboard directory (~/.sheetboard).
func UserDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, SheetboardDir), nil
}

// Load loads configuration from the standard cascade. Later sources
// override earlier ones:
//  1. Built-in defaults
//  2. User config (~/.sheetboard/config.yaml) - optional
//  3. Project config (.sheetboard/config.yaml) - optional
//  4. Environment variables (SHEETBOARD_*)
func Load() (*Config, error) {
	return LoadDir(".")
}

// LoadDir loads the cascade with the project config resolved under the
// given directory.
func LoadDir(dir string) (*Config, error) {
	cfg := Default()

	if userDir, err := UserDir(); err == nil {
		userPath := filepath.Join(userDir, ConfigFileName)
		if _, err := os.Stat(userPath); err == nil {
			if err := mergeFromFile(cfg, userPath); err != nil {
				slog.Warn("failed to load user config", "path", userPath, "error", err)
			}
		}
	}

	projectPath := filepath.Join(dir, SheetboardDir, ConfigFileName)
	if _, err := os.Stat(projectPath); err == nil {
		if err := mergeFromFile(cfg, projectPath); err != nil {
			return nil, err // project config errors are fatal
		}
	}

	ApplyEnvVars(cfg)
	return cfg, nil
}

// LoadFrom loads configuration from one explicit file over the
// defaults, then applies environment overrides. Used by --config.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if err := mergeFromFile(cfg, path); err != nil {
		return nil, err
	}
	ApplyEnvVars(cfg)
	return cfg, nil
}

// mergeFromFile overlays the file's fields onto cfg. Fields absent
// from the file keep their current values.
func mergeFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// SaveTo writes the config to a specific path, creating the parent
// directory when missing.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Init writes a default config skeleton into the project directory.
func Init(force bool) error {
	path := filepath.Join(SheetboardDir, ConfigFileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("sheetboard already initialized (use --force to overwrite)")
		}
	}
	return Default().SaveTo(path)
}
