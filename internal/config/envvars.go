package config

import (
	"os"
	"time"

	"github.com/randalmurphal/sheetboard/internal/remote"
)

// EnvVarMapping defines the mapping between environment variables and
// config paths.
var EnvVarMapping = map[string]string{
	"SHEETBOARD_REMOTE":           "remote.kind",
	"SHEETBOARD_BASE_URL":         "remote.base_url",
	"SHEETBOARD_SHEET_ID":         "remote.sheet_id",
	"SHEETBOARD_TOKEN":            "auth.token",
	"SHEETBOARD_TOKEN_FILE":       "auth.token_file",
	"SHEETBOARD_REFRESH_INTERVAL": "refresh_interval",
	"SHEETBOARD_VIEWER":           "viewer_email",
	"SHEETBOARD_CACHE_PATH":       "cache_path",
}

// ApplyEnvVars applies environment variable overrides to the config.
// Returns the config paths that were overridden.
func ApplyEnvVars(cfg *Config) []string {
	var overridden []string

	for envVar, configPath := range EnvVarMapping {
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if applyEnvVar(cfg, configPath, value) {
			overridden = append(overridden, configPath)
		}
	}

	return overridden
}

// applyEnvVar applies a single environment variable to the config.
// Returns true if the value was applied.
func applyEnvVar(cfg *Config, path string, value string) bool {
	switch path {
	case "remote.kind":
		cfg.Remote.Kind = remote.Kind(value)
	case "remote.base_url":
		cfg.Remote.BaseURL = value
	case "remote.sheet_id":
		cfg.Remote.SheetID = value
	case "auth.token":
		cfg.Auth.Token = value
	case "auth.token_file":
		cfg.Auth.TokenFile = value
	case "refresh_interval":
		d, err := time.ParseDuration(value)
		if err != nil {
			return false
		}
		cfg.RefreshInterval = d
	case "viewer_email":
		cfg.ViewerEmail = value
	case "cache_path":
		cfg.CachePath = value
	default:
		return false
	}
	return true
}
