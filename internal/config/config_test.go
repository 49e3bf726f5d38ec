package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	boarderrors "github.com/randalmurphal/sheetboard/internal/errors"
	"github.com/randalmurphal/sheetboard/internal/remote"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Remote.Kind != remote.KindSheets {
		t.Errorf("Remote.Kind = %q, want sheets", cfg.Remote.Kind)
	}
	if cfg.RefreshInterval != 30*time.Second {
		t.Errorf("RefreshInterval = %v, want 30s", cfg.RefreshInterval)
	}
}

func TestLoadDir_DefaultsOnly(t *testing.T) {
	tmpDir := t.TempDir()

	// Empty home so the real user config never leaks in.
	t.Setenv("HOME", filepath.Join(tmpDir, "nonexistent"))

	cfg, err := LoadDir(tmpDir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if cfg.Remote.Kind != remote.KindSheets {
		t.Errorf("Remote.Kind = %q, want sheets", cfg.Remote.Kind)
	}
	if cfg.RefreshInterval != 30*time.Second {
		t.Errorf("RefreshInterval = %v, want 30s", cfg.RefreshInterval)
	}
}

func TestLoadDir_UserThenProject(t *testing.T) {
	tmpDir := t.TempDir()

	home := filepath.Join(tmpDir, "home")
	t.Setenv("HOME", home)
	userDir := filepath.Join(home, ".sheetboard")
	_ = os.MkdirAll(userDir, 0755)
	userConfig := `
remote:
  base_url: https://sheets.example.com
  sheet_id: user-workbook
viewer_email: ana@example.com
`
	_ = os.WriteFile(filepath.Join(userDir, "config.yaml"), []byte(userConfig), 0644)

	project := filepath.Join(tmpDir, "project")
	projectDir := filepath.Join(project, ".sheetboard")
	_ = os.MkdirAll(projectDir, 0755)
	projectConfig := `
remote:
  sheet_id: team-workbook
refresh_interval: 10s
`
	_ = os.WriteFile(filepath.Join(projectDir, "config.yaml"), []byte(projectConfig), 0644)

	cfg, err := LoadDir(project)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	// Base URL from the user file (not overridden).
	if cfg.Remote.BaseURL != "https://sheets.example.com" {
		t.Errorf("BaseURL = %q, want the user value", cfg.Remote.BaseURL)
	}
	// Sheet ID from the project file (overrides the user file).
	if cfg.Remote.SheetID != "team-workbook" {
		t.Errorf("SheetID = %q, want team-workbook", cfg.Remote.SheetID)
	}
	if cfg.ViewerEmail != "ana@example.com" {
		t.Errorf("ViewerEmail = %q, want the user value", cfg.ViewerEmail)
	}
	if cfg.RefreshInterval != 10*time.Second {
		t.Errorf("RefreshInterval = %v, want 10s", cfg.RefreshInterval)
	}
}

func TestLoadDir_ProjectErrorsAreFatal(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", filepath.Join(tmpDir, "nonexistent"))

	projectDir := filepath.Join(tmpDir, ".sheetboard")
	_ = os.MkdirAll(projectDir, 0755)
	_ = os.WriteFile(filepath.Join(projectDir, "config.yaml"), []byte("remote: [not a map"), 0644)

	if _, err := LoadDir(tmpDir); err == nil {
		t.Fatal("expected an error for a malformed project config")
	}
}

func TestLoadDir_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", filepath.Join(tmpDir, "nonexistent"))
	t.Setenv("SHEETBOARD_REMOTE", "memory")
	t.Setenv("SHEETBOARD_BASE_URL", "https://env.example.com")
	t.Setenv("SHEETBOARD_REFRESH_INTERVAL", "5s")
	t.Setenv("SHEETBOARD_VIEWER", "bo@example.com")

	cfg, err := LoadDir(tmpDir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	if cfg.Remote.Kind != remote.KindMemory {
		t.Errorf("Remote.Kind = %q, want memory", cfg.Remote.Kind)
	}
	if cfg.Remote.BaseURL != "https://env.example.com" {
		t.Errorf("BaseURL = %q, want the env value", cfg.Remote.BaseURL)
	}
	if cfg.RefreshInterval != 5*time.Second {
		t.Errorf("RefreshInterval = %v, want 5s", cfg.RefreshInterval)
	}
	if cfg.ViewerEmail != "bo@example.com" {
		t.Errorf("ViewerEmail = %q, want the env value", cfg.ViewerEmail)
	}
}

func TestApplyEnvVars_BadDurationIgnored(t *testing.T) {
	t.Setenv("SHEETBOARD_REFRESH_INTERVAL", "not-a-duration")

	cfg := Default()
	overridden := ApplyEnvVars(cfg)

	if cfg.RefreshInterval != 30*time.Second {
		t.Errorf("RefreshInterval = %v, want the default kept", cfg.RefreshInterval)
	}
	for _, path := range overridden {
		if path == "refresh_interval" {
			t.Error("refresh_interval should not be reported as overridden")
		}
	}
}

func TestLoadFrom(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "custom.yaml")
	_ = os.WriteFile(path, []byte(`
remote:
  kind: memory
refresh_interval: 1m
`), 0644)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Remote.Kind != remote.KindMemory {
		t.Errorf("Remote.Kind = %q, want memory", cfg.Remote.Kind)
	}
	if cfg.RefreshInterval != time.Minute {
		t.Errorf("RefreshInterval = %v, want 1m", cfg.RefreshInterval)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode boarderrors.Code
	}{
		{
			name:     "sheets without base url",
			mutate:   func(c *Config) { c.Remote.SheetID = "wb1" },
			wantCode: boarderrors.CodeConfigMissing,
		},
		{
			name:     "sheets without sheet id",
			mutate:   func(c *Config) { c.Remote.BaseURL = "https://sheets.example.com" },
			wantCode: boarderrors.CodeConfigMissing,
		},
		{
			name: "unknown kind",
			mutate: func(c *Config) {
				c.Remote.Kind = "carrier-pigeon"
			},
			wantCode: boarderrors.CodeConfigInvalid,
		},
		{
			name: "non-positive refresh interval",
			mutate: func(c *Config) {
				c.Remote.Kind = remote.KindMemory
				c.RefreshInterval = 0
			},
			wantCode: boarderrors.CodeConfigInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			be := boarderrors.AsBoardError(err)
			if be == nil {
				t.Fatalf("err = %v, want a BoardError", err)
			}
			if be.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", be.Code, tt.wantCode)
			}
		})
	}
}

func TestValidate_MemoryNeedsNoAddress(t *testing.T) {
	cfg := Default()
	cfg.Remote.Kind = remote.KindMemory

	if err := cfg.Validate(); err != nil {
		t.Fatalf("memory store should validate without URLs: %v", err)
	}
}

func TestResolveToken(t *testing.T) {
	tokenPath := filepath.Join(t.TempDir(), "token")
	_ = os.WriteFile(tokenPath, []byte("  secret-from-file\n"), 0600)

	tests := []struct {
		name string
		auth AuthConfig
		want string
	}{
		{"inline wins", AuthConfig{Token: "inline", TokenFile: tokenPath}, "inline"},
		{"file trimmed", AuthConfig{TokenFile: tokenPath}, "secret-from-file"},
		{"nothing configured", AuthConfig{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.auth.ResolveToken()
			if err != nil {
				t.Fatalf("ResolveToken failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveToken_MissingFile(t *testing.T) {
	auth := AuthConfig{TokenFile: filepath.Join(t.TempDir(), "missing")}
	if _, err := auth.ResolveToken(); err == nil {
		t.Fatal("expected an error for a missing token file")
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Remote.BaseURL = "https://sheets.example.com"
	cfg.Remote.SheetID = "wb1"
	cfg.ViewerEmail = "ana@example.com"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Remote.SheetID != "wb1" || loaded.ViewerEmail != "ana@example.com" {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}
