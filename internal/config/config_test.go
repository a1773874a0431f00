// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML and TOML loading, env var expansion, defaults, and validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
backend:
  base_url: "http://news.local:5000"
  page_url: "http://news.local:5000/category/business"

identity:
  provider: "firebase"
  api_key: "key-123"
  project_id: "login-form"
  token_ttl: "2h"

session:
  path: "/tmp/newspulse/client.db"

navigation:
  app_root: "http://news.local:5000"
  login_page: "http://news.local:5500/login.html"
  redirect_delay: "2s"

notifications:
  hide_after: "3s"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend.BaseURL != "http://news.local:5000" {
		t.Errorf("Backend.BaseURL = %q, want %q", cfg.Backend.BaseURL, "http://news.local:5000")
	}
	if cfg.Backend.PageURL != "http://news.local:5000/category/business" {
		t.Errorf("Backend.PageURL = %q", cfg.Backend.PageURL)
	}
	if cfg.Identity.Provider != ProviderFirebase {
		t.Errorf("Identity.Provider = %q, want %q", cfg.Identity.Provider, ProviderFirebase)
	}
	if cfg.Identity.TokenTTL != 2*time.Hour {
		t.Errorf("Identity.TokenTTL = %v, want %v", cfg.Identity.TokenTTL, 2*time.Hour)
	}
	if cfg.Navigation.RedirectDelay != 2*time.Second {
		t.Errorf("Navigation.RedirectDelay = %v, want %v", cfg.Navigation.RedirectDelay, 2*time.Second)
	}
	if cfg.Notifications.HideAfter != 3*time.Second {
		t.Errorf("Notifications.HideAfter = %v, want %v", cfg.Notifications.HideAfter, 3*time.Second)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}

	// Untouched values keep their defaults
	if cfg.Identity.AuthURL != "https://identitytoolkit.googleapis.com" {
		t.Errorf("Identity.AuthURL = %q, want default", cfg.Identity.AuthURL)
	}
}

func TestLoad_TOMLMatchesYAML(t *testing.T) {
	yamlPath := writeConfig(t, "config.yaml", `
backend:
  base_url: "http://news.local:5000"
identity:
  provider: "local"
  jwt_secret: "s3cret"
navigation:
  redirect_delay: "1500ms"
`)
	tomlPath := writeConfig(t, "config.toml", `
[backend]
base_url = "http://news.local:5000"

[identity]
provider = "local"
jwt_secret = "s3cret"

[navigation]
redirect_delay = "1500ms"
`)

	fromYAML, err := Load(yamlPath)
	require.NoError(t, err)
	fromTOML, err := Load(tomlPath)
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromTOML)
	assert.Equal(t, 1500*time.Millisecond, fromTOML.Navigation.RedirectDelay)
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_NEWSPULSE_KEY", "from-env")
	path := writeConfig(t, "config.yaml", `
identity:
  provider: "firebase"
  api_key: "${TEST_NEWSPULSE_KEY}"
  project_id: "p"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Identity.APIKey)
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
notifications:
  hide_after: "soon"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "hide_after"), "error should name the field: %v", err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDefault_Values(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1500*time.Millisecond, cfg.Navigation.RedirectDelay)
	assert.Equal(t, 4000*time.Millisecond, cfg.Notifications.HideAfter)
	assert.Equal(t, ProviderLocal, cfg.Identity.Provider)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.Backend.BaseURL = "" },
			wantErr: "backend.base_url is required",
		},
		{
			name:    "bad scheme",
			mutate:  func(c *Config) { c.Backend.BaseURL = "ftp://example.com" },
			wantErr: "http or https",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Identity.Provider = "ldap" },
			wantErr: "identity.provider",
		},
		{
			name: "firebase without api key",
			mutate: func(c *Config) {
				c.Identity.Provider = ProviderFirebase
				c.Identity.ProjectID = "p"
			},
			wantErr: "identity.api_key",
		},
		{
			name: "firebase without project",
			mutate: func(c *Config) {
				c.Identity.Provider = ProviderFirebase
				c.Identity.APIKey = "k"
			},
			wantErr: "identity.project_id",
		},
		{
			name:    "missing session path",
			mutate:  func(c *Config) { c.Session.Path = "" },
			wantErr: "session.path",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv("NEWSPULSE_CONFIG", "/etc/newspulse.toml")
	assert.Equal(t, "/etc/newspulse.toml", Path())
}

func TestPath_XDG(t *testing.T) {
	t.Setenv("NEWSPULSE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "newspulse", "config.yaml"), Path())
}
