// ABOUTME: Configuration loading and parsing for the newspulse client
// ABOUTME: Supports YAML or TOML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config represents the complete newspulse client configuration
type Config struct {
	Backend       BackendConfig       `yaml:"backend" toml:"backend"`
	Identity      IdentityConfig      `yaml:"identity" toml:"identity"`
	Session       SessionConfig       `yaml:"session" toml:"session"`
	Navigation    NavigationConfig    `yaml:"navigation" toml:"navigation"`
	Notifications NotificationsConfig `yaml:"notifications" toml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging" toml:"logging"`
}

// BackendConfig points at the chat and dashboard backend
type BackendConfig struct {
	BaseURL string `yaml:"base_url" toml:"base_url"`
	// PageURL is sent with every chat query as the page the user is on
	PageURL string `yaml:"page_url" toml:"page_url"`
}

// IdentityConfig selects and configures the identity provider
type IdentityConfig struct {
	Provider     string        `yaml:"provider" toml:"provider"` // firebase or local
	APIKey       string        `yaml:"api_key" toml:"api_key"`
	ProjectID    string        `yaml:"project_id" toml:"project_id"`
	AuthURL      string        `yaml:"auth_url" toml:"auth_url"`
	FirestoreURL string        `yaml:"firestore_url" toml:"firestore_url"`
	// JWTSecret signs local provider tokens; empty means a per-process secret
	JWTSecret    string        `yaml:"jwt_secret" toml:"jwt_secret"`
	TokenTTL     time.Duration `yaml:"-" toml:"-"`

	TokenTTLRaw string `yaml:"token_ttl" toml:"token_ttl"`
}

// SessionConfig holds where client state is persisted
type SessionConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// NavigationConfig holds redirect destinations and timing
type NavigationConfig struct {
	AppRoot       string        `yaml:"app_root" toml:"app_root"`
	LoginPage     string        `yaml:"login_page" toml:"login_page"`
	RedirectDelay time.Duration `yaml:"-" toml:"-"`

	RedirectDelayRaw string `yaml:"redirect_delay" toml:"redirect_delay"`
}

// NotificationsConfig holds banner timing
type NotificationsConfig struct {
	HideAfter time.Duration `yaml:"-" toml:"-"`

	HideAfterRaw string `yaml:"hide_after" toml:"hide_after"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
	// File receives logs while the TUI owns the terminal
	File string `yaml:"file" toml:"file"`
}

// Identity provider names
const (
	ProviderFirebase = "firebase"
	ProviderLocal    = "local"
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: "http://127.0.0.1:5000",
			PageURL: "http://127.0.0.1:5000/",
		},
		Identity: IdentityConfig{
			Provider:     ProviderLocal,
			AuthURL:      "https://identitytoolkit.googleapis.com",
			FirestoreURL: "https://firestore.googleapis.com",
			TokenTTL:     24 * time.Hour,
		},
		Session: SessionConfig{
			Path: filepath.Join(dataDir(), "client.db"),
		},
		Navigation: NavigationConfig{
			AppRoot:       "http://127.0.0.1:5000",
			LoginPage:     "http://127.0.0.1:5500/templates/login.html",
			RedirectDelay: 1500 * time.Millisecond,
		},
		Notifications: NotificationsConfig{
			HideAfter: 4000 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Files ending in .toml are parsed as TOML, anything else as YAML.
// Environment variables in the format ${VAR_NAME} are expanded.
// Values missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(expanded, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path if it exists and falls back to Default otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Path returns the config file location.
// Priority: NEWSPULSE_CONFIG env var > XDG_CONFIG_HOME/newspulse/config.yaml > ~/.config/newspulse/config.yaml
func Path() string {
	if envPath := os.Getenv("NEWSPULSE_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml"
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "newspulse", "config.yaml")
}

// dataDir returns XDG_DATA_HOME/newspulse or ~/.local/share/newspulse
func dataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data"
		}
		dir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dir, "newspulse")
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("backend.base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.base_url must use http or https scheme")
	}

	switch c.Identity.Provider {
	case ProviderFirebase:
		if c.Identity.APIKey == "" {
			return fmt.Errorf("identity.api_key is required for the firebase provider")
		}
		if c.Identity.ProjectID == "" {
			return fmt.Errorf("identity.project_id is required for the firebase provider")
		}
	case ProviderLocal:
	default:
		return fmt.Errorf("identity.provider must be %q or %q, got %q", ProviderFirebase, ProviderLocal, c.Identity.Provider)
	}

	if c.Session.Path == "" {
		return fmt.Errorf("session.path is required")
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Identity.TokenTTLRaw != "" {
		cfg.Identity.TokenTTL, err = time.ParseDuration(cfg.Identity.TokenTTLRaw)
		if err != nil {
			return fmt.Errorf("parsing token_ttl %q: %w", cfg.Identity.TokenTTLRaw, err)
		}
	}

	if cfg.Navigation.RedirectDelayRaw != "" {
		cfg.Navigation.RedirectDelay, err = time.ParseDuration(cfg.Navigation.RedirectDelayRaw)
		if err != nil {
			return fmt.Errorf("parsing redirect_delay %q: %w", cfg.Navigation.RedirectDelayRaw, err)
		}
	}

	if cfg.Notifications.HideAfterRaw != "" {
		cfg.Notifications.HideAfter, err = time.ParseDuration(cfg.Notifications.HideAfterRaw)
		if err != nil {
			return fmt.Errorf("parsing hide_after %q: %w", cfg.Notifications.HideAfterRaw, err)
		}
	}

	return nil
}
