package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Backend  BackendConfig  `toml:"backend"`
	Auth     AuthConfig     `toml:"auth"`
	Webhook  WebhookConfig  `toml:"webhook"`
	Database DatabaseConfig `toml:"database"`
	TUI      TUIConfig      `toml:"tui"`
}

// BackendConfig contains board API connection settings.
type BackendConfig struct {
	BaseURL        string `toml:"base_url"`
	SessionCookie  string `toml:"session_cookie"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the HTTP client timeout.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// AuthConfig contains login settings.
type AuthConfig struct {
	LoginPath           string     `toml:"login_path"`
	PollIntervalSeconds int        `toml:"poll_interval_seconds"`
	Zoho                ZohoConfig `toml:"zoho"`
}

// PollInterval returns how often auth status is re-checked while waiting for login.
func (a AuthConfig) PollInterval() time.Duration {
	if a.PollIntervalSeconds <= 0 {
		return 3 * time.Second
	}
	return time.Duration(a.PollIntervalSeconds) * time.Second
}

// ZohoConfig contains the OAuth client registration used to build a direct authorization URL.
type ZohoConfig struct {
	ClientID    string `toml:"client_id"`
	RedirectURI string `toml:"redirect_uri"`
}

// WebhookConfig contains webhook receiver settings.
type WebhookConfig struct {
	Host      string  `toml:"host"`
	Port      int     `toml:"port"`
	Token     string  `toml:"token"`
	RateLimit float64 `toml:"rate_limit"`
}

// Addr returns the listen address for the receiver.
func (w WebhookConfig) Addr() string {
	return fmt.Sprintf("%s:%d", w.Host, w.Port)
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// TUIConfig contains terminal UI settings.
type TUIConfig struct {
	LogPath string `toml:"log_path"`
}

// Validate checks that the settings required to reach the backend are usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: backend.base_url %q is not an absolute URL", ErrInvalidConfig, c.Backend.BaseURL)
	}
	if c.Auth.LoginPath != "" && !strings.HasPrefix(c.Auth.LoginPath, "/") {
		return fmt.Errorf("%w: auth.login_path must start with /", ErrInvalidConfig)
	}
	if c.Webhook.Port < 0 || c.Webhook.Port > 65535 {
		return fmt.Errorf("%w: webhook.port %d out of range", ErrInvalidConfig, c.Webhook.Port)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// LoadConfigOrDefault loads the config at path, returning defaults when the file does not exist.
func LoadConfigOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// SaveConfig writes the configuration to path as TOML.
func SaveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
//
// When webhookToken is non-empty it replaces the empty token in the template.
func CreateConfigFile(path, webhookToken string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	data := exampleConf
	if webhookToken != "" {
		data = bytes.Replace(exampleConf, []byte(`token = ""`), []byte(fmt.Sprintf("token = %q", webhookToken)), 1)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
