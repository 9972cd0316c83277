package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	API         APIConfig         `toml:"api"`
	Browse      BrowseConfig      `toml:"browse"`
	Preview     PreviewConfig     `toml:"preview"`
	Log         LogConfig         `toml:"log"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains the client-credentials pair used for the token exchange.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// APIConfig contains upstream endpoints and request pacing.
type APIConfig struct {
	BaseURL           string  `toml:"base_url"`
	TokenURL          string  `toml:"token_url"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// BrowseConfig holds page sizes and query defaults for listing views.
type BrowseConfig struct {
	PageSize              int    `toml:"page_size"`
	CategoryLimit         int    `toml:"category_limit"`
	CategoryPlaylistLimit int    `toml:"category_playlist_limit"`
	PlaylistTrackLimit    int    `toml:"playlist_track_limit"`
	Country               string `toml:"country"`
	Market                string `toml:"market"`
	PodcastQuery          string `toml:"podcast_query"`
}

// PreviewConfig names the external command used to play audio previews.
type PreviewConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file fall back to the embedded defaults, and environment overrides are applied last.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	ApplyEnvOverrides(config)
	return config, nil
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
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig encodes the config as TOML and writes it to path.
func SaveConfig(path string, config *Config) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ApplyEnvOverrides replaces config values with SPOTAPP_* environment variables when they are set.
func ApplyEnvOverrides(config *Config) {
	if v := os.Getenv("SPOTAPP_CLIENT_ID"); v != "" {
		config.Credentials.Spotify.ClientID = v
	}
	if v := os.Getenv("SPOTAPP_CLIENT_SECRET"); v != "" {
		config.Credentials.Spotify.ClientSecret = v
	}
	if v := os.Getenv("SPOTAPP_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv("SPOTAPP_LOG_FILE"); v != "" {
		config.Log.File = v
	}
}

// HasCredentials reports whether both halves of the client-credentials pair are present.
func (c *Config) HasCredentials() bool {
	return c.Credentials.Spotify.ClientID != "" && c.Credentials.Spotify.ClientSecret != ""
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.API.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("api: %w", err))
	}
	if err := c.Browse.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("browse: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks APIConfig for errors.
func (c *APIConfig) Validate() error {
	var errs []error
	for _, f := range []struct {
		name string
		raw  string
	}{
		{"base_url", c.BaseURL},
		{"token_url", c.TokenURL},
	} {
		u, err := url.Parse(f.raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("invalid %s: %q", f.name, f.raw))
		}
	}
	if c.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("requests_per_second must be non-negative"))
	}
	return errors.Join(errs...)
}

// Validate checks BrowseConfig for errors.
func (c *BrowseConfig) Validate() error {
	var errs []error
	for _, f := range []struct {
		name  string
		value int
	}{
		{"page_size", c.PageSize},
		{"category_limit", c.CategoryLimit},
		{"category_playlist_limit", c.CategoryPlaylistLimit},
		{"playlist_track_limit", c.PlaylistTrackLimit},
	} {
		if f.value < 1 || f.value > 50 {
			errs = append(errs, fmt.Errorf("%s must be between 1 and 50, got %d", f.name, f.value))
		}
	}
	if len(c.Country) != 2 {
		errs = append(errs, fmt.Errorf("country must be an ISO 3166-1 alpha-2 code, got %q", c.Country))
	}
	return errors.Join(errs...)
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
}
