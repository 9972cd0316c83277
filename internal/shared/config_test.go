package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func mustRead(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(content)
}

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "https://api.spotify.com/v1" {
			t.Errorf("expected default base URL, got %s", config.API.BaseURL)
		}

		if config.API.TokenURL != "https://accounts.spotify.com/api/token" {
			t.Errorf("expected default token URL, got %s", config.API.TokenURL)
		}

		if config.Browse.PageSize != 12 {
			t.Errorf("expected page size 12, got %d", config.Browse.PageSize)
		}

		if config.Browse.PodcastQuery != "technology" {
			t.Errorf("expected podcast query technology, got %s", config.Browse.PodcastQuery)
		}

		if config.HasCredentials() {
			t.Error("default config should not carry credentials")
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Browse.Country != DefaultConfig().Browse.Country {
			t.Errorf("created config country doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"

[browse]
page_size = 20
country = "JP"

[log]
level = "debug"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected client_id test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}

		if config.Browse.PageSize != 20 {
			t.Errorf("expected page size 20, got %d", config.Browse.PageSize)
		}

		if config.Browse.Market != "PL" {
			t.Errorf("expected market to fall back to default PL, got %s", config.Browse.Market)
		}

		if !config.HasCredentials() {
			t.Error("expected credentials to be present")
		}
	})

	t.Run("LoadConfig with invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[browse\npage_size = "), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("SaveConfig round trips credentials", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		config := DefaultConfig()
		config.Credentials.Spotify.ClientID = "saved_id"
		config.Credentials.Spotify.ClientSecret = "saved_secret"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("SaveConfig failed: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if loaded.Credentials.Spotify.ClientSecret != "saved_secret" {
			t.Errorf("expected saved secret, got %s", loaded.Credentials.Spotify.ClientSecret)
		}
	})
}

func TestEnvOverrides(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	testConfig := `[credentials.spotify]
client_id = "file_id"
client_secret = "file_secret"
`
	if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("SPOTAPP_CLIENT_ID", "env_id")
	t.Setenv("SPOTAPP_CLIENT_SECRET", "env_secret")
	t.Setenv("SPOTAPP_LOG_LEVEL", "warn")

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if config.Credentials.Spotify.ClientID != "env_id" {
		t.Errorf("expected env client id to win, got %s", config.Credentials.Spotify.ClientID)
	}
	if config.Credentials.Spotify.ClientSecret != "env_secret" {
		t.Errorf("expected env client secret to win, got %s", config.Credentials.Spotify.ClientSecret)
	}
	if config.Log.Level != "warn" {
		t.Errorf("expected env log level, got %s", config.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tc := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "page size zero", mutate: func(c *Config) { c.Browse.PageSize = 0 }},
		{name: "page size above API maximum", mutate: func(c *Config) { c.Browse.PageSize = 51 }},
		{name: "bad country", mutate: func(c *Config) { c.Browse.Country = "Poland" }},
		{name: "relative base url", mutate: func(c *Config) { c.API.BaseURL = "/v1" }},
		{name: "negative pacing", mutate: func(c *Config) { c.API.RequestsPerSecond = -1 }},
		{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "verbose" }},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	t.Run("reports every invalid field in declaration order", func(t *testing.T) {
		config := DefaultConfig()
		config.API.BaseURL = "/v1"
		config.API.TokenURL = "/token"
		config.Browse.PageSize = 0
		config.Browse.PlaylistTrackLimit = 99
		config.Browse.Country = "Poland"

		want := "invalid configuration: api: invalid base_url: \"/v1\"\n" +
			"invalid token_url: \"/token\"\n" +
			"browse: page_size must be between 1 and 50, got 0\n" +
			"playlist_track_limit must be between 1 and 50, got 99\n" +
			"country must be an ISO 3166-1 alpha-2 code, got \"Poland\""

		for range 10 {
			if got := config.Validate().Error(); got != want {
				t.Fatalf("unexpected error:\n%s\nwant:\n%s", got, want)
			}
		}
	})
}
