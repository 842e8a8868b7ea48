package config

import (
	"errors"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FEED_URL", "https://example.com/gtfsrt")
	t.Setenv("FEED_API_KEY", "test-key")
	t.Setenv("REFRESH_INTERVAL_SECONDS", "")
	t.Setenv("PORT", "")
}

func TestLoadFromEnv(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Feed.URL != "https://example.com/gtfsrt" {
		t.Errorf("unexpected feed URL: %s", cfg.Feed.URL)
	}
	if cfg.Feed.APIKey != "test-key" {
		t.Errorf("unexpected API key: %s", cfg.Feed.APIKey)
	}
	if cfg.Feed.RefreshIntervalSeconds != 15 {
		t.Errorf("expected default interval 15, got %d", cfg.Feed.RefreshIntervalSeconds)
	}
	if cfg.Server.Port != 16181 {
		t.Errorf("expected default port 16181, got %d", cfg.Server.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REFRESH_INTERVAL_SECONDS", "30")
	t.Setenv("PORT", "8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Feed.RefreshIntervalSeconds != 30 {
		t.Errorf("expected interval 30, got %d", cfg.Feed.RefreshIntervalSeconds)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if got := cfg.Feed.RefreshInterval(); got != 30*time.Second {
		t.Errorf("expected 30s duration, got %v", got)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing feed url", map[string]string{"FEED_URL": "", "FEED_API_KEY": "k"}},
		{"missing api key", map[string]string{"FEED_URL": "https://example.com/f", "FEED_API_KEY": ""}},
		{"malformed url", map[string]string{"FEED_URL": "not a url", "FEED_API_KEY": "k"}},
		{"bad interval", map[string]string{
			"FEED_URL": "https://example.com/f", "FEED_API_KEY": "k",
			"REFRESH_INTERVAL_SECONDS": "soon",
		}},
		{"bad port", map[string]string{
			"FEED_URL": "https://example.com/f", "FEED_API_KEY": "k",
			"PORT": "-1",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("FEED_URL", "")
			t.Setenv("FEED_API_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("expected configuration error")
			}
			if !errors.Is(err, ErrConfig) {
				t.Errorf("expected ErrConfig, got %v", err)
			}
		})
	}
}
