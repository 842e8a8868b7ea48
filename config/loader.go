package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrConfig marks a fatal configuration problem. The process must not
// start serving traffic when Load returns an error wrapping it.
var ErrConfig = errors.New("invalid configuration")

const (
	defaultPort                   = 16181
	defaultRefreshIntervalSeconds = 15
)

// Load reads config.yml when present, applies environment overrides
// (FEED_URL, FEED_API_KEY, REFRESH_INTERVAL_SECONDS, PORT) and validates
// the result. A .env file in the working directory is loaded first,
// missing files are ignored.
func Load() (AppConfig, error) {
	_ = godotenv.Load()

	var cfg AppConfig
	paths := []string{"config.yml", "./config/config.yml"}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("%w: parsing %s: %v", ErrConfig, p, err)
		}
		break
	}

	if v := os.Getenv("FEED_URL"); v != "" {
		cfg.Feed.URL = v
	}
	if v := os.Getenv("FEED_API_KEY"); v != "" {
		cfg.Feed.APIKey = v
	}
	if v := os.Getenv("REFRESH_INTERVAL_SECONDS"); v != "" {
		sec, err := strconv.Atoi(v)
		if err != nil || sec <= 0 {
			return AppConfig{}, fmt.Errorf("%w: invalid REFRESH_INTERVAL_SECONDS: %q", ErrConfig, v)
		}
		cfg.Feed.RefreshIntervalSeconds = sec
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return AppConfig{}, fmt.Errorf("%w: invalid PORT: %q", ErrConfig, v)
		}
		cfg.Server.Port = port
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Feed.RefreshIntervalSeconds == 0 {
		cfg.Feed.RefreshIntervalSeconds = defaultRefreshIntervalSeconds
	}

	val := validator.New()
	if err := val.Struct(cfg.Feed); err != nil {
		return AppConfig{}, fmt.Errorf("%w: feed: %v", ErrConfig, err)
	}
	if err := val.Struct(cfg.Server); err != nil {
		return AppConfig{}, fmt.Errorf("%w: server: %v", ErrConfig, err)
	}
	return cfg, nil
}
