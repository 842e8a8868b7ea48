package config

import "time"

// ServerConfig contains the inbound HTTP server configuration.
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// FeedConfig contains the upstream GTFS-Realtime feed configuration.
// URL and APIKey are required: without them the service cannot poll
// anything and must refuse to start.
type FeedConfig struct {
	URL                    string `yaml:"url" validate:"required,url"`
	APIKey                 string `yaml:"apiKey" validate:"required"`
	RefreshIntervalSeconds int    `yaml:"refreshIntervalSeconds" validate:"gt=0"`
}

// RefreshInterval returns the poll cadence as a duration.
func (f FeedConfig) RefreshInterval() time.Duration {
	return time.Duration(f.RefreshIntervalSeconds) * time.Second
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Server ServerConfig `yaml:"server"`
	Feed   FeedConfig   `yaml:"feed"`
}
