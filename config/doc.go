// Package config handles application configuration loading and validation.
//
// Configuration is loaded from an optional config.yml, overridden by
// environment variables (a .env file is honoured when present) and
// validated using struct tags.
package config
