// Package config provides configuration loading for orionctl.
//
// Configuration is loaded from a YAML file and environment variables with
// sensible defaults. This package covers the Orion server connection, OAuth2
// client credentials, logging, and telemetry settings.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds the complete orionctl configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Auth      AuthConfig      `koanf:"auth"`
	Log       LogConfig       `koanf:"log"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig holds the Orion server connection settings.
type ServerConfig struct {
	URL     string   `koanf:"url"`
	Timeout Duration `koanf:"timeout"`
}

// AuthConfig holds OAuth2 client credentials for servers that require them.
// All three of token_url, client_id, and client_secret must be set together.
type AuthConfig struct {
	TokenURL     string   `koanf:"token_url"`
	ClientID     string   `koanf:"client_id"`
	ClientSecret Secret   `koanf:"client_secret"`
	Scopes       []string `koanf:"scopes"`
}

// Enabled reports whether credentials are configured.
func (a AuthConfig) Enabled() bool {
	return a.TokenURL != "" || a.ClientID != "" || a.ClientSecret.IsSet()
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	Enabled       bool    `koanf:"enabled"`
	ServiceName   string  `koanf:"service_name"`
	Endpoint      string  `koanf:"endpoint"`
	Protocol      string  `koanf:"protocol"`
	Insecure      bool    `koanf:"insecure"`
	TLSSkipVerify bool    `koanf:"tls_skip_verify"`
	SampleRate    float64 `koanf:"sample_rate"`
}

// Validate validates the configuration.
//
// Returns an error if:
//   - Server URL is missing, unparseable, or not http/https
//   - Auth credentials are partially configured
//   - Log format is not json or console
//   - Telemetry is enabled without a service name
func (c *Config) Validate() error {
	if err := validateHTTPURL(c.Server.URL, "server.url"); err != nil {
		return err
	}

	if c.Auth.Enabled() {
		if c.Auth.TokenURL == "" {
			return fmt.Errorf("auth.token_url is required when auth is configured")
		}
		if err := validateHTTPURL(c.Auth.TokenURL, "auth.token_url"); err != nil {
			return err
		}
		if c.Auth.ClientID == "" {
			return fmt.Errorf("auth.client_id is required when auth is configured")
		}
		if !c.Auth.ClientSecret.IsSet() {
			return fmt.Errorf("auth.client_secret is required when auth is configured")
		}
	}

	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be 'json' or 'console', got %q", c.Log.Format)
	}

	if c.Telemetry.Enabled {
		if c.Telemetry.ServiceName == "" {
			return fmt.Errorf("telemetry.service_name is required when telemetry is enabled")
		}
		if c.Telemetry.Protocol != "grpc" && c.Telemetry.Protocol != "http/protobuf" {
			return fmt.Errorf("telemetry.protocol must be 'grpc' or 'http/protobuf', got %q", c.Telemetry.Protocol)
		}
		if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
			return fmt.Errorf("telemetry.sample_rate must be between 0 and 1, got %f", c.Telemetry.SampleRate)
		}
	}

	return nil
}

func validateHTTPURL(raw, field string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", field, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host", field)
	}
	return nil
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.URL == "" {
		cfg.Server.URL = "http://localhost:3030"
	}
	if cfg.Server.Timeout == 0 {
		// Changepoint analysis on the server side can take minutes
		cfg.Server.Timeout = Duration(5 * time.Minute)
	}

	// Log defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	// Telemetry defaults
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "orionctl"
	}
	if cfg.Telemetry.Protocol == "" {
		cfg.Telemetry.Protocol = "grpc"
	}
	if cfg.Telemetry.SampleRate == 0 {
		cfg.Telemetry.SampleRate = 1.0
	}
}
