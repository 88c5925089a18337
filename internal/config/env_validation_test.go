package config

import (
	"path/filepath"
	"testing"
)

// loadWithEnv runs LoadWithFile against a missing config file so only env
// vars and defaults apply.
func loadWithEnv(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()

	home := setHome(t)
	for k, v := range env {
		t.Setenv(k, v)
	}

	return LoadWithFile(filepath.Join(home, ".config", "orionctl", "config.yaml"))
}

func TestLoad_RejectsMaliciousServerURL(t *testing.T) {
	// Invalid schemes and URLs that must never reach the HTTP client
	invalidURLs := []string{
		"javascript:alert(1)",
		"file:///etc/passwd",
		"ftp://malicious.com",
	}

	for _, url := range invalidURLs {
		t.Run(url, func(t *testing.T) {
			_, err := loadWithEnv(t, map[string]string{"ORIONCTL_SERVER_URL": url})
			if err == nil {
				t.Errorf("Expected validation error for invalid URL: %s", url)
			}
		})
	}
}

func TestLoad_RejectsMaliciousTokenURL(t *testing.T) {
	invalidURLs := []string{
		"javascript:alert(1)",
		"ftp://malicious.com/token",
	}

	for _, url := range invalidURLs {
		t.Run(url, func(t *testing.T) {
			_, err := loadWithEnv(t, map[string]string{
				"ORIONCTL_AUTH_TOKEN_URL":     url,
				"ORIONCTL_AUTH_CLIENT_ID":     "orion-ci",
				"ORIONCTL_AUTH_CLIENT_SECRET": "secret",
			})
			if err == nil {
				t.Errorf("Expected validation error for invalid token URL: %s", url)
			}
		})
	}
}

func TestLoad_RejectsPartialAuth(t *testing.T) {
	_, err := loadWithEnv(t, map[string]string{
		"ORIONCTL_AUTH_CLIENT_ID": "orion-ci",
	})
	if err == nil {
		t.Error("Expected validation error for partial auth credentials")
	}
}

func TestLoad_AllowsValidConfig(t *testing.T) {
	cfg, err := loadWithEnv(t, map[string]string{
		"ORIONCTL_SERVER_URL":             "http://orion:3030",
		"ORIONCTL_SERVER_TIMEOUT":         "90s",
		"ORIONCTL_AUTH_TOKEN_URL":         "https://idp.example.com/token",
		"ORIONCTL_AUTH_CLIENT_ID":         "orion-ci",
		"ORIONCTL_AUTH_CLIENT_SECRET":     "env-secret",
		"ORIONCTL_LOG_FORMAT":             "console",
		"ORIONCTL_TELEMETRY_SERVICE_NAME": "orionctl-env",
	})
	if err != nil {
		t.Fatalf("Valid configuration rejected: %v", err)
	}

	if cfg.Server.URL != "http://orion:3030" {
		t.Errorf("Server.URL = %q, want http://orion:3030", cfg.Server.URL)
	}
	if cfg.Server.Timeout.Duration().Seconds() != 90 {
		t.Errorf("Server.Timeout = %v, want 90s", cfg.Server.Timeout.Duration())
	}
	if cfg.Auth.TokenURL != "https://idp.example.com/token" {
		t.Errorf("Auth.TokenURL = %q, mapping broken", cfg.Auth.TokenURL)
	}
	if cfg.Auth.ClientSecret.Value() != "env-secret" {
		t.Errorf("Auth.ClientSecret = %q, mapping broken", cfg.Auth.ClientSecret.Value())
	}
	if cfg.Log.Format != "console" {
		t.Errorf("Log.Format = %q, want console", cfg.Log.Format)
	}
	if cfg.Telemetry.ServiceName != "orionctl-env" {
		t.Errorf("Telemetry.ServiceName = %q, want orionctl-env", cfg.Telemetry.ServiceName)
	}
}
