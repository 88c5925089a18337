package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "missing server url",
			mutate:  func(cfg *Config) { cfg.Server.URL = "" },
			wantErr: "server.url is required",
		},
		{
			name:    "bad server scheme",
			mutate:  func(cfg *Config) { cfg.Server.URL = "ftp://localhost:3030" },
			wantErr: "must use http or https",
		},
		{
			name:    "server url without host",
			mutate:  func(cfg *Config) { cfg.Server.URL = "http://" },
			wantErr: "missing a host",
		},
		{
			name: "partial auth missing secret",
			mutate: func(cfg *Config) {
				cfg.Auth.TokenURL = "https://idp.example.com/token"
				cfg.Auth.ClientID = "orion"
			},
			wantErr: "auth.client_secret is required",
		},
		{
			name: "partial auth missing token url",
			mutate: func(cfg *Config) {
				cfg.Auth.ClientID = "orion"
				cfg.Auth.ClientSecret = Secret("s3cret")
			},
			wantErr: "auth.token_url is required",
		},
		{
			name: "auth token url bad scheme",
			mutate: func(cfg *Config) {
				cfg.Auth.TokenURL = "ldap://idp.example.com"
				cfg.Auth.ClientID = "orion"
				cfg.Auth.ClientSecret = Secret("s3cret")
			},
			wantErr: "must use http or https",
		},
		{
			name: "complete auth",
			mutate: func(cfg *Config) {
				cfg.Auth.TokenURL = "https://idp.example.com/token"
				cfg.Auth.ClientID = "orion"
				cfg.Auth.ClientSecret = Secret("s3cret")
			},
		},
		{
			name:    "bad log format",
			mutate:  func(cfg *Config) { cfg.Log.Format = "xml" },
			wantErr: "log.format must be 'json' or 'console'",
		},
		{
			name: "telemetry without service name",
			mutate: func(cfg *Config) {
				cfg.Telemetry.Enabled = true
				cfg.Telemetry.ServiceName = ""
			},
			wantErr: "telemetry.service_name is required",
		},
		{
			name: "bad telemetry protocol",
			mutate: func(cfg *Config) {
				cfg.Telemetry.Enabled = true
				cfg.Telemetry.Protocol = "thrift"
			},
			wantErr: "telemetry.protocol must be",
		},
		{
			name: "sample rate out of range",
			mutate: func(cfg *Config) {
				cfg.Telemetry.Enabled = true
				cfg.Telemetry.SampleRate = 1.5
			},
			wantErr: "sample_rate must be between 0 and 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.Server.URL != "http://localhost:3030" {
		t.Errorf("Server.URL = %q, want http://localhost:3030", cfg.Server.URL)
	}
	if cfg.Server.Timeout.Duration() != 5*time.Minute {
		t.Errorf("Server.Timeout = %v, want 5m", cfg.Server.Timeout.Duration())
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json", cfg.Log.Format)
	}
	if cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = true, want false (disabled by default)")
	}
	if cfg.Telemetry.ServiceName != "orionctl" {
		t.Errorf("Telemetry.ServiceName = %q, want orionctl", cfg.Telemetry.ServiceName)
	}
	if cfg.Telemetry.Protocol != "grpc" {
		t.Errorf("Telemetry.Protocol = %q, want grpc", cfg.Telemetry.Protocol)
	}
	if cfg.Telemetry.SampleRate != 1.0 {
		t.Errorf("Telemetry.SampleRate = %f, want 1.0", cfg.Telemetry.SampleRate)
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			URL:     "https://orion.perf.example.com",
			Timeout: Duration(30 * time.Second),
		},
		Log: LogConfig{Level: "debug", Format: "console"},
	}
	applyDefaults(cfg)

	if cfg.Server.URL != "https://orion.perf.example.com" {
		t.Errorf("Server.URL = %q, explicit value overwritten", cfg.Server.URL)
	}
	if cfg.Server.Timeout.Duration() != 30*time.Second {
		t.Errorf("Server.Timeout = %v, explicit value overwritten", cfg.Server.Timeout.Duration())
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
		t.Errorf("Log = %+v, explicit values overwritten", cfg.Log)
	}
}

func TestAuthConfig_Enabled(t *testing.T) {
	var empty AuthConfig
	if empty.Enabled() {
		t.Error("empty AuthConfig should report disabled")
	}

	partial := AuthConfig{ClientID: "orion"}
	if !partial.Enabled() {
		t.Error("AuthConfig with any field set should report enabled")
	}
}

func TestSecret_Redaction(t *testing.T) {
	s := Secret("super-secret-value")

	if got := s.String(); got != "[REDACTED]" {
		t.Errorf("String() = %q, want [REDACTED]", got)
	}
	if got := fmt.Sprintf("%v", s); got != "[REDACTED]" {
		t.Errorf("Sprintf %%v = %q, want [REDACTED]", got)
	}
	if got := fmt.Sprintf("%#v", s); got != "Secret([REDACTED])" {
		t.Errorf("Sprintf %%#v = %q, want Secret([REDACTED])", got)
	}
	if got := s.Value(); got != "super-secret-value" {
		t.Errorf("Value() = %q, want raw secret", got)
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("json.Marshal error: %v", err)
	}
	if string(data) != `"[REDACTED]"` {
		t.Errorf("json.Marshal = %s, want redacted", data)
	}
}

func TestDuration_Unmarshal(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("90s")); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if d.Duration() != 90*time.Second {
		t.Errorf("Duration = %v, want 90s", d.Duration())
	}

	if err := d.UnmarshalText([]byte("-5s")); err == nil {
		t.Error("negative duration should be rejected")
	}
	if err := d.UnmarshalText([]byte("not-a-duration")); err == nil {
		t.Error("garbage duration should be rejected")
	}
}
