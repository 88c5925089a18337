package telemetry

import (
	"testing"
	"time"

	"github.com/fyrsmithlabs/orion-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.False(t, cfg.Enabled) // off by default for one-shot CLI runs
	assert.Equal(t, "localhost:4317", cfg.Endpoint)
	assert.Equal(t, ProtocolGRPC, cfg.Protocol)
	assert.Equal(t, "orionctl", cfg.ServiceName)
	assert.Equal(t, "0.1.0", cfg.ServiceVersion)
	assert.True(t, cfg.Insecure)
	assert.False(t, cfg.TLSSkipVerify)
	assert.Equal(t, 1.0, cfg.SampleRate)
	assert.Equal(t, 15*time.Second, cfg.MetricInterval.Duration())
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout.Duration())
}

func TestConfig_Validate(t *testing.T) {
	// enabled returns a minimal valid enabled Config each case mutates.
	enabled := func() *Config {
		return &Config{
			Enabled:         true,
			Endpoint:        "localhost:4317",
			Protocol:        ProtocolGRPC,
			ServiceName:     "test",
			ServiceVersion:  "0.1.0",
			Insecure:        true,
			SampleRate:      1.0,
			ShutdownTimeout: config.Duration(time.Second),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid minimal config",
			mutate: func(c *Config) {},
		},
		{
			name:   "disabled config skips validation",
			mutate: func(c *Config) { *c = Config{Enabled: false} },
		},
		{
			name:    "missing endpoint",
			mutate:  func(c *Config) { c.Endpoint = "" },
			wantErr: "endpoint is required",
		},
		{
			name:    "missing service name",
			mutate:  func(c *Config) { c.ServiceName = "" },
			wantErr: "service_name is required",
		},
		{
			name:    "missing service version",
			mutate:  func(c *Config) { c.ServiceVersion = "" },
			wantErr: "service_version is required",
		},
		{
			name:   "empty protocol falls back to grpc",
			mutate: func(c *Config) { c.Protocol = "" },
		},
		{
			name:   "http protocol accepted",
			mutate: func(c *Config) { c.Protocol = ProtocolHTTP },
		},
		{
			name:    "unknown protocol rejected",
			mutate:  func(c *Config) { c.Protocol = "thrift" },
			wantErr: "protocol must be",
		},
		{
			name:    "sample rate below zero",
			mutate:  func(c *Config) { c.SampleRate = -0.1 },
			wantErr: "sample_rate must be between 0 and 1",
		},
		{
			name:    "sample rate above one",
			mutate:  func(c *Config) { c.SampleRate = 1.1 },
			wantErr: "sample_rate must be between 0 and 1",
		},
		{
			name:   "zero metric interval disables metrics",
			mutate: func(c *Config) { c.MetricInterval = 0 },
		},
		{
			name:    "negative metric interval rejected",
			mutate:  func(c *Config) { c.MetricInterval = config.Duration(-time.Second) },
			wantErr: "metric_interval cannot be negative",
		},
		{
			name:    "zero shutdown timeout rejected",
			mutate:  func(c *Config) { c.ShutdownTimeout = 0 },
			wantErr: "shutdown_timeout must be positive",
		},
		{
			name: "TLS to remote endpoint accepted",
			mutate: func(c *Config) {
				c.Endpoint = "collector.prod:4317"
				c.Insecure = false
			},
		},
		{
			name: "TLS skip verify to remote endpoint accepted",
			mutate: func(c *Config) {
				c.Endpoint = "collector.prod:4317"
				c.Insecure = false
				c.TLSSkipVerify = true
			},
		},
		{
			name:   "insecure allowed for 127.0.0.1",
			mutate: func(c *Config) { c.Endpoint = "127.0.0.1:4317" },
		},
		{
			name:    "insecure rejected for remote endpoint",
			mutate:  func(c *Config) { c.Endpoint = "collector.prod:4317" },
			wantErr: "insecure export to remote endpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := enabled()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsLoopback(t *testing.T) {
	tests := []struct {
		endpoint string
		want     bool
	}{
		{"localhost:4317", true},
		{"localhost", true},
		{"127.0.0.1:4317", true},
		{"127.0.0.1", true},
		{"127.0.1.1:4317", true},
		{"[::1]:4317", true},
		{"::1", true},
		{"http://localhost:4318", true},
		{"collector.prod:4317", false},
		{"otel.example.com:4317", false},
		{"192.168.1.1:4317", false},
		{"10.0.0.1:4317", false},
		// Unbracketed IPv6 with a port is ambiguous; treated as remote.
		{"::1:4317", false},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			assert.Equal(t, tt.want, isLoopback(tt.endpoint))
		})
	}
}
