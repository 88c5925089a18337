// internal/telemetry/config.go
package telemetry

import (
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/fyrsmithlabs/orion-go/internal/config"
)

// OTLP transport protocols accepted by Config.Protocol.
const (
	ProtocolGRPC = "grpc"
	ProtocolHTTP = "http/protobuf"
)

// Config controls the OTLP export pipeline.
type Config struct {
	// Enabled turns the pipeline on. Disabled telemetry still yields a
	// usable Telemetry value backed by no-op providers.
	Enabled bool

	// Endpoint is the collector address as host:port.
	Endpoint string

	// Protocol is ProtocolGRPC or ProtocolHTTP. Empty means gRPC.
	Protocol string

	// ServiceName and ServiceVersion identify this process in the
	// emitted resource.
	ServiceName    string
	ServiceVersion string

	// Insecure disables TLS. Only permitted for loopback endpoints.
	Insecure bool

	// TLSSkipVerify accepts any collector certificate. For internal
	// CAs; ignored when Insecure is set.
	TLSSkipVerify bool

	// SampleRate is the trace sampling ratio in [0, 1].
	SampleRate float64

	// MetricInterval is the periodic reader's export interval. Zero
	// disables metric export entirely.
	MetricInterval config.Duration

	// ShutdownTimeout bounds the final flush when the caller's context
	// has no deadline of its own.
	ShutdownTimeout config.Duration
}

// NewDefaultConfig returns telemetry defaults. The pipeline starts
// disabled; most orionctl invocations are one-shot CLI calls with no
// collector nearby.
func NewDefaultConfig() *Config {
	return &Config{
		Enabled:         false,
		Endpoint:        "localhost:4317",
		Protocol:        ProtocolGRPC,
		ServiceName:     "orionctl",
		ServiceVersion:  "0.1.0",
		Insecure:        true,
		SampleRate:      1.0,
		MetricInterval:  config.Duration(15 * time.Second),
		ShutdownTimeout: config.Duration(5 * time.Second),
	}
}

// Validate checks the configuration. A disabled config is always valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required when telemetry is enabled")
	}
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required when telemetry is enabled")
	}
	if c.ServiceVersion == "" {
		return fmt.Errorf("service_version is required when telemetry is enabled")
	}
	switch c.Protocol {
	case "", ProtocolGRPC, ProtocolHTTP:
	default:
		return fmt.Errorf("protocol must be %q or %q, got %q", ProtocolGRPC, ProtocolHTTP, c.Protocol)
	}
	if c.Insecure && !isLoopback(c.Endpoint) {
		return fmt.Errorf("insecure export to remote endpoint %q is not allowed; enable TLS or point at a loopback collector", c.Endpoint)
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("sample_rate must be between 0 and 1, got %g", c.SampleRate)
	}
	if c.MetricInterval.Duration() < 0 {
		return fmt.Errorf("metric_interval cannot be negative")
	}
	if c.ShutdownTimeout.Duration() <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}
	return nil
}

// isLoopback reports whether endpoint points at this machine. Accepts
// host:port, bare hosts and bracketed IPv6.
func isLoopback(endpoint string) bool {
	host, _, err := net.SplitHostPort(stripScheme(endpoint))
	if err != nil {
		host = stripScheme(endpoint)
	}
	if host == "localhost" {
		return true
	}
	addr, err := netip.ParseAddr(host)
	return err == nil && addr.IsLoopback()
}
