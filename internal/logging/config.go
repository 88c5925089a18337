// internal/logging/config.go
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Formats accepted by Config.Format.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config controls how the process logger is built. The zero value is
// not usable; start from NewDefaultConfig and override fields.
type Config struct {
	// Level is the minimum level that will be emitted.
	Level zapcore.Level

	// Format selects the encoder, FormatJSON or FormatConsole.
	Format string

	// Stderr writes encoded entries to standard error. Stdout carries
	// command output, so stderr is the only file sink offered.
	Stderr bool

	// OTEL mirrors entries to an OpenTelemetry LoggerProvider when one
	// is passed to NewLogger. Ignored when no provider is available.
	OTEL bool

	// Caller annotates entries with the file:line of the call site.
	Caller bool

	// Fields are static key/value pairs attached to every entry.
	Fields map[string]string

	// Redaction scrubs sensitive material before encoding.
	Redaction RedactionConfig
}

// NewDefaultConfig returns the configuration used when nothing is
// specified: info-level JSON on stderr with redaction on.
func NewDefaultConfig() *Config {
	return &Config{
		Level:     zapcore.InfoLevel,
		Format:    FormatJSON,
		Stderr:    true,
		Caller:    true,
		Fields:    map[string]string{"service": "orionctl"},
		Redaction: DefaultRedaction(),
	}
}

// ParseLevel maps a configuration string to a zap level. Accepted
// values are debug, info, warn (or warning) and error, matched
// case-insensitively. The empty string means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// Validate reports configuration errors before any logger is built.
func (c *Config) Validate() error {
	if c.Format != FormatJSON && c.Format != FormatConsole {
		return fmt.Errorf("format must be %q or %q, got %q", FormatJSON, FormatConsole, c.Format)
	}
	if c.Level < zapcore.DebugLevel || c.Level > zapcore.ErrorLevel {
		return fmt.Errorf("level %v outside debug..error", c.Level)
	}
	if !c.Stderr && !c.OTEL {
		return fmt.Errorf("no output enabled: set stderr or otel")
	}
	if c.Redaction.Enabled {
		if err := c.Redaction.validate(); err != nil {
			return fmt.Errorf("redaction: %w", err)
		}
	}
	return nil
}
