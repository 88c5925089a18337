// internal/config/types.go
package config

import (
	"fmt"
	"time"
)

// Duration is a time.Duration that unmarshals from strings like "90s"
// or "5m". Koanf decodes YAML values and environment variables into it
// through encoding.TextUnmarshaler.
type Duration time.Duration

// Duration returns the wrapped time.Duration.
func (d Duration) Duration() time.Duration { return time.Duration(d) }

// UnmarshalText parses text with time.ParseDuration. Negative
// durations are rejected; no timeout in this configuration can be
// meaningfully negative.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if parsed < 0 {
		return fmt.Errorf("duration cannot be negative: %s", text)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText renders the duration in the same form it was parsed from.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration().String()), nil
}

// Secret holds a credential read from configuration. Every formatting
// and serialization path prints a redaction marker; only Value returns
// the real content. This keeps the OAuth client secret out of logs and
// error chains no matter how a Config ends up printed.
type Secret string

// Value returns the underlying credential.
func (s Secret) Value() string { return string(s) }

// IsSet reports whether a credential was provided.
func (s Secret) IsSet() bool { return s != "" }

// String implements fmt.Stringer. An empty secret prints empty so a
// missing credential stays recognizable in output.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

// GoString keeps %#v from leaking the value.
func (s Secret) GoString() string { return "Secret([REDACTED])" }

// UnmarshalText accepts the raw credential; koanf uses this when
// decoding files and environment variables.
func (s *Secret) UnmarshalText(text []byte) error {
	*s = Secret(text)
	return nil
}

// MarshalText emits the redaction marker, never the value.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MarshalJSON emits the redaction marker, never the value.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}
