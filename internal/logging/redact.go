// internal/logging/redact.go
package logging

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"
)

const redactedValue = "[REDACTED]"

// maxPatternLength bounds user-supplied redaction regexps. Oversized
// patterns are rejected during Validate rather than silently skipped.
const maxPatternLength = 256

// RedactionConfig lists field names and value patterns that must never
// reach a sink in clear text.
type RedactionConfig struct {
	// Enabled turns the scrubbing core on.
	Enabled bool

	// Fields are key names whose values are replaced wholesale.
	// Matching is case-insensitive.
	Fields []string

	// Patterns are regexps applied to string values and messages; every
	// match is replaced.
	Patterns []string
}

// DefaultRedaction covers the credential shapes orionctl handles:
// OAuth client secrets, bearer tokens and API keys.
func DefaultRedaction() RedactionConfig {
	return RedactionConfig{
		Enabled: true,
		Fields: []string{
			"password", "secret", "client_secret", "token",
			"access_token", "refresh_token", "api_key", "authorization",
			"credentials",
		},
		Patterns: []string{
			`(?i)bearer\s+[a-zA-Z0-9._~+/-]+=*`,
			`(?i)api[_-]?key[=:]\s*\S+`,
		},
	}
}

func (r RedactionConfig) validate() error {
	for _, p := range r.Patterns {
		if len(p) > maxPatternLength {
			return fmt.Errorf("pattern exceeds %d bytes", maxPatternLength)
		}
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("pattern %q: %w", p, err)
		}
	}
	return nil
}

func (r RedactionConfig) compile() ([]*regexp.Regexp, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	out := make([]*regexp.Regexp, 0, len(r.Patterns))
	for _, p := range r.Patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out, nil
}

// redactCore scrubs fields and messages before handing entries to the
// wrapped core. It sits above the tee so every sink sees the same
// sanitized entry.
type redactCore struct {
	next     zapcore.Core
	deny     map[string]struct{}
	patterns []*regexp.Regexp
}

// newRedactCore wraps next with the rules in cfg. A disabled config
// returns next unchanged.
func newRedactCore(next zapcore.Core, cfg RedactionConfig) (zapcore.Core, error) {
	if !cfg.Enabled {
		return next, nil
	}
	patterns, err := cfg.compile()
	if err != nil {
		return nil, err
	}
	deny := make(map[string]struct{}, len(cfg.Fields))
	for _, f := range cfg.Fields {
		deny[strings.ToLower(f)] = struct{}{}
	}
	return &redactCore{next: next, deny: deny, patterns: patterns}, nil
}

func (c *redactCore) Enabled(lvl zapcore.Level) bool { return c.next.Enabled(lvl) }

func (c *redactCore) With(fields []zapcore.Field) zapcore.Core {
	return &redactCore{next: c.next.With(c.scrubFields(fields)), deny: c.deny, patterns: c.patterns}
}

func (c *redactCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *redactCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	ent.Message = c.scrubString(ent.Message)
	return c.next.Write(ent, c.scrubFields(fields))
}

func (c *redactCore) Sync() error { return c.next.Sync() }

func (c *redactCore) scrubFields(fields []zapcore.Field) []zapcore.Field {
	if len(fields) == 0 {
		return fields
	}
	out := make([]zapcore.Field, len(fields))
	copy(out, fields)
	for i := range out {
		if _, blocked := c.deny[strings.ToLower(out[i].Key)]; blocked {
			out[i] = zapcore.Field{Key: out[i].Key, Type: zapcore.StringType, String: redactedValue}
			continue
		}
		if out[i].Type == zapcore.StringType {
			out[i].String = c.scrubString(out[i].String)
		}
	}
	return out
}

func (c *redactCore) scrubString(s string) string {
	for _, re := range c.patterns {
		s = re.ReplaceAllString(s, redactedValue)
	}
	return s
}
