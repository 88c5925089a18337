package logging

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// newObservedRedactor builds a logger whose redact core feeds an
// in-memory observer.
func newObservedRedactor(t *testing.T, cfg RedactionConfig) (*Logger, *observer.ObservedLogs) {
	t.Helper()
	core, observed := observer.New(zapcore.DebugLevel)
	rc, err := newRedactCore(core, cfg)
	require.NoError(t, err)
	return &Logger{zap: zap.New(rc)}, observed
}

func fieldString(t *testing.T, e observer.LoggedEntry, key string) string {
	t.Helper()
	for _, f := range e.Context {
		if f.Key == key {
			require.Equal(t, zapcore.StringType, f.Type, "field %q is not a string", key)
			return f.String
		}
	}
	t.Fatalf("field %q not found", key)
	return ""
}

func TestRedactCore_DenyListedFields(t *testing.T) {
	logger, observed := newObservedRedactor(t, DefaultRedaction())
	ctx := context.Background()

	logger.Info(ctx, "auth configured",
		zap.String("client_secret", "hunter2"),
		zap.String("Authorization", "Basic dXNlcjpwYXNz"),
		zap.String("endpoint", "https://sso.example.com/token"))

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "[REDACTED]", fieldString(t, entries[0], "client_secret"))
	assert.Equal(t, "[REDACTED]", fieldString(t, entries[0], "Authorization"))
	assert.Equal(t, "https://sso.example.com/token", fieldString(t, entries[0], "endpoint"))
}

func TestRedactCore_PatternsInValuesAndMessage(t *testing.T) {
	logger, observed := newObservedRedactor(t, DefaultRedaction())
	ctx := context.Background()

	logger.Warn(ctx, "retrying with Bearer abc.def.ghi",
		zap.String("header", "Bearer abc.def.ghi"),
		zap.String("note", "api_key=sk-123 was rejected"))

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Message, "abc.def.ghi")
	assert.Contains(t, entries[0].Message, "[REDACTED]")
	assert.Equal(t, "[REDACTED]", fieldString(t, entries[0], "header"))
	assert.NotContains(t, fieldString(t, entries[0], "note"), "sk-123")
}

func TestRedactCore_WithFields(t *testing.T) {
	logger, observed := newObservedRedactor(t, DefaultRedaction())

	child := logger.With(zap.String("token", "tok-123"), zap.String("tool", "orion_discovery"))
	child.Info(context.Background(), "listing tools")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "[REDACTED]", fieldString(t, entries[0], "token"))
	assert.Equal(t, "orion_discovery", fieldString(t, entries[0], "tool"))
}

func TestRedactCore_NonStringFieldsUntouched(t *testing.T) {
	logger, observed := newObservedRedactor(t, DefaultRedaction())

	logger.Info(context.Background(), "scan done", zap.Int("regressions", 3), zap.Bool("ok", true))

	entries := observed.All()
	require.Len(t, entries, 1)
	for _, f := range entries[0].Context {
		if f.Key == "regressions" {
			assert.Equal(t, int64(3), f.Integer)
		}
	}
}

func TestNewRedactCore_Disabled(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	rc, err := newRedactCore(core, RedactionConfig{Enabled: false, Patterns: []string{"[invalid("}})
	require.NoError(t, err)

	// Disabled config returns the wrapped core untouched, bad patterns
	// and all.
	logger := &Logger{zap: zap.New(rc)}
	logger.Info(context.Background(), "plain", zap.String("token", "visible"))

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "visible", fieldString(t, entries[0], "token"))
}

func TestRedactionConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RedactionConfig
		wantErr string
	}{
		{
			name: "defaults valid",
			cfg:  DefaultRedaction(),
		},
		{
			name:    "invalid pattern",
			cfg:     RedactionConfig{Enabled: true, Patterns: []string{"[invalid("}},
			wantErr: "pattern",
		},
		{
			name:    "oversized pattern",
			cfg:     RedactionConfig{Enabled: true, Patterns: []string{strings.Repeat("a", maxPatternLength+1)}},
			wantErr: "exceeds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
