// internal/logging/testing.go
package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestLogger records every entry in memory so tests can assert on what
// was logged.
type TestLogger struct {
	*Logger
	observed *observer.ObservedLogs
}

// NewTestLogger returns a debug-level logger whose output is captured
// instead of written anywhere.
func NewTestLogger() *TestLogger {
	core, observed := observer.New(zapcore.DebugLevel)
	return &TestLogger{
		Logger:   &Logger{zap: zap.New(core)},
		observed: observed,
	}
}

// Entries returns everything logged so far.
func (t *TestLogger) Entries() []observer.LoggedEntry {
	return t.observed.All()
}

// Reset drops all recorded entries.
func (t *TestLogger) Reset() {
	t.observed.TakeAll()
}

// AssertLogged fails tb unless an entry at level with exactly msg as
// its message was recorded.
func (t *TestLogger) AssertLogged(tb testing.TB, level zapcore.Level, msg string) {
	tb.Helper()
	for _, e := range t.observed.All() {
		if e.Level == level && e.Message == msg {
			return
		}
	}
	tb.Errorf("no %v entry with message %q", level, msg)
}

// AssertField fails tb unless the entry with message msg carries key
// with the wanted value.
func (t *TestLogger) AssertField(tb testing.TB, msg, key string, want any) {
	tb.Helper()
	entries := t.observed.FilterMessage(msg).All()
	if len(entries) == 0 {
		tb.Errorf("no entry with message %q", msg)
		return
	}
	for _, e := range entries {
		for _, f := range e.Context {
			if f.Key == key && fieldValue(f) == want {
				return
			}
		}
	}
	tb.Errorf("field %s=%v not found in message %q", key, want, msg)
}

func fieldValue(f zapcore.Field) any {
	switch f.Type {
	case zapcore.StringType:
		return f.String
	case zapcore.BoolType:
		return f.Integer == 1
	case zapcore.Int64Type, zapcore.Int32Type:
		return f.Integer
	default:
		return f.Interface
	}
}
