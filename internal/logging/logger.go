// internal/logging/logger.go
package logging

import (
	"context"
	"errors"
	"os"
	"sort"
	"syscall"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// otelScopeName identifies records emitted through the otelzap bridge.
const otelScopeName = "github.com/fyrsmithlabs/orion-go/internal/logging"

// Logger is a thin wrapper over zap whose methods take a context and
// attach the correlation fields found there to every entry.
type Logger struct {
	zap *zap.Logger
}

// NewLogger builds the process logger from cfg. provider may be nil;
// it is only consulted when cfg.OTEL is set.
func NewLogger(cfg *Config, provider log.LoggerProvider) (*Logger, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cores := make([]zapcore.Core, 0, 2)
	if cfg.Stderr {
		cores = append(cores, zapcore.NewCore(newEncoder(cfg.Format), zapcore.Lock(os.Stderr), cfg.Level))
	}
	if cfg.OTEL && provider != nil {
		cores = append(cores, otelzap.NewCore(otelScopeName, otelzap.WithLoggerProvider(provider)))
	}
	if len(cores) == 0 {
		return NewNop(), nil
	}

	core, err := newRedactCore(zapcore.NewTee(cores...), cfg.Redaction)
	if err != nil {
		return nil, err
	}

	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if cfg.Caller {
		// Skip one frame so the call site is the caller of Info et al,
		// not this wrapper.
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}

	zl := zap.New(core, opts...)
	if len(cfg.Fields) > 0 {
		zl = zl.With(staticFields(cfg.Fields)...)
	}
	return &Logger{zap: zl}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger { return &Logger{zap: zap.NewNop()} }

func newEncoder(format string) zapcore.Encoder {
	if format == FormatConsole {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "ts"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(ec)
}

// staticFields orders the configured constant fields so repeated runs
// produce identical prefixes.
func staticFields(m map[string]string) []zap.Field {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, zap.String(k, m[k]))
	}
	return fields
}

// Debug logs at debug level with context correlation attached.
func (l *Logger) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	l.zap.Debug(msg, withContext(ctx, fields)...)
}

// Info logs at info level with context correlation attached.
func (l *Logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.zap.Info(msg, withContext(ctx, fields)...)
}

// Warn logs at warn level with context correlation attached.
func (l *Logger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.zap.Warn(msg, withContext(ctx, fields)...)
}

// Error logs at error level with context correlation attached.
func (l *Logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.zap.Error(msg, withContext(ctx, fields)...)
}

// With returns a child logger carrying extra constant fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zap: l.zap.With(fields...)}
}

// Named returns a child logger with name appended to its path.
func (l *Logger) Named(name string) *Logger {
	return &Logger{zap: l.zap.Named(name)}
}

// Enabled reports whether entries at level would be emitted.
func (l *Logger) Enabled(level zapcore.Level) bool {
	return l.zap.Core().Enabled(level)
}

// Underlying exposes the wrapped zap logger for libraries that need one.
func (l *Logger) Underlying() *zap.Logger { return l.zap }

// Sync flushes buffered entries. Syncing a terminal fails with EINVAL
// or ENOTTY on Linux; those are not actionable and are swallowed.
func (l *Logger) Sync() error {
	err := l.zap.Sync()
	var errno syscall.Errno
	if errors.As(err, &errno) && (errno == syscall.EINVAL || errno == syscall.ENOTTY) {
		return nil
	}
	return err
}

func withContext(ctx context.Context, fields []zap.Field) []zap.Field {
	cf := ContextFields(ctx)
	if len(cf) == 0 {
		return fields
	}
	out := make([]zap.Field, 0, len(cf)+len(fields))
	out = append(out, cf...)
	return append(out, fields...)
}
