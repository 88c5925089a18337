// Package logging builds the structured logger used across orionctl.
//
// The logger is a thin wrapper around zap. Its logging methods take a
// context.Context and attach the correlation identifiers placed there
// by the caller: the per-invocation call ID, the tool name, and the
// active OpenTelemetry trace and span IDs.
//
// Output goes to stderr so stdout stays reserved for command results.
// A redaction core scrubs credential-bearing field names and
// token-shaped substrings before any sink sees them, on top of the
// config.Secret type which already prints redacted. When telemetry is
// configured the same entries are mirrored to the OTLP log pipeline
// through the otelzap bridge.
//
// Typical wiring:
//
//	cfg := logging.NewDefaultConfig()
//	cfg.Level, _ = logging.ParseLevel("debug")
//	logger, err := logging.NewLogger(cfg, tel.LoggerProvider())
//	if err != nil {
//	    return err
//	}
//	defer logger.Sync()
//
//	ctx = logging.WithCallID(ctx, callID)
//	ctx = logging.WithTool(ctx, "openshift_report_on")
//	logger.Info(ctx, "tool call complete", zap.Duration("duration", d))
//
// Tests observe entries through NewTestLogger:
//
//	tl := logging.NewTestLogger()
//	tl.Info(ctx, "probe", zap.String("key", "value"))
//	tl.AssertLogged(t, zapcore.InfoLevel, "probe")
//	tl.AssertField(t, "probe", "key", "value")
package logging
