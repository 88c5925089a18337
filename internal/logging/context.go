// internal/logging/context.go
package logging

import (
	"context"
	"fmt"
	"regexp"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ctxKey indexes the correlation values this package stores in a context.
type ctxKey int

const (
	ctxKeyCallID ctxKey = iota
	ctxKeyTool
)

const (
	maxIDLen   = 128
	maxToolLen = 64
)

var (
	// idPattern bounds invocation IDs to UUID-shaped tokens.
	idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	// toolPattern matches Orion tool names, which are snake_case.
	toolPattern = regexp.MustCompile(`^[a-z0-9_]+$`)
)

// ContextFields turns the correlation state carried by ctx into zap
// fields: the active OpenTelemetry span, the invocation ID, and the tool
// name. The keys match the ones the orion client logs, so one query finds
// both sides of a call.
func ContextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 5)

	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
		if sc.IsSampled() {
			fields = append(fields, zap.Bool("trace_sampled", true))
		}
	}
	if id := CallIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("call_id", id))
	}
	if tool := ToolFromContext(ctx); tool != "" {
		fields = append(fields, zap.String("tool", tool))
	}
	return fields
}

// WithCallID tags ctx with an invocation ID. The ID ends up on every log
// line written with this ctx. Panics on an empty or malformed ID; callers
// pass generated UUIDs, so a bad one is a programming error.
func WithCallID(ctx context.Context, id string) context.Context {
	if err := checkToken(id, "call ID", maxIDLen, idPattern); err != nil {
		panic("logging: " + err.Error())
	}
	return context.WithValue(ctx, ctxKeyCallID, id)
}

// CallIDFromContext returns the invocation ID, or "" when ctx has none.
func CallIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyCallID).(string)
	return id
}

// WithTool tags ctx with the Orion tool name being invoked. Panics on a
// name that is not a snake_case identifier.
func WithTool(ctx context.Context, tool string) context.Context {
	if err := checkToken(tool, "tool name", maxToolLen, toolPattern); err != nil {
		panic("logging: " + err.Error())
	}
	return context.WithValue(ctx, ctxKeyTool, tool)
}

// ToolFromContext returns the tool name, or "" when ctx has none.
func ToolFromContext(ctx context.Context) string {
	tool, _ := ctx.Value(ctxKeyTool).(string)
	return tool
}

// checkToken rejects values that would splinter log queries or smuggle
// control characters into log output. The length check runs first so the
// regexp never sees unbounded input.
func checkToken(value, what string, max int, pattern *regexp.Regexp) error {
	if value == "" {
		return fmt.Errorf("%s is empty", what)
	}
	if len(value) > max {
		return fmt.Errorf("%s is longer than %d bytes", what, max)
	}
	if !pattern.MatchString(value) {
		return fmt.Errorf("%s must match %s", what, pattern)
	}
	return nil
}
