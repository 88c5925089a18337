// Package telemetry wires the OpenTelemetry SDK for orionctl: traces
// and metrics exported over OTLP, gRPC or HTTP/protobuf, plus the log
// provider handed to the logging bridge.
//
// The pipeline is off by default and enabled through configuration:
//
//	telemetry:
//	  enabled: true
//	  endpoint: "localhost:4317"
//	  protocol: "grpc"
//	  sample_rate: 1.0
//
// Construction never takes a tool call down with it. Exporter errors
// mark the instance degraded and callers keep getting no-op tracers
// and meters:
//
//	tel, err := telemetry.New(ctx, cfg)
//	if err != nil {
//	    return err // config error, not an exporter error
//	}
//	defer tel.Shutdown(ctx)
//
//	tracer := tel.Tracer("orion.client")
//	ctx, span := tracer.Start(ctx, "Client.CallTool")
//	defer span.End()
//
// Tests use the in-memory variant:
//
//	tt := telemetry.NewTestTelemetry()
//	_, span := tt.Tracer("test").Start(ctx, "probe")
//	span.End()
//	tt.AssertSpanExists(t, "probe")
package telemetry
