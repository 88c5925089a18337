// Package orion is a client for the Orion performance-regression-analysis
// MCP server.
//
// # Overview
//
// Orion detects changepoints in OpenShift performance metrics and exposes
// its analyses as MCP tools: regression checks, PR impact reports, metrics
// correlation, and nightly-build comparison. This package wraps each tool
// in a typed method over a single generic call primitive.
//
// Every call opens its own streamable-HTTP session, performs the MCP
// handshake, invokes one tool, and closes the session. The client keeps no
// state between calls and adds no retry or caching; concurrent calls are
// independent.
//
// # Usage
//
// Create a client and call a tool:
//
//	client, err := orion.NewClient(orion.Config{
//	    ServerURL: "http://localhost:3030",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := client.HasOpenShiftRegressed(ctx, "4.19", "15")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Text())
//
// Report tools return JSON, a rendered chart, or both, selected by an
// OutputFormat:
//
//	res, err := client.ReportOn(ctx, orion.ReportRequest{
//	    Versions: "4.18,4.19",
//	    Metric:   "podReadyLatency_P99",
//	    Options:  orion.OutputBoth,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if img := res.Image(); img != nil {
//	    img.Save("report" + img.Ext())
//	}
//
// # Errors
//
// Transport and handshake failures are returned wrapped with call context.
// When the server itself reports a tool failure, the error is a *ToolError
// carrying the server's message:
//
//	var toolErr *orion.ToolError
//	if errors.As(err, &toolErr) {
//	    fmt.Println("server rejected call:", toolErr.Message)
//	}
//
// Text content that is not valid JSON is not an error; the raw string is
// available through ToolResult.Text and ToolResult.Value.
package orion
