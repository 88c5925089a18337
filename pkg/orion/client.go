package orion

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("orion.client")

// Version is the library version, reported to the server during the MCP
// handshake.
const Version = "0.1.0"

const (
	// DefaultServerURL is the base URL of a locally running Orion server.
	DefaultServerURL = "http://localhost:3030"

	// mcpPath is appended to the server base URL to form the MCP endpoint.
	mcpPath = "/mcp"

	defaultClientName = "orion-go"
)

// Config holds client configuration.
type Config struct {
	// ServerURL is the base URL of the Orion server. The MCP endpoint is
	// served at ServerURL + "/mcp". Defaults to DefaultServerURL.
	ServerURL string

	// ClientName and ClientVersion identify this client during the MCP
	// handshake. Default to "orion-go" and the library version.
	ClientName    string
	ClientVersion string

	// HTTPClient overrides the HTTP client used by the streamable
	// transport. Optional.
	HTTPClient *http.Client

	// Logger receives debug logs (session IDs, call parameters, timings).
	// Optional; defaults to a nop logger.
	Logger *zap.Logger

	// Auth enables OAuth2 client-credentials authentication for servers
	// that require it. Optional.
	Auth *AuthConfig
}

// DefaultConfig returns a Config pointing at a local Orion server.
func DefaultConfig() Config {
	return Config{
		ServerURL:     DefaultServerURL,
		ClientName:    defaultClientName,
		ClientVersion: Version,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server URL is required")
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server URL %q: %w", c.ServerURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server URL %q must use http or https", c.ServerURL)
	}
	if u.Host == "" {
		return fmt.Errorf("server URL %q has no host", c.ServerURL)
	}
	if c.Auth != nil {
		if err := c.Auth.Validate(); err != nil {
			return fmt.Errorf("invalid auth config: %w", err)
		}
	}
	return nil
}

// Client calls tools on a remote Orion MCP server.
//
// Each call opens its own session over streamable HTTP, performs the MCP
// handshake, invokes one tool, and closes the session before returning.
// The client holds no per-call state, so a single Client is safe for
// concurrent use.
type Client struct {
	cfg      Config
	endpoint string
	httpc    *http.Client
	logger   *zap.Logger
	metrics  *Metrics
}

// NewClient creates a client for the Orion server at cfg.ServerURL.
//
// Empty Config fields fall back to DefaultConfig values, so
// orion.NewClient(orion.Config{}) yields a client for a local server.
func NewClient(cfg Config) (*Client, error) {
	def := DefaultConfig()
	if cfg.ServerURL == "" {
		cfg.ServerURL = def.ServerURL
	}
	if cfg.ClientName == "" {
		cfg.ClientName = def.ClientName
	}
	if cfg.ClientVersion == "" {
		cfg.ClientVersion = def.ClientVersion
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if cfg.Auth != nil {
		httpc = cfg.Auth.wrap(httpc)
	}

	return &Client{
		cfg:      cfg,
		endpoint: strings.TrimRight(cfg.ServerURL, "/") + mcpPath,
		httpc:    httpc,
		logger:   logger,
		metrics:  NewMetrics(logger),
	}, nil
}

// ServerURL returns the configured server base URL.
func (c *Client) ServerURL() string {
	return c.cfg.ServerURL
}

// CallTool invokes a named tool on the Orion server and parses its content
// blocks.
//
// Arguments are wrapped in the "params" object the server's tool schemas
// expect; a nil map sends an empty object. The typed wrappers (ReportOn,
// HasOpenShiftRegressed, ...) all funnel through here, and CallTool can be
// used directly for tools the server adds later.
func (c *Client) CallTool(ctx context.Context, tool string, args map[string]any) (*ToolResult, error) {
	start := time.Now()
	callID := uuid.NewString()

	ctx, span := tracer.Start(ctx, "Client.CallTool",
		oteltrace.WithAttributes(
			attribute.String("orion.tool", tool),
			attribute.String("orion.server_url", c.cfg.ServerURL),
		))
	defer span.End()

	defer c.metrics.TrackActive(ctx, tool)()

	if args == nil {
		args = map[string]any{}
	}
	c.logger.Debug("calling orion tool",
		zap.String("call_id", callID),
		zap.String("tool", tool),
		zap.Any("params", args),
	)

	result, err := c.call(ctx, callID, tool, args)
	duration := time.Since(start)
	c.metrics.RecordInvocation(ctx, tool, duration, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("orion.session_id", result.SessionID))
	c.logger.Debug("orion tool call complete",
		zap.String("call_id", callID),
		zap.String("tool", tool),
		zap.Duration("duration", duration),
		zap.Int("text_blocks", len(result.Texts)),
		zap.Int("image_blocks", len(result.Images)),
	)
	return result, nil
}

// call runs one session lifecycle: connect, invoke, parse, close.
func (c *Client) call(ctx context.Context, callID, tool string, args map[string]any) (*ToolResult, error) {
	session, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer c.closeSession(callID, session)

	c.logger.Debug("orion session established",
		zap.String("call_id", callID),
		zap.String("session_id", session.ID()),
	)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      tool,
		Arguments: map[string]any{"params": args},
	})
	if err != nil {
		return nil, fmt.Errorf("calling tool %q: %w", tool, err)
	}
	if res.IsError {
		return nil, &ToolError{Tool: tool, Message: textContent(res.Content)}
	}

	return parseResult(tool, session.ID(), res), nil
}

// connect dials the MCP endpoint and performs the handshake.
func (c *Client) connect(ctx context.Context) (*mcp.ClientSession, error) {
	transport := &mcp.StreamableClientTransport{
		Endpoint:   c.endpoint,
		HTTPClient: c.httpc,
	}
	client := mcp.NewClient(&mcp.Implementation{
		Name:    c.cfg.ClientName,
		Version: c.cfg.ClientVersion,
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to orion server at %q: %w", c.cfg.ServerURL, err)
	}
	return session, nil
}

// closeSession closes the per-call session. Close failures are not
// actionable by the caller once the result is in hand, so they are only
// logged.
func (c *Client) closeSession(callID string, session *mcp.ClientSession) {
	if err := session.Close(); err != nil {
		c.logger.Debug("closing orion session",
			zap.String("call_id", callID),
			zap.Error(err),
		)
	}
}
