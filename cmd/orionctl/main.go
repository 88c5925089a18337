// Package main implements the orionctl CLI for querying an Orion
// performance regression analysis server over MCP.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/orion-go/internal/config"
	"github.com/fyrsmithlabs/orion-go/internal/logging"
	"github.com/fyrsmithlabs/orion-go/internal/telemetry"
	"github.com/fyrsmithlabs/orion-go/pkg/orion"
)

var (
	// serverURL overrides the configured Orion server URL
	serverURL string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "orionctl",
	Short: "CLI for Orion performance regression analysis",
	Long: `orionctl is a command-line interface for an Orion MCP server.
It generates performance reports, checks releases and pull requests for
regressions, correlates metrics, and lists what the server offers.

The server URL comes from ~/.config/orionctl/config.yaml, the
ORIONCTL_SERVER_URL environment variable, or the --server flag.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Orion server URL (default http://localhost:3030)")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print orionctl version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("orionctl %s\n", version)
	},
}

// app bundles the dependencies a command invocation needs.
type app struct {
	cfg    *config.Config
	logger *logging.Logger
	tel    *telemetry.Telemetry
	client *orion.Client
}

// runTool builds the app and runs one command body against it. The
// context handed to fn carries a fresh invocation ID and the Orion tool
// the command maps to, so every log line of this run correlates with the
// client's own entries. tool may be empty for commands that do not hit a
// single tool.
func runTool(cmd *cobra.Command, tool string, fn func(ctx context.Context, a *app) error) error {
	ctx := logging.WithCallID(cmd.Context(), uuid.NewString())
	if tool != "" {
		ctx = logging.WithTool(ctx, tool)
	}

	a, err := initApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	start := time.Now()
	if err := fn(ctx, a); err != nil {
		a.logger.Error(ctx, "command failed",
			zap.String("command", cmd.Name()),
			zap.Error(err))
		return err
	}
	a.logger.Debug(ctx, "command complete",
		zap.String("command", cmd.Name()),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// initApp loads configuration and builds the telemetry, logger, and Orion
// client for one command invocation.
func initApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadWithFile("")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}

	tel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return nil, err
	}

	logger, err := initLogger(cfg, tel)
	if err != nil {
		return nil, err
	}

	clientCfg := orion.DefaultConfig()
	clientCfg.ServerURL = cfg.Server.URL
	clientCfg.ClientName = "orionctl"
	clientCfg.ClientVersion = version
	clientCfg.Logger = logger.Underlying()
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Server.Timeout.Duration()}
	if cfg.Auth.Enabled() {
		clientCfg.Auth = &orion.AuthConfig{
			TokenURL:     cfg.Auth.TokenURL,
			ClientID:     cfg.Auth.ClientID,
			ClientSecret: cfg.Auth.ClientSecret.Value(),
			Scopes:       cfg.Auth.Scopes,
		}
	}

	client, err := orion.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating orion client: %w", err)
	}

	return &app{cfg: cfg, logger: logger, tel: tel, client: client}, nil
}

// initTelemetry maps the file config onto the telemetry config and starts
// the providers. Disabled telemetry yields a no-op instance.
func initTelemetry(ctx context.Context, cfg *config.Config) (*telemetry.Telemetry, error) {
	tcfg := telemetry.NewDefaultConfig()
	tcfg.Enabled = cfg.Telemetry.Enabled
	tcfg.ServiceName = cfg.Telemetry.ServiceName
	tcfg.ServiceVersion = version
	tcfg.Protocol = cfg.Telemetry.Protocol
	tcfg.Insecure = cfg.Telemetry.Insecure
	tcfg.TLSSkipVerify = cfg.Telemetry.TLSSkipVerify
	tcfg.SampleRate = cfg.Telemetry.SampleRate
	if cfg.Telemetry.Endpoint != "" {
		tcfg.Endpoint = cfg.Telemetry.Endpoint
	}

	tel, err := telemetry.New(ctx, tcfg)
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}
	return tel, nil
}

func initLogger(cfg *config.Config, tel *telemetry.Telemetry) (*logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	logCfg := logging.NewDefaultConfig()
	logCfg.Level = level
	logCfg.Format = cfg.Log.Format
	logCfg.OTEL = tel.IsEnabled()
	logger, err := logging.NewLogger(logCfg, tel.LoggerProvider())
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}

// close flushes telemetry and buffered logs before the process exits.
func (a *app) close(ctx context.Context) {
	if err := a.tel.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "[orionctl] telemetry shutdown: %v\n", err)
	}
	_ = a.logger.Sync()
}
