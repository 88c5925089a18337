package orion

import (
	"context"
	"fmt"
)

// Tool names exposed by the Orion server.
const (
	ToolGetReleaseDate         = "get_release_date"
	ToolGetConfigs             = "get_orion_configs"
	ToolGetMetrics             = "get_orion_metrics"
	ToolReportOn               = "openshift_report_on"
	ToolReportOnPR             = "openshift_report_on_pr"
	ToolHasOpenShiftRegressed  = "has_openshift_regressed"
	ToolHasNetworkingRegressed = "has_networking_regressed"
	ToolMetricsCorrelation     = "metrics_correlation"
	ToolHasNightlyRegressed    = "has_nightly_regressed"
)

// Defaults applied by the tool wrappers when an argument is left empty.
// They mirror the server's own tool defaults, so a zero-value request asks
// the same question the server answers when called bare. Numeric arguments
// (lookback days, PR numbers) travel as strings per the server's schemas.
const (
	DefaultVersion           = "4.19"
	DefaultReleaseVersion    = "4.20"
	DefaultPRVersion         = "4.20"
	DefaultLookback          = "15"
	DefaultNightlyLookback   = "30"
	DefaultMetric            = "podReadyLatency_P99"
	DefaultTestConfig        = "small-scale-udn-l3.yaml"
	DefaultCorrelationMetric = "ovnCPU_avg"
	DefaultCorrelationConfig = "trt-external-payload-cluster-density.yaml"
	DefaultOrganization      = "openshift"
	DefaultRepository        = "ovn-kubernetes"
	DefaultPullRequest       = "2841"
)

// GetReleaseDate asks when a release version was published.
//
// version defaults to "4.20" when empty.
func (c *Client) GetReleaseDate(ctx context.Context, version string) (*ToolResult, error) {
	if version == "" {
		version = DefaultReleaseVersion
	}
	return c.CallTool(ctx, ToolGetReleaseDate, map[string]any{
		"version": version,
	})
}

// GetConfigs lists the test configurations the server can analyze.
func (c *Client) GetConfigs(ctx context.Context) (*ToolResult, error) {
	return c.CallTool(ctx, ToolGetConfigs, nil)
}

// GetMetrics lists the metrics captured by a test configuration.
//
// config defaults to "small-scale-udn-l3.yaml" when empty.
func (c *Client) GetMetrics(ctx context.Context, config string) (*ToolResult, error) {
	if config == "" {
		config = DefaultTestConfig
	}
	return c.CallTool(ctx, ToolGetMetrics, map[string]any{
		"config": config,
	})
}

// ReportRequest parameterizes ReportOn. Empty fields use the defaults
// documented per field.
type ReportRequest struct {
	// Versions holds comma-separated release versions to analyze, e.g.
	// "4.18,4.19". Defaults to "4.19".
	Versions string

	// Lookback is the analysis window in days. Defaults to "15".
	Lookback string

	// Since restricts analysis to runs after this timestamp. Omitted from
	// the call when empty.
	Since string

	// Metric names the metric to report on. Defaults to
	// "podReadyLatency_P99".
	Metric string

	// Config names the test configuration. Defaults to
	// "small-scale-udn-l3.yaml".
	Config string

	// Options selects the output shape. Defaults to OutputImage.
	Options OutputFormat
}

// ReportOn generates a performance report for one or more release
// versions.
func (c *Client) ReportOn(ctx context.Context, req ReportRequest) (*ToolResult, error) {
	if req.Versions == "" {
		req.Versions = DefaultVersion
	}
	if req.Lookback == "" {
		req.Lookback = DefaultLookback
	}
	if req.Metric == "" {
		req.Metric = DefaultMetric
	}
	if req.Config == "" {
		req.Config = DefaultTestConfig
	}
	if req.Options == "" {
		req.Options = OutputImage
	}

	args := map[string]any{
		"versions": req.Versions,
		"lookback": req.Lookback,
		"metric":   req.Metric,
		"config":   req.Config,
		"options":  req.Options.String(),
	}
	if req.Since != "" {
		args["since"] = req.Since
	}
	return c.CallTool(ctx, ToolReportOn, args)
}

// PRReportRequest parameterizes ReportOnPR and PRAnalysis.
type PRReportRequest struct {
	// Version is the release the pull request targets. Defaults to "4.20".
	Version string

	// Lookback is the analysis window in days. Defaults to "15".
	Lookback string

	// Organization is the GitHub organization. Defaults to "openshift".
	Organization string

	// Repository is the GitHub repository. Defaults to "ovn-kubernetes".
	Repository string

	// PullRequest is the pull request number. Defaults to "2841".
	PullRequest string
}

func (r *PRReportRequest) applyDefaults() {
	if r.Version == "" {
		r.Version = DefaultPRVersion
	}
	if r.Lookback == "" {
		r.Lookback = DefaultLookback
	}
	if r.Organization == "" {
		r.Organization = DefaultOrganization
	}
	if r.Repository == "" {
		r.Repository = DefaultRepository
	}
	if r.PullRequest == "" {
		r.PullRequest = DefaultPullRequest
	}
}

// ReportOnPR compares a pull request's performance runs against the
// periodic baseline for its target release.
func (c *Client) ReportOnPR(ctx context.Context, req PRReportRequest) (*ToolResult, error) {
	req.applyDefaults()
	return c.CallTool(ctx, ToolReportOnPR, map[string]any{
		"version":      req.Version,
		"lookback":     req.Lookback,
		"organization": req.Organization,
		"repository":   req.Repository,
		"pull_request": req.PullRequest,
	})
}

// HasOpenShiftRegressed asks whether any tracked OpenShift metric has
// regressed for a release within the lookback window.
//
// version defaults to "4.19" and lookback to "15" when empty.
func (c *Client) HasOpenShiftRegressed(ctx context.Context, version, lookback string) (*ToolResult, error) {
	if version == "" {
		version = DefaultVersion
	}
	if lookback == "" {
		lookback = DefaultLookback
	}
	return c.CallTool(ctx, ToolHasOpenShiftRegressed, map[string]any{
		"version":  version,
		"lookback": lookback,
	})
}

// HasNetworkingRegressed asks whether any networking metric has regressed
// for a release within the lookback window.
//
// version defaults to "4.19" and lookback to "15" when empty.
func (c *Client) HasNetworkingRegressed(ctx context.Context, version, lookback string) (*ToolResult, error) {
	if version == "" {
		version = DefaultVersion
	}
	if lookback == "" {
		lookback = DefaultLookback
	}
	return c.CallTool(ctx, ToolHasNetworkingRegressed, map[string]any{
		"version":  version,
		"lookback": lookback,
	})
}

// CorrelationRequest parameterizes MetricsCorrelation.
type CorrelationRequest struct {
	// Metric1 is the first metric. Defaults to "podReadyLatency_P99".
	Metric1 string

	// Metric2 is the second metric. Defaults to "ovnCPU_avg".
	Metric2 string

	// Config names the test configuration. Defaults to
	// "trt-external-payload-cluster-density.yaml".
	Config string

	// Since restricts analysis to runs after this timestamp. Omitted from
	// the call when empty.
	Since string

	// Version is the release version. Defaults to "4.19".
	Version string

	// Lookback is the analysis window in days. Defaults to "15".
	Lookback string
}

// MetricsCorrelation analyzes the statistical correlation between two
// metrics of one test configuration.
func (c *Client) MetricsCorrelation(ctx context.Context, req CorrelationRequest) (*ToolResult, error) {
	if req.Metric1 == "" {
		req.Metric1 = DefaultMetric
	}
	if req.Metric2 == "" {
		req.Metric2 = DefaultCorrelationMetric
	}
	if req.Config == "" {
		req.Config = DefaultCorrelationConfig
	}
	if req.Version == "" {
		req.Version = DefaultVersion
	}
	if req.Lookback == "" {
		req.Lookback = DefaultLookback
	}

	args := map[string]any{
		"metric1":  req.Metric1,
		"metric2":  req.Metric2,
		"config":   req.Config,
		"version":  req.Version,
		"lookback": req.Lookback,
	}
	if req.Since != "" {
		args["since"] = req.Since
	}
	return c.CallTool(ctx, ToolMetricsCorrelation, args)
}

// NightlyRequest parameterizes HasNightlyRegressed.
type NightlyRequest struct {
	// NightlyVersion is the nightly build to analyze, e.g.
	// "4.22.0-0.nightly-2026-01-05-203335". Required.
	NightlyVersion string

	// PreviousNightly is the baseline build. When empty the server picks
	// the nightly preceding NightlyVersion.
	PreviousNightly string

	// Lookback is the analysis window in days. Defaults to "30".
	Lookback string

	// Configs restricts analysis to comma-separated configuration names.
	// Empty means all configurations.
	Configs string
}

// HasNightlyRegressed compares a nightly build against a baseline nightly.
func (c *Client) HasNightlyRegressed(ctx context.Context, req NightlyRequest) (*ToolResult, error) {
	if req.NightlyVersion == "" {
		return nil, fmt.Errorf("nightly version is required")
	}
	if req.Lookback == "" {
		req.Lookback = DefaultNightlyLookback
	}
	return c.CallTool(ctx, ToolHasNightlyRegressed, map[string]any{
		"nightly_version":  req.NightlyVersion,
		"previous_nightly": req.PreviousNightly,
		"lookback":         req.Lookback,
		"configs":          req.Configs,
	})
}
