package orion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestToolWrapperArguments verifies each typed wrapper hits the documented
// tool name with the documented argument mapping, defaults included.
func TestToolWrapperArguments(t *testing.T) {
	tests := []struct {
		name string
		call func(ctx context.Context, c *Client) error
		tool string
		want map[string]any
	}{
		{
			name: "release date default version",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetReleaseDate(ctx, "")
				return err
			},
			tool: ToolGetReleaseDate,
			want: map[string]any{"version": "4.20"},
		},
		{
			name: "release date explicit version",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetReleaseDate(ctx, "4.17")
				return err
			},
			tool: ToolGetReleaseDate,
			want: map[string]any{"version": "4.17"},
		},
		{
			name: "configs takes no arguments",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetConfigs(ctx)
				return err
			},
			tool: ToolGetConfigs,
			want: map[string]any{},
		},
		{
			name: "metrics default config",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetMetrics(ctx, "")
				return err
			},
			tool: ToolGetMetrics,
			want: map[string]any{"config": "small-scale-udn-l3.yaml"},
		},
		{
			name: "report defaults omit since",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.ReportOn(ctx, ReportRequest{})
				return err
			},
			tool: ToolReportOn,
			want: map[string]any{
				"versions": "4.19",
				"lookback": "15",
				"metric":   "podReadyLatency_P99",
				"config":   "small-scale-udn-l3.yaml",
				"options":  "image",
			},
		},
		{
			name: "report with since and field selector",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.ReportOn(ctx, ReportRequest{
					Versions: "4.18,4.19",
					Since:    "2025-06-01",
					Options:  OutputJSONField("data"),
				})
				return err
			},
			tool: ToolReportOn,
			want: map[string]any{
				"versions": "4.18,4.19",
				"lookback": "15",
				"since":    "2025-06-01",
				"metric":   "podReadyLatency_P99",
				"config":   "small-scale-udn-l3.yaml",
				"options":  "json:data",
			},
		},
		{
			name: "pr report defaults",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.ReportOnPR(ctx, PRReportRequest{})
				return err
			},
			tool: ToolReportOnPR,
			want: map[string]any{
				"version":      "4.20",
				"lookback":     "15",
				"organization": "openshift",
				"repository":   "ovn-kubernetes",
				"pull_request": "2841",
			},
		},
		{
			name: "openshift regression defaults",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.HasOpenShiftRegressed(ctx, "", "")
				return err
			},
			tool: ToolHasOpenShiftRegressed,
			want: map[string]any{"version": "4.19", "lookback": "15"},
		},
		{
			name: "networking regression explicit",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.HasNetworkingRegressed(ctx, "4.18", "7")
				return err
			},
			tool: ToolHasNetworkingRegressed,
			want: map[string]any{"version": "4.18", "lookback": "7"},
		},
		{
			name: "correlation defaults",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.MetricsCorrelation(ctx, CorrelationRequest{})
				return err
			},
			tool: ToolMetricsCorrelation,
			want: map[string]any{
				"metric1":  "podReadyLatency_P99",
				"metric2":  "ovnCPU_avg",
				"config":   "trt-external-payload-cluster-density.yaml",
				"version":  "4.19",
				"lookback": "15",
			},
		},
		{
			name: "nightly sends empty previous and configs",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.HasNightlyRegressed(ctx, NightlyRequest{
					NightlyVersion: "4.19.0-0.nightly-2025-06-10-123456",
				})
				return err
			},
			tool: ToolHasNightlyRegressed,
			want: map[string]any{
				"nightly_version":  "4.19.0-0.nightly-2025-06-10-123456",
				"previous_nightly": "",
				"lookback":         "30",
				"configs":          "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeOrion(t)
			f.addTextTool(tt.tool, `"ok"`)
			c := f.client(t)

			require.NoError(t, tt.call(context.Background(), c))
			assert.Equal(t, tt.want, f.params(t, tt.tool))
		})
	}
}

func TestHasNightlyRegressedRequiresVersion(t *testing.T) {
	// No server needed: the call must fail before any connection is made.
	c, err := NewClient(Config{ServerURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = c.HasNightlyRegressed(context.Background(), NightlyRequest{})
	require.EqualError(t, err, "nightly version is required")
}
