package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/orion-go/pkg/orion"
)

var (
	// correlate command flags
	corMetric1  string
	corMetric2  string
	corConfig   string
	corSince    string
	corVersion  string
	corLookback string
	corSaveDir  string
)

func init() {
	rootCmd.AddCommand(correlateCmd)

	correlateCmd.Flags().StringVar(&corMetric1, "metric1", "", "first metric (default podReadyLatency_P99)")
	correlateCmd.Flags().StringVar(&corMetric2, "metric2", "", "second metric (default ovnCPU_avg)")
	correlateCmd.Flags().StringVar(&corConfig, "config", "", "test configuration (default trt-external-payload-cluster-density.yaml)")
	correlateCmd.Flags().StringVar(&corSince, "since", "", "only analyze runs after this timestamp")
	correlateCmd.Flags().StringVar(&corVersion, "version", "", "release version (default 4.19)")
	correlateCmd.Flags().StringVar(&corLookback, "lookback", "", "analysis window in days (default 15)")
	correlateCmd.Flags().StringVar(&corSaveDir, "save-dir", ".", "directory for the correlation plot")
}

var correlateCmd = &cobra.Command{
	Use:   "correlate",
	Short: "Analyze the correlation between two metrics",
	Long: `Analyze the statistical correlation between two metrics of one
test configuration. The server returns correlation data and usually a
scatter plot, which is saved to --save-dir.

Examples:
  # Correlate the default metric pair
  orionctl correlate

  # Does pod ready latency track OVN CPU usage in 4.18?
  orionctl correlate --metric1 podReadyLatency_P99 --metric2 ovnCPU_avg --version 4.18

  # Narrow the window and keep the plot elsewhere
  orionctl correlate --since 2025-06-01 --save-dir ./plots`,
	RunE: runCorrelate,
}

func runCorrelate(cmd *cobra.Command, args []string) error {
	return runTool(cmd, orion.ToolMetricsCorrelation, func(ctx context.Context, a *app) error {
		res, err := a.client.MetricsCorrelation(ctx, orion.CorrelationRequest{
			Metric1:  corMetric1,
			Metric2:  corMetric2,
			Config:   corConfig,
			Since:    corSince,
			Version:  corVersion,
			Lookback: corLookback,
		})
		if err != nil {
			return err
		}

		if err := printResult(res); err != nil {
			return err
		}
		return announceImages(res, corSaveDir)
	})
}
