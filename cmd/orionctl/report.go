package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/orion-go/pkg/orion"
)

var (
	// report command flags
	rptVersions string
	rptLookback string
	rptSince    string
	rptMetric   string
	rptConfig   string
	rptOutput   string
	rptSaveDir  string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&rptVersions, "versions", "", "comma-separated release versions, e.g. 4.18,4.19 (default 4.19)")
	reportCmd.Flags().StringVar(&rptLookback, "lookback", "", "analysis window in days (default 15)")
	reportCmd.Flags().StringVar(&rptSince, "since", "", "only analyze runs after this timestamp")
	reportCmd.Flags().StringVar(&rptMetric, "metric", "", "metric to report on (default podReadyLatency_P99)")
	reportCmd.Flags().StringVar(&rptConfig, "config", "", "test configuration to analyze (default small-scale-udn-l3.yaml)")
	reportCmd.Flags().StringVar(&rptOutput, "output", "json", "output shape: json, image, both, or json:<field>")
	reportCmd.Flags().StringVar(&rptSaveDir, "save-dir", ".", "directory for returned chart images")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a performance report for release versions",
	Long: `Generate a performance report for one or more release versions.

The server runs changepoint detection over the selected metric and test
configuration and returns run summaries, rendered charts, or both.

Examples:
  # Report on the default version and metric
  orionctl report

  # Compare two versions over 30 days
  orionctl report --versions 4.18,4.19 --lookback 30

  # Extract just the summaries field
  orionctl report --output json:summaries

  # Fetch the chart and save it next to the data
  orionctl report --output both --save-dir ./charts`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	format := orion.OutputFormat(rptOutput)
	if !format.Valid() {
		return fmt.Errorf("invalid --output %q (valid: json, image, both, json:<field>)", rptOutput)
	}

	return runTool(cmd, orion.ToolReportOn, func(ctx context.Context, a *app) error {
		res, err := a.client.ReportOn(ctx, orion.ReportRequest{
			Versions: rptVersions,
			Lookback: rptLookback,
			Since:    rptSince,
			Metric:   rptMetric,
			Config:   rptConfig,
			Options:  format,
		})
		if err != nil {
			return err
		}

		if err := printResult(res); err != nil {
			return err
		}
		return announceImages(res, rptSaveDir)
	})
}
