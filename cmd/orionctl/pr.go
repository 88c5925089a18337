package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/orion-go/pkg/orion"
)

var (
	// pr command flags
	prVersion    string
	prLookback   string
	prOrg        string
	prRepo       string
	prNumber     string
	prThreshold  float64
	prOutputJSON bool
)

func init() {
	rootCmd.AddCommand(prCmd)

	prCmd.Flags().StringVar(&prVersion, "version", "", "release the pull request targets (default 4.20)")
	prCmd.Flags().StringVar(&prLookback, "lookback", "", "analysis window in days (default 15)")
	prCmd.Flags().StringVar(&prOrg, "organization", "", "GitHub organization (default openshift)")
	prCmd.Flags().StringVar(&prRepo, "repository", "", "GitHub repository (default ovn-kubernetes)")
	prCmd.Flags().StringVar(&prNumber, "pull-request", "", "pull request number (default 2841)")
	prCmd.Flags().Float64Var(&prThreshold, "threshold", orion.DefaultRegressionThreshold, "flag metrics that changed more than this percentage")
	prCmd.Flags().BoolVar(&prOutputJSON, "json", false, "output flagged metrics as JSON")
}

var prCmd = &cobra.Command{
	Use:   "pr",
	Short: "Analyze the performance impact of a pull request",
	Long: `Analyze the performance impact of a pull request.

Without --threshold the full server report is printed as JSON. With
--threshold the report is reduced to the metrics whose percentage change
exceeds the threshold, and the command exits non-zero when any metric is
flagged, so it can gate CI.

Examples:
  # Full report for the default pull request
  orionctl pr

  # Analyze a specific pull request
  orionctl pr --organization openshift --repository ovn-kubernetes --pull-request 2841

  # Gate on a 10% regression threshold
  orionctl pr --pull-request 2841 --threshold 10

  # Machine-readable flagged metrics
  orionctl pr --threshold 5 --json`,
	RunE: runPR,
}

func runPR(cmd *cobra.Command, args []string) error {
	return runTool(cmd, orion.ToolReportOnPR, func(ctx context.Context, a *app) error {
		req := orion.PRReportRequest{
			Version:      prVersion,
			Lookback:     prLookback,
			Organization: prOrg,
			Repository:   prRepo,
			PullRequest:  prNumber,
		}

		// Plain report unless a threshold was asked for
		if !cmd.Flags().Changed("threshold") {
			res, err := a.client.ReportOnPR(ctx, req)
			if err != nil {
				return err
			}
			return printResult(res)
		}

		report, err := a.client.PRAnalysis(ctx, req)
		if err != nil {
			return err
		}

		regressions := report.RegressedMetrics(prThreshold)

		if prOutputJSON {
			if err := outputJSON(regressions); err != nil {
				return err
			}
		} else if len(regressions) == 0 {
			fmt.Printf("No metrics changed more than %.1f%%\n", prThreshold)
		} else {
			writeRegressionTable(os.Stdout, regressions)
		}

		if len(regressions) > 0 {
			return fmt.Errorf("%d metric(s) changed more than %.1f%%", len(regressions), prThreshold)
		}
		return nil
	})
}

// writeRegressionTable renders flagged metrics as an aligned table.
func writeRegressionTable(w io.Writer, regressions []orion.Regression) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CONFIG\tMETRIC\tCHANGE\tDIRECTION")
	for _, r := range regressions {
		direction := "decreased"
		if r.Increased() {
			direction = "increased"
		}
		fmt.Fprintf(tw, "%s\t%s\t%+.1f%%\t%s\n", r.Config, r.Metric, r.PercentageChange, direction)
	}
	tw.Flush()
}
