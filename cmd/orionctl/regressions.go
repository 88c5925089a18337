package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/orion-go/pkg/orion"
)

var (
	// regressions command flags
	regVersion         string
	regLookback        string
	regNightlyVersion  string
	regPreviousNightly string
	regConfigs         string
)

func init() {
	rootCmd.AddCommand(regressionsCmd)
	regressionsCmd.AddCommand(regressionsOpenShiftCmd)
	regressionsCmd.AddCommand(regressionsNetworkingCmd)
	regressionsCmd.AddCommand(regressionsNightlyCmd)

	regressionsCmd.PersistentFlags().StringVar(&regVersion, "version", "", "release version to check (default 4.19)")
	regressionsCmd.PersistentFlags().StringVar(&regLookback, "lookback", "", "analysis window in days")

	regressionsNightlyCmd.Flags().StringVar(&regNightlyVersion, "nightly", "", "nightly build to check, e.g. 4.19.0-0.nightly-2025-06-01-120000 (required)")
	regressionsNightlyCmd.Flags().StringVar(&regPreviousNightly, "previous", "", "nightly build to compare against (server picks one when empty)")
	regressionsNightlyCmd.Flags().StringVar(&regConfigs, "configs", "", "comma-separated test configurations to check")
	_ = regressionsNightlyCmd.MarkFlagRequired("nightly")
}

var regressionsCmd = &cobra.Command{
	Use:   "regressions",
	Short: "Check builds for performance regressions",
	Long: `Check builds for performance regressions.

Each subcommand asks the server one regression question and prints the
verdict JSON.

Examples:
  # Has OpenShift 4.19 regressed over the default window?
  orionctl regressions openshift

  # Has networking regressed in 4.18 over the last week?
  orionctl regressions networking --version 4.18 --lookback 7

  # Compare a nightly build against its predecessor
  orionctl regressions nightly --nightly 4.19.0-0.nightly-2025-06-01-120000`,
}

var regressionsOpenShiftCmd = &cobra.Command{
	Use:   "openshift",
	Short: "Check an OpenShift release for regressions",
	Long: `Check an OpenShift release for performance regressions.

Examples:
  orionctl regressions openshift
  orionctl regressions openshift --version 4.18 --lookback 30`,
	RunE: runRegressionsOpenShift,
}

var regressionsNetworkingCmd = &cobra.Command{
	Use:   "networking",
	Short: "Check networking performance for regressions",
	Long: `Check networking (OVN) performance for regressions.

Examples:
  orionctl regressions networking
  orionctl regressions networking --version 4.18 --lookback 7`,
	RunE: runRegressionsNetworking,
}

var regressionsNightlyCmd = &cobra.Command{
	Use:   "nightly",
	Short: "Compare a nightly build against a previous one",
	Long: `Compare a nightly build against a previous nightly.

When --previous is empty the server selects the preceding nightly itself.

Examples:
  orionctl regressions nightly --nightly 4.19.0-0.nightly-2025-06-01-120000
  orionctl regressions nightly \
    --nightly 4.19.0-0.nightly-2025-06-01-120000 \
    --previous 4.19.0-0.nightly-2025-05-30-080000 \
    --configs small-scale-udn-l3.yaml`,
	RunE: runRegressionsNightly,
}

func runRegressionsOpenShift(cmd *cobra.Command, args []string) error {
	return runTool(cmd, orion.ToolHasOpenShiftRegressed, func(ctx context.Context, a *app) error {
		res, err := a.client.HasOpenShiftRegressed(ctx, regVersion, regLookback)
		if err != nil {
			return err
		}
		return printResult(res)
	})
}

func runRegressionsNetworking(cmd *cobra.Command, args []string) error {
	return runTool(cmd, orion.ToolHasNetworkingRegressed, func(ctx context.Context, a *app) error {
		res, err := a.client.HasNetworkingRegressed(ctx, regVersion, regLookback)
		if err != nil {
			return err
		}
		return printResult(res)
	})
}

func runRegressionsNightly(cmd *cobra.Command, args []string) error {
	return runTool(cmd, orion.ToolHasNightlyRegressed, func(ctx context.Context, a *app) error {
		res, err := a.client.HasNightlyRegressed(ctx, orion.NightlyRequest{
			NightlyVersion:  regNightlyVersion,
			PreviousNightly: regPreviousNightly,
			Lookback:        regLookback,
			Configs:         regConfigs,
		})
		if err != nil {
			return err
		}
		return printResult(res)
	})
}
